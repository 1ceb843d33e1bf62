package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/social"

	"github.com/jinzhu/copier"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// copyOption ObjectID 按十六进制字符串复制到 DTO
var copyOption = copier.Option{
	Converters: []copier.TypeConverter{{
		SrcType: primitive.ObjectID{},
		DstType: copier.String,
		Fn: func(src interface{}) (interface{}, error) {
			return src.(primitive.ObjectID).Hex(), nil
		},
	}},
}

func toUserBrief(u *model.User) *dto.UserBriefDTO {
	if u == nil {
		return nil
	}
	return &dto.UserBriefDTO{
		ID:        u.ID.Hex(),
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

func toMeDTO(u *model.User) *dto.MeDTO {
	return &dto.MeDTO{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Email:          u.Email,
		Role:           u.Role,
		AvatarURL:      u.AvatarURL,
		CoverURL:       u.CoverURL,
		FollowersCount: len(u.Followers),
		Following:      util.IDsToHex(u.Following),
	}
}

func toReactionDTOs(list []model.Reaction) []*dto.ReactionDTO {
	out := make([]*dto.ReactionDTO, 0, len(list))
	for _, r := range list {
		out = append(out, &dto.ReactionDTO{UserID: r.UserID.Hex(), Type: string(r.Type)})
	}
	return out
}

func reactionCounts(list []model.Reaction) map[string]int {
	counts := make(map[string]int, 3)
	for t, n := range social.NewReactionSet(list).Counts() {
		counts[string(t)] = n
	}
	return counts
}

func toPostDTO(post *model.Post, author *model.User, commentsCount int64) *dto.PostDTO {
	d := &dto.PostDTO{
		ID:             post.ID.Hex(),
		Title:          post.Title,
		Content:        post.Content,
		CoverURL:       post.CoverURL,
		Author:         toUserBrief(author),
		Reactions:      toReactionDTOs(post.Reactions),
		ReactionCounts: reactionCounts(post.Reactions),
		Favorites:      util.IDsToHex(post.Favorites),
		FavoritesCount: len(post.Favorites),
		CommentsCount:  commentsCount,
		CreatedAt:      post.CreatedAt,
		UpdatedAt:      post.UpdatedAt,
	}
	if d.Author == nil {
		d.Author = &dto.UserBriefDTO{ID: post.AuthorID.Hex()}
	}
	return d
}

func toCommentDTOs(nodes []*social.CommentNode, authors map[primitive.ObjectID]*model.User) []*dto.CommentDTO {
	out := make([]*dto.CommentDTO, 0, len(nodes))
	for _, n := range nodes {
		d := &dto.CommentDTO{
			ID:        n.ID.Hex(),
			PostID:    n.PostID.Hex(),
			Author:    toUserBrief(authors[n.AuthorID]),
			Content:   n.Content,
			CreatedAt: n.CreatedAt,
			Children:  toCommentDTOs(n.Children, authors),
		}
		if d.Author == nil {
			d.Author = &dto.UserBriefDTO{ID: n.AuthorID.Hex()}
		}
		if n.ParentID != nil {
			parent := n.ParentID.Hex()
			d.ParentID = &parent
		}
		out = append(out, d)
	}
	return out
}
