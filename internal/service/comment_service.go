package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"Inkwell/internal/social"
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type CommentService interface {
	CreateComment(ctx context.Context, authorID primitive.ObjectID, dto *dto.CreateCommentDTO) (*dto.CommentDTO, error)
	GetCommentTree(ctx context.Context, postID primitive.ObjectID) ([]*dto.CommentDTO, error)
	DeleteComment(ctx context.Context, actor Actor, id primitive.ObjectID) error
}

type commentServiceImpl struct {
	commentRepo repository.CommentRepo
	postRepo    repository.PostRepo
	userRepo    repository.UserRepo
	publisher   EventPublisher
}

func NewCommentService(
	commentRepo repository.CommentRepo,
	postRepo repository.PostRepo,
	userRepo repository.UserRepo,
	publisher EventPublisher,
) CommentService {
	return &commentServiceImpl{
		commentRepo: commentRepo,
		postRepo:    postRepo,
		userRepo:    userRepo,
		publisher:   publisher,
	}
}

// CreateComment 父评论必须存在且属于同一篇帖子
func (s *commentServiceImpl) CreateComment(ctx context.Context, authorID primitive.ObjectID, create *dto.CreateCommentDTO) (*dto.CommentDTO, error) {
	postID, ok := util.ParseObjectID(create.PostID)
	if !ok {
		return nil, ErrParamInvalid
	}
	content := strings.TrimSpace(create.Content)
	if content == "" {
		return nil, ErrParamInvalid
	}

	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comment := &model.Comment{
		PostID:   postID,
		AuthorID: authorID,
		Content:  content,
	}
	if strings.TrimSpace(create.ParentID) != "" {
		parentID, ok := util.ParseObjectID(create.ParentID)
		if !ok {
			return nil, ErrParamInvalid
		}
		parent, err := s.commentRepo.GetCommentById(ctx, parentID)
		if err != nil {
			return nil, err
		}
		if parent == nil || parent.PostID != postID {
			return nil, ErrPostCommentNotFound
		}
		comment.ParentID = &parentID
	}

	if err = s.commentRepo.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	publishEvent(ctx, s.publisher, &model.SocialEvent{
		Type:     model.EventComment,
		ActorID:  authorID.Hex(),
		TargetID: postID.Hex(),
		OwnerID:  post.AuthorID.Hex(),
		Result:   string(social.ReactionAdded),
		Detail:   content,
	})

	author, err := s.userRepo.GetUserById(ctx, authorID)
	if err != nil {
		return nil, err
	}
	authors := map[primitive.ObjectID]*model.User{}
	if author != nil {
		authors[author.ID] = author
	}
	return toCommentDTOs([]*social.CommentNode{{Comment: *comment, Children: []*social.CommentNode{}}}, authors)[0], nil
}

// GetCommentTree 按创建时间升序组装评论树，父评论已删除的回复不会出现
func (s *commentServiceImpl) GetCommentTree(ctx context.Context, postID primitive.ObjectID) ([]*dto.CommentDTO, error) {
	post, err := s.postRepo.GetPostById(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}

	comments, err := s.commentRepo.FindCommentsByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})

	authorIDs := lo.Uniq(lo.Map(comments, func(c *model.Comment, _ int) primitive.ObjectID { return c.AuthorID }))
	authors, err := s.userRepo.GetUserByIds(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorMap := lo.KeyBy(authors, func(u *model.User) primitive.ObjectID { return u.ID })

	return toCommentDTOs(social.BuildCommentTree(comments), authorMap), nil
}

// DeleteComment 作者或管理员可删除，回复不级联
func (s *commentServiceImpl) DeleteComment(ctx context.Context, actor Actor, id primitive.ObjectID) error {
	comment, err := s.commentRepo.GetCommentById(ctx, id)
	if err != nil {
		return err
	}
	if comment == nil {
		return ErrPostCommentNotFound
	}
	if !actor.CanModify(comment.AuthorID) {
		return ErrForbidden
	}
	if err = s.commentRepo.DeleteComment(ctx, id); err != nil {
		return err
	}
	publishEvent(ctx, s.publisher, &model.SocialEvent{
		Type:     model.EventComment,
		ActorID:  actor.ID.Hex(),
		TargetID: comment.PostID.Hex(),
		Result:   string(social.ReactionRemoved),
	})
	return nil
}
