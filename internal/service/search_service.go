package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/es"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

type SearchService interface {
	Search(ctx context.Context, q string, postLimit, userLimit int) (*dto.SearchResultDTO, error)
	SyncPost(ctx context.Context, postID string) error
	SyncUser(ctx context.Context, userID string) error
}

type searchServiceImpl struct {
	esPostRepo es.PostRepo
	esUserRepo es.UserRepo
	postRepo   repository.PostRepo
	userRepo   repository.UserRepo
}

// NewSearchService esPostRepo / esUserRepo 为 nil 时直接查 MongoDB
func NewSearchService(esPostRepo es.PostRepo, esUserRepo es.UserRepo, postRepo repository.PostRepo, userRepo repository.UserRepo) SearchService {
	return &searchServiceImpl{
		esPostRepo: esPostRepo,
		esUserRepo: esUserRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
	}
}

func clampSearchLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	return min(limit, consts.SearchMaxSize)
}

func (s *searchServiceImpl) Search(ctx context.Context, q string, postLimit, userLimit int) (*dto.SearchResultDTO, error) {
	q = strings.TrimSpace(q)
	res := &dto.SearchResultDTO{
		Query: q,
		Posts: []*dto.SearchPostDTO{},
		Users: []*dto.UserBriefDTO{},
	}
	if utf8.RuneCountInString(q) < consts.SearchMinQueryLen {
		return res, nil
	}
	postLimit = clampSearchLimit(postLimit, consts.SearchDefaultPostSize)
	userLimit = clampSearchLimit(userLimit, consts.SearchDefaultUserSize)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		posts, err := s.searchPosts(gctx, q, postLimit)
		if err != nil {
			return err
		}
		res.Posts = posts
		return nil
	})
	g.Go(func() error {
		users, err := s.searchUsers(gctx, q, userLimit)
		if err != nil {
			return err
		}
		res.Users = users
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}

func (s *searchServiceImpl) searchPosts(ctx context.Context, q string, limit int) ([]*dto.SearchPostDTO, error) {
	var docs []*es.PostES
	if s.esPostRepo != nil {
		hits, err := s.esPostRepo.SearchPosts(ctx, q, limit)
		if err == nil {
			docs = hits
		} else {
			log.WarnContext(ctx, "search posts from es failed, fallback to mongo", "err", err)
		}
	}
	if docs == nil {
		posts, _, err := s.postRepo.ListPosts(ctx, repository.PostQuery{Keyword: q, Limit: int64(limit)})
		if err != nil {
			return nil, err
		}
		docs = lo.Map(posts, func(p *model.Post, _ int) *es.PostES { return ToPostES(p) })
	}

	authorIDs := make([]primitive.ObjectID, 0, len(docs))
	for _, d := range docs {
		if id, ok := util.ParseObjectID(d.AuthorID); ok {
			authorIDs = append(authorIDs, id)
		}
	}
	authors, err := s.userRepo.GetUserByIds(ctx, lo.Uniq(authorIDs))
	if err != nil {
		return nil, err
	}
	authorMap := lo.KeyBy(authors, func(u *model.User) string { return u.ID.Hex() })

	out := make([]*dto.SearchPostDTO, 0, len(docs))
	for _, d := range docs {
		out = append(out, &dto.SearchPostDTO{
			ID:             d.ID,
			Title:          d.Title,
			Author:         toUserBrief(authorMap[d.AuthorID]),
			CreatedAt:      d.CreatedAt,
			FavoritesCount: d.FavoritesCount,
			ReactionsCount: d.ReactionsCount,
			Snippet:        BuildSnippet(d.Content, q, consts.SearchSnippetMaxLen),
		})
	}
	return out, nil
}

func (s *searchServiceImpl) searchUsers(ctx context.Context, q string, limit int) ([]*dto.UserBriefDTO, error) {
	if s.esUserRepo != nil {
		hits, err := s.esUserRepo.SearchUsers(ctx, q, limit)
		if err == nil {
			return lo.Map(hits, func(u *es.UserES, _ int) *dto.UserBriefDTO {
				return &dto.UserBriefDTO{ID: u.ID, Name: u.Name, AvatarURL: u.AvatarURL}
			}), nil
		}
		log.WarnContext(ctx, "search users from es failed, fallback to mongo", "err", err)
	}

	users, _, err := s.userRepo.ListUsers(ctx, q, 0, int64(limit))
	if err != nil {
		return nil, err
	}
	return lo.Map(users, func(u *model.User, _ int) *dto.UserBriefDTO { return toUserBrief(u) }), nil
}

// SyncPost 以 MongoDB 为准刷新索引，帖子不存在时删除文档
func (s *searchServiceImpl) SyncPost(ctx context.Context, postID string) error {
	if s.esPostRepo == nil {
		return nil
	}
	id, ok := util.ParseObjectID(postID)
	if !ok {
		return ErrParamInvalid
	}
	post, err := s.postRepo.GetPostById(ctx, id)
	if err != nil {
		return err
	}
	if post == nil {
		return s.esPostRepo.DeletePost(ctx, postID)
	}
	return s.esPostRepo.IndexPost(ctx, ToPostES(post), post.UpdatedAt.UnixMilli())
}

func (s *searchServiceImpl) SyncUser(ctx context.Context, userID string) error {
	if s.esUserRepo == nil {
		return nil
	}
	id, ok := util.ParseObjectID(userID)
	if !ok {
		return ErrParamInvalid
	}
	user, err := s.userRepo.GetUserById(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return s.esUserRepo.DeleteUser(ctx, userID)
	}
	return s.esUserRepo.IndexUser(ctx, ToUserES(user), user.UpdatedAt.UnixMilli())
}

func ToPostES(p *model.Post) *es.PostES {
	return &es.PostES{
		ID:             p.ID.Hex(),
		AuthorID:       p.AuthorID.Hex(),
		Title:          p.Title,
		Content:        p.Content,
		CoverURL:       p.CoverURL,
		FavoritesCount: len(p.Favorites),
		ReactionsCount: len(p.Reactions),
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func ToUserES(u *model.User) *es.UserES {
	return &es.UserES{
		ID:             u.ID.Hex(),
		Name:           u.Name,
		Email:          u.Email,
		AvatarURL:      u.AvatarURL,
		FollowersCount: len(u.Followers),
		CreatedAt:      u.CreatedAt,
		UpdatedAt:      u.UpdatedAt,
	}
}

// BuildSnippet 截取以首个匹配位置为中心的片段，两端被截断时补省略号
// 匹配不区分大小写，按字符而非字节计算长度
func BuildSnippet(content, q string, maxLen int) string {
	if content == "" {
		return ""
	}
	runes := []rune(content)
	idx := indexFold(runes, []rune(q))
	if idx < 0 {
		if len(runes) <= maxLen {
			return content
		}
		return string(runes[:maxLen]) + "…"
	}

	pad := maxLen / 2
	start := max(0, idx-pad)
	end := min(len(runes), idx+utf8.RuneCountInString(q)+pad)

	snippet := string(runes[start:end])
	if start > 0 {
		snippet = "…" + snippet
	}
	if end < len(runes) {
		snippet += "…"
	}
	return snippet
}

func indexFold(s, sub []rune) int {
	if len(sub) == 0 {
		return 0
	}
outer:
	for i := 0; i+len(sub) <= len(s); i++ {
		for j := range sub {
			if unicode.ToLower(s[i+j]) != unicode.ToLower(sub[j]) {
				continue outer
			}
		}
		return i
	}
	return -1
}
