package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/repository"
	"context"
	log "log/slog"
	"strings"

	"github.com/samber/lo"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type PostService interface {
	CreatePost(ctx context.Context, authorID primitive.ObjectID, dto *dto.CreatePostDTO) (*dto.PostDTO, error)
	GetPost(ctx context.Context, id primitive.ObjectID) (*dto.PostDTO, error)
	ListPosts(ctx context.Context, page, limit int) (*dto.PageDTO[*dto.PostDTO], error)
	ListPostsByAuthor(ctx context.Context, authorID primitive.ObjectID, page, limit int) (*dto.PageDTO[*dto.PostDTO], error)
	ListFavorites(ctx context.Context, userID primitive.ObjectID, page, limit int) (*dto.PageDTO[*dto.PostDTO], error)
	UpdatePost(ctx context.Context, actor Actor, id primitive.ObjectID, dto *dto.UpdatePostDTO) (*dto.PostDTO, error)
	DeletePost(ctx context.Context, actor Actor, id primitive.ObjectID) error
	AdminListPosts(ctx context.Context, page, limit int, title, author string) (*dto.PageDTO[*dto.PostDTO], error)
}

type postServiceImpl struct {
	postRepo       repository.PostRepo
	commentRepo    repository.CommentRepo
	userRepo       repository.UserRepo
	postMetricRepo repository.PostMetricRepo
	publisher      EventPublisher
}

func NewPostService(
	postRepo repository.PostRepo,
	commentRepo repository.CommentRepo,
	userRepo repository.UserRepo,
	postMetricRepo repository.PostMetricRepo,
	publisher EventPublisher,
) PostService {
	return &postServiceImpl{
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		userRepo:       userRepo,
		postMetricRepo: postMetricRepo,
		publisher:      publisher,
	}
}

func (s *postServiceImpl) CreatePost(ctx context.Context, authorID primitive.ObjectID, create *dto.CreatePostDTO) (*dto.PostDTO, error) {
	title := strings.TrimSpace(create.Title)
	content := strings.TrimSpace(create.Content)
	if title == "" || content == "" {
		return nil, ErrParamInvalid
	}

	author, err := s.userRepo.GetUserById(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}

	post := &model.Post{
		Title:    title,
		Content:  content,
		CoverURL: strings.TrimSpace(create.CoverURL),
		AuthorID: authorID,
	}
	if err = s.postRepo.CreatePost(ctx, post); err != nil {
		return nil, err
	}

	s.publishPostEvent(ctx, model.EventPostCreated, authorID, post)
	return toPostDTO(post, author, 0), nil
}

func (s *postServiceImpl) GetPost(ctx context.Context, id primitive.ObjectID) (*dto.PostDTO, error) {
	post, err := s.mustGetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	list, err := s.assemble(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

func (s *postServiceImpl) ListPosts(ctx context.Context, page, limit int) (*dto.PageDTO[*dto.PostDTO], error) {
	return s.page(ctx, repository.PostQuery{}, page, limit)
}

func (s *postServiceImpl) ListPostsByAuthor(ctx context.Context, authorID primitive.ObjectID, page, limit int) (*dto.PageDTO[*dto.PostDTO], error) {
	author, err := s.userRepo.GetUserById(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if author == nil {
		return nil, ErrUserNotFound
	}
	return s.page(ctx, repository.PostQuery{AuthorIDs: []primitive.ObjectID{authorID}}, page, limit)
}

func (s *postServiceImpl) ListFavorites(ctx context.Context, userID primitive.ObjectID, page, limit int) (*dto.PageDTO[*dto.PostDTO], error) {
	return s.page(ctx, repository.PostQuery{FavoritedBy: userID}, page, limit)
}

// UpdatePost 仅作者或管理员可修改，nil 字段保持不变
func (s *postServiceImpl) UpdatePost(ctx context.Context, actor Actor, id primitive.ObjectID, update *dto.UpdatePostDTO) (*dto.PostDTO, error) {
	post, err := s.mustGetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanModify(post.AuthorID) {
		return nil, ErrForbidden
	}
	if update.Title == nil && update.Content == nil && update.CoverURL == nil {
		return nil, ErrNothingToUpdate
	}

	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		if title == "" {
			return nil, ErrParamInvalid
		}
		post.Title = title
	}
	if update.Content != nil {
		content := strings.TrimSpace(*update.Content)
		if content == "" {
			return nil, ErrParamInvalid
		}
		post.Content = content
	}
	if update.CoverURL != nil {
		post.CoverURL = strings.TrimSpace(*update.CoverURL)
	}

	if err = s.postRepo.SavePost(ctx, post); err != nil {
		return nil, err
	}

	s.publishPostEvent(ctx, model.EventPostUpdated, actor.ID, post)
	list, err := s.assemble(ctx, []*model.Post{post})
	if err != nil {
		return nil, err
	}
	return list[0], nil
}

// DeletePost 删除帖子后级联清理评论、收藏与指标，级联失败只记录日志
func (s *postServiceImpl) DeletePost(ctx context.Context, actor Actor, id primitive.ObjectID) error {
	post, err := s.mustGetPost(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanModify(post.AuthorID) {
		return ErrForbidden
	}

	if err = s.postRepo.DeletePost(ctx, id); err != nil {
		return err
	}

	if n, err := s.commentRepo.DeleteCommentsByPost(ctx, id); err != nil {
		log.ErrorContext(ctx, "cascade delete comments failed", "post_id", id.Hex(), "err", err)
	} else {
		log.InfoContext(ctx, "cascade delete comments", "post_id", id.Hex(), "count", n)
	}
	if _, err := s.userRepo.RemovePostFromFavorites(ctx, id); err != nil {
		log.ErrorContext(ctx, "cascade remove favorites failed", "post_id", id.Hex(), "err", err)
	}
	if s.postMetricRepo != nil {
		if err := s.postMetricRepo.DeletePostMetrics(ctx, id.Hex()); err != nil {
			log.ErrorContext(ctx, "cascade delete post metrics failed", "post_id", id.Hex(), "err", err)
		}
	}

	s.publishPostEvent(ctx, model.EventPostDeleted, actor.ID, post)
	return nil
}

// AdminListPosts author 按用户名或邮箱模糊匹配，匹配不到作者时直接返回空页
func (s *postServiceImpl) AdminListPosts(ctx context.Context, page, limit int, title, author string) (*dto.PageDTO[*dto.PostDTO], error) {
	q := repository.PostQuery{Title: strings.TrimSpace(title)}

	author = strings.TrimSpace(author)
	if author != "" {
		ids, err := s.userRepo.FindUserIdsByKeyword(ctx, author)
		if err != nil {
			return nil, err
		}
		if len(ids) == 0 {
			page, limit = util.NormalizePage(page, limit, consts.DefaultPageSize, consts.MaxPageSize)
			return &dto.PageDTO[*dto.PostDTO]{List: []*dto.PostDTO{}, Page: page, Limit: limit}, nil
		}
		q.AuthorIDs = ids
	}
	return s.page(ctx, q, page, limit)
}

func (s *postServiceImpl) page(ctx context.Context, q repository.PostQuery, page, limit int) (*dto.PageDTO[*dto.PostDTO], error) {
	page, limit = util.NormalizePage(page, limit, consts.DefaultPageSize, consts.MaxPageSize)
	q.Offset = int64((page - 1) * limit)
	q.Limit = int64(limit)

	posts, total, err := s.postRepo.ListPosts(ctx, q)
	if err != nil {
		return nil, err
	}
	list, err := s.assemble(ctx, posts)
	if err != nil {
		return nil, err
	}
	return &dto.PageDTO[*dto.PostDTO]{List: list, Total: total, Page: page, Limit: limit}, nil
}

// assemble 批量补全作者与评论数
func (s *postServiceImpl) assemble(ctx context.Context, posts []*model.Post) ([]*dto.PostDTO, error) {
	if len(posts) == 0 {
		return []*dto.PostDTO{}, nil
	}

	authorIDs := lo.Uniq(lo.Map(posts, func(p *model.Post, _ int) primitive.ObjectID { return p.AuthorID }))
	authors, err := s.userRepo.GetUserByIds(ctx, authorIDs)
	if err != nil {
		return nil, err
	}
	authorMap := lo.KeyBy(authors, func(u *model.User) primitive.ObjectID { return u.ID })

	postIDs := lo.Map(posts, func(p *model.Post, _ int) primitive.ObjectID { return p.ID })
	counts, err := s.commentRepo.CountByPosts(ctx, postIDs)
	if err != nil {
		return nil, err
	}

	out := make([]*dto.PostDTO, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostDTO(p, authorMap[p.AuthorID], counts[p.ID]))
	}
	return out, nil
}

func (s *postServiceImpl) mustGetPost(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	post, err := s.postRepo.GetPostById(ctx, id)
	if err != nil {
		return nil, err
	}
	if post == nil {
		return nil, ErrPostNotFound
	}
	return post, nil
}

func (s *postServiceImpl) publishPostEvent(ctx context.Context, t model.EventType, actorID primitive.ObjectID, post *model.Post) {
	publishEvent(ctx, s.publisher, &model.SocialEvent{
		Type:     t,
		ActorID:  actorID.Hex(),
		TargetID: post.ID.Hex(),
		OwnerID:  post.AuthorID.Hex(),
	})
}
