package service

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/errgroup"
)

// readGate 前 n 次读取互相等待，保证并发请求都在任何写入之前读到旧数据
type readGate struct {
	n     int32
	count atomic.Int32
	wg    sync.WaitGroup
}

func newReadGate(n int) *readGate {
	g := &readGate{n: int32(n)}
	g.wg.Add(n)
	return g
}

func (g *readGate) pass() {
	if g.count.Add(1) <= g.n {
		g.wg.Done()
		g.wg.Wait()
	}
}

// memPostRepo 按 MongoDB 更新操作符的语义保存一篇帖子，读取返回副本
type memPostRepo struct {
	*mockPostRepo
	mu     sync.Mutex
	post   model.Post
	gate   *readGate
	onSave func()
}

func newMemPostRepo(post model.Post, concurrentReads int) *memPostRepo {
	return &memPostRepo{mockPostRepo: &mockPostRepo{}, post: post, gate: newReadGate(concurrentReads)}
}

func (r *memPostRepo) snapshot() *model.Post {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := r.post
	p.Reactions = slices.Clone(r.post.Reactions)
	p.Favorites = slices.Clone(r.post.Favorites)
	return &p
}

func (r *memPostRepo) GetPostById(_ context.Context, id primitive.ObjectID) (*model.Post, error) {
	r.gate.pass()
	if id != r.post.ID {
		return nil, nil
	}
	return r.snapshot(), nil
}

func (r *memPostRepo) SavePost(_ context.Context, post *model.Post) error {
	if r.onSave != nil {
		r.onSave()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.post.Title, r.post.Content, r.post.CoverURL = post.Title, post.Content, post.CoverURL
	return nil
}

func (r *memPostRepo) PushReaction(_ context.Context, _, userID primitive.ObjectID, t model.ReactionType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !lo.ContainsBy(r.post.Reactions, func(x model.Reaction) bool { return x.UserID == userID }) {
		r.post.Reactions = append(r.post.Reactions, model.Reaction{UserID: userID, Type: t})
	}
	return nil
}

func (r *memPostRepo) SetReactionType(_ context.Context, _, userID primitive.ObjectID, t model.ReactionType) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.post.Reactions {
		if r.post.Reactions[i].UserID == userID {
			r.post.Reactions[i].Type = t
			break
		}
	}
	return nil
}

func (r *memPostRepo) PullReaction(_ context.Context, _, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.post.Reactions = lo.Reject(r.post.Reactions, func(x model.Reaction, _ int) bool { return x.UserID == userID })
	return nil
}

func (r *memPostRepo) AddFavorite(_ context.Context, _, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !lo.Contains(r.post.Favorites, userID) {
		r.post.Favorites = append(r.post.Favorites, userID)
	}
	return nil
}

func (r *memPostRepo) RemoveFavorite(_ context.Context, _, userID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.post.Favorites = lo.Without(r.post.Favorites, userID)
	return nil
}

// memUserRepo 只实现关注相关的读写，$addToSet / $pull 语义
type memUserRepo struct {
	*mockUserRepo
	mu     sync.Mutex
	users  map[primitive.ObjectID]*model.User
	gate   *readGate
	gateID primitive.ObjectID
}

func (r *memUserRepo) GetUserById(_ context.Context, id primitive.ObjectID) (*model.User, error) {
	if id == r.gateID {
		r.gate.pass()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	c := *u
	c.Followers = slices.Clone(u.Followers)
	c.Following = slices.Clone(u.Following)
	return &c, nil
}

func (r *memUserRepo) SaveFollowEdge(_ context.Context, followerID, targetID primitive.ObjectID, follow bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	target, follower := r.users[targetID], r.users[followerID]
	if follow {
		target.Followers = lo.Uniq(append(target.Followers, followerID))
		follower.Following = lo.Uniq(append(follower.Following, targetID))
	} else {
		target.Followers = lo.Without(target.Followers, followerID)
		follower.Following = lo.Without(follower.Following, targetID)
	}
	return nil
}

func TestConcurrentTogglesFromDifferentUsers(t *testing.T) {
	ctx := context.Background()
	alice, bob := primitive.NewObjectID(), primitive.NewObjectID()

	t.Run("两个用户同时表态都被保留", func(t *testing.T) {
		post := model.Post{ID: primitive.NewObjectID(), AuthorID: primitive.NewObjectID()}
		repo := newMemPostRepo(post, 2)
		svc := NewPostActionService(repo, &mockUserRepo{}, nil)

		var g errgroup.Group
		results := make([]*dto.ReactionResultDTO, 2)
		for i, uid := range []primitive.ObjectID{alice, bob} {
			g.Go(func() error {
				res, err := svc.React(ctx, uid, post.ID, "like")
				results[i] = res
				return err
			})
		}
		require.NoError(t, g.Wait())

		stored := repo.snapshot()
		assert.Len(t, stored.Reactions, 2)
		for _, res := range results {
			assert.Equal(t, "added", res.Result)
		}
	})

	t.Run("两个用户同时收藏都被保留", func(t *testing.T) {
		post := model.Post{ID: primitive.NewObjectID()}
		repo := newMemPostRepo(post, 2)
		userRepo := &mockUserRepo{}
		userRepo.On("AddFavoritePost", mock.Anything, mock.Anything, post.ID).Return(nil)
		svc := NewPostActionService(repo, userRepo, nil)

		var g errgroup.Group
		for _, uid := range []primitive.ObjectID{alice, bob} {
			g.Go(func() error {
				_, err := svc.ToggleFavorite(ctx, uid, post.ID)
				return err
			})
		}
		require.NoError(t, g.Wait())
		assert.ElementsMatch(t, []primitive.ObjectID{alice, bob}, repo.snapshot().Favorites)
	})

	t.Run("编辑帖子不会覆盖期间产生的表态", func(t *testing.T) {
		authorID := primitive.NewObjectID()
		post := model.Post{ID: primitive.NewObjectID(), AuthorID: authorID, Title: "old", Content: "body"}
		repo := newMemPostRepo(post, 0)
		repo.onSave = func() {
			_ = repo.PushReaction(ctx, post.ID, alice, model.ReactionLove)
		}
		userRepo, commentRepo := &mockUserRepo{}, &mockCommentRepo{}
		userRepo.On("GetUserByIds", mock.Anything, mock.Anything).Return([]*model.User{}, nil)
		commentRepo.On("CountByPosts", mock.Anything, mock.Anything).Return(map[primitive.ObjectID]int64{}, nil)
		svc := NewPostService(repo, commentRepo, userRepo, nil, nil)

		title := "new"
		_, err := svc.UpdatePost(ctx, Actor{ID: authorID}, post.ID, &dto.UpdatePostDTO{Title: &title})
		require.NoError(t, err)

		stored := repo.snapshot()
		assert.Equal(t, "new", stored.Title)
		assert.Equal(t, []model.Reaction{{UserID: alice, Type: model.ReactionLove}}, stored.Reactions)
	})

	t.Run("两个用户同时关注同一目标，粉丝与关注列表保持对称", func(t *testing.T) {
		target := &model.User{ID: primitive.NewObjectID()}
		repo := &memUserRepo{
			mockUserRepo: &mockUserRepo{},
			users: map[primitive.ObjectID]*model.User{
				alice:     {ID: alice},
				bob:       {ID: bob},
				target.ID: target,
			},
			gate:   newReadGate(2),
			gateID: target.ID,
		}
		svc := NewUserFollowService(repo, nil, 6, 0)

		var g errgroup.Group
		for _, uid := range []primitive.ObjectID{alice, bob} {
			g.Go(func() error {
				res, err := svc.ToggleFollow(ctx, uid, target.ID)
				if err == nil && !res.Followed {
					t.Errorf("user %s: want followed", uid.Hex())
				}
				return err
			})
		}
		require.NoError(t, g.Wait())

		assert.ElementsMatch(t, []primitive.ObjectID{alice, bob}, repo.users[target.ID].Followers)
		assert.Equal(t, []primitive.ObjectID{target.ID}, repo.users[alice].Following)
		assert.Equal(t, []primitive.ObjectID{target.ID}, repo.users[bob].Following)
	})
}
