package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/pkg/redis"
	"Inkwell/internal/social"
	"bytes"
	"context"
	log "log/slog"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestToggleFollow(t *testing.T) {
	ctx := context.Background()

	t.Run("不能关注自己且不访问存储", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewUserFollowService(repo, &recordingPublisher{}, 6, time.Minute)

		id := primitive.NewObjectID()
		_, err := svc.ToggleFollow(ctx, id, id)
		assert.ErrorIs(t, err, social.ErrSelfFollow)
		repo.AssertNotCalled(t, "GetUserById", mock.Anything, mock.Anything)
	})

	t.Run("目标不存在", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewUserFollowService(repo, &recordingPublisher{}, 6, time.Minute)

		me := &model.User{ID: primitive.NewObjectID()}
		targetID := primitive.NewObjectID()
		repo.On("GetUserById", mock.Anything, me.ID).Return(me, nil)
		repo.On("GetUserById", mock.Anything, targetID).Return(nil, nil)

		_, err := svc.ToggleFollow(ctx, me.ID, targetID)
		assert.ErrorIs(t, err, ErrUserNotFound)
		repo.AssertNotCalled(t, "SaveFollowEdge", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("关注后双方列表同时写回并通知被关注者", func(t *testing.T) {
		repo := &mockUserRepo{}
		pub := &recordingPublisher{}
		svc := NewUserFollowService(repo, pub, 6, time.Minute)

		me := &model.User{ID: primitive.NewObjectID()}
		target := &model.User{ID: primitive.NewObjectID()}
		repo.On("GetUserById", mock.Anything, me.ID).Return(me, nil)
		repo.On("GetUserById", mock.Anything, target.ID).Return(target, nil)
		repo.On("SaveFollowEdge", mock.Anything, me.ID, target.ID, true).Return(nil)

		res, err := svc.ToggleFollow(ctx, me.ID, target.ID)
		require.NoError(t, err)
		assert.True(t, res.Followed)
		assert.Equal(t, 1, res.FollowersCount)
		assert.Equal(t, []string{target.ID.Hex()}, res.Following)
		assert.Equal(t, []primitive.ObjectID{me.ID}, target.Followers)

		require.Len(t, pub.events, 1)
		assert.Equal(t, model.EventFollow, pub.events[0].Type)
		assert.Equal(t, "followed", pub.events[0].Result)
		assert.Equal(t, target.ID.Hex(), pub.events[0].OwnerID)
		repo.AssertExpectations(t)
	})

	t.Run("写入失败时返回错误且不投递事件", func(t *testing.T) {
		repo := &mockUserRepo{}
		pub := &recordingPublisher{}
		svc := NewUserFollowService(repo, pub, 6, time.Minute)

		me := &model.User{ID: primitive.NewObjectID()}
		target := &model.User{ID: primitive.NewObjectID()}
		repo.On("GetUserById", mock.Anything, me.ID).Return(me, nil)
		repo.On("GetUserById", mock.Anything, target.ID).Return(target, nil)
		repo.On("SaveFollowEdge", mock.Anything, me.ID, target.ID, true).Return(assert.AnError)

		_, err := svc.ToggleFollow(ctx, me.ID, target.ID)
		assert.ErrorIs(t, err, assert.AnError)
		assert.Empty(t, pub.events)
	})
}

func TestToggleFollowCacheInvalidationFailure(t *testing.T) {
	prevRdb, prevLogger := redis.Rdb, log.Default()
	t.Cleanup(func() {
		redis.Rdb = prevRdb
		log.SetDefault(prevLogger)
	})
	redis.Rdb = goredis.NewClient(&goredis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	var buf bytes.Buffer
	log.SetDefault(log.New(log.NewTextHandler(&buf, nil)))

	repo := &mockUserRepo{}
	svc := NewUserFollowService(repo, nil, 6, time.Minute)
	me := &model.User{ID: primitive.NewObjectID()}
	target := &model.User{ID: primitive.NewObjectID()}
	repo.On("GetUserById", mock.Anything, me.ID).Return(me, nil)
	repo.On("GetUserById", mock.Anything, target.ID).Return(target, nil)
	repo.On("SaveFollowEdge", mock.Anything, me.ID, target.ID, true).Return(nil)

	res, err := svc.ToggleFollow(context.Background(), me.ID, target.ID)
	require.NoError(t, err)
	assert.True(t, res.Followed)
	assert.Contains(t, buf.String(), "invalidate suggestion cache failed")
	assert.Contains(t, buf.String(), me.ID.Hex())
}

func TestGetSuggestions(t *testing.T) {
	ctx := context.Background()

	t.Run("没有关注任何人时直接使用热门用户", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewUserFollowService(repo, &recordingPublisher{}, 2, 0)

		me := &model.User{ID: primitive.NewObjectID()}
		a := &model.User{ID: primitive.NewObjectID(), Name: "a", Followers: []primitive.ObjectID{primitive.NewObjectID()}}
		b := &model.User{ID: primitive.NewObjectID(), Name: "b"}
		repo.On("GetUserById", mock.Anything, me.ID).Return(me, nil)
		repo.On("FindPopularUsers", mock.Anything, []primitive.ObjectID{me.ID}, int64(2)).Return([]*model.User{b, a}, nil)

		list, err := svc.GetSuggestions(ctx, me.ID)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, a.ID, list[0].ID)
		assert.Equal(t, 0, list[0].MutualCount)
		repo.AssertNotCalled(t, "FindFriendsOfFriends", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("二度好友优先，按共同关注数排序", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewUserFollowService(repo, &recordingPublisher{}, 3, 0)

		f1, f2 := primitive.NewObjectID(), primitive.NewObjectID()
		me := &model.User{ID: primitive.NewObjectID(), Following: []primitive.ObjectID{f1, f2}}
		one := &model.User{ID: primitive.NewObjectID(), Followers: []primitive.ObjectID{f1}}
		two := &model.User{ID: primitive.NewObjectID(), Followers: []primitive.ObjectID{f1, f2}}
		hot := &model.User{ID: primitive.NewObjectID(), Followers: make([]primitive.ObjectID, 10)}

		repo.On("GetUserById", mock.Anything, me.ID).Return(me, nil)
		repo.On("FindFriendsOfFriends", mock.Anything, me.ID, me.Following).Return([]*model.User{one, two}, nil)
		repo.On("FindPopularUsers", mock.Anything, mock.Anything, int64(3)).Return([]*model.User{hot, two}, nil)

		list, err := svc.GetSuggestions(ctx, me.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, two.ID, list[0].ID)
		assert.Equal(t, 2, list[0].MutualCount)
		assert.Equal(t, one.ID, list[1].ID)
		assert.Equal(t, hot.ID, list[2].ID)
		assert.Equal(t, 0, list[2].MutualCount)
	})

	t.Run("当前用户不存在", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewUserFollowService(repo, &recordingPublisher{}, 6, 0)

		id := primitive.NewObjectID()
		repo.On("GetUserById", mock.Anything, id).Return(nil, nil)

		_, err := svc.GetSuggestions(ctx, id)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
