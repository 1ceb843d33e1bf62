package service

import (
	"Inkwell/internal/model"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestSetBan(t *testing.T) {
	ctx := context.Background()
	admin := Actor{ID: primitive.NewObjectID(), Role: "admin"}

	t.Run("普通用户无权封禁", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAdminService(repo)

		_, err := svc.SetBan(ctx, Actor{ID: primitive.NewObjectID(), Role: "user"}, primitive.NewObjectID(), true)
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("不能封禁自己", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAdminService(repo)

		_, err := svc.SetBan(ctx, admin, admin.ID, true)
		assert.ErrorIs(t, err, ErrUserBanSelf)
		repo.AssertNotCalled(t, "UpdateUserBan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("不能封禁最后一个管理员", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAdminService(repo)

		target := &model.User{ID: primitive.NewObjectID(), Role: "admin"}
		repo.On("GetUserById", mock.Anything, target.ID).Return(target, nil)
		repo.On("CountActiveAdmins", mock.Anything).Return(int64(1), nil)

		_, err := svc.SetBan(ctx, admin, target.ID, true)
		assert.ErrorIs(t, err, ErrUserBanLastAdmin)
		repo.AssertNotCalled(t, "UpdateUserBan", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("封禁普通用户", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAdminService(repo)

		target := &model.User{ID: primitive.NewObjectID(), Role: "user", Name: "bob", Followers: []primitive.ObjectID{admin.ID}}
		repo.On("GetUserById", mock.Anything, target.ID).Return(target, nil)
		repo.On("UpdateUserBan", mock.Anything, target.ID, true).Return(int64(1), nil)

		res, err := svc.SetBan(ctx, admin, target.ID, true)
		require.NoError(t, err)
		assert.True(t, res.Banned)
		assert.Equal(t, "bob", res.Name)
		assert.Equal(t, target.ID.Hex(), res.ID)
		assert.Equal(t, 1, res.FollowersCount)
		repo.AssertNotCalled(t, "CountActiveAdmins", mock.Anything)
	})

	t.Run("目标不存在", func(t *testing.T) {
		repo := &mockUserRepo{}
		svc := NewAdminService(repo)

		id := primitive.NewObjectID()
		repo.On("GetUserById", mock.Anything, id).Return(nil, nil)

		_, err := svc.SetBan(ctx, admin, id, false)
		assert.ErrorIs(t, err, ErrUserNotFound)
	})
}
