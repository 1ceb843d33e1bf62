package service

import (
	"Inkwell/internal/model"
	"Inkwell/internal/repository"
	"context"

	"github.com/stretchr/testify/mock"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockUserRepo) GetUserById(ctx context.Context, id primitive.ObjectID) (*model.User, error) {
	args := m.Called(ctx, id)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) GetUserByIds(ctx context.Context, ids []primitive.ObjectID) ([]*model.User, error) {
	args := m.Called(ctx, ids)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	u, _ := args.Get(0).(*model.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) CreateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) UpdateUserBan(ctx context.Context, id primitive.ObjectID, banned bool) (int64, error) {
	args := m.Called(ctx, id, banned)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) SaveFollowEdge(ctx context.Context, followerID, targetID primitive.ObjectID, follow bool) error {
	return m.Called(ctx, followerID, targetID, follow).Error(0)
}

func (m *mockUserRepo) FindFriendsOfFriends(ctx context.Context, self primitive.ObjectID, following []primitive.ObjectID) ([]*model.User, error) {
	args := m.Called(ctx, self, following)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) FindPopularUsers(ctx context.Context, exclude []primitive.ObjectID, limit int64) ([]*model.User, error) {
	args := m.Called(ctx, exclude, limit)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Error(1)
}

func (m *mockUserRepo) ListUsers(ctx context.Context, keyword string, offset, limit int64) ([]*model.User, int64, error) {
	args := m.Called(ctx, keyword, offset, limit)
	users, _ := args.Get(0).([]*model.User)
	return users, args.Get(1).(int64), args.Error(2)
}

func (m *mockUserRepo) FindUserIdsByKeyword(ctx context.Context, keyword string) ([]primitive.ObjectID, error) {
	args := m.Called(ctx, keyword)
	ids, _ := args.Get(0).([]primitive.ObjectID)
	return ids, args.Error(1)
}

func (m *mockUserRepo) CountActiveAdmins(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockUserRepo) AddFavoritePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *mockUserRepo) RemoveFavoritePost(ctx context.Context, userID, postID primitive.ObjectID) error {
	return m.Called(ctx, userID, postID).Error(0)
}

func (m *mockUserRepo) RemovePostFromFavorites(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPostRepo struct {
	mock.Mock
}

func (m *mockPostRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockPostRepo) CreatePost(ctx context.Context, post *model.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) GetPostById(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(*model.Post)
	return p, args.Error(1)
}

func (m *mockPostRepo) SavePost(ctx context.Context, post *model.Post) error {
	return m.Called(ctx, post).Error(0)
}

func (m *mockPostRepo) PushReaction(ctx context.Context, postID, userID primitive.ObjectID, t model.ReactionType) error {
	return m.Called(ctx, postID, userID, t).Error(0)
}

func (m *mockPostRepo) SetReactionType(ctx context.Context, postID, userID primitive.ObjectID, t model.ReactionType) error {
	return m.Called(ctx, postID, userID, t).Error(0)
}

func (m *mockPostRepo) PullReaction(ctx context.Context, postID, userID primitive.ObjectID) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *mockPostRepo) AddFavorite(ctx context.Context, postID, userID primitive.ObjectID) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *mockPostRepo) RemoveFavorite(ctx context.Context, postID, userID primitive.ObjectID) error {
	return m.Called(ctx, postID, userID).Error(0)
}

func (m *mockPostRepo) DeletePost(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockPostRepo) ListPosts(ctx context.Context, q repository.PostQuery) ([]*model.Post, int64, error) {
	args := m.Called(ctx, q)
	posts, _ := args.Get(0).([]*model.Post)
	return posts, args.Get(1).(int64), args.Error(2)
}

type mockCommentRepo struct {
	mock.Mock
}

func (m *mockCommentRepo) EnsureIndexes(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockCommentRepo) CreateComment(ctx context.Context, comment *model.Comment) error {
	return m.Called(ctx, comment).Error(0)
}

func (m *mockCommentRepo) GetCommentById(ctx context.Context, id primitive.ObjectID) (*model.Comment, error) {
	args := m.Called(ctx, id)
	c, _ := args.Get(0).(*model.Comment)
	return c, args.Error(1)
}

func (m *mockCommentRepo) FindCommentsByPost(ctx context.Context, postID primitive.ObjectID) ([]*model.Comment, error) {
	args := m.Called(ctx, postID)
	list, _ := args.Get(0).([]*model.Comment)
	return list, args.Error(1)
}

func (m *mockCommentRepo) CountByPosts(ctx context.Context, postIDs []primitive.ObjectID) (map[primitive.ObjectID]int64, error) {
	args := m.Called(ctx, postIDs)
	counts, _ := args.Get(0).(map[primitive.ObjectID]int64)
	return counts, args.Error(1)
}

func (m *mockCommentRepo) DeleteComment(ctx context.Context, id primitive.ObjectID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *mockCommentRepo) DeleteCommentsByPost(ctx context.Context, postID primitive.ObjectID) (int64, error) {
	args := m.Called(ctx, postID)
	return args.Get(0).(int64), args.Error(1)
}

// recordingPublisher 记录投递的事件
type recordingPublisher struct {
	events []*model.SocialEvent
}

func (p *recordingPublisher) Publish(_ context.Context, evt *model.SocialEvent) error {
	p.events = append(p.events, evt)
	return nil
}
