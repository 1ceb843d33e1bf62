package kafka

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/model"
	"context"
	"errors"
	"testing"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type mockSysBoxService struct {
	mock.Mock
}

func (m *mockSysBoxService) GetNotificationList(ctx context.Context, userID string, page, pageSize int) ([]*dto.SysBoxDTO, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]*dto.SysBoxDTO), args.Error(1)
}

func (m *mockSysBoxService) GetUnreadCount(ctx context.Context, userID string) (*dto.SysBoxUnreadDTO, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(*dto.SysBoxUnreadDTO), args.Error(1)
}

func (m *mockSysBoxService) MarkRead(ctx context.Context, userID string, msgID string) error {
	return m.Called(ctx, userID, msgID).Error(0)
}

func (m *mockSysBoxService) MarkAllRead(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *mockSysBoxService) Notify(ctx context.Context, evt *model.SocialEvent) error {
	return m.Called(ctx, evt).Error(0)
}

type mockSearchService struct {
	mock.Mock
}

func (m *mockSearchService) Search(ctx context.Context, q string, postLimit, userLimit int) (*dto.SearchResultDTO, error) {
	args := m.Called(ctx, q, postLimit, userLimit)
	return args.Get(0).(*dto.SearchResultDTO), args.Error(1)
}

func (m *mockSearchService) SyncPost(ctx context.Context, postID string) error {
	return m.Called(ctx, postID).Error(0)
}

func (m *mockSearchService) SyncUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func eventMessage(t *testing.T, evt model.SocialEvent) *sarama.ConsumerMessage {
	value, err := json.Marshal(evt)
	assert.NoError(t, err)
	return &sarama.ConsumerMessage{Topic: "social-events", Value: value}
}

func TestNotifyHandler(t *testing.T) {
	svc := new(mockSysBoxService)
	h := NewNotifyHandler(svc)

	svc.On("Notify", mock.Anything, mock.MatchedBy(func(e *model.SocialEvent) bool {
		return e.Type == model.EventFollow && e.OwnerID == "u2"
	})).Return(nil).Once()

	err := h.handle(context.Background(), eventMessage(t, model.SocialEvent{
		Type: model.EventFollow, ActorID: "u1", TargetID: "u2", OwnerID: "u2", Result: "followed",
	}))
	assert.NoError(t, err)
	svc.AssertExpectations(t)
}

func TestNotifyHandlerPropagatesError(t *testing.T) {
	svc := new(mockSysBoxService)
	h := NewNotifyHandler(svc)
	svc.On("Notify", mock.Anything, mock.Anything).Return(errors.New("mongo down")).Once()

	err := h.handle(context.Background(), eventMessage(t, model.SocialEvent{
		Type: model.EventComment, ActorID: "u1", TargetID: "p1", OwnerID: "u2", Result: "added",
	}))
	assert.Error(t, err)
}

func TestNotifyHandlerSkipsInvalidMessage(t *testing.T) {
	svc := new(mockSysBoxService)
	h := NewNotifyHandler(svc)

	assert.NoError(t, h.handle(context.Background(), &sarama.ConsumerMessage{Value: []byte("not json")}))
	assert.NoError(t, h.handle(context.Background(), eventMessage(t, model.SocialEvent{Type: model.EventFollow})))
	svc.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestSearchSyncHandler(t *testing.T) {
	svc := new(mockSearchService)
	h := NewSearchSyncHandler(svc)

	svc.On("SyncPost", mock.Anything, "p1").Return(nil).Twice()
	svc.On("SyncUser", mock.Anything, "u2").Return(nil).Once()

	assert.NoError(t, h.handle(context.Background(), eventMessage(t, model.SocialEvent{Type: model.EventPostCreated, TargetID: "p1"})))
	assert.NoError(t, h.handle(context.Background(), eventMessage(t, model.SocialEvent{Type: model.EventReaction, TargetID: "p1"})))
	assert.NoError(t, h.handle(context.Background(), eventMessage(t, model.SocialEvent{Type: model.EventFollow, ActorID: "u1", TargetID: "u2"})))
	// 评论不影响索引
	assert.NoError(t, h.handle(context.Background(), eventMessage(t, model.SocialEvent{Type: model.EventComment, TargetID: "p1"})))

	svc.AssertExpectations(t)
}
