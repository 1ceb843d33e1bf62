package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/consts"
	"Inkwell/internal/service"
	"Inkwell/internal/social"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type mockPostActionSvc struct {
	mock.Mock
}

func (m *mockPostActionSvc) React(ctx context.Context, userID, postID primitive.ObjectID, reactionType string) (*dto.ReactionResultDTO, error) {
	args := m.Called(ctx, userID, postID, reactionType)
	res, _ := args.Get(0).(*dto.ReactionResultDTO)
	return res, args.Error(1)
}

func (m *mockPostActionSvc) RemoveReaction(ctx context.Context, userID, postID primitive.ObjectID) (*dto.ReactionResultDTO, error) {
	args := m.Called(ctx, userID, postID)
	res, _ := args.Get(0).(*dto.ReactionResultDTO)
	return res, args.Error(1)
}

func (m *mockPostActionSvc) ToggleFavorite(ctx context.Context, userID, postID primitive.ObjectID) (*dto.FavoriteResultDTO, error) {
	args := m.Called(ctx, userID, postID)
	res, _ := args.Get(0).(*dto.FavoriteResultDTO)
	return res, args.Error(1)
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// newActionRouter 用固定用户代替鉴权中间件
func newActionRouter(svc service.PostActionService, userID string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewPostActionHandler(svc, nil)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.CtxUserID, userID)
			c.Set(middleware.CtxRole, consts.RoleUser)
		}
		c.Next()
	})
	r.POST("/posts/:id/reactions", h.React)
	r.POST("/posts/:id/favorite", h.ToggleFavorite)
	return r
}

func send(r *gin.Engine, method, path, body string) envelope {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	var res envelope
	_ = json.Unmarshal(w.Body.Bytes(), &res)
	return res
}

func TestReactHandler(t *testing.T) {
	userID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	t.Run("未登录", func(t *testing.T) {
		r := newActionRouter(&mockPostActionSvc{}, "")
		res := send(r, http.MethodPost, "/posts/"+postID.Hex()+"/reactions", `{"type":"like"}`)
		assert.Equal(t, 401, res.Code)
	})

	t.Run("帖子 ID 非法", func(t *testing.T) {
		r := newActionRouter(&mockPostActionSvc{}, userID.Hex())
		res := send(r, http.MethodPost, "/posts/not-an-id/reactions", `{"type":"like"}`)
		assert.Equal(t, 400, res.Code)
	})

	t.Run("缺少表态类型", func(t *testing.T) {
		r := newActionRouter(&mockPostActionSvc{}, userID.Hex())
		res := send(r, http.MethodPost, "/posts/"+postID.Hex()+"/reactions", `{}`)
		assert.Equal(t, 400, res.Code)
	})

	t.Run("不支持的表态类型", func(t *testing.T) {
		svc := &mockPostActionSvc{}
		svc.On("React", mock.Anything, userID, postID, "angry").Return(nil, social.ErrInvalidReactionType)
		r := newActionRouter(svc, userID.Hex())

		res := send(r, http.MethodPost, "/posts/"+postID.Hex()+"/reactions", `{"type":"angry"}`)
		assert.Equal(t, 400, res.Code)
		assert.Equal(t, social.ErrInvalidReactionType.Error(), res.Message)
	})

	t.Run("表态成功", func(t *testing.T) {
		svc := &mockPostActionSvc{}
		svc.On("React", mock.Anything, userID, postID, "love").Return(&dto.ReactionResultDTO{
			Result:         "added",
			Reactions:      []*dto.ReactionDTO{{UserID: userID.Hex(), Type: "love"}},
			ReactionCounts: map[string]int{"like": 0, "dislike": 0, "love": 1},
		}, nil)
		r := newActionRouter(svc, userID.Hex())

		res := send(r, http.MethodPost, "/posts/"+postID.Hex()+"/reactions", `{"type":"love"}`)
		require.Equal(t, 200, res.Code)
		var data dto.ReactionResultDTO
		require.NoError(t, json.Unmarshal(res.Data, &data))
		assert.Equal(t, "added", data.Result)
		assert.Equal(t, 1, data.ReactionCounts["love"])
		svc.AssertExpectations(t)
	})
}

func TestToggleFavoriteHandler(t *testing.T) {
	userID := primitive.NewObjectID()
	postID := primitive.NewObjectID()

	svc := &mockPostActionSvc{}
	svc.On("ToggleFavorite", mock.Anything, userID, postID).Return(nil, service.ErrPostNotFound)
	r := newActionRouter(svc, userID.Hex())

	res := send(r, http.MethodPost, "/posts/"+postID.Hex()+"/favorite", "")
	assert.Equal(t, 404, res.Code)
}
