package response

import (
	"Inkwell/internal/repository"
	"Inkwell/internal/service"
	"Inkwell/internal/social"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func perform(t *testing.T, err error) envelope {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Error(c, err)

	require.Equal(t, http.StatusOK, w.Code)
	var body envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"未找到", service.ErrPostNotFound, NotFound, service.ErrPostNotFound.Error()},
		{"非法表态", social.ErrInvalidReactionType, BadRequest, social.ErrInvalidReactionType.Error()},
		{"自我关注", social.ErrSelfFollow, BadRequest, social.ErrSelfFollow.Error()},
		{"无权限", service.ErrForbidden, Forbidden, service.ErrForbidden.Error()},
		{"存储不可用", fmt.Errorf("%w: %w", repository.ErrStoreUnavailable, errors.New("dial tcp: refused")), 503, repository.ErrStoreUnavailable.Error()},
		{"包装后的业务错误", fmt.Errorf("load post: %w", service.ErrPostNotFound), NotFound, service.ErrPostNotFound.Error()},
		{"未知错误", errors.New("boom"), InternalServerError, service.UnExpectedError.Error()},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			body := perform(t, tc.err)
			assert.Equal(t, tc.code, body.Code)
			assert.Equal(t, tc.message, body.Message)
		})
	}
}

func TestSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	Success(c, map[string]int{"n": 1})

	var body struct {
		Code int            `json:"code"`
		Data map[string]int `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, Ok, body.Code)
	assert.Equal(t, 1, body.Data["n"])
}
