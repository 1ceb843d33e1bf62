package handler

import (
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type UserFollowHandler struct {
	userFollowSvc service.UserFollowService
}

func NewUserFollowHandler(userFollowSvc service.UserFollowService) *UserFollowHandler {
	return &UserFollowHandler{
		userFollowSvc: userFollowSvc,
	}
}

// ToggleFollow 已关注则取关，否则关注
func (s *UserFollowHandler) ToggleFollow(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	targetID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	res, err := s.userFollowSvc.ToggleFollow(c.Request.Context(), userID, targetID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

// GetSuggestions 可能认识的人
func (s *UserFollowHandler) GetSuggestions(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	list, err := s.userFollowSvc.GetSuggestions(c.Request.Context(), userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, list)
}
