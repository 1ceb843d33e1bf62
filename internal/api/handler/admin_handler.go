package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	adminSvc service.AdminService
}

func NewAdminHandler(adminSvc service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminSvc: adminSvc,
	}
}

func (s *AdminHandler) ListUsers(c *gin.Context) {
	var q dto.AdminUserQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}

	users, err := s.adminSvc.ListUsers(c.Request.Context(), q.Page, q.Limit, q.Search)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// SetBan 封禁或解封，body 中 banned 必填
func (s *AdminHandler) SetBan(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	targetID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req dto.BanUserDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	user, err := s.adminSvc.SetBan(c.Request.Context(), actor, targetID, *req.Banned)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, user)
}
