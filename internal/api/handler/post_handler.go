package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postSvc service.PostService
}

func NewPostHandler(postSvc service.PostService) *PostHandler {
	return &PostHandler{
		postSvc: postSvc,
	}
}

func (s *PostHandler) ListPosts(c *gin.Context) {
	var q dto.PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.ListPosts(c.Request.Context(), q.Page, q.Limit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}

func (s *PostHandler) GetPost(c *gin.Context) {
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	post, err := s.postSvc.GetPost(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) CreatePost(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.CreatePost(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

func (s *PostHandler) UpdatePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdatePostDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	post, err := s.postSvc.UpdatePost(c.Request.Context(), actor, postID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, post)
}

// DeletePost 作者或管理员
func (s *PostHandler) DeletePost(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	if err := s.postSvc.DeletePost(c.Request.Context(), actor, postID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}

// AdminListPosts 支持按标题与作者名过滤
func (s *PostHandler) AdminListPosts(c *gin.Context) {
	var q dto.AdminPostQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}

	posts, err := s.postSvc.AdminListPosts(c.Request.Context(), q.Page, q.Limit, q.Title, q.Author)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, posts)
}
