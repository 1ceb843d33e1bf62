package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type PostActionHandler struct {
	postActionSvc service.PostActionService
	commentSvc    service.CommentService
}

func NewPostActionHandler(postActionSvc service.PostActionService, commentSvc service.CommentService) *PostActionHandler {
	return &PostActionHandler{
		postActionSvc: postActionSvc,
		commentSvc:    commentSvc,
	}
}

// React 相同类型再次提交会取消表态
func (s *PostActionHandler) React(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	var req dto.ReactionReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.postActionSvc.React(c.Request.Context(), userID, postID, req.Type)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostActionHandler) RemoveReaction(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	res, err := s.postActionSvc.RemoveReaction(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostActionHandler) ToggleFavorite(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	res, err := s.postActionSvc.ToggleFavorite(c.Request.Context(), userID, postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}

func (s *PostActionHandler) CreateComment(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, err)
		return
	}
	// 路径上的帖子 ID 优先
	if id := c.Param("id"); id != "" {
		req.PostID = id
	}
	if err := util.ValidateDTO(&req); err != nil {
		response.Error(c, err)
		return
	}

	comment, err := s.commentSvc.CreateComment(c.Request.Context(), userID, &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, comment)
}

// GetComments 评论树，无需登录
func (s *PostActionHandler) GetComments(c *gin.Context) {
	postID, ok := pathObjectID(c, "id")
	if !ok {
		return
	}

	tree, err := s.commentSvc.GetCommentTree(c.Request.Context(), postID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, tree)
}

func (s *PostActionHandler) DeleteComment(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}
	commentID, ok := pathObjectID(c, "comment_id")
	if !ok {
		return
	}

	if err := s.commentSvc.DeleteComment(c.Request.Context(), actor, commentID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, nil)
}
