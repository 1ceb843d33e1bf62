package handler

import (
	"Inkwell/internal/api/dto"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
)

type SearchHandler struct {
	searchSvc service.SearchService
}

func NewSearchHandler(searchSvc service.SearchService) *SearchHandler {
	return &SearchHandler{
		searchSvc: searchSvc,
	}
}

// Search 同时搜索帖子与用户，关键词过短时返回空结果
func (s *SearchHandler) Search(c *gin.Context) {
	var q dto.SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, err)
		return
	}

	res, err := s.searchSvc.Search(c.Request.Context(), q.Q, q.PostLimit, q.UserLimit)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, res)
}
