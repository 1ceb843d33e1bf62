package handler

import (
	"Inkwell/internal/api/middleware"
	"Inkwell/internal/pkg/response"
	"Inkwell/internal/pkg/util"
	"Inkwell/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// currentUserID 读取鉴权中间件写入的用户 ID，失败时已写回响应
func currentUserID(c *gin.Context) (primitive.ObjectID, bool) {
	id, ok := util.ParseObjectID(c.GetString(middleware.CtxUserID))
	if !ok {
		response.Error(c, service.UnauthorizedError)
		return primitive.NilObjectID, false
	}
	return id, true
}

func currentActor(c *gin.Context) (service.Actor, bool) {
	id, ok := currentUserID(c)
	if !ok {
		return service.Actor{}, false
	}
	return service.Actor{ID: id, Role: c.GetString(middleware.CtxRole)}, true
}

func pathObjectID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	id, ok := util.ParseObjectID(c.Param(name))
	if !ok {
		response.Error(c, service.ErrParamInvalid)
		return primitive.NilObjectID, false
	}
	return id, true
}
