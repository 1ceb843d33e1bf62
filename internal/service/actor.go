package service

import (
	"Inkwell/internal/pkg/consts"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor 发起请求的登录用户
type Actor struct {
	ID   primitive.ObjectID
	Role string
}

func (a Actor) IsAdmin() bool {
	return a.Role == consts.RoleAdmin
}

// CanModify 资源作者或管理员
func (a Actor) CanModify(owner primitive.ObjectID) bool {
	return a.ID == owner || a.IsAdmin()
}
