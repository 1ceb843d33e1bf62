package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User 用户文档，关注关系以 id 列表的形式内嵌在两侧
type User struct {
	ID            primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name          string               `bson:"name" json:"name"`
	Email         string               `bson:"email" json:"email"`
	Password      string               `bson:"password" json:"-"`
	Role          string               `bson:"role" json:"role"`
	Banned        bool                 `bson:"banned" json:"banned"`
	AvatarURL     string               `bson:"avatarUrl,omitempty" json:"avatarUrl"`
	CoverURL      string               `bson:"coverUrl,omitempty" json:"coverUrl"`
	Followers     []primitive.ObjectID `bson:"followers" json:"followers"`
	Following     []primitive.ObjectID `bson:"following" json:"following"`
	FavoritePosts []primitive.ObjectID `bson:"favoritePosts" json:"favoritePosts"`
	CreatedAt     time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsAdmin 是否为管理员
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == "admin"
}
