package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ReactionType string

const (
	ReactionLike    ReactionType = "like"
	ReactionDislike ReactionType = "dislike"
	ReactionLove    ReactionType = "love"
)

// Valid 是否为受支持的表态类型
func (t ReactionType) Valid() bool {
	switch t {
	case ReactionLike, ReactionDislike, ReactionLove:
		return true
	}
	return false
}

// Reaction 每个用户在一篇帖子上至多一条
type Reaction struct {
	UserID primitive.ObjectID `bson:"user" json:"user"`
	Type   ReactionType       `bson:"type" json:"type"`
}

type Post struct {
	ID        primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title     string               `bson:"title" json:"title"`
	Content   string               `bson:"content" json:"content"`
	CoverURL  string               `bson:"coverUrl,omitempty" json:"coverUrl"`
	AuthorID  primitive.ObjectID   `bson:"author" json:"author"`
	Reactions []Reaction           `bson:"reactions" json:"reactions"`
	Favorites []primitive.ObjectID `bson:"favorites" json:"favorites"`
	CreatedAt time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt" json:"updatedAt"`
}
