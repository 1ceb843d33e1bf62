package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Comment ParentID 为空表示一级评论
type Comment struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	PostID    primitive.ObjectID  `bson:"post" json:"post"`
	AuthorID  primitive.ObjectID  `bson:"author" json:"author"`
	Content   string              `bson:"content" json:"content"`
	ParentID  *primitive.ObjectID `bson:"parentComment,omitempty" json:"parentComment"`
	CreatedAt time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time           `bson:"updatedAt" json:"updatedAt"`
}
