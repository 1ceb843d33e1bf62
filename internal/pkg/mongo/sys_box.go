package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	SysBoxTypeReaction int8 = iota + 1
	SysBoxTypeFavorite
	SysBoxTypeComment
	SysBoxTypeFollow
)

// SysBoxModel 系统通知模型
type SysBoxModel struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ReceiverID string             `bson:"receiver_id" json:"receiverId"` // 消息接收者ID
	SenderID   string             `bson:"sender_id" json:"senderId"`     // 动作发起者ID，系统通知为空
	Type       int8               `bson:"type" json:"type"`              // 通知类型: 1-表态, 2-收藏, 3-评论, 4-被关注
	TargetID   string             `bson:"target_id" json:"targetId"`     // 关联的帖子ID，关注通知为被关注者
	Content    string             `bson:"content" json:"content"`        // 通知文案预览或评论片段
	Payload    map[string]any     `bson:"payload" json:"payload"`
	IsRead     bool               `bson:"is_read" json:"isRead"`
	CreatedAt  time.Time          `bson:"created_at" json:"createdAt"`
}
