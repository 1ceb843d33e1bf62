package model

import "time"

type EventType string

const (
	EventPostCreated EventType = "post_created"
	EventPostUpdated EventType = "post_updated"
	EventPostDeleted EventType = "post_deleted"
	EventReaction    EventType = "reaction"
	EventFavorite    EventType = "favorite"
	EventComment     EventType = "comment"
	EventFollow      EventType = "follow"
	EventUserUpdated EventType = "user_updated"
)

// SocialEvent 写操作成功后投递到 Kafka 的领域事件
type SocialEvent struct {
	Type EventType `json:"type"`
	// ActorID 动作发起者
	ActorID string `json:"actor_id"`
	// TargetID 帖子 ID 或被关注用户 ID
	TargetID string `json:"target_id"`
	// OwnerID 通知接收者，通常是帖子作者或被关注者
	OwnerID string `json:"owner_id,omitempty"`
	// Result added / removed / updated，关注事件为 followed / unfollowed
	Result     string    `json:"result,omitempty"`
	Detail     string    `json:"detail,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Key 分区键，同一目标的事件进入同一分区保证顺序
func (e *SocialEvent) Key() string {
	return e.TargetID
}
