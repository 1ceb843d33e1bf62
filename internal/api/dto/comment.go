package dto

import "time"

type CreateCommentDTO struct {
	PostID   string `json:"post_id"`
	Content  string `json:"content" binding:"required" validate:"min=1,max=2000"`
	ParentID string `json:"parent_id"`
}

// CommentDTO 评论树节点
type CommentDTO struct {
	ID        string        `json:"id"`
	PostID    string        `json:"post_id"`
	Author    *UserBriefDTO `json:"author"`
	Content   string        `json:"content"`
	ParentID  *string       `json:"parent_id"`
	CreatedAt time.Time     `json:"created_at"`
	Children  []*CommentDTO `json:"children"`
}
