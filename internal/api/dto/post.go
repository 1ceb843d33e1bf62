package dto

import "time"

type CreatePostDTO struct {
	Title    string `json:"title" binding:"required" validate:"min=1,max=255"`
	Content  string `json:"content" binding:"required" validate:"min=1"`
	CoverURL string `json:"cover_url" validate:"max=512"`
}

// UpdatePostDTO 为 nil 的字段不更新
type UpdatePostDTO struct {
	Title    *string `json:"title" validate:"omitempty,min=1,max=255"`
	Content  *string `json:"content" validate:"omitempty,min=1"`
	CoverURL *string `json:"cover_url" validate:"omitempty,max=512"`
}

type ReactionDTO struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
}

// PostDTO 帖子
type PostDTO struct {
	ID             string         `json:"id"`
	Title          string         `json:"title"`
	Content        string         `json:"content"`
	CoverURL       string         `json:"cover_url"`
	Author         *UserBriefDTO  `json:"author"`
	Reactions      []*ReactionDTO `json:"reactions"`
	ReactionCounts map[string]int `json:"reaction_counts"`
	Favorites      []string       `json:"favorites"`
	FavoritesCount int            `json:"favorites_count"`
	CommentsCount  int64          `json:"comments_count"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
}

type ReactionReq struct {
	Type string `json:"type" binding:"required"`
}

// ReactionResultDTO 表态切换结果，客户端应以此为准重新渲染
type ReactionResultDTO struct {
	Result         string         `json:"result"`
	Reactions      []*ReactionDTO `json:"reactions"`
	ReactionCounts map[string]int `json:"reaction_counts"`
}

type FavoriteResultDTO struct {
	Favorited      bool     `json:"favorited"`
	FavoritesCount int      `json:"favorites_count"`
	Favorites      []string `json:"favorites"`
}

type AdminPostQuery struct {
	PageQuery
	Title  string `form:"title"`
	Author string `form:"author"`
}
