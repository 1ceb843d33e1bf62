package es

import "time"

// PostES 写入 ES 的帖子文档
type PostES struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"author_id"`
	Title          string    `json:"title"`
	Content        string    `json:"content"`
	CoverURL       string    `json:"cover_url"`
	FavoritesCount int       `json:"favorites_count"`
	ReactionsCount int       `json:"reactions_count"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}
