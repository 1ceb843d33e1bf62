package dto

import "time"

type SearchPostDTO struct {
	ID             string        `json:"id"`
	Title          string        `json:"title"`
	Author         *UserBriefDTO `json:"author"`
	CreatedAt      time.Time     `json:"created_at"`
	FavoritesCount int           `json:"favorites_count"`
	ReactionsCount int           `json:"reactions_count"`
	Snippet        string        `json:"snippet"`
}

type SearchResultDTO struct {
	Query string           `json:"query"`
	Posts []*SearchPostDTO `json:"posts"`
	Users []*UserBriefDTO  `json:"users"`
}

type SearchQuery struct {
	Q         string `form:"q"`
	PostLimit int    `form:"post_limit"`
	UserLimit int    `form:"user_limit"`
}
