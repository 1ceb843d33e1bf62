package dto

// PostMetricDTO 帖子指标趋势点
type PostMetricDTO struct {
	Date  string `json:"date"`
	Value int    `json:"value"`
}

// PostTrendDTO 帖子趋势返回包装
type PostTrendDTO struct {
	PostID    string           `json:"post_id"`
	Days      int              `json:"days"` // 7 或 30
	Likes     []*PostMetricDTO `json:"likes"`
	Dislikes  []*PostMetricDTO `json:"dislikes"`
	Loves     []*PostMetricDTO `json:"loves"`
	Favorites []*PostMetricDTO `json:"favorites"`
	Comments  []*PostMetricDTO `json:"comments"`
}
