package dto

import "time"

// UserBriefDTO 作者、粉丝列表等场景下的用户摘要
type UserBriefDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url"`
}

// UserProfileDTO 用户主页
type UserProfileDTO struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	Role           string          `json:"role"`
	AvatarURL      string          `json:"avatar_url"`
	CoverURL       string          `json:"cover_url"`
	Followers      []*UserBriefDTO `json:"followers"`
	Following      []*UserBriefDTO `json:"following"`
	FollowersCount int             `json:"followers_count"`
	FollowingCount int             `json:"following_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// UpdateProfileDTO 为 nil 的字段不更新
type UpdateProfileDTO struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=50"`
	Email     *string `json:"email" validate:"omitempty,email,max=100"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,max=512"`
	CoverURL  *string `json:"cover_url" validate:"omitempty,max=512"`
}

type ChangePasswordDTO struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required" validate:"min=6,max=64"`
}

// FollowResultDTO 关注切换结果
type FollowResultDTO struct {
	Followed       bool     `json:"followed"`
	FollowersCount int      `json:"followers_count"`
	Following      []string `json:"following"`
}

// AdminUserDTO 管理后台用户列表项
type AdminUserDTO struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Role           string    `json:"role"`
	Banned         bool      `json:"banned"`
	FollowersCount int       `json:"followers_count"`
	CreatedAt      time.Time `json:"created_at"`
}

type BanUserDTO struct {
	Banned *bool `json:"banned" binding:"required"`
}

type AdminUserQuery struct {
	PageQuery
	Search string `form:"search"`
}
