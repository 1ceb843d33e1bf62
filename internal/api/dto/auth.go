package dto

type SignupDTO struct {
	Name     string `json:"name" binding:"required" validate:"min=1,max=50"`
	Email    string `json:"email" binding:"required" validate:"email,max=100"`
	Password string `json:"password" binding:"required" validate:"min=6,max=64"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthDTO 登录/注册成功返回
type AuthDTO struct {
	Token string `json:"token"`
	User  *MeDTO `json:"user"`
}

// MeDTO 当前登录用户
type MeDTO struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email"`
	Role           string   `json:"role"`
	AvatarURL      string   `json:"avatar_url"`
	CoverURL       string   `json:"cover_url"`
	FollowersCount int      `json:"followers_count"`
	Following      []string `json:"following"`
}
