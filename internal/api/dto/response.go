package dto

// Response 统一返回结构，HTTP 状态码恒为 200，业务状态看 Code
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// PageDTO 分页返回
type PageDTO[T any] struct {
	List  []T   `json:"list"`
	Total int64 `json:"total"`
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
}

// PageQuery 通用分页参数
type PageQuery struct {
	Page  int `form:"page"`
	Limit int `form:"limit"`
}
