package util

import (
	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateDTO 校验失败时返回 validator.ValidationErrors，由 response.Error 统一转换为参数错误
func ValidateDTO(dto any) error {
	return validate.Struct(dto)
}
