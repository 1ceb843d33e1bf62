package service

import (
	"Inkwell/internal/repository"
	"Inkwell/internal/social"
	"errors"
)

const (
	BadRequest          = 400
	Unauthorized        = 401
	Forbidden           = 403
	NotFound            = 404
	InternalServerError = 500
	ServiceUnavailable  = 503
)

var (
	ErrParamInvalid        = errors.New("参数错误")
	ErrUserNotFound        = errors.New("用户不存在")
	ErrUserBan             = errors.New("用户已被封禁")
	ErrUserBanSelf         = errors.New("不能封禁自己")
	ErrUserBanLastAdmin    = errors.New("不能封禁最后一个可用的管理员")
	ErrUserExist           = errors.New("邮箱已被注册")
	ErrPasswordIncorrect   = errors.New("邮箱或密码错误")
	ErrOldPasswordWrong    = errors.New("原密码错误")
	ErrNothingToUpdate     = errors.New("没有需要更新的字段")
	ErrPostNotFound        = errors.New("帖子不存在")
	ErrPostCommentNotFound = errors.New("评论不存在")
	ErrSysBoxNotFound      = errors.New("系统通知不存在")
	UnauthorizedError      = errors.New("未登录或登录已过期")
	ErrForbidden           = errors.New("权限不足")
	UnExpectedError        = errors.New("系统异常，请稍后重试")
)

// ErrorMap 业务错误到返回码的映射，匹配时使用 errors.Is，被包装的错误同样生效
var ErrorMap = map[error]int{
	ErrParamInvalid:                BadRequest,
	ErrUserNotFound:                NotFound,
	ErrUserBan:                     Forbidden,
	ErrUserBanSelf:                 BadRequest,
	ErrUserBanLastAdmin:            BadRequest,
	ErrUserExist:                   BadRequest,
	ErrPasswordIncorrect:           Unauthorized,
	ErrOldPasswordWrong:            BadRequest,
	ErrNothingToUpdate:             BadRequest,
	ErrPostNotFound:                NotFound,
	ErrPostCommentNotFound:         NotFound,
	ErrSysBoxNotFound:              NotFound,
	UnauthorizedError:              Unauthorized,
	ErrForbidden:                   Forbidden,
	UnExpectedError:                InternalServerError,
	social.ErrInvalidReactionType:  BadRequest,
	social.ErrSelfFollow:           BadRequest,
	repository.ErrDuplicateKey:     BadRequest,
	repository.ErrStoreUnavailable: ServiceUnavailable,
}

// LookupError 返回 err 命中的业务错误及其返回码
func LookupError(err error) (error, int, bool) {
	if err == nil {
		return nil, 0, false
	}
	if code, ok := ErrorMap[err]; ok {
		return err, code, true
	}
	for target, code := range ErrorMap {
		if errors.Is(err, target) {
			return target, code, true
		}
	}
	return nil, 0, false
}
