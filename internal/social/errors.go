package social

import "errors"

var (
	ErrInvalidReactionType = errors.New("无效的表态类型")
	ErrSelfFollow          = errors.New("用户不能关注自己")
)
