package repository

import (
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
)

var (
	ErrStoreUnavailable = errors.New("存储服务暂不可用，请稍后重试")
	ErrDuplicateKey     = errors.New("唯一键冲突")
)

// wrapStoreErr 驱动错误统一包装为 ErrStoreUnavailable，errors.Is 仍可匹配原始错误
func wrapStoreErr(err error) error {
	if err == nil {
		return nil
	}
	if mongo.IsDuplicateKeyError(err) {
		return fmt.Errorf("%w: %w", ErrDuplicateKey, err)
	}
	return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
}
