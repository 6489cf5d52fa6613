package redis

import (
	"errors"

	"github.com/redis/go-redis/v9"
)

var (
	ErrNotInitialized = errors.New("redis: client not initialized")
)

// IsNil 判断是否是 Key 不存在错误
func IsNil(err error) bool {
	return errors.Is(err, redis.Nil)
}
