package middleware

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apperrors "github.com/lk2023060901/ai-translate-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/response"
	"github.com/lk2023060901/ai-translate-backend/internal/pkg/validator"
	"go.uber.org/zap"
)

// ScriptEvaluator 执行 Lua 脚本，*redis.Client 实现了该接口
type ScriptEvaluator interface {
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)
}

// RateLimiterConfig 限流配置
type RateLimiterConfig struct {
	// 时间窗口内允许的最大请求数
	MaxRequests int
	// 时间窗口（秒）
	WindowSeconds int
}

// slidingWindowScript 原子性滑动窗口限流。ARGV[4] 为本次请求的唯一成员，
// 同一秒内的多次请求各自计数
const slidingWindowScript = `
	local key = KEYS[1]
	local now = tonumber(ARGV[1])
	local window = tonumber(ARGV[2])
	local limit = tonumber(ARGV[3])
	local member = ARGV[4]
	local window_start = now - window

	redis.call('ZREMRANGEBYSCORE', key, 0, window_start)

	local current = redis.call('ZCARD', key)

	if current < limit then
		redis.call('ZADD', key, now, member)
		redis.call('EXPIRE', key, window)
		return {1, limit - current - 1, now + window}
	else
		local oldest = redis.call('ZRANGE', key, 0, 0, 'WITHSCORES')[2]
		local reset_time = tonumber(oldest) + window
		return {0, 0, reset_time}
	end
`

// RateLimiter 基于 Redis 的滑动窗口限流中间件
func RateLimiter(eval ScriptEvaluator, cfg RateLimiterConfig, log *logger.Logger) gin.HandlerFunc {
	if cfg.MaxRequests <= 0 {
		cfg.MaxRequests = 100
	}
	if cfg.WindowSeconds <= 0 {
		cfg.WindowSeconds = 60
	}

	return func(c *gin.Context) {
		key := buildRateLimitKey(c)

		allowed, remaining, resetTime, err := checkRateLimit(c.Request.Context(), eval, key, cfg)
		if err != nil {
			log.Error("rate limiter error", zap.Error(err), zap.String("key", key))
			// 限流器故障时，降级允许请求通过
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(cfg.MaxRequests))
		c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime, 10))

		if !allowed {
			c.Header("Retry-After", strconv.Itoa(cfg.WindowSeconds))
			response.ErrorWithCode(c, apperrors.ErrTooManyRequests,
				fmt.Sprintf("try again in %d seconds", cfg.WindowSeconds))
			return
		}

		c.Next()
	}
}

// buildRateLimitKey 已认证请求按用户限流，否则按客户端 IP
func buildRateLimitKey(c *gin.Context) string {
	if userID, ok := GetUserID(c); ok {
		return "rate_limit:user:" + userID
	}
	return "rate_limit:ip:" + validator.ClientIP(c.ClientIP())
}

func checkRateLimit(ctx context.Context, eval ScriptEvaluator, key string, cfg RateLimiterConfig) (allowed bool, remaining int, resetTime int64, err error) {
	now := time.Now().Unix()
	member := fmt.Sprintf("%d:%s", now, uuid.New().String())

	result, err := eval.Eval(ctx, slidingWindowScript, []string{key}, now, cfg.WindowSeconds, cfg.MaxRequests, member)
	if err != nil {
		return false, 0, 0, err
	}

	resultSlice, ok := result.([]interface{})
	if !ok || len(resultSlice) != 3 {
		return false, 0, 0, fmt.Errorf("invalid rate limit result")
	}

	allowedInt, _ := resultSlice[0].(int64)
	remainingInt, _ := resultSlice[1].(int64)
	resetTimeInt, _ := resultSlice[2].(int64)

	return allowedInt == 1, int(remainingInt), resetTimeInt, nil
}

// ContractRateLimiter 领取 Section 专用限流（基于用户 ID）
func ContractRateLimiter(eval ScriptEvaluator, maxRequests, windowSeconds int, log *logger.Logger) gin.HandlerFunc {
	return RateLimiter(eval, RateLimiterConfig{
		MaxRequests:   maxRequests,
		WindowSeconds: windowSeconds,
	}, log)
}
