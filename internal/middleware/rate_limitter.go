package middleware

import (
	"ExpenseLedger/internal/entity"
	"ExpenseLedger/pkg/redis"
	"ExpenseLedger/pkg/response"
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

const rateLimitWindow = time.Minute

var (
	ErrTooManyRequests = response.NewError(http.StatusTooManyRequests, "too many requests")
)

type rateLimiter struct {
	redis     redis.IRedis
	limit     int
	bucket    map[string]*rate.Limiter
	rate      rate.Limit
	burstSize int
	mutex     *sync.RWMutex
}

func newRateLimiter(redisServer redis.IRedis, perMinute int) *rateLimiter {
	return &rateLimiter{
		redis:     redisServer,
		limit:     perMinute,
		bucket:    make(map[string]*rate.Limiter),
		rate:      rate.Every(rateLimitWindow / time.Duration(perMinute)),
		burstSize: perMinute,
		mutex:     &sync.RWMutex{},
	}
}

func (r *rateLimiter) GetLimiterFrom(key string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exist := r.bucket[key]; !exist {
		r.bucket[key] = rate.NewLimiter(r.rate, r.burstSize)
	}

	return r.bucket[key]
}

// Allow counts the request in a fixed one-minute Redis window. Without Redis, or
// when Redis fails, the in-process token bucket decides.
func (r *rateLimiter) Allow(ctx context.Context, key string, now time.Time) (bool, error) {
	if r.redis != nil {
		window := now.Truncate(rateLimitWindow).Unix()
		count, err := r.redis.IncrWindow(ctx, fmt.Sprintf("ratelimit:%s:%d", key, window), rateLimitWindow)
		if err == nil {
			return count <= int64(r.limit), nil
		}
		return r.GetLimiterFrom(key).AllowN(now, 1), err
	}

	return r.GetLimiterFrom(key).AllowN(now, 1), nil
}

func (m *middleware) NewRateLimiter(ctx *fiber.Ctx) error {
	key := "ip:" + ctx.IP()
	if user, ok := ctx.Locals("user").(entity.UserLoginData); ok && user.ID != "" {
		key = "user:" + user.ID
	}

	c, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	allowed, err := m.rateLimitter.Allow(c, key, time.Now())
	if err != nil {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"key":        key,
			"error":      err.Error(),
		}).Warn("Redis rate limiter unavailable, using in-memory limiter")
	}

	if !allowed {
		m.log.WithFields(logrus.Fields{
			"request_id": m.GetRequestID(ctx),
			"key":        key,
		}).Warn("Too many requests")
		return ctx.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
			"error": ErrTooManyRequests.Error(),
			"code":  string(response.KindRateLimited),
		})
	}

	return ctx.Next()
}
