// Package middleware holds the Echo middleware owned by this service.
package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/userdir/user-directory/internal/api/metrics"
)

const rateLimitKeyPrefix = "rate_limit:"

// rateLimitScript ensures atomicity of INCR + EXPIRE and re-arms the TTL on
// keys that lost it.
// KEYS[1]: the per-client rate limit key
// ARGV[1]: window duration in seconds
// ARGV[2]: max request count per window
const rateLimitScript = `
local key = KEYS[1]
local window = ARGV[1]
local limit = tonumber(ARGV[2])

local current = redis.call("INCR", key)

if current == 1 then
    redis.call("EXPIRE", key, window)
else
    if redis.call("TTL", key) == -1 then
        redis.call("EXPIRE", key, window)
    end
end

if current > limit then
    return 0
end
return 1
`

// RateLimit returns a fixed-window per-client-IP throttle backed by Redis.
// The limiter fails open: when Redis is unreachable the request proceeds and
// the failure is logged, so the throttle can never take the API down with it.
func RateLimit(client *redis.Client, window time.Duration, limit int64, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			allowed, err := allow(c.Request().Context(), client, c.RealIP(), window, limit)
			if err != nil {
				metrics.RateLimitDecisionsTotal.WithLabelValues("fail_open").Inc()
				log.Error().Err(err).Str("client_ip", c.RealIP()).Msg("rate limit check failed, allowing request")
				return next(c)
			}
			if !allowed {
				metrics.RateLimitDecisionsTotal.WithLabelValues("limited").Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests,
					"Too many requests from this IP, please try again later")
			}

			metrics.RateLimitDecisionsTotal.WithLabelValues("allowed").Inc()
			return next(c)
		}
	}
}

func allow(ctx context.Context, client *redis.Client, clientIP string, window time.Duration, limit int64) (bool, error) {
	result, err := client.Eval(ctx, rateLimitScript,
		[]string{rateLimitKeyPrefix + clientIP},
		int(window.Seconds()), limit,
	).Result()
	if err != nil {
		return false, err
	}
	return result.(int64) == 1, nil
}
