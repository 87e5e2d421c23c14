package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"fundmatch-backend/internal/application/health"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// HealthMarker records request stats in Redis (skips /health*, /reset, favicon).
// With a nil client it is a pass-through.
func HealthMarker(rdb *redis.Client) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if rdb == nil || strings.HasPrefix(path, "/health") || path == "/reset" || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		start := time.Now()
		b, _ := json.Marshal(map[string]interface{}{
			"time":   start.UTC(),
			"ip":     c.IP(),
			"path":   c.OriginalURL(),
			"method": c.Method(),
		})
		ctx := context.Background()
		_, _ = rdb.Set(ctx, health.KeyLastReq, b, 0).Result()
		_, _ = rdb.Incr(ctx, health.KeyReqTotal).Result()

		err := c.Next()

		// Errors returned up the chain have not been written yet.
		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
		}
		ms := time.Since(start).Milliseconds()
		_, _ = rdb.Incr(ctx, health.KeyResCount).Result()
		_, _ = rdb.IncrByFloat(ctx, health.KeyResTime, float64(ms)).Result()
		if status >= fiber.StatusInternalServerError {
			_, _ = rdb.Incr(ctx, health.KeyReqErrors).Result()
		}
		return err
	}
}
