package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"fundmatch-backend/internal/application/health"
	"fundmatch-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// ErrorHandler returns the global error handler. Unexpected errors are logged,
// pushed to the Redis error log (when rdb is set) and answered with the
// standard error format.
func ErrorHandler(rdb *redis.Client) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		message := "Internal Server Error"

		var fe *fiber.Error
		if errors.As(err, &fe) {
			code = fe.Code
			message = fe.Message
		}

		if code >= fiber.StatusInternalServerError {
			log.Error().Err(err).Str("trace_id", GetTraceID(c)).Str("method", c.Method()).Str("path", c.Path()).Msg("Unhandled error")
			recordError(rdb, c, err)
		}
		return response.Error(c, message, code, nil)
	}
}

func recordError(rdb *redis.Client, c *fiber.Ctx, err error) {
	if rdb == nil {
		return
	}
	b, _ := json.Marshal(map[string]interface{}{
		"time":     time.Now().UTC(),
		"trace_id": GetTraceID(c),
		"method":   c.Method(),
		"path":     c.OriginalURL(),
		"message":  err.Error(),
	})
	ctx := context.Background()
	pipe := rdb.TxPipeline()
	pipe.LPush(ctx, health.KeyErrorLog, b)
	pipe.LTrim(ctx, health.KeyErrorLog, 0, health.ErrorLogSize-1)
	_, _ = pipe.Exec(ctx)
}
