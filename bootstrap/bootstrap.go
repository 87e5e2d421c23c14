package bootstrap

import (
	"fundmatch-backend/internal/config"
	"fundmatch-backend/internal/interfaces/router"
	"fundmatch-backend/internal/logging"

	"github.com/gofiber/fiber/v2"
)

// New creates the Fiber app for serverless runtimes (the api handler imports
// this package, not internal).
func New() (*fiber.App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	logging.Setup(cfg.Env, cfg.LogLevel)
	app, _, _, err := router.CreateApp(cfg)
	return app, err
}
