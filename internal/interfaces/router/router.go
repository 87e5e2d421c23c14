package router

import (
	"errors"
	"net/http"

	investsvc "fundmatch-backend/internal/application/investing"
	invsvc "fundmatch-backend/internal/application/investors"
	matchsvc "fundmatch-backend/internal/application/matching"
	projsvc "fundmatch-backend/internal/application/projects"
	"fundmatch-backend/internal/config"
	"fundmatch-backend/internal/infrastructure/cache"
	"fundmatch-backend/internal/infrastructure/database"
	healthhandler "fundmatch-backend/internal/interfaces/handlers/health"
	invhandler "fundmatch-backend/internal/interfaces/handlers/investors"
	projhandler "fundmatch-backend/internal/interfaces/handlers/projects"
	"fundmatch-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

var ErrNoDatabase = errors.New("database url is not configured")

// CreateApp opens the database and Redis from cfg and builds the app.
// Redis is optional; without it health counters are disabled.
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	if cfg.DatabaseURL == "" {
		return nil, nil, nil, ErrNoDatabase
	}
	db, err := database.Open(cfg.DatabaseURL)
	if err != nil {
		return nil, nil, nil, err
	}
	if cfg.AutoMigrate {
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}
	rdb, err := cache.Open(cfg.RedisURL)
	if err != nil {
		return nil, nil, nil, err
	}
	return New(cfg, db, rdb), db, rdb, nil
}

// New wires middleware, services and routes around an open database.
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client) *fiber.App {
	app := fiber.New(fiber.Config{
		DisableStartupMessage:   true,
		ErrorHandler:            middleware.ErrorHandler(rdb),
		EnableTrustedProxyCheck: true,
	})

	app.Use(middleware.CORS(middleware.CORSConfig{
		AllowedSuffix: cfg.FrontendURLEndsWith,
		DevPassword:   cfg.DevPassword,
	}))
	app.Use(middleware.HealthMarker(rdb))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	hh := &healthhandler.Handlers{
		Rdb:            rdb,
		DB:             &database.Pinger{DB: db},
		HealthAdminKey: cfg.HealthAdminKey,
	}
	app.Get("/reset", hh.Reset)
	app.Get("/health/json", hh.JSON)
	app.Get("/health/errors", hh.Errors)

	matching := &matchsvc.Service{DB: db}

	ph := &projhandler.Handlers{
		Service:  &projsvc.Service{DB: db},
		Matching: matching,
	}
	pg := app.Group("/api/v1/projects")
	pg.Get("/", ph.ListProjects)
	pg.Post("/", ph.CreateProject)
	pg.Get("/:id", ph.GetProject)
	pg.Put("/:id", ph.UpdateProject)
	pg.Patch("/:id", ph.PatchProject)
	pg.Get("/:id/matches", ph.MatchingInvestors)

	ih := &invhandler.Handlers{
		Service:   &invsvc.Service{DB: db},
		Matching:  matching,
		Investing: &investsvc.Service{DB: db},
	}
	ig := app.Group("/api/v1/investors")
	ig.Get("/", ih.ListInvestors)
	ig.Post("/", ih.CreateInvestor)
	ig.Get("/:id", ih.GetInvestor)
	ig.Put("/:id", ih.UpdateInvestor)
	ig.Patch("/:id", ih.PatchInvestor)
	ig.Get("/:id/matches", ih.MatchingProjects)
	ig.Post("/:id/invest/:project_id", ih.InvestIntoProject)

	return app
}

// Handler exposes the app as a net/http handler for serverless runtimes.
func Handler(app *fiber.App) http.Handler {
	return adaptor.FiberApp(app)
}
