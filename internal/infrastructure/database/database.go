package database

import (
	"strings"

	"fundmatch-backend/internal/domain"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const sqlitePrefix = "sqlite://"

// Open opens a GORM DB from DSN. Postgres URLs go through pgx with
// PreferSimpleProtocol so poolers (PgBouncer, Supabase) don't hit 42P05.
// "sqlite://<path>", ":memory:" and "file:" DSNs open SQLite with a single
// connection so every caller sees the same database.
func Open(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}
	if !isSQLite(dsn) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), cfg)
	}
	db, err := gorm.Open(sqlite.Open(strings.TrimPrefix(dsn, sqlitePrefix)), cfg)
	if err != nil {
		return nil, err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

func isSQLite(dsn string) bool {
	return strings.HasPrefix(dsn, sqlitePrefix) || dsn == ":memory:" || strings.HasPrefix(dsn, "file:")
}

// AutoMigrate creates or updates the projects and investors tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(&domain.Investor{}, &domain.Project{})
}

// Pinger adapts a GORM DB to the health check's DBPinger.
type Pinger struct {
	DB *gorm.DB
}

func (p *Pinger) Ping() error {
	if p == nil || p.DB == nil {
		return nil
	}
	sqlDB, err := p.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
