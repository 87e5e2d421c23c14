package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	HealthAdminKey      string
	LogLevel            string
	AutoMigrate         bool
}

func init() {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("APP_ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("AUTO_MIGRATE", false)
}

// Load loads config from env and optional .env file. Values bound to
// command-line flags through viper take precedence.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	env := strings.ToLower(viper.GetString("APP_ENV"))

	return &Config{
		Env:                 env,
		Port:                viper.GetString("PORT"),
		DatabaseURL:         databaseURL(env),
		RedisURL:            viper.GetString("REDIS_URL"),
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
		LogLevel:            viper.GetString("LOG_LEVEL"),
		AutoMigrate:         viper.GetBool("AUTO_MIGRATE"),
	}, nil
}

// databaseURL picks the DSN for env, falling back to DATABASE_URL_DEV.
func databaseURL(env string) string {
	var url string
	switch env {
	case "production":
		url = viper.GetString("DATABASE_URL_PROD")
	case "test":
		url = viper.GetString("DATABASE_URL_TEST")
	}
	if url == "" {
		url = viper.GetString("DATABASE_URL_DEV")
	}
	return url
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
