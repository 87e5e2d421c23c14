package bootstrap

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DATABASE_URL_TEST", ":memory:")
	t.Setenv("AUTO_MIGRATE", "true")
	t.Setenv("REDIS_URL", "")
	t.Setenv("LOG_LEVEL", "error")

	app, err := New()
	require.NoError(t, err)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/v1/projects", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestNew_MissingDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL_PROD", "")
	t.Setenv("DATABASE_URL_DEV", "")

	_, err := New()
	assert.Error(t, err)
}
