package main

import (
	"path/filepath"
	"testing"

	"fundmatch-backend/internal/infrastructure/database"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCmd_Subcommands(t *testing.T) {
	root := newRootCmd()
	names := []string{}
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	assert.ElementsMatch(t, []string{"serve", "migrate"}, names)
}

func TestMigrateCmd_CreatesTables(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fundmatch.db")
	t.Setenv("APP_ENV", "development")
	t.Setenv("DATABASE_URL_DEV", "sqlite://"+path)

	root := newRootCmd()
	root.SetArgs([]string{"migrate", "--log-level", "error"})
	require.NoError(t, root.Execute())

	db, err := database.Open("sqlite://" + path)
	require.NoError(t, err)
	assert.True(t, db.Migrator().HasTable("projects"))
	assert.True(t, db.Migrator().HasTable("investors"))
}

func TestServeCmd_RequiresDatabase(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DATABASE_URL_PROD", "")
	t.Setenv("DATABASE_URL_DEV", "")

	root := newRootCmd()
	root.SetArgs([]string{"serve", "--log-level", "error"})
	assert.Error(t, root.Execute())
}
