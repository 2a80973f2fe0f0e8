// Package apptest builds a fully wired Application on a throwaway sqlite
// database for handler tests.
package apptest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/talkincode/toughshop/config"
	"github.com/talkincode/toughshop/internal/app"
)

// New returns a migrated, seeded application. opts may adjust the config
// before services are built.
func New(t testing.TB, opts ...func(*config.AppConfig)) *app.Application {
	t.Helper()

	cfg := config.DefaultAppConfig()
	cfg.System.Workdir = t.TempDir()
	cfg.System.Debug = false
	cfg.Logger.FileEnable = false
	for _, opt := range opts {
		opt(cfg)
	}

	db, err := gorm.Open(sqlite.Open(filepath.Join(cfg.System.Workdir, "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	a := app.NewApplication(cfg)
	a.OverrideDB(db)
	require.NoError(t, a.MigrateDB(false))
	require.NoError(t, a.InitServices())
	return a
}
