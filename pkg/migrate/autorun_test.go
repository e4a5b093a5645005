package migrate_test

import (
	"context"
	"io"
	"path/filepath"
	"testing"

	"github.com/AhmedKettaf/inilapstore/pkg/config"
	"github.com/AhmedKettaf/inilapstore/pkg/db"
	"github.com/AhmedKettaf/inilapstore/pkg/logger"
	"github.com/AhmedKettaf/inilapstore/pkg/migrate"
)

func newAutorunFixture(t *testing.T, flags config.FeatureFlagsConfig) (*config.Config, *db.Client) {
	t.Helper()
	cfg := &config.Config{
		App:          config.AppConfig{Env: config.AppEnvDev},
		FeatureFlags: flags,
	}
	client, err := db.New(context.Background(), config.DBConfig{}, flags, nil)
	if err != nil {
		t.Fatalf("open sqlite client: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return cfg, client
}

func discardLogger() *logger.Logger {
	return logger.New(logger.Options{
		ServiceName: "migrate-test",
		Level:       logger.ParseLevel("debug"),
		Output:      io.Discard,
	})
}

func TestMaybeRunDevInstallsSQLiteSchema(t *testing.T) {
	flags := config.FeatureFlagsConfig{
		UseSQLite:   true,
		SQLitePath:  filepath.Join(t.TempDir(), "autorun.db"),
		AutoMigrate: true,
	}
	cfg, client := newAutorunFixture(t, flags)

	if err := migrate.MaybeRunDev(context.Background(), cfg, discardLogger(), client); err != nil {
		t.Fatalf("dev auto-run: %v", err)
	}

	for _, table := range []string{"products", "pc_parts", "orders", "users"} {
		if !client.DB().Migrator().HasTable(table) {
			t.Fatalf("expected table %q after auto-run", table)
		}
	}
}

func TestMaybeRunDevSkipsWhenFlagDisabled(t *testing.T) {
	flags := config.FeatureFlagsConfig{
		UseSQLite:  true,
		SQLitePath: filepath.Join(t.TempDir(), "skip.db"),
	}
	cfg, client := newAutorunFixture(t, flags)

	if err := migrate.MaybeRunDev(context.Background(), cfg, discardLogger(), client); err != nil {
		t.Fatalf("dev auto-run: %v", err)
	}
	if client.DB().Migrator().HasTable("products") {
		t.Fatal("schema should not install when the flag is off")
	}
}
