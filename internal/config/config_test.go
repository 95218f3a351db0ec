package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STAGE", "dev")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, StageDev, cfg.Stage)
	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "file://db/migration", cfg.MigrationDir)
	assert.Empty(t, cfg.DatabaseURL)
	assert.Equal(t, 5, cfg.BoardSize)
	assert.Equal(t, 4, cfg.ShipCount)
	assert.Equal(t, 2, cfg.ShipLength)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("STAGE", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("GAME_SHIP_COUNT", "3")
	t.Setenv("DATABASE_URL", "postgres://localhost/battleship")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, StageProd, cfg.Stage)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, 3, cfg.ShipCount)
	assert.Equal(t, "postgres://localhost/battleship", cfg.DatabaseURL)
}

func TestLoadFromEnvFile(t *testing.T) {
	t.Setenv("STAGE", "dev")
	// godotenv never overrides variables that are already set, so
	// register cleanup for the ones the file introduces.
	t.Setenv("LOG_LEVEL", "")
	os.Unsetenv("LOG_LEVEL")
	t.Setenv("GAME_SHIP_LENGTH", "")
	os.Unsetenv("GAME_SHIP_LENGTH")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\nGAME_SHIP_LENGTH=3\n"), 0o600))

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.ShipLength)
}

func TestLoadInvalid(t *testing.T) {
	t.Run("stage", func(t *testing.T) {
		t.Setenv("STAGE", "staging")
		_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
		assert.ErrorContains(t, err, "development stage")
	})

	t.Run("port", func(t *testing.T) {
		t.Setenv("STAGE", "prod")
		t.Setenv("PORT", "70000")
		_, err := Load()
		assert.ErrorContains(t, err, "invalid port")
	})

	t.Run("ship count", func(t *testing.T) {
		t.Setenv("STAGE", "prod")
		t.Setenv("GAME_SHIP_COUNT", "0")
		_, err := Load()
		assert.ErrorContains(t, err, "invalid ship count")
	})

	t.Run("ship length", func(t *testing.T) {
		t.Setenv("STAGE", "prod")
		t.Setenv("GAME_SHIP_LENGTH", "-2")
		_, err := Load()
		assert.ErrorContains(t, err, "invalid ship length")
	})
}
