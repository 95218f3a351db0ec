package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

type Config struct {
	Stage        string `mapstructure:"STAGE"`
	Port         int    `mapstructure:"PORT"`
	LogLevel     string `mapstructure:"LOG_LEVEL"`
	LogPretty    bool   `mapstructure:"LOG_PRETTY"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	MigrationDir string `mapstructure:"MIGRATION_DIR"`
	SnapshotDB   string `mapstructure:"SNAPSHOT_DB"`

	BoardSize  int `mapstructure:"GAME_BOARD_SIZE"`
	ShipCount  int `mapstructure:"GAME_SHIP_COUNT"`
	ShipLength int `mapstructure:"GAME_SHIP_LENGTH"`
}

var keys = []string{
	"STAGE", "PORT", "LOG_LEVEL", "LOG_PRETTY", "DATABASE_URL", "MIGRATION_DIR", "SNAPSHOT_DB",
	"GAME_BOARD_SIZE", "GAME_SHIP_COUNT", "GAME_SHIP_LENGTH",
}

// Load reads the configuration from the environment. Outside of
// prod, variables are first loaded from the given .env files
// (".env" if none are given); missing files are not an error.
func Load(envFiles ...string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return Config{}, fmt.Errorf("failed to bind env %s: %w", key, err)
		}
	}

	if v.GetString("STAGE") != StageProd {
		if len(envFiles) == 0 {
			envFiles = []string{".env"}
		}
		if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("error reading env file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}

	if cfg.Stage != StageDev && cfg.Stage != StageProd {
		return Config{}, fmt.Errorf("invalid type of development stage: %s", cfg.Stage)
	}
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port: %d", cfg.Port)
	}
	if cfg.ShipCount < 1 {
		return Config{}, fmt.Errorf("invalid ship count: %d", cfg.ShipCount)
	}
	if cfg.ShipLength < 1 {
		return Config{}, fmt.Errorf("invalid ship length: %d", cfg.ShipLength)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("STAGE", StageDev)
	v.SetDefault("PORT", 8000)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("MIGRATION_DIR", "file://db/migration")
	v.SetDefault("SNAPSHOT_DB", "")

	v.SetDefault("GAME_BOARD_SIZE", 5)
	v.SetDefault("GAME_SHIP_COUNT", 4)
	v.SetDefault("GAME_SHIP_LENGTH", 2)
}
