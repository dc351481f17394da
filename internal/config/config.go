package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageRedis  = "redis"
	StorageSQLite = "sqlite"
	StorageMemory = "memory"
)

type Config struct {
	LogLevel          string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort          string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	BoardSize         int    `yaml:"board-size" env:"BOARD_SIZE" env-default:"3"`
	MaxBoardSize      int    `yaml:"max-board-size" env:"MAX_BOARD_SIZE" env-default:"20"`
	Storage           string `yaml:"storage" env:"STORAGE" env-default:"redis"`
	Redis             Redis  `yaml:"redis"`
	SQLiteStoragePath string `yaml:"sqlite-storage-path" env:"SQLITE_STORAGE_PATH" env-default:"tictactoe.db"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads the yml file at path, then applies environment overrides and defaults.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	switch config.Storage {
	case StorageRedis, StorageSQLite, StorageMemory:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownStorage, config.Storage)
	}

	if config.BoardSize > config.MaxBoardSize {
		return nil, fmt.Errorf("%w: %d > %d", ErrInvalidBoardSize, config.BoardSize, config.MaxBoardSize)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
