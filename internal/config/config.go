package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

const (
	ModeAsk    = ""
	ModeSingle = "single"
	ModeTwo    = "two"
)

var (
	ErrUnknownMode      = errors.New("unknown game mode")
	ErrNegativeDuration = errors.New("duration must not be negative")
)

type Config struct {
	LogLevel string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	LogFile  string `yaml:"log-file" env:"LOG_FILE" env-default:"tictactoe.log"`
	Game     Game   `yaml:"game"`
}

type Game struct {
	// Mode skips the home menu when set to "single" or "two".
	Mode              string        `yaml:"mode" env:"GAME_MODE"`
	PlayerOneSymbol   string        `yaml:"player-one-symbol" env:"GAME_PLAYER_ONE_SYMBOL" env-default:"X"`
	ComputerFirst     bool          `yaml:"computer-first" env:"GAME_COMPUTER_FIRST"`
	ComputerThinkTime time.Duration `yaml:"computer-think-time" env:"GAME_COMPUTER_THINK_TIME" env-default:"1s"`
}

// MustLoad - load all configurations from the config file, .env and the environment.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads path when it exists, otherwise only the environment.
// A .env file in the working directory is applied first.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	config := &Config{}

	if _, err := os.Stat(path); err == nil {
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	} else {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	}

	if err := config.Game.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Game) Validate() error {
	switch that.Mode {
	case ModeAsk, ModeSingle, ModeTwo:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMode, that.Mode)
	}

	if that.ComputerThinkTime < 0 {
		return fmt.Errorf("%w: computer-think-time %s", ErrNegativeDuration, that.ComputerThinkTime)
	}

	return nil
}
