package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/idilsaglam/tada/internal/fetch"
	"github.com/idilsaglam/tada/internal/todos"
)

// Config holds application configuration.
type Config struct {
	Fetch FetchConfig
	Todos TodosConfig
	UI    UIConfig
	Log   LogConfig
}

// FetchConfig controls the single remote read.
type FetchConfig struct {
	URL       string
	Timeout   time.Duration // 0 means none
	UserAgent string        `mapstructure:"user_agent"`
}

// TodosConfig controls seeding of the list.
type TodosConfig struct {
	IDFloor  int    `mapstructure:"id_floor"`
	SeedFile string `mapstructure:"seed_file"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	Theme string
	Group bool
}

// LogConfig selects level and destination. An empty File means stderr for
// non-interactive commands and nowhere for the TUI.
type LogConfig struct {
	Level string
	File  string
}

// New returns a viper instance with defaults, file lookup and env overrides
// set up. Env var overrides use prefix TADA_ (TADA_FETCH_URL, ...).
func New() *viper.Viper {
	v := viper.New()

	v.SetDefault("fetch.url", fetch.DefaultURL)
	v.SetDefault("fetch.timeout", time.Duration(0))
	v.SetDefault("fetch.user_agent", "tada")
	v.SetDefault("todos.id_floor", todos.DefaultIDFloor)
	v.SetDefault("todos.seed_file", "")
	v.SetDefault("ui.theme", "classic")
	v.SetDefault("ui.group", false)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.file", "")

	v.SetConfigType("toml")
	if p := os.Getenv("TADA_CONFIG"); p != "" {
		v.SetConfigFile(p)
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "tada"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("TADA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if present, and decodes v.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		// only an explicitly named file is required to exist
		var notFound viper.ConfigFileNotFoundError
		if os.Getenv("TADA_CONFIG") != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.Todos.IDFloor < 0 {
		return Config{}, fmt.Errorf("todos.id_floor must be >= 0, got %d", c.Todos.IDFloor)
	}
	return c, nil
}
