package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Keys shared by the config file, the environment and the global flags.
const (
	KeyData     = "data"
	KeyBackend  = "backend"
	KeyDB       = "db"
	KeyLogLevel = "log_level"
)

const (
	envPrefix      = "MEALPLANNER"
	configName     = ".mealplanner" // .yaml is implicit
	configPathEnv  = "MEALPLANNER_CONFIG_PATH"
	defaultData    = "~/.mealplanner/meal_plans.json"
	defaultDB      = "~/.mealplanner/mealplanner.db"
	defaultLogLvl  = "warn"
	defaultBackend = BackendJSON
)

var (
	ErrInvalidBackend  = errors.New("invalid storage backend")
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// Config is the resolved runtime configuration.
type Config struct {
	DataPath string
	Backend  string
	DBPath   string
	LogLevel slog.Level
}

// flagKeys maps global flag names onto config keys.
var flagKeys = map[string]string{
	"data":      KeyData,
	"backend":   KeyBackend,
	"db":        KeyDB,
	"log-level": KeyLogLevel,
}

// Load resolves configuration from, in increasing precedence, defaults, a
// .mealplanner.yaml file, MEALPLANNER_* environment variables and any flags
// in flags that were set explicitly. flags may be nil.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetDefault(KeyData, defaultData)
	v.SetDefault(KeyBackend, defaultBackend)
	v.SetDefault(KeyDB, defaultDB)
	v.SetDefault(KeyLogLevel, defaultLogLvl)

	v.SetConfigName(configName)
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()

	if override := os.Getenv(configPathEnv); override != "" {
		v.AddConfigPath(override)
	}
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}
	v.AddConfigPath("./")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	return resolve(v)
}

func resolve(v *viper.Viper) (*Config, error) {
	backend := strings.ToLower(strings.TrimSpace(v.GetString(KeyBackend)))
	if backend != BackendJSON && backend != BackendSQLite {
		return nil, fmt.Errorf("%w: %q (want %s or %s)", ErrInvalidBackend, backend, BackendJSON, BackendSQLite)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(v.GetString(KeyLogLevel))); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, v.GetString(KeyLogLevel))
	}

	dataPath, err := homedir.Expand(v.GetString(KeyData))
	if err != nil {
		return nil, fmt.Errorf("expanding data path: %w", err)
	}
	dbPath, err := homedir.Expand(v.GetString(KeyDB))
	if err != nil {
		return nil, fmt.Errorf("expanding db path: %w", err)
	}

	return &Config{
		DataPath: dataPath,
		Backend:  backend,
		DBPath:   dbPath,
		LogLevel: level,
	}, nil
}
