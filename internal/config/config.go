// Package config loads mindease settings from a YAML file, a .env file and
// MINDEASE_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/sadopc/mindease/internal/pomodoro"
)

const (
	configName = "config"
	envPrefix  = "MINDEASE"
)

type Timer struct {
	FocusMinutes         float64 `mapstructure:"focus_minutes" yaml:"focus_minutes" validate:"gt=0,lte=240"`
	ShortBreakMinutes    float64 `mapstructure:"short_break_minutes" yaml:"short_break_minutes" validate:"gt=0,lte=120"`
	LongBreakMinutes     float64 `mapstructure:"long_break_minutes" yaml:"long_break_minutes" validate:"gt=0,lte=240"`
	CyclesUntilLongBreak int     `mapstructure:"cycles_until_long_break" yaml:"cycles_until_long_break" validate:"gte=1,lte=12"`
}

type Alerts struct {
	SnoozeMinutes int    `mapstructure:"snooze_minutes" yaml:"snooze_minutes" validate:"gte=1,lte=120"`
	Message       string `mapstructure:"message" yaml:"message" validate:"required"`
}

type Config struct {
	DBPath     string        `mapstructure:"db_path" validate:"required"`
	LogLevel   string        `mapstructure:"log_level" validate:"oneof=debug info warn error"`
	LogFile    string        `mapstructure:"log_file"`
	TokenFile  string        `mapstructure:"token_file" validate:"required"`
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"gt=0"`
	Timer      Timer         `mapstructure:"timer"`
	Alerts     Alerts        `mapstructure:"alerts"`
}

// Pomodoro returns the timer defaults as an engine configuration.
func (c Config) Pomodoro() pomodoro.Config {
	return pomodoro.Config{
		FocusMinutes:         c.Timer.FocusMinutes,
		ShortBreakMinutes:    c.Timer.ShortBreakMinutes,
		LongBreakMinutes:     c.Timer.LongBreakMinutes,
		CyclesUntilLongBreak: c.Timer.CyclesUntilLongBreak,
	}
}

func (c Config) SnoozeDuration() time.Duration {
	return time.Duration(c.Alerts.SnoozeMinutes) * time.Minute
}

// validate is a single instance, it caches struct info
var validate = validator.New()

func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			fe := verrs[0]
			return fmt.Errorf("invalid config: %s failed %s %s", fe.Namespace(), fe.Tag(), fe.Param())
		}
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// Dir returns ~/.config/mindease
func Dir() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "mindease"), nil
}

// DefaultPath returns ~/.config/mindease/config.yaml
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, configName+".yaml"), nil
}

func setDefaults(v *viper.Viper, dir string) {
	v.SetDefault("db_path", filepath.Join(dir, "mindease.db"))
	v.SetDefault("log_level", "info")
	v.SetDefault("log_file", filepath.Join(dir, "mindease.log"))
	v.SetDefault("token_file", filepath.Join(dir, "session"))
	v.SetDefault("session_ttl", 24*time.Hour)

	d := pomodoro.DefaultConfig()
	v.SetDefault("timer.focus_minutes", d.FocusMinutes)
	v.SetDefault("timer.short_break_minutes", d.ShortBreakMinutes)
	v.SetDefault("timer.long_break_minutes", d.LongBreakMinutes)
	v.SetDefault("timer.cycles_until_long_break", d.CyclesUntilLongBreak)

	v.SetDefault("alerts.snooze_minutes", 5)
	v.SetDefault("alerts.message", "You have been at this for a while. How about a short pause?")
}

// Options controls where Load looks.
type Options struct {
	// File is an explicit config file. It must exist when set.
	File string
	// Dir holds config.yaml and the default data paths. Empty means Dir().
	Dir string
	// EnvFile is loaded into the environment if present. Empty means ".env".
	EnvFile string
}

// Manager owns the loaded configuration and reloads it when the file changes.
type Manager struct {
	v   *viper.Viper
	mu  sync.RWMutex
	cfg Config
}

// Load reads configuration. A missing config file is fine; a malformed one
// or an invalid result is an error.
func Load(opts Options) (*Manager, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	dir := opts.Dir
	if dir == "" {
		var err error
		if dir, err = Dir(); err != nil {
			return nil, fmt.Errorf("config dir: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v, dir)

	if opts.File != "" {
		v.SetConfigFile(opts.File)
	} else {
		v.AddConfigPath(dir)
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.File != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	m := &Manager{v: v}
	cfg, err := m.decode()
	if err != nil {
		return nil, err
	}
	m.cfg = cfg
	return m, nil
}

func (m *Manager) decode() (Config, error) {
	var cfg Config
	if err := m.v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (m *Manager) Config() Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.cfg
}

// FileUsed returns the config file read, or "" when running on defaults.
func (m *Manager) FileUsed() string {
	return m.v.ConfigFileUsed()
}

// Watch reloads the configuration whenever the file changes and calls
// onChange with the new value. Invalid edits are reported to onError and
// the previous configuration stays in effect. Watch does nothing when no
// file was read.
func (m *Manager) Watch(onChange func(Config), onError func(error)) {
	if m.FileUsed() == "" {
		return
	}
	m.v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := m.decode()
		if err != nil {
			if onError != nil {
				onError(err)
			}
			return
		}
		m.mu.Lock()
		m.cfg = cfg
		m.mu.Unlock()
		if onChange != nil {
			onChange(cfg)
		}
	})
	m.v.WatchConfig()
}
