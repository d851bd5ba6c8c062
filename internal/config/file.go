package config

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"gopkg.in/yaml.v3"
)

// ErrExists is returned by WriteFile when the target exists and force is off.
var ErrExists = errors.New("config file already exists")

// fileView is the on-disk shape; durations are written as text.
type fileView struct {
	DBPath     string `yaml:"db_path"`
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file"`
	TokenFile  string `yaml:"token_file"`
	SessionTTL string `yaml:"session_ttl"`
	Timer      Timer  `yaml:"timer"`
	Alerts     Alerts `yaml:"alerts"`
}

func (c Config) MarshalYAML() (any, error) {
	return fileView{
		DBPath:     c.DBPath,
		LogLevel:   c.LogLevel,
		LogFile:    c.LogFile,
		TokenFile:  c.TokenFile,
		SessionTTL: c.SessionTTL.String(),
		Timer:      c.Timer,
		Alerts:     c.Alerts,
	}, nil
}

// YAML renders c as a config file.
func (c Config) YAML() ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteFile writes c to path atomically.
func WriteFile(path string, c Config, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		} else if !errors.Is(err, fs.ErrNotExist) {
			return err
		}
	}
	data, err := c.YAML()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
