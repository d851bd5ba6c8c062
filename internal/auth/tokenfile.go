package auth

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

const tokenPerms = 0o600

// TokenFile keeps the current session token on disk between invocations.
type TokenFile struct {
	Path string
}

// DefaultTokenPath returns ~/.config/mindease/session
func DefaultTokenPath() (string, error) {
	cfg, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(cfg, "mindease", "session"), nil
}

// Read returns the stored token, or ErrUnauthenticated if there is none.
func (f TokenFile) Read() (string, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", ErrUnauthenticated
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrUnauthenticated
	}
	return token, nil
}

func (f TokenFile) Write(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return fmt.Errorf("create token directory: %w", err)
	}
	if err := atomic.WriteFile(f.Path, strings.NewReader(token+"\n")); err != nil {
		return fmt.Errorf("write token: %w", err)
	}
	// atomic.WriteFile doesn't set permissions for new files
	if err := os.Chmod(f.Path, tokenPerms); err != nil {
		return fmt.Errorf("chmod token: %w", err)
	}
	return nil
}

// Remove deletes the token file if present.
func (f TokenFile) Remove() error {
	err := os.Remove(f.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove token: %w", err)
	}
	return nil
}
