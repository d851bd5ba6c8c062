package store

import (
	"context"

	"github.com/sadopc/mindease/internal/cognitive"
	"github.com/sadopc/mindease/internal/pomodoro"
)

const (
	prefsCollection    = "cognitivePreferences"
	settingsCollection = "settings"
	mainDoc            = "main"
	timerDoc           = "timer"
)

// LoadPreferences reports false when the user never saved preferences.
func (s *Store) LoadPreferences(ctx context.Context, userID string) (cognitive.Preferences, bool, error) {
	var p cognitive.Preferences
	ok, err := s.getJSON(ctx, userID, prefsCollection, mainDoc, &p)
	return p, ok, err
}

func (s *Store) SavePreferences(ctx context.Context, userID string, p cognitive.Preferences) error {
	return s.PutDocument(ctx, userID, prefsCollection, mainDoc, p)
}

// LoadTimerSettings reports false when the user never changed the timer.
func (s *Store) LoadTimerSettings(ctx context.Context, userID string) (pomodoro.Config, bool, error) {
	var cfg pomodoro.Config
	ok, err := s.getJSON(ctx, userID, settingsCollection, timerDoc, &cfg)
	return cfg, ok, err
}

func (s *Store) SaveTimerSettings(ctx context.Context, userID string, cfg pomodoro.Config) error {
	return s.PutDocument(ctx, userID, settingsCollection, timerDoc, cfg)
}
