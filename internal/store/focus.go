package store

import (
	"context"
	"fmt"
	"time"
)

// RecordFocusCycle logs a completed focus phase.
func (s *Store) RecordFocusCycle(ctx context.Context, c FocusCycle) (*FocusCycle, error) {
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}
	c.CompletedAt = c.CompletedAt.UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO focus_cycles (user_id, seconds, cycle, completed_at) VALUES (?, ?, ?, ?)`,
		c.UserID, c.Seconds, c.Cycle, c.CompletedAt.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("record focus cycle: %w", err)
	}
	c.ID, _ = res.LastInsertId()
	return &c, nil
}

// DailyFocusSummary aggregates focus cycles per UTC day in [from, to).
func (s *Store) DailyFocusSummary(ctx context.Context, userID string, from, to time.Time) ([]DailyFocus, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT date(completed_at) AS day, COUNT(*), COALESCE(SUM(seconds), 0)
		FROM focus_cycles
		WHERE user_id = ?
		  AND completed_at >= ? AND completed_at < ?
		GROUP BY day
		ORDER BY day`,
		userID, from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily focus summary: %w", err)
	}
	defer rows.Close()

	var summaries []DailyFocus
	for rows.Next() {
		var d DailyFocus
		if err := rows.Scan(&d.Date, &d.Cycles, &d.TotalSeconds); err != nil {
			return nil, err
		}
		summaries = append(summaries, d)
	}
	return summaries, rows.Err()
}

// FocusCyclesToday counts the user's focus cycles completed today (UTC).
func (s *Store) FocusCyclesToday(ctx context.Context, userID string) (int, error) {
	today := time.Now().UTC().Format("2006-01-02")
	var n int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM focus_cycles WHERE user_id = ? AND date(completed_at) = ?`,
		userID, today,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("focus cycles today: %w", err)
	}
	return n, nil
}
