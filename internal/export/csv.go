package export

import (
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/afero"

	"github.com/sadopc/mindease/internal/board"
	"github.com/sadopc/mindease/internal/store"
)

var taskHeader = []string{"ID", "Title", "Status", "Priority", "Checklist", "Created", "Updated", "Description"}

// ToCSV writes tasks to path, one row per task in the given order.
func ToCSV(fs afero.Fs, path string, tasks []board.Task) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(taskHeader); err != nil {
		return err
	}

	for _, t := range tasks {
		progress := ""
		if done, total := board.ChecklistProgress(t.Checklist); total > 0 {
			progress = fmt.Sprintf("%d/%d", done, total)
		}
		row := []string{
			t.ID,
			t.Title,
			string(t.Status),
			string(t.Priority),
			progress,
			t.CreatedAt.Local().Format(time.RFC3339),
			t.UpdatedAt.Local().Format(time.RFC3339),
			t.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// FocusCSV writes a per-day focus summary to path.
func FocusCSV(fs afero.Fs, path string, days []store.DailyFocus) error {
	f, err := fs.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"Date", "Cycles", "Focus (s)", "Focus"}); err != nil {
		return err
	}
	for _, d := range days {
		row := []string{
			d.Date,
			strconv.Itoa(d.Cycles),
			strconv.FormatInt(d.TotalSeconds, 10),
			FormatDuration(d.TotalSeconds),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// FormatDuration renders seconds as HH:MM:SS.
func FormatDuration(secs int64) string {
	h := secs / 3600
	m := (secs % 3600) / 60
	s := secs % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
