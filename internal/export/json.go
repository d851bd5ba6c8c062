package export

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"github.com/sadopc/mindease/internal/board"
)

type jsonExport struct {
	ExportedAt string       `json:"exported_at"`
	Count      int          `json:"count"`
	Tasks      []board.Task `json:"tasks"`
}

// ToJSON writes tasks as an indented document to path. The file can be fed
// back through ReadImport.
func ToJSON(fs afero.Fs, path string, tasks []board.Task) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(tasks),
		Tasks:      tasks,
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
