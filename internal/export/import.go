package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/afero"
	"github.com/tailscale/hujson"

	"github.com/sadopc/mindease/internal/board"
)

// ErrEmptyImport is returned when an import file holds no tasks.
var ErrEmptyImport = errors.New("import holds no tasks")

// ParseImport decodes a task seed file. Comments and trailing commas are
// accepted. The document is either a bare array of tasks or an object with a
// "tasks" array, which is what ToJSON writes.
func ParseImport(data []byte) ([]board.CreateInput, error) {
	std, err := hujson.Standardize(data)
	if err != nil {
		return nil, fmt.Errorf("parse import: %w", err)
	}
	std = bytes.TrimSpace(std)

	var inputs []board.CreateInput
	if len(std) > 0 && std[0] == '[' {
		err = json.Unmarshal(std, &inputs)
	} else {
		var doc struct {
			Tasks []board.CreateInput `json:"tasks"`
		}
		err = json.Unmarshal(std, &doc)
		inputs = doc.Tasks
	}
	if err != nil {
		return nil, fmt.Errorf("decode import: %w", err)
	}
	if len(inputs) == 0 {
		return nil, ErrEmptyImport
	}
	return inputs, nil
}

// ReadImport reads and decodes the seed file at path.
func ReadImport(fs afero.Fs, path string) ([]board.CreateInput, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read import: %w", err)
	}
	return ParseImport(data)
}
