package jsonstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/idilsaglam/tada/internal/model"
)

// Read-only JSON seed. The file holds the same array shape the remote
// endpoint serves. Nothing is ever written back.

// Defaults is the list used when no seed file is configured.
func Defaults() []model.Item {
	return []model.Item{
		{ID: 0, Title: "Buy milk", Completed: true},
		{ID: 1, Title: "Write the weekly report"},
		{ID: 2, Title: "Call the plumber"},
	}
}

// Load reads the seed at path. An empty path, or a file that does not
// exist, yields Defaults.
func Load(path string) ([]model.Item, error) {
	if path == "" {
		return Defaults(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Defaults(), nil
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	var items []model.Item
	if err := json.Unmarshal(b, &items); err != nil {
		return nil, fmt.Errorf("json unmarshal: %w", err)
	}
	if err := model.ValidateIDs(items); err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return items, nil
}
