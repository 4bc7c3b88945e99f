package synthetic

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const directoryPermission = 0o750

// Save writes h as indented JSON to path, creating parent directories.
func Save(path string, h History) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, directoryPermission); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}
	data, err := json.MarshalIndent(h, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// Load reads a history written by Save. A bare JSON array of sets is
// accepted as well.
func Load(path string) (History, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return History{}, fmt.Errorf("read %s: %w", path, err)
	}
	var h History
	if err := json.Unmarshal(data, &h); err == nil {
		return h, nil
	}
	if err := json.Unmarshal(data, &h.Sets); err != nil {
		return History{}, fmt.Errorf("decode %s: %w", path, err)
	}
	return h, nil
}
