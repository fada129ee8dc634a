// Package corpus persists inputs of failed rounds so they can be replayed
// after the stress run finishes. Inputs are stored zstd-compressed under
// random names; megabytes of generated text compress very well.
package corpus

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
)

// Store writes round inputs into a single directory.
type Store struct {
	dir string
}

// New creates the corpus directory if needed.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create corpus directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// SaveInput stores input under a fresh name and returns the file path.
func (s *Store) SaveInput(input string) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString()+".zst")

	file, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create corpus file: %w", err)
	}
	defer file.Close()

	enc, err := zstd.NewWriter(file)
	if err != nil {
		return "", fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if _, err := io.Copy(enc, strings.NewReader(input)); err != nil {
		enc.Close()
		return "", fmt.Errorf("failed to write corpus file %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("failed to finish corpus file %s: %w", path, err)
	}

	return path, nil
}

// ReadInput loads an input previously stored with SaveInput.
func ReadInput(path string) (string, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open corpus file: %w", err)
	}
	defer file.Close()

	dec, err := zstd.NewReader(file)
	if err != nil {
		return "", fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	data, err := io.ReadAll(dec)
	if err != nil {
		return "", fmt.Errorf("failed to read corpus file %s: %w", path, err)
	}
	return string(data), nil
}
