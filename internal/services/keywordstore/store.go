// Package keywordstore persists every user's keyword list as one JSON document.
package keywordstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Store loads and saves the whole registry. There is no per-user transaction: every
// save rewrites the full document and the last writer wins.
type Store interface {
	Load(ctx context.Context) *Registry
	Save(ctx context.Context, reg *Registry) error
}

var _ Store = (*FileStore)(nil)

// FileStore keeps the registry in a single human readable JSON file.
type FileStore struct {
	path string
	mu   sync.Mutex
}

// NewFileStore creates a FileStore backed by path. The file is created on first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the registry. A missing, empty or unparsable file yields an empty registry;
// the failure is logged and never returned.
func (s *FileStore) Load(ctx context.Context) *Registry {
	s.mu.Lock()
	defer s.mu.Unlock()

	logger := zerolog.Ctx(ctx)
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.Warn().Err(err).Str("path", s.path).Msg("failed to read keyword store; starting empty")
		}
		return NewRegistry()
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return NewRegistry()
	}

	reg := NewRegistry()
	if err := json.Unmarshal(data, reg); err != nil {
		logger.Warn().Err(err).Str("path", s.path).Msg("keyword store is corrupt; starting empty")
		return NewRegistry()
	}
	return reg
}

// Save replaces the file with reg. The write goes to a temp file that is renamed over the
// target, so readers never observe a partially written document.
func (s *FileStore) Save(ctx context.Context, reg *Registry) error {
	data, err := encodeRegistry(reg)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := writeFileAtomic(s.path, data); err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("path", s.path).Int("users", reg.Len()).Msg("keyword store saved")
	return nil
}

func encodeRegistry(reg *Registry) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(reg); err != nil {
		return nil, fmt.Errorf("failed to encode keyword registry: %w", err)
	}
	return buf.Bytes(), nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("failed to ensure dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := tmp.Write(data); err != nil {
		return fmt.Errorf("failed to write temp file for %s: %w", path, err)
	}
	if err := tmp.Chmod(filePerm); err != nil {
		return fmt.Errorf("failed to chmod temp file for %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
