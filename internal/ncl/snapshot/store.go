// Package snapshot persists the last-observed quote as a small JSON file,
// the only state carried across cycles.
package snapshot

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"cruisewatch/pkg/price"
)

// Store reads and writes one quote at a fixed path. A single sequential
// loop owns it, so there is no locking.
type Store struct {
	path   string
	logger *zap.Logger
}

func New(path string, logger *zap.Logger) *Store {
	return &Store{path: path, logger: logger}
}

// Load returns the stored quote, or nil when there is no usable prior
// data. A missing file and an unreadable one are treated alike: the next
// observation will look like the first.
func (s *Store) Load() *price.Quote {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.logger.Warn("could not read last price file",
				zap.String("path", s.path), zap.Error(err))
		}
		return nil
	}

	var q price.Quote
	if err := json.Unmarshal(data, &q); err != nil {
		s.logger.Warn("last price file is malformed, ignoring",
			zap.String("path", s.path), zap.Error(err))
		return nil
	}
	return &q
}

// Save writes the quote via a temp file and rename, creating parent
// directories as needed. Failures are logged and swallowed so a bad disk
// never kills a cycle.
func (s *Store) Save(q price.Quote) {
	data, err := json.Marshal(q)
	if err != nil {
		s.logger.Warn("could not encode quote", zap.Error(err))
		return
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		s.logger.Warn("could not create snapshot directory",
			zap.String("dir", dir), zap.Error(err))
		return
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		s.logger.Warn("could not write last price file",
			zap.String("path", tmp), zap.Error(err))
		return
	}
	if err := os.Rename(tmp, s.path); err != nil {
		s.logger.Warn("could not replace last price file",
			zap.String("path", s.path), zap.Error(err))
	}
}
