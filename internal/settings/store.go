// Package settings persists the reminder preference as a small JSON file.
package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adhocore/gronx"
	"github.com/spf13/afero"

	"github.com/pathakanu/dailychime/internal/model"
)

// ErrNotFound is returned by Load when no settings file exists yet.
var ErrNotFound = errors.New("settings not found")

// ReadError reports a settings file that exists but cannot be used.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("read settings %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// WriteError reports a failure to persist settings.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write settings %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Store reads and writes the settings file on an afero filesystem.
type Store struct {
	fs   afero.Fs
	path string
}

// New returns a Store for path on fs. A nil fs means the OS filesystem.
func New(fs afero.Fs, path string) *Store {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Store{fs: fs, path: path}
}

// Path returns the settings file location.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored configuration. A missing file yields ErrNotFound;
// unreadable, malformed or incomplete content yields a *ReadError.
func (s *Store) Load() (model.ReminderConfig, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return model.ReminderConfig{}, ErrNotFound
		}
		return model.ReminderConfig{}, &ReadError{Path: s.path, Err: err}
	}

	var cfg model.ReminderConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return model.ReminderConfig{}, &ReadError{Path: s.path, Err: err}
	}
	cfg.CronExpression = strings.TrimSpace(cfg.CronExpression)
	if cfg.CronExpression == "" {
		return model.ReminderConfig{}, &ReadError{Path: s.path, Err: errors.New("missing cronExpression")}
	}
	if !gronx.IsValid(cfg.CronExpression) {
		return model.ReminderConfig{}, &ReadError{Path: s.path, Err: fmt.Errorf("invalid cronExpression %q", cfg.CronExpression)}
	}
	return cfg, nil
}

// LoadOrDefault behaves like Load but substitutes the default configuration
// for a corrupt file. The returned error is ErrNotFound, a *ReadError that
// was recovered from, or nil.
func (s *Store) LoadOrDefault() (model.ReminderConfig, error) {
	cfg, err := s.Load()
	var readErr *ReadError
	if errors.As(err, &readErr) {
		return model.DefaultReminderConfig(), err
	}
	return cfg, err
}

// Save replaces the settings file with cfg.
func (s *Store) Save(cfg model.ReminderConfig) error {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return &WriteError{Path: s.path, Err: err}
	}

	tmp, err := afero.TempFile(s.fs, dir, ".settings-*.json")
	if err != nil {
		return &WriteError{Path: s.path, Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(append(data, '\n')); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	if err := s.fs.Rename(tmpName, s.path); err != nil {
		_ = s.fs.Remove(tmpName)
		return &WriteError{Path: s.path, Err: err}
	}
	return nil
}
