// Package prefs persists the user's browsing preferences between runs. The
// record lives in a single TOML document that is re-read and rewritten in full
// on every change; keys this version does not know about are carried over.
package prefs

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

const (
	keySourceDir = "sourceDir"
	keyTargetDir = "targetDir"
	keyCurrent   = "current"
	keyClasses   = "classes"

	appDirName  = "image-sourcery"
	defaultName = "preferences.toml"
)

// Preferences is the persisted subset of session state.
type Preferences struct {
	SourceDir string
	TargetDir string
	Current   int
	Classes   []string
}

// Store reads and writes the preferences file.
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultPath returns preferences.toml under the user's config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, appDirName, defaultName), nil
}

// NewStore returns a store backed by path. The file is created on first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored preferences. A missing or unparsable file yields
// defaults; fields with the wrong type fall back to their zero value.
func (s *Store) Load() (Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.readRaw()
	if err != nil {
		return Preferences{}, err
	}
	return fromRaw(raw), nil
}

// Update applies fn to the stored record and writes it back, preserving
// unknown keys. Concurrent writers are not detected; the last write wins.
func (s *Store) Update(fn func(*Preferences)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	raw, err := s.readRaw()
	if err != nil {
		return err
	}
	p := fromRaw(raw)
	fn(&p)
	raw[keySourceDir] = p.SourceDir
	raw[keyTargetDir] = p.TargetDir
	raw[keyCurrent] = int64(p.Current)
	classes := make([]string, len(p.Classes))
	copy(classes, p.Classes)
	raw[keyClasses] = classes
	return s.writeRaw(raw)
}

// readRaw returns the document as a generic map. Callers must hold s.mu.
func (s *Store) readRaw() (map[string]interface{}, error) {
	raw := map[string]interface{}{}
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return raw, nil
		}
		return nil, fmt.Errorf("read preferences: %w", err)
	}
	if _, err := toml.Decode(string(data), &raw); err != nil {
		return map[string]interface{}{}, nil
	}
	return raw, nil
}

func (s *Store) writeRaw(raw map[string]interface{}) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create preferences directory: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(raw); err != nil {
		return fmt.Errorf("encode preferences: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write preferences: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("rename preferences: %w", err)
	}
	return nil
}

func fromRaw(raw map[string]interface{}) Preferences {
	var p Preferences
	if v, ok := raw[keySourceDir].(string); ok {
		p.SourceDir = v
	}
	if v, ok := raw[keyTargetDir].(string); ok {
		p.TargetDir = v
	}
	if v, ok := raw[keyCurrent].(int64); ok && v >= 0 {
		p.Current = int(v)
	}
	if list, ok := raw[keyClasses].([]interface{}); ok {
		for _, item := range list {
			if label, ok := item.(string); ok {
				p.Classes = append(p.Classes, label)
			}
		}
	}
	return p
}
