// Package session holds the browsing state of the sorter: which directory is
// being sorted, which file is on screen, and which classes the user defined.
// All filesystem access goes through the Host so the session itself stays a
// plain state machine driven by the UI.
package session

import (
	"encoding/base64"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/atomicstack/image-sourcery/internal/logging"
	"github.com/atomicstack/image-sourcery/internal/logging/events"
	"github.com/atomicstack/image-sourcery/internal/prefs"
)

// MaxHotkey is the highest digit the keyboard can assign.
const MaxHotkey = 9

var (
	ErrNoSource = errors.New("source directory not selected")
	ErrNoTarget = errors.New("target directory not selected")
)

// Host is the request surface the session needs from the host.
type Host interface {
	ListDir(path string) []string
	MoveFile(sourceDir, targetDir, class, file string) (int, error)
	ReadFile(dir, file string) (string, error)
}

// Store persists the subset of state that survives a restart.
type Store interface {
	Update(func(*prefs.Preferences)) error
}

// Class is a user-defined label bound to a hotkey digit.
type Class struct {
	Label string
	Digit int
	Moved int
}

// Image is the decoded content of the file on screen.
type Image struct {
	Name   string
	Format string
	Data   []byte
}

// Session is the transient browsing state.
type Session struct {
	SourceDir string
	TargetDir string
	Files     []string
	Current   int
	Classes   []Class
	Rendered  *Image

	host  Host
	store Store
}

// New creates an empty session. store may be nil, in which case nothing is
// persisted.
func New(host Host, store Store) *Session {
	return &Session{host: host, store: store}
}

// Restore seeds the session from stored preferences.
func (s *Session) Restore(p prefs.Preferences) {
	s.Classes = nil
	for _, label := range p.Classes {
		s.appendClass(label)
	}
	s.TargetDir = p.TargetDir
	s.SourceDir = p.SourceDir
	s.Files = nil
	s.Current = 0
	if s.SourceDir != "" {
		s.Files = s.host.ListDir(s.SourceDir)
		s.Current = p.Current
		s.clamp()
	}
	s.render()
	events.Session.Restore(s.SourceDir, s.TargetDir, s.Current, len(s.Classes))
}

// HasBothDirs reports whether sorting can start.
func (s *Session) HasBothDirs() bool {
	return s.SourceDir != "" && s.TargetDir != ""
}

// CurrentFile returns the file at the current index.
func (s *Session) CurrentFile() (string, bool) {
	if len(s.Files) == 0 {
		return "", false
	}
	return s.Files[s.Current], true
}

// SelectSource switches to a new source directory and shows its first entry.
func (s *Session) SelectSource(dir string) error {
	files := s.host.ListDir(dir)
	if files == nil {
		return fmt.Errorf("cannot read directory %s", dir)
	}
	s.SourceDir = dir
	s.Files = files
	s.Current = 0
	s.render()
	events.Session.SelectDir(events.DirSource, dir, len(files))
	return s.persist(func(p *prefs.Preferences) {
		p.SourceDir = dir
		p.Current = 0
	})
}

// SelectTarget sets the directory class folders are created in.
func (s *Session) SelectTarget(dir string) error {
	if s.host.ListDir(dir) == nil {
		return fmt.Errorf("cannot read directory %s", dir)
	}
	s.TargetDir = dir
	events.Session.SelectDir(events.DirTarget, dir, -1)
	return s.persist(func(p *prefs.Preferences) { p.TargetDir = dir })
}

// AddClass registers a label under the next hotkey digit. Blank labels are
// ignored.
func (s *Session) AddClass(label string) error {
	trimmed := strings.TrimSpace(label)
	if trimmed == "" {
		return nil
	}
	digit := s.appendClass(trimmed)
	events.Session.AddClass(trimmed, digit)
	return s.persist(func(p *prefs.Preferences) { p.Classes = s.labels() })
}

// ClearClasses removes every class.
func (s *Session) ClearClasses() error {
	events.Session.ClearClasses(len(s.Classes))
	s.Classes = nil
	return s.persist(func(p *prefs.Preferences) { p.Classes = nil })
}

// ClassForDigit returns the class bound to a hotkey.
func (s *Session) ClassForDigit(digit int) (Class, bool) {
	if digit < 1 || digit > MaxHotkey {
		return Class{}, false
	}
	for _, c := range s.Classes {
		if c.Digit == digit {
			return c, true
		}
	}
	return Class{}, false
}

// Next moves to the following file, wrapping to the first.
func (s *Session) Next() error {
	if len(s.Files) == 0 {
		return nil
	}
	if s.Current == len(s.Files)-1 {
		s.Current = 0
	} else {
		s.Current++
	}
	return s.afterNavigate("next")
}

// Prev moves to the preceding file, wrapping to the last.
func (s *Session) Prev() error {
	if len(s.Files) == 0 {
		return nil
	}
	if s.Current == 0 {
		s.Current = len(s.Files) - 1
	} else {
		s.Current--
	}
	return s.afterNavigate("prev")
}

func (s *Session) afterNavigate(direction string) error {
	s.render()
	file, _ := s.CurrentFile()
	events.Session.Navigate(direction, s.Current, file)
	return s.persistCurrent()
}

// Assign moves the current file into the class directory and advances to the
// file that takes its place.
func (s *Session) Assign(label string) error {
	if s.SourceDir == "" {
		return ErrNoSource
	}
	file, ok := s.CurrentFile()
	if !ok {
		return nil
	}
	if s.TargetDir == "" {
		return ErrNoTarget
	}
	if _, err := s.host.MoveFile(s.SourceDir, s.TargetDir, label, file); err != nil {
		return err
	}
	for i := range s.Classes {
		if s.Classes[i].Label == label {
			s.Classes[i].Moved++
		}
	}
	s.Files = s.host.ListDir(s.SourceDir)
	if s.Current == len(s.Files) && s.Current != 0 {
		s.Current = len(s.Files) - 1
	}
	s.clamp()
	s.render()
	events.Session.Assign(file, label, len(s.Files))
	return s.persistCurrent()
}

// AssignDigit assigns the current file to the class bound to digit. Unbound
// digits are ignored.
func (s *Session) AssignDigit(digit int) error {
	class, ok := s.ClassForDigit(digit)
	if !ok {
		return nil
	}
	return s.Assign(class.Label)
}

// Refresh re-reads the source directory after an external change. The
// rendered image is kept when the same file stays on screen.
func (s *Session) Refresh() error {
	if s.SourceDir == "" {
		return nil
	}
	before, hadFile := s.CurrentFile()
	s.Files = s.host.ListDir(s.SourceDir)
	s.clamp()
	events.Session.Refresh(len(s.Files), s.Current)
	after, ok := s.CurrentFile()
	if ok && hadFile && before == after {
		return nil
	}
	s.render()
	return s.persistCurrent()
}

// render loads the current file when it is a recognised image and clears the
// rendered content otherwise.
func (s *Session) render() {
	s.Rendered = nil
	file, ok := s.CurrentFile()
	if !ok {
		return
	}
	format, ok := ImageFormat(file)
	if !ok {
		return
	}
	encoded, err := s.host.ReadFile(s.SourceDir, file)
	if err != nil {
		logging.Error(err)
		return
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		logging.Error(fmt.Errorf("decode %s: %w", file, err))
		return
	}
	s.Rendered = &Image{Name: file, Format: format, Data: data}
}

// clamp keeps Current inside Files.
func (s *Session) clamp() {
	switch {
	case len(s.Files) == 0:
		s.Current = 0
	case s.Current >= len(s.Files):
		s.Current = len(s.Files) - 1
	case s.Current < 0:
		s.Current = 0
	}
}

func (s *Session) appendClass(label string) int {
	digit := len(s.Classes) + 1
	s.Classes = append(s.Classes, Class{Label: label, Digit: digit})
	return digit
}

func (s *Session) labels() []string {
	out := make([]string, len(s.Classes))
	for i, c := range s.Classes {
		out[i] = c.Label
	}
	return out
}

func (s *Session) persistCurrent() error {
	current := s.Current
	return s.persist(func(p *prefs.Preferences) { p.Current = current })
}

func (s *Session) persist(fn func(*prefs.Preferences)) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Update(fn); err != nil {
		events.Session.PersistError(err)
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

var imageFormats = map[string]string{
	"jpg":  "jpeg",
	"jpeg": "jpeg",
	"png":  "png",
	"gif":  "gif",
	"bmp":  "bmp",
	"webp": "webp",
	"tif":  "tiff",
	"tiff": "tiff",
}

// ImageFormat reports the image format implied by a file's extension.
func ImageFormat(name string) (string, bool) {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	format, ok := imageFormats[strings.ToLower(ext)]
	return format, ok
}
