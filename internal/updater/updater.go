// Package updater checks for a newer release, downloads it next to the
// running binary and swaps it in when the user asks for a restart.
package updater

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/atomicstack/image-sourcery/internal/logging/events"
)

// ErrNotDownloaded is returned by Apply before an update has been staged.
var ErrNotDownloaded = errors.New("no update downloaded")

// State is the update lifecycle position.
type State int

const (
	StateIdle State = iota
	StateChecking
	StateAvailable
	StateDownloaded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateChecking:
		return "checking"
	case StateAvailable:
		return "available"
	case StateDownloaded:
		return "downloaded"
	default:
		return "unknown"
	}
}

// EventKind identifies an update notification.
type EventKind int

const (
	EventAvailable EventKind = iota
	EventDownloaded
	EventError
)

// Event is published to the notifier as the lifecycle advances.
type Event struct {
	Kind    EventKind
	Version string
	Err     error
}

// Release describes a published build.
type Release struct {
	Version  string
	URL      string
	AssetURL string
}

// Source finds and fetches releases.
type Source interface {
	Latest(ctx context.Context) (Release, error)
	Download(ctx context.Context, rel Release, dst *os.File) error
}

// Installer stages and swaps executables.
type Installer interface {
	StagePath() string
	Install(staged string) error
}

// Options configures an Updater.
type Options struct {
	Current   string
	Source    Source
	Installer Installer
	Notify    func(Event)
}

// Updater drives the idle → checking → available → downloaded lifecycle.
// A failed check returns to idle and is not retried.
type Updater struct {
	opts Options

	mu       sync.Mutex
	state    State
	release  Release
	staged   string
	relaunch bool
}

// New returns an idle updater.
func New(opts Options) *Updater {
	if opts.Notify == nil {
		opts.Notify = func(Event) {}
	}
	return &Updater{opts: opts}
}

// State returns the current lifecycle state.
func (u *Updater) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Release returns the release found by the last successful check.
func (u *Updater) Release() Release {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.release
}

func (u *Updater) transition(to State) {
	u.mu.Lock()
	from := u.state
	u.state = to
	u.mu.Unlock()
	events.Update.Transition(from.String(), to.String())
}

// Check looks for a newer release and downloads it. It only runs from idle;
// calls in any other state return nil without doing anything.
func (u *Updater) Check(ctx context.Context) error {
	u.mu.Lock()
	if u.state != StateIdle {
		u.mu.Unlock()
		return nil
	}
	u.state = StateChecking
	u.mu.Unlock()
	events.Update.Transition(StateIdle.String(), StateChecking.String())

	rel, err := u.opts.Source.Latest(ctx)
	if err != nil {
		return u.fail("check", err)
	}
	newer := compareVersions(u.opts.Current, rel.Version) < 0
	events.Update.Release(u.opts.Current, rel.Version, newer)
	if !newer {
		u.transition(StateIdle)
		return nil
	}

	u.mu.Lock()
	u.release = rel
	u.mu.Unlock()
	u.transition(StateAvailable)
	u.opts.Notify(Event{Kind: EventAvailable, Version: rel.Version})

	staged, err := u.download(ctx, rel)
	if err != nil {
		return u.fail("download", err)
	}
	u.mu.Lock()
	u.staged = staged
	u.mu.Unlock()
	u.transition(StateDownloaded)
	u.opts.Notify(Event{Kind: EventDownloaded, Version: rel.Version})
	return nil
}

func (u *Updater) download(ctx context.Context, rel Release) (string, error) {
	path := u.opts.Installer.StagePath()
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o755)
	if err != nil {
		return "", fmt.Errorf("create staging file: %w", err)
	}
	if err := u.opts.Source.Download(ctx, rel, f); err != nil {
		f.Close()
		os.Remove(path)
		return "", err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("close staging file: %w", err)
	}
	return path, nil
}

func (u *Updater) fail(stage string, err error) error {
	events.Update.Error(stage, err)
	u.transition(StateIdle)
	if !errors.Is(err, context.Canceled) {
		u.opts.Notify(Event{Kind: EventError, Err: err})
	}
	return fmt.Errorf("update %s: %w", stage, err)
}

// Apply installs the staged binary. The caller is expected to exit and then
// call Relaunch.
func (u *Updater) Apply() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != StateDownloaded {
		return ErrNotDownloaded
	}
	if err := u.opts.Installer.Install(u.staged); err != nil {
		events.Update.Error("install", err)
		return err
	}
	u.relaunch = true
	return nil
}

// RelaunchPending reports whether an update was installed this run.
func (u *Updater) RelaunchPending() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.relaunch
}

// compareVersions compares two semantic version strings.
// Returns -1 if v1 < v2, 0 if equal, 1 if v1 > v2. A leading "v" and any
// suffix after a hyphen are ignored.
func compareVersions(v1, v2 string) int {
	v1 = strings.TrimPrefix(v1, "v")
	v2 = strings.TrimPrefix(v2, "v")
	if idx := strings.Index(v1, "-"); idx != -1 {
		v1 = v1[:idx]
	}
	if idx := strings.Index(v2, "-"); idx != -1 {
		v2 = v2[:idx]
	}

	parts1 := strings.Split(v1, ".")
	parts2 := strings.Split(v2, ".")
	maxLen := len(parts1)
	if len(parts2) > maxLen {
		maxLen = len(parts2)
	}
	for i := 0; i < maxLen; i++ {
		var p1, p2 int
		if i < len(parts1) {
			p1, _ = strconv.Atoi(parts1[i])
		}
		if i < len(parts2) {
			p2, _ = strconv.Atoi(parts2[i])
		}
		if p1 < p2 {
			return -1
		}
		if p1 > p2 {
			return 1
		}
	}
	return 0
}
