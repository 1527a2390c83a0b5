package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/atomicstack/image-sourcery/internal/backend"
	"github.com/atomicstack/image-sourcery/internal/host"
	"github.com/atomicstack/image-sourcery/internal/logging"
	"github.com/atomicstack/image-sourcery/internal/prefs"
	"github.com/atomicstack/image-sourcery/internal/session"
	"github.com/atomicstack/image-sourcery/internal/ui"
	"github.com/atomicstack/image-sourcery/internal/updater"
	"github.com/atomicstack/image-sourcery/internal/version"
)

const watchInterval = 500 * time.Millisecond

// Config describes user-provided application options.
type Config struct {
	SourceDir     string
	TargetDir     string
	PrefsFile     string
	Width         int
	Height        int
	ShowFooter    bool
	UpdateURL     string
	UpdateRetries int
	NoUpdate      bool
}

// Run bootstraps the host and executes the Bubble Tea program. When an update
// was installed during the session the new binary replaces this process once
// the program has exited.
func Run(cfg Config) error {
	store, err := openStore(cfg.PrefsFile)
	if err != nil {
		return err
	}

	h := host.New(version.Version)
	upd, installer := newUpdater(cfg, h)
	if upd != nil {
		h.SetUpdates(upd)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return h.Serve(gctx) })

	sess := restoreSession(cfg, h.Client(), store)

	watcher, err := backend.NewWatcher(watchInterval)
	if err != nil {
		logging.Error(err)
	}

	model := ui.NewModel(ui.Options{
		Width:      cfg.Width,
		Height:     cfg.Height,
		ShowFooter: cfg.ShowFooter,
		Host:       h.Client(),
		Session:    sess,
		Notes:      h.Events(),
		Watcher:    watcher,
	})
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(gctx))

	g.Go(func() error {
		defer cancel()
		if watcher != nil {
			defer watcher.Stop()
		}
		_, err := program.Run()
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return err
	})

	if err := g.Wait(); err != nil {
		return err
	}
	if watcher != nil {
		watcher.Wait()
	}

	if upd != nil && upd.RelaunchPending() {
		return installer.Relaunch(os.Args[1:])
	}
	return nil
}

func openStore(path string) (*prefs.Store, error) {
	if path == "" {
		def, err := prefs.DefaultPath()
		if err != nil {
			return nil, err
		}
		path = def
	}
	return prefs.NewStore(path), nil
}

// restoreSession loads saved preferences and applies directories given on
// the command line on top of them.
func restoreSession(cfg Config, client session.Host, store *prefs.Store) *session.Session {
	saved, err := store.Load()
	if err != nil {
		logging.Error(err)
	}
	sess := session.New(client, store)
	sess.Restore(saved)
	if cfg.SourceDir != "" && cfg.SourceDir != sess.SourceDir {
		if err := sess.SelectSource(cfg.SourceDir); err != nil {
			logging.Error(err)
		}
	}
	if cfg.TargetDir != "" && cfg.TargetDir != sess.TargetDir {
		if err := sess.SelectTarget(cfg.TargetDir); err != nil {
			logging.Error(err)
		}
	}
	return sess
}

// newUpdater wires the release checker to the host's notification channel.
// It returns nil when updates are disabled or the executable cannot be
// located.
func newUpdater(cfg Config, h *host.Host) (*updater.Updater, *updater.BinaryInstaller) {
	if cfg.NoUpdate || cfg.UpdateURL == "" {
		return nil, nil
	}
	installer, err := updater.NewBinaryInstaller()
	if err != nil {
		logging.Error(fmt.Errorf("disable updates: %w", err))
		return nil, nil
	}
	source := updater.NewGitHubSource(cfg.UpdateURL, "image-sourcery/"+version.Version, cfg.UpdateRetries)
	upd := updater.New(updater.Options{
		Current:   version.Version,
		Source:    source,
		Installer: installer,
		Notify:    func(evt updater.Event) { h.Notify(noteFor(evt)) },
	})
	return upd, installer
}

func noteFor(evt updater.Event) host.Notification {
	note := host.Notification{Version: evt.Version, Err: evt.Err}
	switch evt.Kind {
	case updater.EventAvailable:
		note.Kind = host.NoteUpdateAvailable
	case updater.EventDownloaded:
		note.Kind = host.NoteUpdateDownloaded
	default:
		note.Kind = host.NoteUpdateError
	}
	return note
}
