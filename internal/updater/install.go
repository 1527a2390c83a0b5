package updater

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"

	"github.com/atomicstack/image-sourcery/internal/logging/events"
)

// BinaryInstaller replaces an executable on disk. The previous binary is kept
// alongside as <exe>.old until the next install.
type BinaryInstaller struct {
	Executable string
}

// NewBinaryInstaller targets the running executable.
func NewBinaryInstaller() (*BinaryInstaller, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("locate executable: %w", err)
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return &BinaryInstaller{Executable: exe}, nil
}

// StagePath is where the downloaded binary is written.
func (b *BinaryInstaller) StagePath() string {
	return b.Executable + ".new"
}

// Install swaps staged into place.
func (b *BinaryInstaller) Install(staged string) error {
	old := b.Executable + ".old"
	if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove %s: %w", old, err)
	}
	if err := os.Rename(b.Executable, old); err != nil {
		return fmt.Errorf("move current binary aside: %w", err)
	}
	if err := os.Rename(staged, b.Executable); err != nil {
		if restoreErr := os.Rename(old, b.Executable); restoreErr != nil {
			return fmt.Errorf("install update: %v (restore failed: %w)", err, restoreErr)
		}
		return fmt.Errorf("install update: %w", err)
	}
	if err := os.Chmod(b.Executable, 0o755); err != nil {
		return fmt.Errorf("chmod %s: %w", b.Executable, err)
	}
	return nil
}

// Relaunch replaces the current process with the installed binary. Where
// exec is unsupported it runs the binary as a child and waits for it.
func (b *BinaryInstaller) Relaunch(args []string) error {
	events.App.Relaunch(b.Executable)
	argv := append([]string{b.Executable}, args...)
	if err := syscall.Exec(b.Executable, argv, os.Environ()); err != nil {
		events.Update.Error("exec", err)
	}
	cmd := exec.Command(b.Executable, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("relaunch: %w", err)
	}
	return nil
}
