package host

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
)

// ListDir returns the names of the entries in path in the order the
// filesystem yields them. A read error yields nil; callers cannot tell the
// cause apart.
func ListDir(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

// ListSubdirs returns only the directory entries of path, or nil when path
// cannot be read.
func ListSubdirs(path string) []string {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil
	}
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	return names
}

// MoveFile moves sourceDir/file into targetDir/class/file, creating the class
// directory first when it does not exist. An existing destination is
// overwritten by the rename on platforms that allow it.
func MoveFile(req MoveRequest) error {
	classDir := filepath.Join(req.TargetDir, req.Class)
	if _, err := os.Stat(classDir); os.IsNotExist(err) {
		if err := os.Mkdir(classDir, 0o755); err != nil {
			return fmt.Errorf("create class directory: %w", err)
		}
	}
	src := filepath.Join(req.SourceDir, req.File)
	dst := filepath.Join(classDir, req.File)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("move %s: %w", req.File, err)
	}
	return nil
}

// FileSize returns the size in bytes of dir/file.
func FileSize(req FileRequest) (int64, error) {
	info, err := os.Stat(filepath.Join(req.Dir, req.File))
	if err != nil {
		return 0, fmt.Errorf("stat %s: %w", req.File, err)
	}
	return info.Size(), nil
}

// ReadFile returns the content of dir/file encoded as standard base64.
func ReadFile(req FileRequest) (string, error) {
	data, err := os.ReadFile(filepath.Join(req.Dir, req.File))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", req.File, err)
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
