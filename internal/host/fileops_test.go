package host

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/atomicstack/image-sourcery/internal/testutil"
)

func TestListDirReturnsEntryNames(t *testing.T) {
	src, _ := testutil.SourceDirs(t)
	testutil.WriteFiles(t, src, "b.png", "a.txt")
	if err := os.Mkdir(filepath.Join(src, "nested"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	names := ListDir(src)
	sort.Strings(names)
	want := []string{"a.txt", "b.png", "nested"}
	if len(names) != len(want) {
		t.Fatalf("expected %v, got %v", want, names)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, names)
		}
	}
}

func TestListDirMissingReturnsNil(t *testing.T) {
	if names := ListDir(filepath.Join(t.TempDir(), "missing")); names != nil {
		t.Fatalf("expected nil listing, got %v", names)
	}
}

func TestListDirEmptyIsNotNil(t *testing.T) {
	names := ListDir(t.TempDir())
	if names == nil || len(names) != 0 {
		t.Fatalf("expected empty non-nil listing, got %#v", names)
	}
}

func TestListSubdirsSkipsFiles(t *testing.T) {
	src, _ := testutil.SourceDirs(t)
	testutil.WriteFiles(t, src, "a.png")
	if err := os.Mkdir(filepath.Join(src, "cats"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	names := ListSubdirs(src)
	if len(names) != 1 || names[0] != "cats" {
		t.Fatalf("expected [cats], got %v", names)
	}
}

func TestMoveFileCreatesClassDirectory(t *testing.T) {
	src, dst := testutil.SourceDirs(t)
	testutil.WriteFiles(t, src, "a.png")

	if err := MoveFile(MoveRequest{SourceDir: src, TargetDir: dst, Class: "cats", File: "a.png"}); err != nil {
		t.Fatalf("MoveFile: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dst, "cats", "a.png")); err != nil {
		t.Fatalf("expected moved file: %v", err)
	}
	if _, err := os.Stat(filepath.Join(src, "a.png")); !os.IsNotExist(err) {
		t.Fatalf("expected source file gone, stat err = %v", err)
	}
}

func TestMoveFileIntoExistingClassDirectory(t *testing.T) {
	src, dst := testutil.SourceDirs(t)
	testutil.WriteFiles(t, src, "a.png", "b.png")
	for _, name := range []string{"a.png", "b.png"} {
		if err := MoveFile(MoveRequest{SourceDir: src, TargetDir: dst, Class: "dogs", File: name}); err != nil {
			t.Fatalf("MoveFile %s: %v", name, err)
		}
	}
	if got := testutil.Entries(t, filepath.Join(dst, "dogs")); len(got) != 2 {
		t.Fatalf("expected two files in class dir, got %v", got)
	}
}

func TestMoveFileMissingSourceFails(t *testing.T) {
	src, dst := testutil.SourceDirs(t)
	err := MoveFile(MoveRequest{SourceDir: src, TargetDir: dst, Class: "cats", File: "ghost.png"})
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func TestReadFileEncodesBase64(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	encoded, err := ReadFile(FileRequest{Dir: dir, File: "note.txt"})
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if encoded != base64.StdEncoding.EncodeToString([]byte("hello")) {
		t.Fatalf("unexpected encoding %q", encoded)
	}
}

func TestFileSizeReportsBytes(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "note.txt"), []byte("hello"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	size, err := FileSize(FileRequest{Dir: dir, File: "note.txt"})
	if err != nil {
		t.Fatalf("FileSize: %v", err)
	}
	if size != 5 {
		t.Fatalf("expected 5 bytes, got %d", size)
	}
	if _, err := FileSize(FileRequest{Dir: dir, File: "ghost.txt"}); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
