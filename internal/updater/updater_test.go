package updater

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

type fakeSource struct {
	release     Release
	latestErr   error
	downloadErr error
	payload     string
	downloads   int
}

func (f *fakeSource) Latest(context.Context) (Release, error) {
	return f.release, f.latestErr
}

func (f *fakeSource) Download(_ context.Context, _ Release, dst *os.File) error {
	f.downloads++
	if f.downloadErr != nil {
		return f.downloadErr
	}
	_, err := dst.WriteString(f.payload)
	return err
}

type recorder struct {
	mu     sync.Mutex
	events []Event
}

func (r *recorder) notify(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recorder) kinds() []EventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]EventKind, len(r.events))
	for i, e := range r.events {
		out[i] = e.Kind
	}
	return out
}

func newInstaller(t *testing.T) *BinaryInstaller {
	t.Helper()
	exe := filepath.Join(t.TempDir(), "image-sourcery")
	if err := os.WriteFile(exe, []byte("old"), 0o755); err != nil {
		t.Fatalf("write exe: %v", err)
	}
	return &BinaryInstaller{Executable: exe}
}

func TestCheckDownloadsNewerRelease(t *testing.T) {
	src := &fakeSource{release: Release{Version: "v1.1.0", AssetURL: "x"}, payload: "new"}
	inst := newInstaller(t)
	rec := &recorder{}
	u := New(Options{Current: "1.0.0", Source: src, Installer: inst, Notify: rec.notify})

	if err := u.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if u.State() != StateDownloaded {
		t.Fatalf("expected downloaded, got %s", u.State())
	}
	kinds := rec.kinds()
	if len(kinds) != 2 || kinds[0] != EventAvailable || kinds[1] != EventDownloaded {
		t.Fatalf("unexpected events %v", kinds)
	}
	data, err := os.ReadFile(inst.StagePath())
	if err != nil || string(data) != "new" {
		t.Fatalf("expected staged payload, got %q (%v)", data, err)
	}
	if u.Release().Version != "v1.1.0" {
		t.Fatalf("expected release recorded, got %#v", u.Release())
	}
}

func TestCheckUpToDateReturnsToIdle(t *testing.T) {
	src := &fakeSource{release: Release{Version: "v1.0.0"}}
	rec := &recorder{}
	u := New(Options{Current: "1.0.0", Source: src, Installer: newInstaller(t), Notify: rec.notify})
	if err := u.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if u.State() != StateIdle {
		t.Fatalf("expected idle, got %s", u.State())
	}
	if len(rec.kinds()) != 0 || src.downloads != 0 {
		t.Fatalf("expected no events or downloads, got %v / %d", rec.kinds(), src.downloads)
	}
}

func TestCheckFailureReturnsToIdleWithoutRetry(t *testing.T) {
	src := &fakeSource{latestErr: errors.New("offline")}
	rec := &recorder{}
	u := New(Options{Current: "1.0.0", Source: src, Installer: newInstaller(t), Notify: rec.notify})
	if err := u.Check(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if u.State() != StateIdle {
		t.Fatalf("expected idle after failure, got %s", u.State())
	}
	kinds := rec.kinds()
	if len(kinds) != 1 || kinds[0] != EventError {
		t.Fatalf("expected single error event, got %v", kinds)
	}
}

func TestDownloadFailureRemovesStagingFile(t *testing.T) {
	src := &fakeSource{release: Release{Version: "2.0.0"}, downloadErr: errors.New("reset")}
	inst := newInstaller(t)
	rec := &recorder{}
	u := New(Options{Current: "1.0.0", Source: src, Installer: inst, Notify: rec.notify})
	if err := u.Check(context.Background()); err == nil {
		t.Fatalf("expected error")
	}
	if u.State() != StateIdle {
		t.Fatalf("expected idle, got %s", u.State())
	}
	if _, err := os.Stat(inst.StagePath()); !os.IsNotExist(err) {
		t.Fatalf("expected staging file removed, stat err = %v", err)
	}
	kinds := rec.kinds()
	if len(kinds) != 2 || kinds[0] != EventAvailable || kinds[1] != EventError {
		t.Fatalf("unexpected events %v", kinds)
	}
}

func TestApplyRequiresDownload(t *testing.T) {
	u := New(Options{Current: "1.0.0", Source: &fakeSource{}, Installer: newInstaller(t)})
	if err := u.Apply(); !errors.Is(err, ErrNotDownloaded) {
		t.Fatalf("expected ErrNotDownloaded, got %v", err)
	}
	if u.RelaunchPending() {
		t.Fatalf("expected no relaunch pending")
	}
}

func TestApplySwapsBinary(t *testing.T) {
	src := &fakeSource{release: Release{Version: "1.0.1"}, payload: "new"}
	inst := newInstaller(t)
	u := New(Options{Current: "1.0.0", Source: src, Installer: inst})
	if err := u.Check(context.Background()); err != nil {
		t.Fatalf("Check: %v", err)
	}
	if err := u.Apply(); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	data, err := os.ReadFile(inst.Executable)
	if err != nil || string(data) != "new" {
		t.Fatalf("expected new binary installed, got %q (%v)", data, err)
	}
	old, err := os.ReadFile(inst.Executable + ".old")
	if err != nil || string(old) != "old" {
		t.Fatalf("expected previous binary kept, got %q (%v)", old, err)
	}
	if !u.RelaunchPending() {
		t.Fatalf("expected relaunch pending")
	}
}

func TestCheckRunsOnlyFromIdle(t *testing.T) {
	src := &fakeSource{release: Release{Version: "3.0.0"}, payload: "new"}
	u := New(Options{Current: "1.0.0", Source: src, Installer: newInstaller(t)})
	_ = u.Check(context.Background())
	_ = u.Check(context.Background())
	if src.downloads != 1 {
		t.Fatalf("expected one download, got %d", src.downloads)
	}
}

func TestCompareVersions(t *testing.T) {
	cases := []struct {
		a, b string
		want int
	}{
		{"1.0.0", "1.0.0", 0},
		{"v1.2.0", "1.10.0", -1},
		{"2.0.0", "v1.9.9", 1},
		{"1.2.3-dev", "1.2.3", 0},
		{"1.2", "1.2.1", -1},
	}
	for _, tc := range cases {
		if got := compareVersions(tc.a, tc.b); got != tc.want {
			t.Fatalf("compareVersions(%q, %q) = %d, want %d", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestGitHubSourceLatestAndDownload(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/latest":
			if r.Header.Get("User-Agent") != "image-sourcery/test" {
				w.WriteHeader(http.StatusForbidden)
				return
			}
			fmt.Fprintf(w, `{"tag_name":"v0.4.0","html_url":"%[1]s/rel","assets":[
				{"name":"image-sourcery_windows_amd64.exe","browser_download_url":"%[1]s/win"},
				{"name":"image-sourcery_plan9_mips","browser_download_url":"%[1]s/asset"}]}`, srv.URL)
		case "/asset":
			_, _ = w.Write([]byte("binary"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	src := NewGitHubSource(srv.URL+"/latest", "image-sourcery/test", 0)
	src.GOOS, src.GOARCH = "plan9", "mips"
	rel, err := src.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if rel.Version != "v0.4.0" || rel.AssetURL != srv.URL+"/asset" {
		t.Fatalf("unexpected release %#v", rel)
	}

	f, err := os.Create(filepath.Join(t.TempDir(), "staged"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := src.Download(context.Background(), rel, f); err != nil {
		t.Fatalf("Download: %v", err)
	}
	data, _ := os.ReadFile(f.Name())
	if string(data) != "binary" {
		t.Fatalf("expected asset body, got %q", data)
	}
}

func TestGitHubSourceErrors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	src := NewGitHubSource(srv.URL, "ua", 0)
	if _, err := src.Latest(context.Background()); err == nil {
		t.Fatalf("expected status error")
	}
	f, err := os.Create(filepath.Join(t.TempDir(), "staged"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	defer f.Close()
	if err := src.Download(context.Background(), Release{Version: "1"}, f); err == nil {
		t.Fatalf("expected missing asset error")
	}
}
