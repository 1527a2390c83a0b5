package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadArgsDefaults(t *testing.T) {
	cfg, err := LoadArgs(nil, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Width != 0 || cfg.App.Height != 0 {
		t.Fatalf("expected zero size, got %dx%d", cfg.App.Width, cfg.App.Height)
	}
	if cfg.App.ShowFooter || cfg.App.NoUpdate || cfg.Logging.Trace || cfg.ShowVersion {
		t.Fatalf("expected boolean flags off, got %#v", cfg)
	}
	if cfg.App.UpdateRetries != 0 {
		t.Fatalf("expected no retries by default, got %d", cfg.App.UpdateRetries)
	}
}

func TestLoadArgsFlagsOverrideEnvironment(t *testing.T) {
	env := []string{
		envWidth + "=100",
		envHeight + "=40",
		envTrace + "=true",
		envUpdateURL + "=https://env.example/latest",
		envLogFile + "=env.log",
	}
	cfg, err := LoadArgs([]string{"--width", "90", "--update-url", "https://flag.example/latest", "--footer"}, env)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Width != 90 {
		t.Fatalf("expected flag width 90, got %d", cfg.App.Width)
	}
	if cfg.App.Height != 40 {
		t.Fatalf("expected env height 40, got %d", cfg.App.Height)
	}
	if cfg.App.UpdateURL != "https://flag.example/latest" {
		t.Fatalf("expected flag update URL, got %q", cfg.App.UpdateURL)
	}
	if !cfg.Logging.Trace || cfg.Logging.FilePath != "env.log" {
		t.Fatalf("expected logging from env, got %#v", cfg.Logging)
	}
	if !cfg.App.ShowFooter {
		t.Fatalf("expected footer enabled")
	}
	if cfg.Flags["width"] != "90" || cfg.Flags["footer"] != "true" {
		t.Fatalf("unexpected flags map %#v", cfg.Flags)
	}
}

func TestLoadArgsResolvesDirectories(t *testing.T) {
	dir := t.TempDir()
	cfg, err := LoadArgs([]string{"--source", dir + "/./", "--target", " "}, []string{envNoUpdate + "=1"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.SourceDir != filepath.Clean(dir) {
		t.Fatalf("expected cleaned source %q, got %q", filepath.Clean(dir), cfg.App.SourceDir)
	}
	if cfg.App.TargetDir != "" {
		t.Fatalf("expected blank target ignored, got %q", cfg.App.TargetDir)
	}
	if !cfg.App.NoUpdate {
		t.Fatalf("expected no-update from env")
	}
}

func TestLoadArgsIgnoresMalformedEnvironment(t *testing.T) {
	cfg, err := LoadArgs(nil, []string{"", "garbage", envWidth + "=wide", envShowFooter + "=maybe"})
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if cfg.App.Width != 0 || cfg.App.ShowFooter {
		t.Fatalf("expected fallbacks for malformed env, got %#v", cfg.App)
	}
}

func TestLoadArgsVersionFlag(t *testing.T) {
	cfg, err := LoadArgs([]string{"--version"}, nil)
	if err != nil {
		t.Fatalf("LoadArgs: %v", err)
	}
	if !cfg.ShowVersion {
		t.Fatalf("expected version flag set")
	}
}

func TestLoadArgsRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"negative width", []string{"--width", "-1"}, "width"},
		{"negative height", []string{"--height", "-2"}, "height"},
		{"negative retries", []string{"--update-retries", "-1"}, "update-retries"},
		{"bad url", []string{"--update-url", "ftp://example"}, "update-url"},
		{"unknown flag", []string{"--socket", "x"}, "socket"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadArgs(tc.args, nil)
			if err == nil {
				t.Fatalf("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}
