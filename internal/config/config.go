package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/atomicstack/image-sourcery/internal/app"
)

// Config captures runtime configuration for the application.
type Config struct {
	App         app.Config
	Logging     Logging
	Flags       map[string]string
	Args        []string
	ShowVersion bool
}

type Logging struct {
	FilePath string
	Trace    bool
}

const (
	envSourceDir     = "IMAGE_SOURCERY_SOURCE"
	envTargetDir     = "IMAGE_SOURCERY_TARGET"
	envPrefsFile     = "IMAGE_SOURCERY_PREFS_FILE"
	envWidth         = "IMAGE_SOURCERY_WIDTH"
	envHeight        = "IMAGE_SOURCERY_HEIGHT"
	envShowFooter    = "IMAGE_SOURCERY_FOOTER"
	envTrace         = "IMAGE_SOURCERY_TRACE"
	envLogFile       = "IMAGE_SOURCERY_LOG_FILE"
	envUpdateURL     = "IMAGE_SOURCERY_UPDATE_URL"
	envNoUpdate      = "IMAGE_SOURCERY_NO_UPDATE"
	envUpdateRetries = "IMAGE_SOURCERY_UPDATE_RETRIES"
)

// Load parses configuration from CLI arguments and environment variables.
func Load() (Config, error) {
	return LoadArgs(os.Args[1:], os.Environ())
}

// LoadArgs allows tests to supply specific args/environment.
func LoadArgs(args []string, environ []string) (Config, error) {
	env := parseEnv(environ)

	fs := flag.NewFlagSet("image-sourcery", flag.ContinueOnError)
	fs.SetOutput(new(strings.Builder))

	source := fs.String("source", envOrDefault(env, envSourceDir, ""), "source directory to sort (overrides saved preferences)")
	target := fs.String("target", envOrDefault(env, envTargetDir, ""), "target directory receiving class folders (overrides saved preferences)")
	prefsFile := fs.String("prefs-file", envOrDefault(env, envPrefsFile, ""), "path to the preferences file")
	width := fs.Int("width", envOrInt(env, envWidth, 0), "desired viewport width in cells (0 uses terminal width)")
	height := fs.Int("height", envOrInt(env, envHeight, 0), "desired viewport height in rows (0 uses terminal height)")
	footer := fs.Bool("footer", envOrBool(env, envShowFooter, false), "enable footer hint row (disabled by default)")
	trace := fs.Bool("trace", envOrBool(env, envTrace, false), "enable verbose JSON trace logging")
	logFile := fs.String("log-file", envOrDefault(env, envLogFile, ""), "path to the log file")
	updateURL := fs.String("update-url", envOrDefault(env, envUpdateURL, ""), "release API endpoint polled for updates")
	noUpdate := fs.Bool("no-update", envOrBool(env, envNoUpdate, false), "disable the update check")
	retries := fs.Int("update-retries", envOrInt(env, envUpdateRetries, 0), "retries for failed update requests")
	showVersion := fs.Bool("version", false, "print the version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	cfg := Config{
		App: app.Config{
			SourceDir:     cleanDir(*source),
			TargetDir:     cleanDir(*target),
			PrefsFile:     *prefsFile,
			Width:         *width,
			Height:        *height,
			ShowFooter:    *footer,
			UpdateURL:     *updateURL,
			UpdateRetries: *retries,
			NoUpdate:      *noUpdate,
		},
		Logging: Logging{
			FilePath: *logFile,
			Trace:    *trace,
		},
		Flags: map[string]string{
			"source":        *source,
			"target":        *target,
			"prefsFile":     *prefsFile,
			"width":         strconv.Itoa(*width),
			"height":        strconv.Itoa(*height),
			"footer":        strconv.FormatBool(*footer),
			"trace":         strconv.FormatBool(*trace),
			"logFile":       *logFile,
			"updateURL":     *updateURL,
			"noUpdate":      strconv.FormatBool(*noUpdate),
			"updateRetries": strconv.Itoa(*retries),
		},
		Args:        append([]string(nil), args...),
		ShowVersion: *showVersion,
	}

	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func cleanDir(dir string) string {
	dir = strings.TrimSpace(dir)
	if dir == "" {
		return ""
	}
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return filepath.Clean(dir)
}

func parseEnv(environ []string) map[string]string {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, "=", 2)
		if len(parts) != 2 {
			continue
		}
		values[parts[0]] = parts[1]
	}
	return values
}

func envOrDefault(env map[string]string, key, fallback string) string {
	if v, ok := env[key]; ok {
		return v
	}
	return fallback
}

func envOrInt(env map[string]string, key string, fallback int) int {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return parsed
}

func envOrBool(env map[string]string, key string, fallback bool) bool {
	v, ok := env[key]
	if !ok || strings.TrimSpace(v) == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return parsed
}

// MustLoad returns configuration or exits.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Configuration error: %v\n", err)
		os.Exit(2)
	}
	return cfg
}

// Validate rejects values the application cannot start with.
func Validate(cfg Config) error {
	if cfg.App.Width < 0 {
		return fmt.Errorf("width must be >= 0 (got %d)", cfg.App.Width)
	}
	if cfg.App.Height < 0 {
		return fmt.Errorf("height must be >= 0 (got %d)", cfg.App.Height)
	}
	if cfg.App.UpdateRetries < 0 {
		return fmt.Errorf("update-retries must be >= 0 (got %d)", cfg.App.UpdateRetries)
	}
	if u := cfg.App.UpdateURL; u != "" && !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return fmt.Errorf("update-url must be an http(s) URL (got %q)", u)
	}
	return nil
}
