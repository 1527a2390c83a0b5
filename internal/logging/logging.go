package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	defaultLogName = "image-sourcery.log"
	maxSizeMB      = 5
	maxBackups     = 3
)

var (
	traceMu      sync.Mutex
	traceEnabled bool
	logPath      = defaultLogPath()
	sink         io.WriteCloser
	errLog       *log.Logger
)

func defaultLogPath() string {
	return filepath.Join(os.TempDir(), defaultLogName)
}

// output returns the rotating writer, creating it on first use. Callers must
// hold traceMu.
func output() io.Writer {
	if sink == nil {
		sink = &lumberjack.Logger{
			Filename:   logPath,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
		}
		errLog = log.New(sink, "", log.LstdFlags)
	}
	return sink
}

// Error writes errors to the shared log file.
func Error(err error) {
	if err == nil {
		return
	}
	traceMu.Lock()
	defer traceMu.Unlock()
	output()
	errLog.Println(err)
}

// SetTraceEnabled toggles emission of structured trace entries.
func SetTraceEnabled(enabled bool) {
	traceMu.Lock()
	traceEnabled = enabled
	traceMu.Unlock()
}

// TraceEnabled reports whether Trace currently writes entries.
func TraceEnabled() bool {
	traceMu.Lock()
	defer traceMu.Unlock()
	return traceEnabled
}

// Trace appends a structured JSON entry to the shared log when tracing is enabled.
func Trace(event string, payload interface{}) {
	traceMu.Lock()
	defer traceMu.Unlock()
	if !traceEnabled {
		return
	}

	entry := struct {
		Time    time.Time   `json:"time"`
		Event   string      `json:"event"`
		Payload interface{} `json:"payload,omitempty"`
	}{
		Time:    time.Now().UTC(),
		Event:   event,
		Payload: payload,
	}

	enc := json.NewEncoder(output())
	if err := enc.Encode(entry); err != nil {
		fmt.Fprintf(os.Stderr, "trace encoding failed: %v\n", err)
	}
}

// Configure sets the log destination. Empty values fall back to the default
// path. Directories are created automatically when missing.
func Configure(path string) {
	traceMu.Lock()
	defer traceMu.Unlock()
	closeSink()
	if strings.TrimSpace(path) == "" {
		logPath = defaultLogPath()
		return
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "unable to create log directory: %v\n", err)
		logPath = defaultLogPath()
		return
	}
	logPath = path
}

// Path returns the file currently receiving log output.
func Path() string {
	traceMu.Lock()
	defer traceMu.Unlock()
	return logPath
}

// Close flushes and releases the log file.
func Close() {
	traceMu.Lock()
	defer traceMu.Unlock()
	closeSink()
}

func closeSink() {
	if sink == nil {
		return
	}
	_ = sink.Close()
	sink = nil
	errLog = nil
}
