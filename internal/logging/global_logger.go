package logging

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/router-for-me/reasoning-transformer/internal/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Defaults applied when the configuration leaves log rotation unset.
const (
	DefaultLogDir       = "logs"
	DefaultLogFile      = "transformer.log"
	DefaultLogMaxSizeMB = 10
)

var (
	setupOnce     sync.Once
	writerMu      sync.Mutex
	logWriter     *lumberjack.Logger
	consoleWriter io.Writer = os.Stdout
)

// LogFormatter defines a custom log format for logrus.
// This formatter adds timestamp, level, request ID, and source location to each log entry.
// Format: [2025-12-23 20:14:04] [a1b2c3d4] [debug] [transformer.go:124] transformer: decided | model=glm-4.6 source=ultrathink
type LogFormatter struct{}

// logFieldOrder defines the display order for common log fields.
var logFieldOrder = []string{"provider", "model", "source", "reasoning", "effort", "rewrite", "target", "max_tokens", "keyword", "prompt_tokens", "context_window", "error"}

// Format renders a single log entry with custom formatting.
func (m *LogFormatter) Format(entry *log.Entry) ([]byte, error) {
	var buffer *bytes.Buffer
	if entry.Buffer != nil {
		buffer = entry.Buffer
	} else {
		buffer = &bytes.Buffer{}
	}

	timestamp := entry.Time.Format("2006-01-02 15:04:05")
	message := strings.TrimRight(entry.Message, "\r\n")

	reqID := "--------"
	if id, ok := entry.Data[RequestIDField].(string); ok && id != "" {
		reqID = id
	}

	level := entry.Level.String()
	if level == "warning" {
		level = "warn"
	}
	levelStr := fmt.Sprintf("%-5s", level)

	// Only fields listed in logFieldOrder are printed.
	var fieldsStr string
	if len(entry.Data) > 0 {
		var fields []string
		for _, k := range logFieldOrder {
			if v, ok := entry.Data[k]; ok {
				fields = append(fields, fmt.Sprintf("%s=%v", k, v))
			}
		}
		if len(fields) > 0 {
			fieldsStr = " " + strings.Join(fields, " ")
		}
	}

	var formatted string
	if entry.Caller != nil {
		formatted = fmt.Sprintf("[%s] [%s] [%s] [%s:%d] %s%s\n", timestamp, reqID, levelStr, filepath.Base(entry.Caller.File), entry.Caller.Line, message, fieldsStr)
	} else {
		formatted = fmt.Sprintf("[%s] [%s] [%s] %s%s\n", timestamp, reqID, levelStr, message, fieldsStr)
	}
	buffer.WriteString(formatted)

	return buffer.Bytes(), nil
}

// SetupBaseLogger configures the shared logrus instance.
// It is safe to call multiple times; initialization happens only once.
func SetupBaseLogger() {
	setupOnce.Do(func() {
		writerMu.Lock()
		log.SetOutput(consoleWriter)
		writerMu.Unlock()
		log.SetReportCaller(true)
		log.SetFormatter(&LogFormatter{})
		log.RegisterExitHandler(closeLogOutputs)
	})
}

// ResolveLogDirectory determines the directory used for log files.
func ResolveLogDirectory(cfg *config.Config) string {
	if cfg == nil || strings.TrimSpace(cfg.LogDir) == "" {
		return DefaultLogDir
	}
	return strings.TrimSpace(cfg.LogDir)
}

// SetConsoleWriter sets the destination used when file logging is off or unavailable.
// A nil writer restores stdout. The change takes effect on the next ConfigureLogOutput.
func SetConsoleWriter(w io.Writer) {
	if w == nil {
		w = os.Stdout
	}
	writerMu.Lock()
	consoleWriter = w
	writerMu.Unlock()
}

// ConfigureLogOutput applies the configured level and switches the global log
// destination between a size-rotated file and the console writer. When the log directory
// cannot be created, output falls back to the console and the error is returned for the
// caller to report.
func ConfigureLogOutput(cfg *config.Config) error {
	SetupBaseLogger()

	if cfg != nil && cfg.Debug {
		log.SetLevel(log.DebugLevel)
	} else {
		log.SetLevel(log.InfoLevel)
	}

	writerMu.Lock()
	defer writerMu.Unlock()

	previous := logWriter
	logWriter = nil
	defer func() {
		if previous != nil {
			_ = previous.Close()
		}
	}()

	if cfg == nil || !cfg.LoggingToFile {
		log.SetOutput(consoleWriter)
		return nil
	}

	logDir := ResolveLogDirectory(cfg)
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		log.SetOutput(consoleWriter)
		return fmt.Errorf("logging: failed to create log directory: %w", err)
	}

	maxSize := cfg.LogMaxSizeMB
	if maxSize <= 0 {
		maxSize = DefaultLogMaxSizeMB
	}
	logWriter = &lumberjack.Logger{
		Filename:   filepath.Join(logDir, DefaultLogFile),
		MaxSize:    maxSize,
		MaxBackups: cfg.LogMaxBackups,
		MaxAge:     0,
		Compress:   false,
	}
	log.SetOutput(logWriter)
	return nil
}

func closeLogOutputs() {
	writerMu.Lock()
	defer writerMu.Unlock()

	if logWriter != nil {
		_ = logWriter.Close()
		logWriter = nil
	}
}
