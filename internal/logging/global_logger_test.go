package logging

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/router-for-me/reasoning-transformer/internal/config"
	log "github.com/sirupsen/logrus"
)

func TestLogFormatter_FieldOrderAndRequestID(t *testing.T) {
	entry := &log.Entry{
		Logger:  log.StandardLogger(),
		Time:    time.Date(2025, 12, 23, 20, 14, 4, 0, time.UTC),
		Level:   log.WarnLevel,
		Message: "transformer: mutation skipped |\n",
		Data: log.Fields{
			"effort":       "high",
			"model":        "glm-4.6",
			RequestIDField: "a1b2c3d4",
			"ignored":      "x",
			"provider":     "zai",
		},
	}

	out, err := (&LogFormatter{}).Format(entry)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	want := "[2025-12-23 20:14:04] [a1b2c3d4] [warn ] transformer: mutation skipped | provider=zai model=glm-4.6 effort=high\n"
	if string(out) != want {
		t.Fatalf("Format() =\n%q\nwant\n%q", out, want)
	}
}

func TestLogFormatter_NoRequestID(t *testing.T) {
	entry := &log.Entry{Logger: log.StandardLogger(), Level: log.InfoLevel, Message: "hello"}
	out, err := (&LogFormatter{}).Format(entry)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(string(out), "[--------] [info ] hello") {
		t.Fatalf("unexpected output %q", out)
	}
}

func TestRequestID_RoundTrip(t *testing.T) {
	id := GenerateRequestID()
	if len(id) != 8 {
		t.Fatalf("expected 8-character id, got %q", id)
	}
	ctx := WithRequestID(context.Background(), id)
	if GetRequestID(ctx) != id {
		t.Fatalf("GetRequestID() = %q, want %q", GetRequestID(ctx), id)
	}
	if EnsureRequestID(ctx) != ctx {
		t.Fatal("expected EnsureRequestID to keep an existing id")
	}
	if GetRequestID(EnsureRequestID(context.Background())) == "" {
		t.Fatal("expected EnsureRequestID to generate an id")
	}
	var nilCtx context.Context
	if GetRequestID(nilCtx) != "" {
		t.Fatal("expected empty id for nil context")
	}
	if got := EntryFromContext(ctx).Data[RequestIDField]; got != id {
		t.Fatalf("expected entry to carry request id, got %v", got)
	}
}

func TestConfigureLogOutput_File(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "logs")
	cfg := &config.Config{LoggingToFile: true, LogDir: dir, Debug: true}
	if err := ConfigureLogOutput(cfg); err != nil {
		t.Fatalf("ConfigureLogOutput: %v", err)
	}
	t.Cleanup(func() { _ = ConfigureLogOutput(&config.Config{}) })

	if log.GetLevel() != log.DebugLevel {
		t.Fatalf("expected debug level, got %s", log.GetLevel())
	}
	log.Info("written to file")

	data, err := os.ReadFile(filepath.Join(dir, DefaultLogFile))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "written to file") {
		t.Fatalf("expected log line in file, got %q", data)
	}
}

func TestConfigureLogOutput_UnwritableDirFallsBack(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	cfg := &config.Config{LoggingToFile: true, LogDir: filepath.Join(blocker, "logs")}
	if err := ConfigureLogOutput(cfg); err == nil {
		t.Fatal("expected error when the log directory cannot be created")
	}
	t.Cleanup(func() { _ = ConfigureLogOutput(&config.Config{}) })
	if log.StandardLogger().Out != os.Stdout {
		t.Fatal("expected stdout fallback")
	}
}

func TestResolveLogDirectory(t *testing.T) {
	if ResolveLogDirectory(nil) != DefaultLogDir {
		t.Fatal("expected default log dir for nil config")
	}
	if got := ResolveLogDirectory(&config.Config{LogDir: " /tmp/x "}); got != "/tmp/x" {
		t.Fatalf("ResolveLogDirectory() = %q", got)
	}
}

func TestConfigureLogOutput_ConsoleWriter(t *testing.T) {
	var console bytes.Buffer
	SetConsoleWriter(&console)
	t.Cleanup(func() {
		SetConsoleWriter(nil)
		_ = ConfigureLogOutput(&config.Config{})
	})

	if err := ConfigureLogOutput(&config.Config{}); err != nil {
		t.Fatalf("ConfigureLogOutput: %v", err)
	}
	log.Info("to console")
	if !strings.Contains(console.String(), "to console") {
		t.Fatalf("expected console output, got %q", console.String())
	}

	parent := t.TempDir()
	blocker := filepath.Join(parent, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	if err := ConfigureLogOutput(&config.Config{LoggingToFile: true, LogDir: filepath.Join(blocker, "logs")}); err == nil {
		t.Fatal("expected error when the log directory cannot be created")
	}
	log.Info("fallback line")
	if !strings.Contains(console.String(), "fallback line") {
		t.Fatalf("expected fallback to the console writer, got %q", console.String())
	}
}
