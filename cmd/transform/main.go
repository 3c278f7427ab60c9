// Package main provides a stdin to stdout harness for the reasoning transformer.
// Each non-empty input line is one chat-completion request body; the transformed body is
// written as one output line. The harness takes no flags and is configured through
// REASONING_* environment variables, optionally loaded from a .env file.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/router-for-me/reasoning-transformer/internal/buildinfo"
	"github.com/router-for-me/reasoning-transformer/internal/config"
	"github.com/router-for-me/reasoning-transformer/internal/logging"
	"github.com/router-for-me/reasoning-transformer/internal/transformer"
	"github.com/router-for-me/reasoning-transformer/internal/watcher"
	log "github.com/sirupsen/logrus"
)

var (
	Version   = "dev"
	Commit    = "none"
	BuildDate = "unknown"
)

// Harness-only environment variables.
const (
	envProvider = "REASONING_PROVIDER"
	envEnvFile  = "REASONING_ENV_FILE"
)

// maxLineSize bounds a single request body.
const maxLineSize = 64 << 20

func init() {
	// stdout carries only request bodies.
	logging.SetConsoleWriter(os.Stderr)
	logging.SetupBaseLogger()
	buildinfo.Version = Version
	buildinfo.Commit = Commit
	buildinfo.BuildDate = BuildDate
}

func main() {
	if errEnv := config.LoadEnvFile(os.Getenv(envEnvFile)); errEnv != nil {
		log.Warnf("failed to load env file: %v", errEnv)
	}

	cfg, errCfg := config.FromEnv()
	if errCfg != nil {
		log.Errorf("failed to load configuration: %v", errCfg)
		os.Exit(1)
	}
	configureLogging(cfg)
	log.Debugf("reasoning transformer %s (commit %s, built %s)", buildinfo.Version, buildinfo.Commit, buildinfo.BuildDate)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt := transformer.NewReloadable(cfg)
	if path := strings.TrimSpace(os.Getenv(config.EnvConfigPath)); path != "" {
		w, errWatch := watcher.NewWatcher(path, func(newCfg *config.Config) {
			configureLogging(newCfg)
			rt.Reload(newCfg)
		})
		if errWatch != nil {
			log.Warnf("config hot reload disabled: %v", errWatch)
		} else {
			w.SetConfig(cfg)
			if errStart := w.Start(ctx); errStart != nil {
				log.Warnf("config hot reload disabled: %v", errStart)
			}
			defer func() { _ = w.Stop() }()
		}
	}

	provider := transformer.Provider{Name: strings.TrimSpace(os.Getenv(envProvider))}
	if errRun := run(ctx, rt, provider, os.Stdin, os.Stdout); errRun != nil && !errors.Is(errRun, context.Canceled) {
		log.Errorf("transform failed: %v", errRun)
		os.Exit(1)
	}
}

// configureLogging applies cfg to the logger.
func configureLogging(cfg *config.Config) {
	if errLog := logging.ConfigureLogOutput(cfg); errLog != nil {
		log.Warnf("log file unavailable, using console: %v", errLog)
	}
}

// run transforms every line read from in and writes the results to out. Bodies the
// transformer rejects are written back unchanged.
func run(ctx context.Context, rt *transformer.Reloadable, provider transformer.Provider, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	writer := bufio.NewWriter(out)
	defer func() { _ = writer.Flush() }()

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		reqCtx := logging.WithRequestID(ctx, logging.GenerateRequestID())
		body, errTransform := rt.TransformRequestIn(reqCtx, []byte(line), provider)
		if errTransform != nil {
			logging.EntryFromContext(reqCtx).WithField("error", errTransform.Error()).Warn("transform: request passed through unchanged |")
		}
		if _, err := fmt.Fprintf(writer, "%s\n", body); err != nil {
			return err
		}
		if err := writer.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}
