// Package cmd carries the shared entrypoint plumbing for CLI commands:
// env-backed config parsing, flag overrides, and telemetry lifecycle.
package cmd

import (
	"context"
	"errors"
	"flag"
	"log"
	"strings"
	"time"

	"github.com/louisbranch/gitdungeon/internal/platform/config"
	"github.com/louisbranch/gitdungeon/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// ServiceGitDungeon names the run command for telemetry.
const ServiceGitDungeon = "gitdungeon"

var (
	// ErrNilConfig reports a nil config target.
	ErrNilConfig = errors.New("config target is required")
	// ErrNilFlagSet reports a nil flag set.
	ErrNilFlagSet = errors.New("flag parser is required")
	// ErrNoService reports a blank service name.
	ErrNoService = errors.New("service name is required")
	// ErrNilRun reports a nil run function.
	ErrNilRun = errors.New("run function is required")
)

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return ErrNilConfig
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return ErrNilFlagSet
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry sets up tracing, runs the command, and flushes spans
// on the way out.
func RunWithTelemetry(ctx context.Context, service string, run func(context.Context) error) error {
	service = strings.TrimSpace(service)
	if service == "" {
		return ErrNoService
	}
	if run == nil {
		return ErrNilRun
	}

	shutdown, err := otel.Setup(ctx, service)
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultOTelShutdownTimeout)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("%s otel shutdown: %v", service, err)
		}
	}()
	return run(ctx)
}
