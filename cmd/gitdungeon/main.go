package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	rundungeon "github.com/louisbranch/gitdungeon/internal/cmd/gitdungeon"
	"github.com/louisbranch/gitdungeon/internal/platform/config"
)

func main() {
	cfg, err := rundungeon.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("parse config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rundungeon.Run(ctx, cfg); err != nil {
		config.Exitf("run failed: %v", err)
	}
}
