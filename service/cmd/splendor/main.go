// Package main provides the splendor command-line tool.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	splendorcmd "github.com/jason-s-yu/splendor/service/internal/cmd/splendor"
	"github.com/jason-s-yu/splendor/service/internal/config"
)

func main() {
	if err := config.LoadDotEnv(".env"); err != nil {
		config.Exitf("Error: %v", err)
	}
	cfg, err := config.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		config.Exitf("Error: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := splendorcmd.Run(ctx, cfg, os.Stdout, os.Stderr); err != nil {
		config.Exitf("Error: %v", err)
	}
}
