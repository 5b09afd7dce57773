// Package main is the entry point for the frameview wireframe viewer.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/Faultbox/frameview/internal/config"
	"github.com/Faultbox/frameview/internal/logger"
	"github.com/Faultbox/frameview/internal/structure"
	"github.com/Faultbox/frameview/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== frameview ===")
	logger.Sugar.Debugf("Config: %+v", cfg)

	load := func() (*structure.FrameStructure, error) {
		return structure.LoadFiles(cfg.Structure.Nodes, cfg.Structure.Edges,
			cfg.Structure.Variables, cfg.Structure.Formulas)
	}

	// The first load must succeed; reloads may fail and keep the last good one.
	s, err := load()
	if err != nil {
		logger.Error("failed to load structure",
			zap.String("nodes", cfg.Structure.Nodes),
			zap.String("edges", cfg.Structure.Edges),
			zap.Error(err),
		)
		os.Exit(1)
	}

	v, err := viewer.New(cfg, s, load)
	if err != nil {
		logger.Error("failed to create viewer", zap.Error(err))
		os.Exit(1)
	}
	defer v.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := v.Run(ctx); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
