// Package main is the entry point for the skinlab viewer.
package main

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/Faultbox/skinlab/internal/config"
	"github.com/Faultbox/skinlab/internal/logger"
	"github.com/Faultbox/skinlab/internal/viewer"
)

func main() {
	// Parse CLI flags first
	config.ParseFlags()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("=== Skinlab Viewer ===")
	logger.Sugar.Debugf("Config: %+v", cfg)
	if path := config.ConfigPath(); path != "" {
		logger.Debug("using explicit config file", zap.String("path", path))
	}
	if cfg.Assets.Model == "" {
		logger.Warn("no model configured, starting with an empty scene")
	}

	v, err := viewer.New(cfg)
	if err != nil {
		logger.Fatal("failed to create viewer", zap.Error(err))
	}
	defer v.Close()

	if err := v.Run(); err != nil {
		logger.Error("viewer error", zap.Error(err))
		os.Exit(1)
	}

	logger.Info("viewer closed normally")
}
