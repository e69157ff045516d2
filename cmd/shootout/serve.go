package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/coder/quartz"

	"github.com/sjoves/poker-shootout/internal/server"
)

type ServeCmd struct {
	Config   string `kong:"short='c',default='shootout.hcl',help='Path to HCL configuration file'"`
	Address  string `kong:"help='Bind address (overrides config)'"`
	Port     int    `kong:"help='Bind port (overrides config)'"`
	LogLevel string `kong:"short='l',help='Log level (overrides config)'"`
}

func (c *ServeCmd) Run() error {
	cfg, err := server.LoadServerConfig(c.Config)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Apply command line overrides
	if c.Address != "" {
		cfg.Server.Address = c.Address
	}
	if c.Port != 0 {
		cfg.Server.Port = c.Port
	}
	if c.LogLevel != "" {
		cfg.Server.LogLevel = c.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger := setupLogger(os.Stderr, cfg.Server.LogLevel)
	logger.Info("Starting shootout server",
		"addr", cfg.GetServerAddress(),
		"blitzSeconds", cfg.Game.BlitzSeconds,
		"levelSeconds", cfg.Game.LevelSeconds,
		"orbitUnlock", cfg.Game.OrbitUnlockLevel)

	wsServer := server.NewServer(cfg.GetServerAddress(), logger)
	gameService := server.NewGameService(wsServer, logger, cfg.GameConfig(), quartz.NewReal())
	wsServer.SetGameService(gameService)

	// Handle graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("Shutting down server...")
		_ = wsServer.Stop()
		os.Exit(0)
	}()

	// Start server (this blocks)
	if err := wsServer.Start(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
