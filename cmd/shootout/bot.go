package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/client"
	"github.com/sjoves/poker-shootout/internal/simulator"
)

type BotCmd struct {
	Server    string        `kong:"default='http://localhost:8080',help='Server URL (ws:// or http://)'"`
	Mode      string        `kong:"default='blitz',enum='classic,blitz,challenge',help='Game mode to play'"`
	Seed      int64         `kong:"help='Game seed sent to the server (0 lets the server draw one)'"`
	Strategy  string        `kong:"default='greedy',enum='greedy,rush,random',help='Hand picking strategy'"`
	Delay     time.Duration `kong:"default='500ms',help='Pause between submitted hands'"`
	MaxLevels int           `kong:"help='Challenge: stop after clearing this many levels (0 = no cap)'"`
	Debug     bool          `kong:"help='Enable debug logging'"`
}

func (c *BotCmd) Run() error {
	mode, err := game.ParseMode(c.Mode)
	if err != nil {
		return err
	}
	strategy, err := simulator.NewStrategy(c.Strategy)
	if err != nil {
		return err
	}

	level := "info"
	if c.Debug {
		level = "debug"
	}
	logger := setupLogger(os.Stderr, level)

	cl := client.NewClient(c.Server, logger)
	if err := cl.Connect(); err != nil {
		return fmt.Errorf("connecting to %s: %w", c.Server, err)
	}
	defer cl.Disconnect()
	logger.Info("Connected", "server", c.Server, "mode", mode, "strategy", c.Strategy)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bot := client.NewBot(cl, client.BotConfig{
		Strategy:  strategy,
		Delay:     c.Delay,
		MaxLevels: c.MaxLevels,
	}, logger)

	state, err := bot.Play(ctx, mode.String(), c.Seed)
	if err != nil {
		return err
	}

	logger.Info("Game finished",
		"status", state.Status,
		"score", state.Score,
		"hands", state.HandsPlayed,
		"level", state.Level)
	return nil
}
