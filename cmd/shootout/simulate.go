package main

import (
	"context"
	"fmt"
	"os"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/fileutil"
	"github.com/sjoves/poker-shootout/internal/randutil"
	"github.com/sjoves/poker-shootout/internal/simulator"
)

type SimulateCmd struct {
	Mode        string `kong:"default='blitz',enum='classic,blitz,challenge',help='Game mode to simulate'"`
	Sessions    int    `kong:"default='100',help='Number of games to play'"`
	Seed        int64  `kong:"help='Master seed for the batch (0 draws one)'"`
	Strategy    string `kong:"default='greedy',enum='greedy,rush,random',help='Hand picking strategy'"`
	HandSeconds int    `kong:"default='5',help='Clock seconds charged per submitted hand'"`
	MaxLevels   int    `kong:"help='Challenge: stop a run after clearing this many levels (0 = no cap)'"`
	Parallel    int    `kong:"help='Concurrent runs (0 = GOMAXPROCS)'"`
	Output      string `kong:"short='o',help='Write the batch report to this file as JSON'"`
	Debug       bool   `kong:"help='Enable debug logging'"`
}

func (c *SimulateCmd) Run() error {
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

	seed := c.Seed
	if seed == 0 {
		seed = randutil.Seed()
	}
	logger.Info("Running batch",
		"mode", mode,
		"sessions", c.Sessions,
		"strategy", c.Strategy,
		"seed", seed)

	sim := simulator.New(simulator.Config{
		Mode:        mode,
		Runs:        c.Sessions,
		Seed:        seed,
		Strategy:    strategy,
		HandSeconds: c.HandSeconds,
		MaxLevels:   c.MaxLevels,
		Workers:     c.Parallel,
		Game:        game.DefaultConfig(),
		Logger:      logger,
	})

	stats, err := sim.Run(context.Background())
	if err != nil {
		return err
	}

	simulator.PrintSummary(stats, mode, c.Strategy)

	if c.Output != "" {
		report := simulator.NewReport(stats, mode, c.Strategy, seed)
		if err := fileutil.WriteJSONAtomic(c.Output, report, 0o644); err != nil {
			return fmt.Errorf("writing report: %w", err)
		}
		logger.Info("Report written", "file", c.Output)
	}
	return nil
}
