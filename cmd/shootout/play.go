package main

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/sjoves/poker-shootout/game"
	"github.com/sjoves/poker-shootout/internal/tui"
)

type PlayCmd struct {
	Mode    string `kong:"default='classic',enum='classic,blitz,challenge',help='Game mode to play'"`
	Seed    int64  `kong:"help='Deterministic shuffle seed (0 draws one)'"`
	LogFile string `kong:"help='Write debug logs to this file'"`
}

func (c *PlayCmd) Run() error {
	mode, err := game.ParseMode(c.Mode)
	if err != nil {
		return err
	}

	// The alternate screen owns the terminal, so logs go to a file or nowhere
	logger := log.New(io.Discard)
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o666)
		if err != nil {
			return fmt.Errorf("opening log file: %w", err)
		}
		defer func() { _ = f.Close() }()
		logger = setupLogger(f, "debug")
	}

	model := tui.NewModel(mode, game.DefaultConfig(), c.Seed, logger)
	program := tea.NewProgram(model, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}
	return nil
}
