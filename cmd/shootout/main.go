package main

import (
	"io"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version kong.VersionFlag `short:"v" help:"Show version"`
	NoColor bool             `help:"Disable colored output"`

	Play     PlayCmd     `cmd:"" help:"Play a game in the terminal"`
	Simulate SimulateCmd `cmd:"" help:"Run headless games and report statistics"`
	Serve    ServeCmd    `cmd:"" help:"Host games over WebSocket"`
	Bot      BotCmd      `cmd:"" help:"Play a game against a server automatically"`
	Eval     EvalCmd     `cmd:"" help:"Score a hand of cards"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("shootout"),
		kong.Description("Timed card-matching game scored on poker hands"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)

	if cli.NoColor {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	err := ctx.Run()
	ctx.FatalIfErrorf(err)
}

// setupLogger builds a leveled logger writing to w
func setupLogger(w io.Writer, level string) *log.Logger {
	lvl := log.InfoLevel
	switch level {
	case "debug":
		lvl = log.DebugLevel
	case "warn":
		lvl = log.WarnLevel
	case "error":
		lvl = log.ErrorLevel
	}
	return log.NewWithOptions(w, log.Options{Level: lvl})
}
