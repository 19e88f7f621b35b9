// Command dietplan generates personalized diet plans with AI providers and exports them as PDF.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
)

// Globals are flags shared by every command.
type Globals struct {
	Config   string   `help:"Config file path (default ~/.config/dietplan/config.yaml)" type:"path"`
	EnvFiles []string `name:"env-file" help:"dotenv files loaded before reading API keys" default:".env,.env.local"`
}

// CLI is the command-line grammar.
type CLI struct {
	Globals

	TUI      TUICmd      `cmd:"" name:"tui" default:"1" help:"Fill in the profile form in the terminal (default)"`
	Generate GenerateCmd `cmd:"" help:"Generate a plan from flags and print it"`
	Serve    ServeCmd    `cmd:"" help:"Serve the web form and JSON API"`
	History  HistoryCmd  `cmd:"" help:"List or show previously generated plans"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cli CLI
	kctx := kong.Parse(&cli,
		kong.Name("dietplan"),
		kong.Description("Smart AI diet planner."),
		kong.UsageOnError(),
		kong.BindTo(ctx, (*context.Context)(nil)),
	)
	if err := kctx.Run(&cli.Globals); err != nil {
		fmt.Fprintf(os.Stderr, "dietplan: %v\n", err)
		os.Exit(1)
	}
}
