package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vtx/internal/shared"
	"github.com/desertthunder/vtx/internal/tasks"
	"github.com/desertthunder/vtx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal client.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if r.backend == nil {
		return fmt.Errorf("%w: backend not initialized", shared.ErrServiceUnavailable)
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger(r.config.Log.TUIFile)
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	shared.ApplyLogConfig(fileLogger, r.config.Log)
	r.SetLogger(fileLogger)

	var receipts tasks.ReceiptStore
	if repo, db, err := r.openReceipts(); err != nil {
		r.logger.Warn("upload receipts disabled", "error", err)
	} else {
		defer db.Close()
		receipts = repo
	}

	model := ui.NewModel(ctx, r.backend, r.newEngine(receipts), r.logger).
		WithRoute(cmd.String("route")).
		WithOpener(r.opener)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}

func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "tui",
		Usage: "Start the interactive terminal client",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "route",
				Usage: "Starting screen: /, /userspage, /login or /register",
				Value: "/",
			},
		},
		Action: r.TUI,
	}
}
