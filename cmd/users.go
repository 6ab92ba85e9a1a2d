package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/vtx/internal/formatter"
	"github.com/desertthunder/vtx/internal/views"
	"github.com/urfave/cli/v3"
)

// loadDirectory fetches the creator list, turning an unsuccessful load into an error carrying the screen's text.
func (r *Runner) loadDirectory(ctx context.Context) (*views.DirectoryView, error) {
	dir := views.NewDirectoryView(r.backend, r.logger)
	if err := dir.Load(ctx); err != nil {
		return nil, fmt.Errorf("%s: %w", dir.Err(), err)
	}
	return dir, nil
}

// UsersList prints every creator in the directory.
func (r *Runner) UsersList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	dir, err := r.loadDirectory(ctx)
	if err != nil {
		return err
	}

	data, err := formatter.RenderUsers(dir.Users(), -1, format)
	if err != nil {
		return fmt.Errorf("failed to render users: %w", err)
	}
	return formatter.WriteOutput(r.output, cmd.String("output"), data)
}

// UsersShow prints one creator card, wrapping --index around the list like the carousel does.
func (r *Runner) UsersShow(ctx context.Context, cmd *cli.Command) error {
	dir, err := r.loadDirectory(ctx)
	if err != nil {
		return err
	}

	if dir.Len() == 0 {
		return r.writePlain("%s\n", views.MsgNoUsers)
	}

	dir.Seek(int(cmd.Int("index")))
	user, _ := dir.Current()

	r.writePlainHeader(user.Username)
	r.writePlain("Avatar: %s\n", user.AvatarURL)
	r.writePlain("%d / %d\n", dir.Index()+1, dir.Len())

	if path := cmd.String("avatar"); path != "" {
		if err := formatter.SaveAvatar(user, path); err != nil {
			return fmt.Errorf("failed to save avatar: %w", err)
		}
		r.logger.Info("avatar saved", "username", user.Username, "path", path)
		r.writePlain("✓ Avatar saved to %s\n", path)
	}
	return nil
}

func usersCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "users",
		Aliases: []string{"creators"},
		Usage:   "Browse the creator directory",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List every creator",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json, csv or markdown",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.UsersList,
			},
			{
				Name:  "show",
				Usage: "Show the creator card at a carousel position",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:    "index",
						Aliases: []string{"i"},
						Usage:   "Carousel position, wrapping in both directions",
					},
					&cli.StringFlag{
						Name:  "avatar",
						Usage: "Download the avatar image to this path",
					},
				},
				Action: r.UsersShow,
			},
		},
	}
}
