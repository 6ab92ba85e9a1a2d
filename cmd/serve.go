package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/vtx/internal/server"
	"github.com/desertthunder/vtx/internal/shared"
	"github.com/urfave/cli/v3"
)

// parseDevUser reads "name:password" or "name:password:avatar-url".
func parseDevUser(s string) (server.DevUser, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return server.DevUser{}, fmt.Errorf("%w: user %q, want name:password[:avatar]", shared.ErrInvalidArgument, s)
	}
	u := server.DevUser{Username: parts[0], Password: parts[1]}
	if len(parts) == 3 {
		u.Avatar = parts[2]
	}
	return u, nil
}

// Serve runs the in-memory development backend until the context is cancelled.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	backend := server.NewDevBackend(r.logger)
	for _, raw := range cmd.StringSlice("user") {
		u, err := parseDevUser(raw)
		if err != nil {
			return err
		}
		backend.AddUser(u)
		r.logger.Info("registered user", "username", u.Username)
	}

	return server.ListenAndServe(ctx, cmd.String("addr"), server.NewDevRouter(backend), r.logger, nil)
}

func serveCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run an in-memory development backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "addr",
				Aliases: []string{"a"},
				Usage:   "Listen address",
				Value:   ":8000",
			},
			&cli.StringSliceFlag{
				Name:  "user",
				Usage: "Account to create as name:password[:avatar-url] (repeatable)",
				Value: []string{"demo:demo"},
			},
		},
		Action: r.Serve,
	}
}
