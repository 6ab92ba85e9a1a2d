package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/vtx/internal/shared"
	"github.com/desertthunder/vtx/internal/views"
	"github.com/urfave/cli/v3"
)

const (
	usernameEnv = "VTX_USERNAME"
	passwordEnv = "VTX_PASSWORD"
)

// authFlags are accepted by every command that acts as a user.
func authFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "username",
			Aliases: []string{"u"},
			Usage:   "Sign in as this user before running the command",
			Sources: cli.EnvVars(usernameEnv),
		},
		&cli.StringFlag{
			Name:    "password",
			Aliases: []string{"p"},
			Usage:   "Password for --username",
			Sources: cli.EnvVars(passwordEnv),
		},
	}
}

// signIn logs in with the command's credentials. Without --username the session stays signed out.
func (r *Runner) signIn(ctx context.Context, cmd *cli.Command) error {
	username := cmd.String("username")
	if username == "" {
		return nil
	}

	login := views.NewLoginView(r.backend, r.session, nil, r.logger)
	form := views.LoginForm{Username: username, Password: cmd.String("password")}
	if err := login.Submit(ctx, form); err != nil {
		if views.IsValidationError(err) {
			return err
		}
		return fmt.Errorf("%w: could not sign in as %s", shared.ErrAuthFailed, username)
	}
	return nil
}

// Login checks credentials against the backend and reports the signed-in user.
func (r *Runner) Login(ctx context.Context, cmd *cli.Command) error {
	login := views.NewLoginView(r.backend, r.session, nil, r.logger)
	form := views.LoginForm{Username: cmd.String("username"), Password: cmd.String("password")}

	if err := login.Submit(ctx, form); err != nil {
		if views.IsValidationError(err) {
			return err
		}
		return fmt.Errorf("%w: invalid username or password", shared.ErrAuthFailed)
	}

	return r.writePlain("✓ Signed in as %s\n", r.session.Username())
}

func loginCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "login",
		Usage:  "Verify credentials against the backend",
		Flags:  authFlags(),
		Action: r.Login,
	}
}
