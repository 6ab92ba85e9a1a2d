package views

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/services"
	"github.com/desertthunder/vtx/internal/session"
	"github.com/desertthunder/vtx/internal/shared"
)

// LoginForm holds the credentials typed on the login screen.
type LoginForm struct {
	Username string `json:"username" validate:"required" label:"Username"`
	Password string `json:"password" validate:"required" label:"Password"`
}

// LoginView submits credentials and, on success, fills the session and returns home.
type LoginView struct {
	backend services.Backend
	session *session.Store
	nav     *Navigator
	logger  *log.Logger
}

// NewLoginView creates the login screen state.
func NewLoginView(backend services.Backend, store *session.Store, nav *Navigator, logger *log.Logger) *LoginView {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &LoginView{backend: backend, session: store, nav: nav, logger: logger.With("view", "login")}
}

// Submit validates form and posts it to the backend.
//
// A [*shared.ValidationError] means nothing was sent. Backend failures are logged and
// returned wrapping [shared.ErrAuthFailed]; the screen shows nothing for them.
func (v *LoginView) Submit(ctx context.Context, form LoginForm) error {
	if err := shared.ValidateForm(form); err != nil {
		return err
	}

	username, err := v.backend.Login(ctx, form.Username, form.Password)
	if err != nil {
		v.logger.Error("login failed", "username", form.Username, "error", err)
		if !errors.Is(err, shared.ErrAuthFailed) {
			err = errors.Join(shared.ErrAuthFailed, err)
		}
		return err
	}

	v.session.SetUser(username)
	v.session.Login()
	v.logger.Info("login successful", "username", username)

	if v.nav != nil {
		v.nav.Go(RouteHome)
	}
	return nil
}

// IsValidationError reports whether err came from form validation rather than the backend.
func IsValidationError(err error) bool {
	var verr *shared.ValidationError
	return errors.As(err, &verr)
}
