package views

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/vtx/internal/services/servicestest"
	"github.com/desertthunder/vtx/internal/session"
	"github.com/desertthunder/vtx/internal/shared"
)

func TestLoginView(t *testing.T) {
	t.Run("Success Fills Session And Goes Home", func(t *testing.T) {
		backend := &servicestest.MockBackend{LoginUser: "alice"}
		store := session.NewStore()
		nav := NewNavigator()
		nav.Go(RouteLogin)

		err := NewLoginView(backend, store, nav, nil).Submit(context.Background(), LoginForm{Username: "alice", Password: "secret"})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		snap := store.Snapshot()
		if !snap.IsAuthenticated || snap.Username != "alice" {
			t.Errorf("unexpected session %+v", snap)
		}
		if nav.Current().Route != RouteHome {
			t.Errorf("expected home, got %s", nav.Current().Route)
		}
	})

	t.Run("Uses Username From Response", func(t *testing.T) {
		backend := &servicestest.MockBackend{LoginUser: "Alice"}
		store := session.NewStore()

		_ = NewLoginView(backend, store, NewNavigator(), nil).Submit(context.Background(), LoginForm{Username: "alice", Password: "x"})
		if store.Username() != "Alice" {
			t.Errorf("expected backend username, got %s", store.Username())
		}
	})

	t.Run("Required Fields", func(t *testing.T) {
		tests := []struct {
			name string
			form LoginForm
			want map[string]string
		}{
			{"Both Empty", LoginForm{}, map[string]string{"username": "Username is required", "password": "Password is required"}},
			{"No Password", LoginForm{Username: "alice"}, map[string]string{"password": "Password is required"}},
			{"No Username", LoginForm{Password: "x"}, map[string]string{"username": "Username is required"}},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				backend := &servicestest.MockBackend{}
				err := NewLoginView(backend, session.NewStore(), NewNavigator(), nil).Submit(context.Background(), tt.form)

				var verr *shared.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected ValidationError, got %v", err)
				}
				if !IsValidationError(err) {
					t.Error("expected IsValidationError to agree")
				}
				for field, msg := range tt.want {
					if got := verr.For(field); got != msg {
						t.Errorf("field %s: expected %q, got %q", field, msg, got)
					}
				}
				if backend.Count("Login") != 0 {
					t.Error("invalid form must not reach the backend")
				}
			})
		}
	})

	t.Run("Failure Leaves Session Untouched", func(t *testing.T) {
		backend := &servicestest.MockBackend{LoginErr: statusErr(401)}
		store := session.NewStore()
		nav := NewNavigator()
		nav.Go(RouteLogin)

		err := NewLoginView(backend, store, nav, nil).Submit(context.Background(), LoginForm{Username: "alice", Password: "bad"})
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
		if IsValidationError(err) {
			t.Error("backend failure is not a validation error")
		}
		if _, ok := AsAlert(err); ok {
			t.Error("login failures never raise an alert")
		}
		if store.IsAuthenticated() || store.Username() != "" {
			t.Errorf("expected empty session, got %+v", store.Snapshot())
		}
		if nav.Current().Route != RouteLogin {
			t.Errorf("expected to stay on login, got %s", nav.Current().Route)
		}
	})
}
