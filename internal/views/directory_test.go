package views

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/services"
	"github.com/desertthunder/vtx/internal/services/servicestest"
)

func users(names ...string) []models.UserSummary {
	out := make([]models.UserSummary, len(names))
	for i, n := range names {
		out[i] = models.UserSummary{Username: n}
	}
	return out
}

func TestCarouselIndex(t *testing.T) {
	t.Run("Wraps Modulo Count", func(t *testing.T) {
		for n := 1; n <= 5; n++ {
			for i := range n {
				if got, want := NextIndex(i, n), (i+1)%n; got != want {
					t.Errorf("NextIndex(%d, %d) = %d, want %d", i, n, got, want)
				}
				if got, want := PrevIndex(i, n), (i-1+n)%n; got != want {
					t.Errorf("PrevIndex(%d, %d) = %d, want %d", i, n, got, want)
				}
			}
		}
	})

	t.Run("Single User Stays Put", func(t *testing.T) {
		if NextIndex(0, 1) != 0 || PrevIndex(0, 1) != 0 {
			t.Error("expected index 0 for a single user")
		}
	})

	t.Run("Empty", func(t *testing.T) {
		if NextIndex(0, 0) != 0 || PrevIndex(0, 0) != 0 {
			t.Error("expected index 0 for an empty list")
		}
	})
}

func TestDirectoryView(t *testing.T) {
	t.Run("Load And Navigate", func(t *testing.T) {
		d := NewDirectoryView(&servicestest.MockBackend{Users: users("a", "b", "c")}, nil)
		if !d.Loading() {
			t.Error("expected loading before first fetch")
		}
		if err := d.Load(context.Background()); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		steps := []struct {
			op   func()
			want string
		}{
			{d.Next, "b"},
			{d.Next, "c"},
			{d.Next, "a"},
			{d.Prev, "c"},
			{func() { d.Swipe(SwipeLeft) }, "a"},
			{func() { d.Swipe(SwipeRight) }, "c"},
		}

		for i, step := range steps {
			step.op()
			u, ok := d.Current()
			if !ok || u.Username != step.want {
				t.Errorf("step %d: expected %s, got %s", i, step.want, u.Username)
			}
		}
	})

	t.Run("Seek Wraps", func(t *testing.T) {
		d := NewDirectoryView(&servicestest.MockBackend{Users: users("a", "b", "c")}, nil)
		_ = d.Load(context.Background())

		d.Seek(4)
		if d.Index() != 1 {
			t.Errorf("expected 1, got %d", d.Index())
		}
		d.Seek(-1)
		if d.Index() != 2 {
			t.Errorf("expected 2, got %d", d.Index())
		}
	})

	t.Run("Empty List", func(t *testing.T) {
		d := NewDirectoryView(&servicestest.MockBackend{Users: nil}, nil)
		_ = d.Load(context.Background())

		if _, ok := d.Current(); ok {
			t.Error("expected no current user")
		}
		d.Next()
		d.Prev()
		if d.Index() != 0 || d.Err() != "" {
			t.Errorf("expected index 0 and no error, got %d %q", d.Index(), d.Err())
		}
	})

	t.Run("Unsuccessful Response", func(t *testing.T) {
		d := NewDirectoryView(&servicestest.MockBackend{UsersErr: services.ErrUnsuccessful}, nil)
		_ = d.Load(context.Background())
		if d.Err() != MsgUsersUnsuccessful {
			t.Errorf("expected %q, got %q", MsgUsersUnsuccessful, d.Err())
		}
	})

	t.Run("Fetch Error", func(t *testing.T) {
		d := NewDirectoryView(&servicestest.MockBackend{UsersErr: errors.New("connection refused")}, nil)
		_ = d.Load(context.Background())
		if d.Err() != MsgUsersError {
			t.Errorf("expected %q, got %q", MsgUsersError, d.Err())
		}
		if d.Loading() {
			t.Error("expected loading to end after a failure")
		}
	})
}
