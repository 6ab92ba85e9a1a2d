package views

import (
	"context"
	"errors"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/services"
	"github.com/desertthunder/vtx/internal/shared"
)

// SwipeDirection is a horizontal gesture on the carousel.
type SwipeDirection int

const (
	SwipeLeft SwipeDirection = iota
	SwipeRight
)

// NextIndex advances i by one, wrapping modulo n. It returns 0 when n is zero.
func NextIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i + 1) % n
}

// PrevIndex moves i back by one, wrapping modulo n. It returns 0 when n is zero.
func PrevIndex(i, n int) int {
	if n <= 0 {
		return 0
	}
	return (i - 1 + n) % n
}

// DirectoryView shows creators one at a time.
type DirectoryView struct {
	mu sync.RWMutex

	backend services.Backend
	logger  *log.Logger

	loading bool
	loaded  bool
	users   []models.UserSummary
	index   int
	err     string
}

// NewDirectoryView creates the user directory state.
func NewDirectoryView(backend services.Backend, logger *log.Logger) *DirectoryView {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &DirectoryView{backend: backend, logger: logger.With("view", "directory"), loading: true}
}

// Load fetches the user list and resets the carousel to the first user.
//
// success=false sets [MsgUsersUnsuccessful]; any other failure sets [MsgUsersError].
func (d *DirectoryView) Load(ctx context.Context) error {
	users, err := d.backend.ListUsers(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()

	d.loading = false
	d.loaded = true
	d.index = 0

	if err != nil {
		d.users = nil
		if errors.Is(err, services.ErrUnsuccessful) {
			d.err = MsgUsersUnsuccessful
		} else {
			d.err = MsgUsersError
			d.logger.Error("failed to fetch users", "error", err)
		}
		return err
	}

	d.err = ""
	d.users = users
	return nil
}

// Loaded reports whether Load has completed at least once.
func (d *DirectoryView) Loaded() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loaded
}

// Loading reports whether the first fetch is still pending.
func (d *DirectoryView) Loading() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.loading
}

// Err returns the error text to show in place of the carousel, or "".
func (d *DirectoryView) Err() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.err
}

// Len returns the number of users.
func (d *DirectoryView) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.users)
}

// Index returns the carousel position.
func (d *DirectoryView) Index() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.index
}

// Current returns the user under the carousel. ok is false when the list is empty.
func (d *DirectoryView) Current() (user models.UserSummary, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if len(d.users) == 0 {
		return models.UserSummary{}, false
	}
	return d.users[d.index], true
}

// Users returns a copy of the fetched list.
func (d *DirectoryView) Users() []models.UserSummary {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return append([]models.UserSummary(nil), d.users...)
}

// Next advances the carousel, wrapping to the first user.
func (d *DirectoryView) Next() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.index = NextIndex(d.index, len(d.users))
}

// Prev moves the carousel back, wrapping to the last user.
func (d *DirectoryView) Prev() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.index = PrevIndex(d.index, len(d.users))
}

// Swipe maps a left swipe to Next and a right swipe to Prev.
func (d *DirectoryView) Swipe(dir SwipeDirection) {
	switch dir {
	case SwipeLeft:
		d.Next()
	case SwipeRight:
		d.Prev()
	}
}

// Seek moves the carousel to i, wrapping negative and out-of-range values.
func (d *DirectoryView) Seek(i int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	n := len(d.users)
	if n == 0 {
		d.index = 0
		return
	}
	d.index = ((i % n) + n) % n
}
