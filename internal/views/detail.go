package views

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/services"
	"github.com/desertthunder/vtx/internal/session"
	"github.com/desertthunder/vtx/internal/shared"
)

// DetailState is a snapshot of the detail screen for rendering.
type DetailState struct {
	Video        models.Video
	Loading      bool
	Suggestions  []models.Video
	LikeCount    int
	LikedByMe    bool
	CommentCount int
	Comments     []models.Comment
	CommentsOpen bool
	CommentInput string
}

// DetailView plays one video and manages its likes and comments.
//
// Like and comment state is derived from the video passed in navigation state and afterwards
// replaced wholesale by each successful backend response. Nothing is changed locally ahead of
// the backend.
type DetailView struct {
	mu sync.RWMutex

	backend services.Backend
	session *session.Store
	nav     *Navigator
	logger  *log.Logger
	opener  func(string) error

	video        *models.Video
	loading      bool
	suggestions  []models.Video
	likeCount    int
	likedByMe    bool
	comments     []models.Comment
	commentsOpen bool
	commentInput string
}

// NewDetailView creates the detail screen state. Play opens links with [shared.OpenBrowser].
func NewDetailView(backend services.Backend, store *session.Store, nav *Navigator, logger *log.Logger) *DetailView {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &DetailView{
		backend: backend,
		session: store,
		nav:     nav,
		logger:  logger.With("view", "detail"),
		opener:  shared.OpenBrowser,
	}
}

// WithOpener replaces the function Play uses to open the video URL.
func (d *DetailView) WithOpener(fn func(string) error) *DetailView {
	d.opener = fn
	return d
}

// Mount shows the video carried by loc.
//
// Without a video in navigation state the navigator is redirected home, nothing is fetched,
// and [shared.ErrMissingNavigation] is returned.
func (d *DetailView) Mount(loc Location) error {
	if loc.Video == nil {
		d.logger.Warn("no video in navigation state, redirecting", "path", loc.Path)
		d.nav.Replace(Location{Route: RouteHome, Path: "/"})
		return shared.ErrMissingNavigation
	}

	video := *loc.Video
	username := d.session.Username()

	d.mu.Lock()
	defer d.mu.Unlock()

	d.video = &video
	d.loading = true
	d.suggestions = nil
	d.likeCount = len(video.Likes)
	d.likedByMe = video.LikedBy(username)
	d.comments = append([]models.Comment(nil), video.Comments...)
	d.commentsOpen = false
	d.commentInput = ""
	return nil
}

// LoadSuggestions fetches the video list and keeps every video other than the current one.
//
// A failed fetch is logged and leaves the panel empty.
func (d *DetailView) LoadSuggestions(ctx context.Context) error {
	d.mu.RLock()
	if d.video == nil {
		d.mu.RUnlock()
		return shared.ErrMissingNavigation
	}
	currentID := d.video.ID
	d.mu.RUnlock()

	videos, err := d.backend.ListVideos(ctx)
	if err != nil {
		d.logger.Error("error fetching videos", "error", err)
	}

	suggestions := make([]models.Video, 0, len(videos))
	for _, v := range videos {
		if v.ID != currentID {
			suggestions = append(suggestions, v)
		}
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.video == nil || d.video.ID != currentID {
		return err
	}
	d.loading = false
	d.suggestions = suggestions
	return err
}

// State returns a snapshot for rendering. ok is false before a successful Mount.
func (d *DetailView) State() (state DetailState, ok bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.video == nil {
		return DetailState{}, false
	}
	return DetailState{
		Video:        *d.video,
		Loading:      d.loading,
		Suggestions:  append([]models.Video(nil), d.suggestions...),
		LikeCount:    d.likeCount,
		LikedByMe:    d.likedByMe,
		CommentCount: len(d.comments),
		Comments:     append([]models.Comment(nil), d.comments...),
		CommentsOpen: d.commentsOpen,
		CommentInput: d.commentInput,
	}, true
}

func (d *DetailView) currentID() (string, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.video == nil {
		return "", shared.ErrMissingNavigation
	}
	return d.video.ID, nil
}

// ToggleLike likes or unlikes the video for the signed-in user.
//
// Signed out, it returns an [*Alert] without sending anything. A non-2xx response returns an
// alert; transport and decode failures are only logged and returned. On success the like count
// and flag are recomputed from the returned list.
func (d *DetailView) ToggleLike(ctx context.Context) error {
	if !d.session.IsAuthenticated() {
		return newAlert(MsgLoginToLike, shared.ErrNotAuthenticated)
	}

	id, err := d.currentID()
	if err != nil {
		return err
	}

	username := d.session.Username()
	likes, err := d.backend.ToggleLike(ctx, id, username)
	if err != nil {
		if services.IsStatusError(err) {
			return newAlert(MsgLikeFailed, err)
		}
		d.logger.Error("error updating like", "video_id", id, "error", err)
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.video == nil || d.video.ID != id {
		return nil
	}
	d.likeCount = len(likes)
	d.likedByMe = models.LikedBy(likes, username)
	d.video.Likes = likes
	return nil
}

// SetCommentInput replaces the comment being typed.
func (d *DetailView) SetCommentInput(text string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commentInput = text
}

// SubmitComment posts the typed comment.
//
// Signed out, it returns an [*Alert]. Empty input sends nothing. On success the comment list
// is replaced by the returned one and the input is cleared unless it was edited while the request
// was in flight; a non-2xx response returns an alert.
func (d *DetailView) SubmitComment(ctx context.Context) error {
	if !d.session.IsAuthenticated() {
		return newAlert(MsgLoginToComment, shared.ErrNotAuthenticated)
	}

	d.mu.RLock()
	if d.video == nil {
		d.mu.RUnlock()
		return shared.ErrMissingNavigation
	}
	id, text := d.video.ID, d.commentInput
	d.mu.RUnlock()

	if text == "" {
		return nil
	}

	comments, err := d.backend.AddComment(ctx, id, d.session.Username(), text)
	if err != nil {
		if services.IsStatusError(err) {
			return newAlert(MsgCommentFailed, err)
		}
		d.logger.Error("error posting comment", "video_id", id, "error", err)
		return err
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.video == nil || d.video.ID != id {
		return nil
	}
	d.comments = comments
	d.video.Comments = comments
	if d.commentInput == text {
		d.commentInput = ""
	}
	return nil
}

// ToggleComments opens or closes the comment panel.
func (d *DetailView) ToggleComments() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commentsOpen = !d.commentsOpen
}

// CloseComments closes the comment panel.
func (d *DetailView) CloseComments() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.commentsOpen = false
}

// SelectSuggestion opens the detail screen for the suggestion at index i.
func (d *DetailView) SelectSuggestion(i int) error {
	d.mu.RLock()
	if i < 0 || i >= len(d.suggestions) {
		d.mu.RUnlock()
		return fmt.Errorf("%w: no suggestion at position %d", shared.ErrInvalidArgument, i)
	}
	next := d.suggestions[i]
	d.mu.RUnlock()

	d.nav.Navigate(VideoLocation(next))
	return nil
}

// Play opens the video file in the system browser.
func (d *DetailView) Play() error {
	d.mu.RLock()
	if d.video == nil {
		d.mu.RUnlock()
		return shared.ErrMissingNavigation
	}
	link := d.video.VideoFileURL
	d.mu.RUnlock()

	if link == "" {
		return fmt.Errorf("%w: video has no file URL", shared.ErrInvalidArgument)
	}
	return d.opener(link)
}
