package views

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/services"
	"github.com/desertthunder/vtx/internal/shared"
)

// FeedView lists every video, newest first.
type FeedView struct {
	mu sync.RWMutex

	backend services.Backend
	nav     *Navigator
	logger  *log.Logger

	loading bool
	videos  []models.Video
}

// NewFeedView creates the video feed state.
func NewFeedView(backend services.Backend, nav *Navigator, logger *log.Logger) *FeedView {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &FeedView{backend: backend, nav: nav, logger: logger.With("view", "feed"), loading: true}
}

// Load fetches the video list and sorts it by creation time, newest first.
//
// A failed fetch is logged and leaves the feed empty.
func (f *FeedView) Load(ctx context.Context) error {
	videos, err := f.backend.ListVideos(ctx)
	if err != nil {
		f.logger.Error("error fetching videos", "error", err)
		videos = nil
	}
	models.SortByRecency(videos)

	f.mu.Lock()
	f.loading = false
	f.videos = videos
	f.mu.Unlock()

	return err
}

// Loading reports whether the first fetch is still pending.
func (f *FeedView) Loading() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.loading
}

// Videos returns the sorted list.
func (f *FeedView) Videos() []models.Video {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return append([]models.Video(nil), f.videos...)
}

// Empty reports whether there is nothing to show once loading is done.
func (f *FeedView) Empty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return !f.loading && len(f.videos) == 0
}

// Select records a view for the video at index i and opens its detail screen.
//
// The view count request is best effort: a failure is logged and navigation proceeds.
func (f *FeedView) Select(ctx context.Context, i int) error {
	f.mu.RLock()
	if i < 0 || i >= len(f.videos) {
		f.mu.RUnlock()
		return fmt.Errorf("%w: no video at position %d", shared.ErrInvalidArgument, i)
	}
	video := f.videos[i]
	f.mu.RUnlock()

	OpenVideo(ctx, f.backend, f.nav, f.logger, video)
	return nil
}

// OpenVideo increments the view count for video and navigates to its detail screen with video as state.
func OpenVideo(ctx context.Context, backend services.Backend, nav *Navigator, logger *log.Logger, video models.Video) {
	if err := backend.IncrementViews(ctx, video.ID); err != nil {
		logger.Warn("error updating views", "video_id", video.ID, "error", err)
	}
	nav.Navigate(VideoLocation(video))
}

// FormatDate renders a creation time as a local calendar date.
func FormatDate(v models.Video) string {
	if v.CreatedAt.IsZero() {
		return ""
	}
	return v.CreatedAt.Local().Format("2006-01-02")
}
