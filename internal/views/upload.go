package views

import (
	"context"
	"io"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/session"
	"github.com/desertthunder/vtx/internal/shared"
	"github.com/desertthunder/vtx/internal/tasks"
)

// UploadState is the dialog's progress state. Exactly one holds at a time.
type UploadState int

const (
	UploadIdle UploadState = iota
	UploadInProgress
	UploadFailed
	UploadSucceeded
)

func (s UploadState) String() string {
	switch s {
	case UploadIdle:
		return "idle"
	case UploadInProgress:
		return "uploading"
	case UploadFailed:
		return "failed"
	case UploadSucceeded:
		return "succeeded"
	default:
		return ""
	}
}

// UploadStatus is a snapshot of the dialog.
type UploadStatus struct {
	Open    bool
	File    string
	Title   string
	State   UploadState
	Message string // error or success text, empty when idle or in progress
	VideoID string
}

// UploadFlow is the "add post" dialog.
type UploadFlow struct {
	mu sync.Mutex

	engine  *tasks.UploadEngine
	session *session.Store
	logger  *log.Logger

	open    bool
	file    string
	title   string
	state   UploadState
	message string
	videoID string
}

// NewUploadFlow creates the dialog state around engine.
func NewUploadFlow(engine *tasks.UploadEngine, store *session.Store, logger *log.Logger) *UploadFlow {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &UploadFlow{engine: engine, session: store, logger: logger.With("view", "upload")}
}

// Open shows the dialog.
func (u *UploadFlow) Open() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.open = true
}

// Close hides the dialog and resets the file, title, error and success state.
func (u *UploadFlow) Close() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.open = false
	u.file = ""
	u.title = ""
	u.state = UploadIdle
	u.message = ""
	u.videoID = ""
}

// SelectFile sets the chosen file path.
func (u *UploadFlow) SelectFile(path string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.file = path
}

// SetTitle sets the title field.
func (u *UploadFlow) SetTitle(title string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.title = title
}

// Status returns a snapshot of the dialog.
func (u *UploadFlow) Status() UploadStatus {
	u.mu.Lock()
	defer u.mu.Unlock()
	return UploadStatus{
		Open:    u.open,
		File:    u.file,
		Title:   u.title,
		State:   u.state,
		Message: u.message,
		VideoID: u.videoID,
	}
}

// Submit uploads the chosen file.
//
// Preconditions are checked in order: a file is chosen, then the session has a username.
// Either failing returns an [*Alert] and sends nothing. Any backend failure moves the dialog to
// [UploadFailed] with a generic message; success clears the chosen file. The feed is not refreshed.
func (u *UploadFlow) Submit(ctx context.Context, progress chan<- tasks.ProgressUpdate) error {
	u.mu.Lock()
	file, title := u.file, u.title
	if file == "" {
		u.mu.Unlock()
		return newAlert(MsgSelectPost, nil)
	}

	username := u.session.Username()
	if username == "" {
		u.mu.Unlock()
		return newAlert(MsgLoginToUpload, shared.ErrNotAuthenticated)
	}

	u.state = UploadInProgress
	u.message = ""
	u.videoID = ""
	u.mu.Unlock()

	res, err := u.engine.Upload(ctx, progress, tasks.UploadJob{Path: file, Title: title, Username: username})

	u.mu.Lock()
	defer u.mu.Unlock()

	if err != nil {
		u.logger.Error("upload failed", "file", file, "error", err)
		u.state = UploadFailed
		u.message = MsgUploadFailed
		return err
	}

	u.state = UploadSucceeded
	u.message = MsgUploadSucceeded
	u.videoID = res.VideoID
	u.file = ""
	return nil
}
