// Package servicestest provides a scripted [services.Backend] for view, task and command tests.
package servicestest

import (
	"context"
	"io"
	"sync"

	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/services"
)

var _ services.Backend = (*MockBackend)(nil)

// MockBackend is a test double for [services.Backend].
//
// Each field is returned by the matching method; Calls records method names in order.
type MockBackend struct {
	mu sync.Mutex

	LoginUser  string
	LoginErr   error
	Users      []models.UserSummary
	UsersErr   error
	Videos     []models.Video
	VideosErr  error
	ViewsErr   error
	Likes      []models.Like
	LikeErr    error
	Comments   []models.Comment
	CommentErr error
	UploadID   string
	UploadErr  error

	Calls    []string
	Uploaded []services.UploadRequest
}

func (m *MockBackend) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, call)
}

// Count returns how many times the named method was called.
func (m *MockBackend) Count(call string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.Calls {
		if c == call {
			n++
		}
	}
	return n
}

func (m *MockBackend) Login(ctx context.Context, username, password string) (string, error) {
	m.record("Login")
	if m.LoginErr != nil {
		return "", m.LoginErr
	}
	if m.LoginUser != "" {
		return m.LoginUser, nil
	}
	return username, nil
}

func (m *MockBackend) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	m.record("ListUsers")
	return m.Users, m.UsersErr
}

func (m *MockBackend) UploadVideo(ctx context.Context, req services.UploadRequest) (*services.UploadResult, error) {
	m.record("UploadVideo")
	if m.UploadErr != nil {
		return nil, m.UploadErr
	}
	if req.File != nil {
		n, _ := io.Copy(io.Discard, req.File)
		if req.Progress != nil {
			req.Progress(n, req.Size)
		}
	}
	m.mu.Lock()
	m.Uploaded = append(m.Uploaded, req)
	m.mu.Unlock()
	return &services.UploadResult{VideoID: m.UploadID}, nil
}

func (m *MockBackend) ListVideos(ctx context.Context) ([]models.Video, error) {
	m.record("ListVideos")
	return m.Videos, m.VideosErr
}

func (m *MockBackend) IncrementViews(ctx context.Context, videoID string) error {
	m.record("IncrementViews")
	return m.ViewsErr
}

func (m *MockBackend) ToggleLike(ctx context.Context, videoID, username string) ([]models.Like, error) {
	m.record("ToggleLike")
	return m.Likes, m.LikeErr
}

func (m *MockBackend) AddComment(ctx context.Context, videoID, username, comment string) ([]models.Comment, error) {
	m.record("AddComment")
	return m.Comments, m.CommentErr
}
