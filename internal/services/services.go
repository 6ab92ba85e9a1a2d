// package services defines interface Backend for interacting with the video platform API
package services

import (
	"context"
	"io"

	"github.com/desertthunder/vtx/internal/models"
)

// Backend is the video platform API as seen by the client.
type Backend interface {
	// Login verifies credentials and returns the username echoed by the backend.
	Login(ctx context.Context, username, password string) (string, error)

	// ListUsers returns every creator for the user directory.
	ListUsers(ctx context.Context) ([]models.UserSummary, error)

	// UploadVideo sends a video file as multipart form data.
	UploadVideo(ctx context.Context, req UploadRequest) (*UploadResult, error)

	// ListVideos returns every video in backend order.
	ListVideos(ctx context.Context) ([]models.Video, error)

	// IncrementViews bumps a video's view counter. The response body is ignored.
	IncrementViews(ctx context.Context, videoID string) error

	// ToggleLike likes or unlikes a video for username and returns the authoritative like list.
	ToggleLike(ctx context.Context, videoID, username string) ([]models.Like, error)

	// AddComment posts a comment and returns the authoritative comment list.
	AddComment(ctx context.Context, videoID, username, comment string) ([]models.Comment, error)
}

// UploadRequest describes a single video upload.
type UploadRequest struct {
	FileName string    // Base name sent in the multipart header
	File     io.Reader // Video content
	Size     int64     // Total bytes, 0 when unknown
	Title    string
	Username string

	// Progress, when set, is called with the running byte count as the body is sent.
	Progress func(sent, total int64)
}

// UploadResult is the backend's answer to a successful upload.
type UploadResult struct {
	VideoID string
}
