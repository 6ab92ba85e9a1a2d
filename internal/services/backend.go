package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/shared"
	"golang.org/x/time/rate"
)

// ErrUnsuccessful is returned when the backend answers 2xx with success=false.
var ErrUnsuccessful = errors.New("backend reported failure")

// StatusError is a non-2xx response from the backend.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("backend API error: status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend API error (status %d): %s", e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return shared.ErrAPIRequest }

// IsStatusError reports whether err carries a non-2xx backend response.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

var _ Backend = (*BackendService)(nil)

// BackendOptions configures a [BackendService].
type BackendOptions struct {
	BaseURL           string
	HTTPClient        *http.Client
	RequestsPerSecond float64 // 0 = unlimited
	UserAgent         string
	Logger            *log.Logger
}

// BackendService implements [Backend] over HTTP.
type BackendService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	logger     *log.Logger
}

// NewBackendService creates a backend client from opts, filling in defaults for empty fields.
func NewBackendService(opts BackendOptions) *BackendService {
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
	}

	logger := opts.Logger
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	return &BackendService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, 1),
		userAgent:  opts.UserAgent,
		logger:     logger,
	}
}

// BaseURL returns the backend address requests are sent to.
func (b *BackendService) BaseURL() string { return b.baseURL }

// doRequest sends req and decodes a 2xx JSON body into result when result is non-nil.
func (b *BackendService) doRequest(req *http.Request, result any) error {
	if err := b.limiter.Wait(req.Context()); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", shared.ErrAPIRequest, err)
	}

	if b.userAgent != "" {
		req.Header.Set("User-Agent", b.userAgent)
	}

	b.logger.Debug("backend request", "method", req.Method, "path", req.URL.Path)

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: request failed: %w", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		b.logger.Debug("backend error response", "path", req.URL.Path, "status", resp.StatusCode)
		return &StatusError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}

	if result == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("%w: failed to decode response: %w", shared.ErrMalformedResponse, err)
	}

	return nil
}

func (b *BackendService) postJSON(ctx context.Context, path string, payload, result any) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return b.doRequest(req, result)
}

func (b *BackendService) get(ctx context.Context, path string, result any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	return b.doRequest(req, result)
}

func postPath(videoID, action string) string {
	return "/api/v1/post/" + url.PathEscape(videoID) + "/" + action
}

// Login verifies credentials against POST /api/v1/users/login.
//
// Every failure wraps [shared.ErrAuthFailed] along with the underlying cause.
func (b *BackendService) Login(ctx context.Context, username, password string) (string, error) {
	payload := struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}{username, password}

	var resp struct {
		Data *struct {
			Username string `json:"username"`
		} `json:"data"`
	}

	if err := b.postJSON(ctx, "/api/v1/users/login", payload, &resp); err != nil {
		return "", fmt.Errorf("%w: %w", shared.ErrAuthFailed, err)
	}
	if resp.Data == nil || resp.Data.Username == "" {
		return "", fmt.Errorf("%w: %w: username not found in response", shared.ErrAuthFailed, shared.ErrMalformedResponse)
	}

	return resp.Data.Username, nil
}

// ListUsers calls GET /api/v1/users/userlist.
func (b *BackendService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	var resp struct {
		Success bool                 `json:"success"`
		Data    []models.UserSummary `json:"data"`
	}

	if err := b.get(ctx, "/api/v1/users/userlist", &resp); err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, ErrUnsuccessful
	}
	if resp.Data == nil {
		return []models.UserSummary{}, nil
	}

	return resp.Data, nil
}

// ListVideos calls GET /api/v1/videos. A response without a data list yields no videos.
func (b *BackendService) ListVideos(ctx context.Context) ([]models.Video, error) {
	var resp struct {
		Message *struct {
			Data []models.Video `json:"data"`
		} `json:"message"`
	}

	if err := b.get(ctx, "/api/v1/videos", &resp); err != nil {
		return nil, err
	}
	if resp.Message == nil {
		return nil, fmt.Errorf("%w: missing message", shared.ErrMalformedResponse)
	}
	if resp.Message.Data == nil {
		return []models.Video{}, nil
	}

	return resp.Message.Data, nil
}

// IncrementViews calls POST /api/v1/post/{id}/views.
func (b *BackendService) IncrementViews(ctx context.Context, videoID string) error {
	return b.postJSON(ctx, postPath(videoID, "views"), nil, nil)
}

// ToggleLike calls POST /api/v1/post/{id}/likes. The backend decides whether this likes or unlikes.
func (b *BackendService) ToggleLike(ctx context.Context, videoID, username string) ([]models.Like, error) {
	payload := struct {
		Username string `json:"username"`
	}{username}

	var resp struct {
		Message *struct {
			Likes *[]models.Like `json:"likes"`
		} `json:"message"`
	}

	if err := b.postJSON(ctx, postPath(videoID, "likes"), payload, &resp); err != nil {
		return nil, err
	}
	if resp.Message == nil || resp.Message.Likes == nil {
		return nil, fmt.Errorf("%w: missing like list", shared.ErrMalformedResponse)
	}

	return *resp.Message.Likes, nil
}

// AddComment calls POST /api/v1/post/{id}/comments.
func (b *BackendService) AddComment(ctx context.Context, videoID, username, comment string) ([]models.Comment, error) {
	payload := struct {
		Username string `json:"username"`
		Comment  string `json:"comment"`
	}{username, comment}

	var resp struct {
		Message *struct {
			Comments *[]models.Comment `json:"comments"`
		} `json:"message"`
	}

	if err := b.postJSON(ctx, postPath(videoID, "comments"), payload, &resp); err != nil {
		return nil, err
	}
	if resp.Message == nil || resp.Message.Comments == nil {
		return nil, fmt.Errorf("%w: missing comment list", shared.ErrMalformedResponse)
	}

	return *resp.Message.Comments, nil
}

// UploadVideo streams req.File to POST /api/v1/post as multipart form data.
//
// The body is written through a pipe so large files are never held in memory.
func (b *BackendService) UploadVideo(ctx context.Context, upload UploadRequest) (*UploadResult, error) {
	if upload.File == nil || upload.FileName == "" {
		return nil, fmt.Errorf("%w: no file selected", shared.ErrMissingArgument)
	}

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writeUploadBody(mw, upload)
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/api/v1/post", pr)
	if err != nil {
		pr.Close()
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	var resp struct {
		Message *struct {
			ID string `json:"_id"`
		} `json:"message"`
	}

	err = b.doRequest(req, &resp)
	pr.Close()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", shared.ErrUploadFailed, err)
	}
	if resp.Message == nil {
		return nil, fmt.Errorf("%w: %w: missing message", shared.ErrUploadFailed, shared.ErrMalformedResponse)
	}

	return &UploadResult{VideoID: resp.Message.ID}, nil
}

func writeUploadBody(mw *multipart.Writer, upload UploadRequest) error {
	part, err := mw.CreateFormFile("videoFile", upload.FileName)
	if err != nil {
		return err
	}

	var src io.Reader = upload.File
	if upload.Progress != nil {
		src = &progressReader{r: upload.File, total: upload.Size, fn: upload.Progress}
	}
	if _, err := io.Copy(part, src); err != nil {
		return fmt.Errorf("failed to copy file: %w", err)
	}

	if err := mw.WriteField("title", upload.Title); err != nil {
		return err
	}
	return mw.WriteField("username", upload.Username)
}

type progressReader struct {
	r     io.Reader
	sent  int64
	total int64
	fn    func(sent, total int64)
}

func (p *progressReader) Read(buf []byte) (int, error) {
	n, err := p.r.Read(buf)
	if n > 0 {
		p.sent += int64(n)
		p.fn(p.sent, p.total)
	}
	return n, err
}
