package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/shared"
)

// DefaultMaxUploadBytes caps a single multipart upload.
const DefaultMaxUploadBytes = 256 << 20

const mediaPrefix = "/media/"

// DevUser is an account known to [DevBackend].
type DevUser struct {
	Username string
	Password string
	Avatar   string
}

// DevBackend is an in-memory implementation of the video platform API.
//
// Videos are returned in insertion order; the client sorts them.
type DevBackend struct {
	mu sync.RWMutex

	logger   *log.Logger
	maxBytes int64
	now      func() time.Time

	users  []DevUser
	videos []*models.Video
	media  map[string][]byte
}

// NewDevBackend creates an empty backend.
func NewDevBackend(logger *log.Logger) *DevBackend {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &DevBackend{
		logger:   logger.With("component", "dev-backend"),
		maxBytes: DefaultMaxUploadBytes,
		now:      time.Now,
		media:    make(map[string][]byte),
	}
}

// AddUser registers an account. A later call with the same username replaces it.
func (b *DevBackend) AddUser(u DevUser) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := range b.users {
		if b.users[i].Username == u.Username {
			b.users[i] = u
			return
		}
	}
	b.users = append(b.users, u)
}

// AddVideo stores v as-is, assigning an ID and creation time when missing.
func (b *DevBackend) AddVideo(v models.Video) models.Video {
	if v.ID == "" {
		v.ID = shared.GenerateID()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = b.now()
	}

	stored := snapshot(&v)

	b.mu.Lock()
	defer b.mu.Unlock()
	b.videos = append(b.videos, &stored)
	return v
}

// Video returns a copy of the stored video with id.
func (b *DevBackend) Video(id string) (models.Video, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if v := b.find(id); v != nil {
		return snapshot(v), true
	}
	return models.Video{}, false
}

// snapshot copies v including its slices. Stored videos are read under b.mu.
func snapshot(v *models.Video) models.Video {
	out := *v
	out.Owner = slices.Clone(v.Owner)
	out.Likes = slices.Clone(v.Likes)
	out.Comments = slices.Clone(v.Comments)
	return out
}

// Register mounts the API routes on r.
func (b *DevBackend) Register(r Router) {
	r.Handle(http.MethodPost, "/api/v1/users/login", http.HandlerFunc(b.login))
	r.Handle(http.MethodGet, "/api/v1/users/userlist", http.HandlerFunc(b.userList))
	r.Handle(http.MethodGet, "/api/v1/videos", http.HandlerFunc(b.listVideos))
	r.Handle(http.MethodPost, "/api/v1/post", http.HandlerFunc(b.upload))
	r.Handle(http.MethodPost, "/api/v1/post/{id}/views", http.HandlerFunc(b.views))
	r.Handle(http.MethodPost, "/api/v1/post/{id}/likes", http.HandlerFunc(b.likes))
	r.Handle(http.MethodPost, "/api/v1/post/{id}/comments", http.HandlerFunc(b.comments))
	r.Handler(mediaHandler{b})
}

// NewDevRouter builds a router with request logging and panic recovery around b.
func NewDevRouter(b *DevBackend) *BasicRouter {
	r := NewBasicRouter()
	r.Use(Recoverer(b.logger), RequestLogger(b.logger))
	b.Register(r)
	return r
}

func (b *DevBackend) find(id string) *models.Video {
	for _, v := range b.videos {
		if v.ID == id {
			return v
		}
	}
	return nil
}

func (b *DevBackend) user(username string) (DevUser, bool) {
	for _, u := range b.users {
		if u.Username == username {
			return u, true
		}
	}
	return DevUser{}, false
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]any{"success": false, "message": msg})
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(v)
}

func (b *DevBackend) login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b.mu.RLock()
	u, ok := b.user(req.Username)
	b.mu.RUnlock()

	if !ok || u.Password != req.Password {
		writeError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    map[string]string{"username": u.Username},
	})
}

func (b *DevBackend) userList(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	users := make([]models.UserSummary, len(b.users))
	for i, u := range b.users {
		users[i] = models.UserSummary{Username: u.Username, AvatarURL: u.Avatar}
	}
	b.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{"success": true, "data": users})
}

func (b *DevBackend) listVideos(w http.ResponseWriter, r *http.Request) {
	b.mu.RLock()
	videos := make([]models.Video, len(b.videos))
	for i, v := range b.videos {
		videos[i] = snapshot(v)
	}
	b.mu.RUnlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"message": map[string]any{"data": videos},
	})
}

func (b *DevBackend) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, b.maxBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		writeError(w, http.StatusBadRequest, "Invalid multipart body")
		return
	}
	defer r.MultipartForm.RemoveAll()

	username := strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}

	file, header, err := r.FormFile("videoFile")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Video file is required")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read video file")
		return
	}

	b.mu.RLock()
	_, known := b.user(username)
	b.mu.RUnlock()
	if !known {
		writeError(w, http.StatusNotFound, "User not found")
		return
	}

	title := r.FormValue("title")
	if title == "" {
		title = header.Filename
	}

	id := shared.GenerateID()
	b.mu.Lock()
	b.media[id] = data
	b.mu.Unlock()

	v := b.AddVideo(models.Video{
		ID:           id,
		Title:        title,
		Owner:        []models.Owner{{Username: username}},
		VideoFileURL: "http://" + r.Host + mediaPrefix + id,
	})

	b.logger.Info("video uploaded", "id", v.ID, "username", username, "bytes", len(data))
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": map[string]string{"_id": v.ID},
	})
}

func (b *DevBackend) views(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	v := b.find(r.PathValue("id"))
	if v != nil {
		v.Views++
	}
	b.mu.Unlock()

	if v == nil {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (b *DevBackend) likes(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
	}
	if err := decodeBody(r, &req); err != nil || req.Username == "" {
		writeError(w, http.StatusBadRequest, "Username is required")
		return
	}

	b.mu.Lock()
	v := b.find(r.PathValue("id"))
	var likes []models.Like
	if v != nil {
		i := slices.IndexFunc(v.Likes, func(l models.Like) bool { return l.Username == req.Username })
		if i >= 0 {
			v.Likes = slices.Concat(v.Likes[:i], v.Likes[i+1:])
		} else {
			v.Likes = append(v.Likes, models.Like{Username: req.Username})
		}
		likes = slices.Clone(v.Likes)
	}
	b.mu.Unlock()

	if v == nil {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": map[string]any{"likes": likes},
	})
}

func (b *DevBackend) comments(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Comment  string `json:"comment"`
	}
	if err := decodeBody(r, &req); err != nil || req.Username == "" || req.Comment == "" {
		writeError(w, http.StatusBadRequest, "Username and comment are required")
		return
	}

	b.mu.Lock()
	v := b.find(r.PathValue("id"))
	var comments []models.Comment
	if v != nil {
		v.Comments = append(slices.Clone(v.Comments), models.Comment{
			ID:       shared.GenerateID(),
			Username: req.Username,
			Comment:  req.Comment,
		})
		comments = slices.Clone(v.Comments)
	}
	b.mu.Unlock()

	if v == nil {
		writeError(w, http.StatusNotFound, "Video not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"message": map[string]any{"comments": comments},
	})
}

// mediaHandler serves uploaded video bytes under /media/{id}.
type mediaHandler struct {
	backend *DevBackend
}

func (h mediaHandler) Routes() []string { return []string{"GET " + mediaPrefix + "{id}"} }

func (h mediaHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.backend.mu.RLock()
	data, ok := h.backend.media[r.PathValue("id")]
	h.backend.mu.RUnlock()

	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Write(data)
}
