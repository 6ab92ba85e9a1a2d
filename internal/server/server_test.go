package server

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/services"
	"github.com/desertthunder/vtx/internal/shared"
	tu "github.com/desertthunder/vtx/internal/testing"
)

func newTestBackend(t *testing.T) (*DevBackend, *services.BackendService, *httptest.Server) {
	t.Helper()
	backend := NewDevBackend(nil)
	backend.AddUser(DevUser{Username: "alice", Password: "secret", Avatar: "http://img/alice.png"})
	backend.AddUser(DevUser{Username: "bob", Password: "hunter2"})

	ts := httptest.NewServer(NewDevRouter(backend))
	t.Cleanup(ts.Close)

	client := services.NewBackendService(services.BackendOptions{BaseURL: ts.URL})
	return backend, client, ts
}

func TestBasicRouter(t *testing.T) {
	t.Run("Rejects Other Methods", func(t *testing.T) {
		r := NewBasicRouter()
		r.Handle(http.MethodPost, "/things", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/things", nil))
		if rec.Code != http.StatusMethodNotAllowed {
			t.Errorf("expected 405, got %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/things", nil))
		if rec.Code != http.StatusNoContent {
			t.Errorf("expected 204, got %d", rec.Code)
		}
	})

	t.Run("Middleware Order", func(t *testing.T) {
		var order []string
		mark := func(name string) Middleware {
			return func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					order = append(order, name)
					next.ServeHTTP(w, r)
				})
			}
		}

		r := NewBasicRouter()
		r.Use(mark("first"), mark("second"))
		r.Handle(http.MethodGet, "/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			order = append(order, "handler")
		}))
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

		want := "first,second,handler"
		if got := strings.Join(order, ","); got != want {
			t.Errorf("expected %s, got %s", want, got)
		}
	})

	t.Run("Recoverer", func(t *testing.T) {
		r := NewBasicRouter()
		r.Use(Recoverer(shared.NewLogger(io.Discard)))
		r.Handle(http.MethodGet, "/boom", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("boom")
		}))

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("expected 500, got %d", rec.Code)
		}
	})

	t.Run("RequestLogger", func(t *testing.T) {
		var buf bytes.Buffer
		r := NewBasicRouter()
		r.Use(RequestLogger(shared.NewLogger(&buf)))
		r.Handle(http.MethodGet, "/missing", http.HandlerFunc(http.NotFound))

		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
		if !strings.Contains(buf.String(), "status=404") {
			t.Errorf("expected status in log line, got %q", buf.String())
		}
	})

	t.Run("Patterns", func(t *testing.T) {
		r := NewBasicRouter()
		NewDevBackend(nil).Register(r)

		patterns := r.Patterns()
		if len(patterns) != 8 {
			t.Errorf("expected 8 patterns, got %v", patterns)
		}
		if patterns[0] != "GET /api/v1/users/userlist" {
			t.Errorf("expected sorted patterns, got %v", patterns)
		}
	})
}

func TestDevBackend(t *testing.T) {
	ctx := context.Background()

	t.Run("Login", func(t *testing.T) {
		_, client, _ := newTestBackend(t)

		username, err := client.Login(ctx, "alice", "secret")
		if err != nil || username != "alice" {
			t.Fatalf("expected alice, got %q %v", username, err)
		}

		_, err = client.Login(ctx, "alice", "wrong")
		if !errors.Is(err, shared.ErrAuthFailed) {
			t.Errorf("expected ErrAuthFailed, got %v", err)
		}
		var status *services.StatusError
		if !errors.As(err, &status) || status.StatusCode != http.StatusUnauthorized {
			t.Errorf("expected 401 status error, got %v", err)
		}
	})

	t.Run("ListUsers", func(t *testing.T) {
		_, client, _ := newTestBackend(t)

		users, err := client.ListUsers(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(users) != 2 || users[0].Username != "alice" || users[0].AvatarURL != "http://img/alice.png" {
			t.Errorf("unexpected users %+v", users)
		}
	})

	t.Run("Upload Then List", func(t *testing.T) {
		backend, client, ts := newTestBackend(t)

		res, err := client.UploadVideo(ctx, services.UploadRequest{
			FileName: "clip.mp4",
			File:     strings.NewReader("video bytes"),
			Size:     11,
			Title:    "My clip",
			Username: "alice",
		})
		if err != nil {
			t.Fatalf("upload failed: %v", err)
		}

		stored, ok := backend.Video(res.VideoID)
		if !ok {
			t.Fatalf("expected video %s stored", res.VideoID)
		}
		if stored.Title != "My clip" || stored.OwnerName() != "alice" {
			t.Errorf("unexpected stored video %+v", stored)
		}

		videos, err := client.ListVideos(ctx)
		if err != nil || len(videos) != 1 {
			t.Fatalf("expected one video, got %d %v", len(videos), err)
		}

		resp, err := http.Get(ts.URL + "/media/" + res.VideoID)
		if err != nil {
			t.Fatalf("media request failed: %v", err)
		}
		defer resp.Body.Close()
		body, _ := io.ReadAll(resp.Body)
		if string(body) != "video bytes" {
			t.Errorf("expected uploaded bytes, got %q", body)
		}
		if !strings.HasSuffix(videos[0].VideoFileURL, "/media/"+res.VideoID) {
			t.Errorf("unexpected file URL %q", videos[0].VideoFileURL)
		}
		if stored.VideoFileURL != videos[0].VideoFileURL {
			t.Errorf("expected file URL stored with the video, got %q", stored.VideoFileURL)
		}
	})

	t.Run("Upload Unknown User", func(t *testing.T) {
		_, client, _ := newTestBackend(t)

		_, err := client.UploadVideo(ctx, services.UploadRequest{
			FileName: "clip.mp4",
			File:     strings.NewReader("x"),
			Username: "mallory",
		})
		if !errors.Is(err, shared.ErrUploadFailed) || !services.IsStatusError(err) {
			t.Errorf("expected upload status error, got %v", err)
		}
	})

	t.Run("Views", func(t *testing.T) {
		backend, client, _ := newTestBackend(t)
		v := backend.AddVideo(models.Video{Title: "seeded"})

		if err := client.IncrementViews(ctx, v.ID); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got, _ := backend.Video(v.ID); got.Views != 1 {
			t.Errorf("expected 1 view, got %d", got.Views)
		}

		if err := client.IncrementViews(ctx, "missing"); !services.IsStatusError(err) {
			t.Errorf("expected status error for unknown video, got %v", err)
		}
	})

	t.Run("Likes Toggle", func(t *testing.T) {
		backend, client, _ := newTestBackend(t)
		v := backend.AddVideo(models.Video{Title: "seeded", Likes: []models.Like{{Username: "bob"}}})

		likes, err := client.ToggleLike(ctx, v.ID, "alice")
		if err != nil || len(likes) != 2 || !models.LikedBy(likes, "alice") {
			t.Fatalf("expected alice to like, got %+v %v", likes, err)
		}

		likes, err = client.ToggleLike(ctx, v.ID, "alice")
		if err != nil || len(likes) != 1 || models.LikedBy(likes, "alice") {
			t.Fatalf("expected alice to unlike, got %+v %v", likes, err)
		}

		if _, err := client.ToggleLike(ctx, v.ID, ""); !services.IsStatusError(err) {
			t.Errorf("expected status error without username, got %v", err)
		}
	})

	t.Run("Comments", func(t *testing.T) {
		backend, client, _ := newTestBackend(t)
		v := backend.AddVideo(models.Video{Title: "seeded"})

		comments, err := client.AddComment(ctx, v.ID, "alice", "first!")
		if err != nil || len(comments) != 1 {
			t.Fatalf("expected one comment, got %+v %v", comments, err)
		}
		if comments[0].ID == "" || comments[0].Comment != "first!" {
			t.Errorf("unexpected comment %+v", comments[0])
		}

		if _, err := client.AddComment(ctx, "missing", "alice", "hi"); !services.IsStatusError(err) {
			t.Errorf("expected status error for unknown video, got %v", err)
		}
	})

	t.Run("Listing While Liking", func(t *testing.T) {
		backend, client, _ := newTestBackend(t)
		busy := tu.NewVideo("busy", time.Now(), "a", "b", "c", "d")
		busy.Comments = []models.Comment{{ID: "c1", Username: "bob", Comment: "hi"}}
		v := backend.AddVideo(busy)

		var wg sync.WaitGroup
		errs := make(chan error, 100)
		for i := range 50 {
			wg.Add(2)
			go func() {
				defer wg.Done()
				if _, err := client.ToggleLike(ctx, v.ID, "a"); err != nil {
					errs <- err
				}
			}()
			go func() {
				defer wg.Done()
				var err error
				if i%2 == 0 {
					_, err = client.ListVideos(ctx)
				} else {
					_, err = client.AddComment(ctx, v.ID, "alice", "again")
				}
				if err != nil {
					errs <- err
				}
			}()
		}
		wg.Wait()
		close(errs)
		for err := range errs {
			t.Errorf("unexpected error: %v", err)
		}

		// 50 toggles by the same user leave the original like list.
		got, _ := backend.Video(v.ID)
		if len(got.Likes) != 4 || !models.LikedBy(got.Likes, "a") {
			t.Errorf("expected the four original likes, got %+v", got.Likes)
		}
		if len(got.Comments) != 26 {
			t.Errorf("expected 26 comments, got %d", len(got.Comments))
		}
	})

	t.Run("Snapshots Do Not Alias Storage", func(t *testing.T) {
		backend, _, _ := newTestBackend(t)
		likes := []models.Like{{Username: "bob"}}
		v := backend.AddVideo(models.Video{Title: "seeded", Likes: likes})

		likes[0].Username = "mallory"
		got, _ := backend.Video(v.ID)
		got.Likes[0].Username = "eve"

		if again, _ := backend.Video(v.ID); again.Likes[0].Username != "bob" {
			t.Errorf("expected stored like from bob, got %q", again.Likes[0].Username)
		}
	})

	t.Run("Empty Video List", func(t *testing.T) {
		_, client, _ := newTestBackend(t)

		videos, err := client.ListVideos(ctx)
		if err != nil || len(videos) != 0 {
			t.Errorf("expected no videos, got %d %v", len(videos), err)
		}
	})
}

func TestListenAndServe(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	ready := make(chan string, 1)
	done := make(chan error, 1)

	go func() {
		done <- ListenAndServe(ctx, "127.0.0.1:0", NewDevRouter(NewDevBackend(nil)), shared.NewLogger(io.Discard), ready)
	}()

	var addr string
	select {
	case addr = <-ready:
	case <-time.After(2 * time.Second):
		t.Fatal("server did not start")
	}

	resp, err := http.Get("http://" + addr + "/api/v1/videos")
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("expected 200, got %d", resp.StatusCode)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("expected clean shutdown, got %v", err)
		}
	case <-time.After(6 * time.Second):
		t.Fatal("server did not stop")
	}
}
