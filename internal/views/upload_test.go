package views

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/desertthunder/vtx/internal/services/servicestest"
	"github.com/desertthunder/vtx/internal/session"
	"github.com/desertthunder/vtx/internal/tasks"
)

func newUploadFlow(backend *servicestest.MockBackend, store *session.Store) *UploadFlow {
	return NewUploadFlow(tasks.NewUploadEngine(backend, nil, nil), store, nil)
}

func tempVideo(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clip.mp4")
	if err := os.WriteFile(path, []byte("video"), 0644); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestUploadFlow(t *testing.T) {
	t.Run("No File Alerts Without Request", func(t *testing.T) {
		backend := &servicestest.MockBackend{}
		flow := newUploadFlow(backend, signedIn("alice"))
		flow.Open()

		err := flow.Submit(context.Background(), nil)
		alert, ok := AsAlert(err)
		if !ok || alert.Message != MsgSelectPost {
			t.Fatalf("expected %q alert, got %v", MsgSelectPost, err)
		}
		if backend.Count("UploadVideo") != 0 {
			t.Error("no request should be sent without a file")
		}
		if flow.Status().State != UploadIdle {
			t.Errorf("expected idle, got %s", flow.Status().State)
		}
	})

	t.Run("File Is Checked Before Identity", func(t *testing.T) {
		flow := newUploadFlow(&servicestest.MockBackend{}, session.NewStore())

		alert, ok := AsAlert(flow.Submit(context.Background(), nil))
		if !ok || alert.Message != MsgSelectPost {
			t.Errorf("expected %q alert first, got %v", MsgSelectPost, alert)
		}
	})

	t.Run("No Identity Alerts Without Request", func(t *testing.T) {
		backend := &servicestest.MockBackend{}
		flow := newUploadFlow(backend, session.NewStore())
		flow.SelectFile(tempVideo(t))

		alert, ok := AsAlert(flow.Submit(context.Background(), nil))
		if !ok || alert.Message != MsgLoginToUpload {
			t.Fatalf("expected %q alert, got %v", MsgLoginToUpload, alert)
		}
		if backend.Count("UploadVideo") != 0 {
			t.Error("no request should be sent without a session identity")
		}
	})

	t.Run("Success Clears File", func(t *testing.T) {
		backend := &servicestest.MockBackend{UploadID: "v1"}
		flow := newUploadFlow(backend, signedIn("alice"))
		flow.Open()
		flow.SelectFile(tempVideo(t))
		flow.SetTitle("My clip")

		if err := flow.Submit(context.Background(), nil); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		status := flow.Status()
		if status.State != UploadSucceeded || status.Message != MsgUploadSucceeded || status.VideoID != "v1" {
			t.Errorf("unexpected status %+v", status)
		}
		if status.File != "" {
			t.Error("expected file to be cleared")
		}
		if status.Title != "My clip" {
			t.Error("title is kept until the dialog closes")
		}

		req := backend.Uploaded[0]
		if req.Title != "My clip" || req.Username != "alice" || req.FileName != "clip.mp4" {
			t.Errorf("unexpected request %+v", req)
		}
	})

	t.Run("Failure Shows Generic Message", func(t *testing.T) {
		backend := &servicestest.MockBackend{UploadErr: statusErr(413)}
		flow := newUploadFlow(backend, signedIn("alice"))
		path := tempVideo(t)
		flow.SelectFile(path)

		err := flow.Submit(context.Background(), nil)
		if err == nil {
			t.Fatal("expected error")
		}
		if _, ok := AsAlert(err); ok {
			t.Error("upload failures use the inline message, not an alert")
		}

		status := flow.Status()
		if status.State != UploadFailed || status.Message != MsgUploadFailed {
			t.Errorf("unexpected status %+v", status)
		}
		if status.File != path {
			t.Error("file stays selected after a failure")
		}
	})

	t.Run("Close Resets Dialog", func(t *testing.T) {
		flow := newUploadFlow(&servicestest.MockBackend{UploadErr: errors.New("boom")}, signedIn("alice"))
		flow.Open()
		flow.SelectFile(tempVideo(t))
		flow.SetTitle("title")
		_ = flow.Submit(context.Background(), nil)

		flow.Close()

		if got := flow.Status(); got != (UploadStatus{}) {
			t.Errorf("expected zero status after close, got %+v", got)
		}
	})
}
