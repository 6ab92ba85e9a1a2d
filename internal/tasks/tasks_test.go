package tasks

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/services/servicestest"
	"github.com/desertthunder/vtx/internal/shared"
)

type memoryReceipts struct {
	mu      sync.Mutex
	records []*models.UploadRecord
	err     error
}

func (m *memoryReceipts) Create(upload *models.UploadRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	upload.SetID("receipt-" + upload.VideoID())
	m.records = append(m.records, upload)
	return nil
}

func writeVideo(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

func drain(ch chan ProgressUpdate) []ProgressUpdate {
	close(ch)
	var out []ProgressUpdate
	for u := range ch {
		out = append(out, u)
	}
	return out
}

func TestUploadEngine(t *testing.T) {
	t.Run("Upload", func(t *testing.T) {
		t.Run("Success Writes Receipt", func(t *testing.T) {
			path := writeVideo(t, t.TempDir(), "clip.mp4", "video-bytes")
			backend := &servicestest.MockBackend{UploadID: "v1"}
			receipts := &memoryReceipts{}
			engine := NewUploadEngine(backend, receipts, nil)

			progress := make(chan ProgressUpdate, 16)
			res, err := engine.Upload(context.Background(), progress, UploadJob{Path: path, Title: "Clip", Username: "alice"})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if res.VideoID != "v1" || res.Bytes != int64(len("video-bytes")) {
				t.Errorf("unexpected result %+v", res)
			}
			if res.Receipt == nil || res.Receipt.FileName() != "clip.mp4" || res.Receipt.Title() != "Clip" {
				t.Errorf("unexpected receipt %+v", res.Receipt)
			}

			if len(backend.Uploaded) != 1 {
				t.Fatalf("expected 1 upload, got %d", len(backend.Uploaded))
			}
			req := backend.Uploaded[0]
			if req.FileName != "clip.mp4" || req.Title != "Clip" || req.Username != "alice" || req.Size != 11 {
				t.Errorf("unexpected request %+v", req)
			}

			updates := drain(progress)
			if len(updates) == 0 {
				t.Fatal("expected progress updates")
			}
			if updates[0].Phase != OpenFile {
				t.Errorf("expected first phase open_file, got %s", updates[0].Phase)
			}
			if last := updates[len(updates)-1]; last.Phase != SaveReceipt || last.Data != "v1" {
				t.Errorf("expected final save_receipt update, got %+v", last)
			}
		})

		t.Run("Requires Username", func(t *testing.T) {
			path := writeVideo(t, t.TempDir(), "clip.mp4", "x")
			backend := &servicestest.MockBackend{}
			engine := NewUploadEngine(backend, nil, nil)

			_, err := engine.Upload(context.Background(), nil, UploadJob{Path: path})
			if !errors.Is(err, shared.ErrNotAuthenticated) {
				t.Errorf("expected ErrNotAuthenticated, got %v", err)
			}
			if backend.Count("UploadVideo") != 0 {
				t.Error("no request should be sent without a username")
			}
		})

		t.Run("Requires File", func(t *testing.T) {
			engine := NewUploadEngine(&servicestest.MockBackend{}, nil, nil)

			_, err := engine.Upload(context.Background(), nil, UploadJob{Username: "alice"})
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Errorf("expected ErrMissingArgument, got %v", err)
			}
		})

		t.Run("Missing File", func(t *testing.T) {
			engine := NewUploadEngine(&servicestest.MockBackend{}, nil, nil)

			_, err := engine.Upload(context.Background(), nil, UploadJob{Path: filepath.Join(t.TempDir(), "nope.mp4"), Username: "alice"})
			if !errors.Is(err, os.ErrNotExist) {
				t.Errorf("expected os.ErrNotExist, got %v", err)
			}
		})

		t.Run("Directory Rejected", func(t *testing.T) {
			engine := NewUploadEngine(&servicestest.MockBackend{}, nil, nil)

			_, err := engine.Upload(context.Background(), nil, UploadJob{Path: t.TempDir(), Username: "alice"})
			if !errors.Is(err, shared.ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})

		t.Run("Backend Failure", func(t *testing.T) {
			path := writeVideo(t, t.TempDir(), "clip.mp4", "x")
			receipts := &memoryReceipts{}
			engine := NewUploadEngine(&servicestest.MockBackend{UploadErr: errors.New("boom")}, receipts, nil)

			res, err := engine.Upload(context.Background(), nil, UploadJob{Path: path, Username: "alice"})
			if !errors.Is(err, shared.ErrUploadFailed) {
				t.Errorf("expected ErrUploadFailed, got %v", err)
			}
			if res.Success() {
				t.Error("expected result to report failure")
			}
			if len(receipts.records) != 0 {
				t.Error("no receipt should be written for a failed upload")
			}
		})

		t.Run("Receipt Failure Keeps Upload", func(t *testing.T) {
			path := writeVideo(t, t.TempDir(), "clip.mp4", "x")
			receipts := &memoryReceipts{err: errors.New("disk full")}
			engine := NewUploadEngine(&servicestest.MockBackend{UploadID: "v1"}, receipts, nil)

			res, err := engine.Upload(context.Background(), nil, UploadJob{Path: path, Username: "alice"})
			if err != nil {
				t.Fatalf("expected upload to succeed, got %v", err)
			}
			if res.ReceiptErr == nil || res.Receipt != nil {
				t.Errorf("expected receipt error to be reported, got %+v", res)
			}
		})

		t.Run("Nil Backend", func(t *testing.T) {
			engine := NewUploadEngine(nil, nil, nil)
			_, err := engine.Upload(context.Background(), nil, UploadJob{Path: "x", Username: "alice"})
			if !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})

	t.Run("BulkUpload", func(t *testing.T) {
		t.Run("Uploads Every File", func(t *testing.T) {
			dir := t.TempDir()
			var jobs []UploadJob
			for _, name := range []string{"a.mp4", "b.mp4", "c.mp4", "d.mp4"} {
				jobs = append(jobs, UploadJob{Path: writeVideo(t, dir, name, name), Title: name, Username: "alice"})
			}

			backend := &servicestest.MockBackend{UploadID: "vid"}
			receipts := &memoryReceipts{}
			engine := NewUploadEngine(backend, receipts, nil)

			progress := make(chan ProgressUpdate, 64)
			res, err := engine.BulkUpload(context.Background(), progress, jobs, BulkUploadOpts{NumWorkers: 2, RateLimit: 1000})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if res.Total != 4 || res.Successful != 4 || res.Failed != 0 {
				t.Errorf("unexpected summary %+v", res)
			}
			if backend.Count("UploadVideo") != 4 {
				t.Errorf("expected 4 uploads, got %d", backend.Count("UploadVideo"))
			}
			if len(receipts.records) != 4 {
				t.Errorf("expected 4 receipts, got %d", len(receipts.records))
			}

			var completed int
			for _, u := range drain(progress) {
				if u.Phase == BulkUpload && strings.Contains(u.Message, "✓") {
					completed++
				}
			}
			if completed != 4 {
				t.Errorf("expected 4 completion updates, got %d", completed)
			}
		})

		t.Run("Partial Failure", func(t *testing.T) {
			dir := t.TempDir()
			jobs := []UploadJob{
				{Path: writeVideo(t, dir, "ok.mp4", "x"), Username: "alice"},
				{Path: filepath.Join(dir, "missing.mp4"), Username: "alice"},
			}

			engine := NewUploadEngine(&servicestest.MockBackend{UploadID: "v"}, nil, nil)
			res, err := engine.BulkUpload(context.Background(), nil, jobs, BulkUploadOpts{RateLimit: 1000})
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if res.Successful != 1 || res.Failed != 1 {
				t.Errorf("expected 1 success and 1 failure, got %+v", res)
			}
		})

		t.Run("Canceled Context", func(t *testing.T) {
			dir := t.TempDir()
			jobs := []UploadJob{
				{Path: writeVideo(t, dir, "a.mp4", "x"), Username: "alice"},
				{Path: writeVideo(t, dir, "b.mp4", "x"), Username: "alice"},
			}

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			engine := NewUploadEngine(&servicestest.MockBackend{}, nil, nil)
			res, err := engine.BulkUpload(ctx, nil, jobs, BulkUploadOpts{})
			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled, got %v", err)
			}
			if res == nil || res.Total != 2 {
				t.Errorf("expected partial result, got %+v", res)
			}
		})

		t.Run("Nil Backend", func(t *testing.T) {
			engine := NewUploadEngine(nil, nil, nil)
			if _, err := engine.BulkUpload(context.Background(), nil, nil, BulkUploadOpts{}); !errors.Is(err, shared.ErrServiceUnavailable) {
				t.Errorf("expected ErrServiceUnavailable, got %v", err)
			}
		})
	})
}

func TestProgressUpdate(t *testing.T) {
	t.Run("Fraction", func(t *testing.T) {
		tests := []struct {
			step, total int
			want        float64
		}{
			{0, 0, 0},
			{5, 10, 0.5},
			{20, 10, 1},
		}
		for _, tt := range tests {
			got := ProgressUpdate{Step: tt.step, Total: tt.total}.Fraction()
			if got != tt.want {
				t.Errorf("Fraction(%d/%d) = %v, want %v", tt.step, tt.total, got, tt.want)
			}
		}
	})

	t.Run("Phase String", func(t *testing.T) {
		for phase, want := range map[Phase]string{OpenFile: "open_file", Transfer: "transfer", SaveReceipt: "save_receipt", BulkUpload: "bulk_upload", Phase(99): ""} {
			if got := phase.String(); got != want {
				t.Errorf("expected %q, got %q", want, got)
			}
		}
	})

	t.Run("Format Bytes", func(t *testing.T) {
		if got := formatBytes(512); got != "512 B" {
			t.Errorf("expected 512 B, got %s", got)
		}
		if got := formatBytes(1536); got != "1.5 KiB" {
			t.Errorf("expected 1.5 KiB, got %s", got)
		}
		if got := formatBytes(5 * 1024 * 1024); got != "5.0 MiB" {
			t.Errorf("expected 5.0 MiB, got %s", got)
		}
	})
}
