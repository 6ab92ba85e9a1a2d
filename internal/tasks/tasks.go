// package tasks implements video uploads against the platform backend.
//
// Operations emit progress updates via channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/services"
	"github.com/desertthunder/vtx/internal/shared"
)

// UploadJob names one file to upload and the form fields sent with it.
type UploadJob struct {
	Path     string
	Title    string
	Username string
}

// FileName returns the base name sent to the backend.
func (j UploadJob) FileName() string {
	return filepath.Base(j.Path)
}

// UploadResult describes the outcome of a single upload.
type UploadResult struct {
	Job        UploadJob
	VideoID    string
	Bytes      int64
	Receipt    *models.UploadRecord // nil when no store is configured or the write failed
	ReceiptErr error
	Error      error
}

// Success reports whether the backend accepted the file.
func (r UploadResult) Success() bool { return r.Error == nil }

// ReceiptStore persists upload receipts (repositories.UploadRepository).
type ReceiptStore interface {
	Create(upload *models.UploadRecord) error
}

// UploadEngine uploads files through a [services.Backend].
type UploadEngine struct {
	backend  services.Backend
	receipts ReceiptStore
	logger   *log.Logger
}

// NewUploadEngine creates an engine. receipts and logger may be nil.
func NewUploadEngine(backend services.Backend, receipts ReceiptStore, logger *log.Logger) *UploadEngine {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}
	return &UploadEngine{backend: backend, receipts: receipts, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
func (e *UploadEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// Upload sends a single file and records a receipt on success.
//
// The returned error matches [UploadResult.Error]; the result is always non-nil.
func (e *UploadEngine) Upload(ctx context.Context, progress chan<- ProgressUpdate, job UploadJob) (*UploadResult, error) {
	result := &UploadResult{Job: job}
	result.Error = e.upload(ctx, progress, job, result)
	return result, result.Error
}

func (e *UploadEngine) upload(ctx context.Context, progress chan<- ProgressUpdate, job UploadJob, result *UploadResult) error {
	if e.backend == nil {
		return fmt.Errorf("%w: backend not initialized", shared.ErrServiceUnavailable)
	}
	if job.Path == "" {
		return fmt.Errorf("%w: no file selected", shared.ErrMissingArgument)
	}
	if job.Username == "" {
		return shared.ErrNotAuthenticated
	}

	name := job.FileName()
	e.sendProgress(progress, openFileUpdate(name))

	f, err := os.Open(job.Path)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat %s: %w", name, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", shared.ErrInvalidArgument, name)
	}

	var sentBytes atomic.Int64
	res, err := e.backend.UploadVideo(ctx, services.UploadRequest{
		FileName: name,
		File:     f,
		Size:     info.Size(),
		Title:    job.Title,
		Username: job.Username,
		Progress: func(sent, total int64) {
			sentBytes.Store(sent)
			e.sendProgress(progress, transferUpdate(name, sent, total))
		},
	})
	result.Bytes = sentBytes.Load()
	if err != nil {
		e.logger.Error("upload failed", "file", name, "error", err)
		if !errors.Is(err, shared.ErrUploadFailed) {
			err = fmt.Errorf("%w: %w", shared.ErrUploadFailed, err)
		}
		return err
	}

	result.VideoID = res.VideoID
	e.logger.Info("upload complete", "file", name, "video_id", res.VideoID)

	if e.receipts != nil {
		receipt := models.NewUploadRecord(0, res.VideoID, job.Title, name, job.Username)
		if err := e.receipts.Create(receipt); err != nil {
			e.logger.Warn("failed to save upload receipt", "video_id", res.VideoID, "error", err)
			result.ReceiptErr = err
		} else {
			result.Receipt = receipt
		}
	}

	e.sendProgress(progress, receiptUpdate(name, res.VideoID))
	return nil
}
