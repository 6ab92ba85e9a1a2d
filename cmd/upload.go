package main

import (
	"context"
	"fmt"
	"sync"

	"github.com/desertthunder/vtx/internal/formatter"
	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/shared"
	"github.com/desertthunder/vtx/internal/tasks"
	"github.com/desertthunder/vtx/internal/views"
	"github.com/urfave/cli/v3"
)

const progressBuffer = 50

// Upload sends one or more files as the signed-in user.
//
// A single file goes through the same dialog flow the TUI uses; several files are uploaded
// concurrently by the bulk engine. Receipts are recorded in the configured database unless --no-receipts.
func (r *Runner) Upload(ctx context.Context, cmd *cli.Command) error {
	files := cmd.Args().Slice()
	if len(files) == 0 {
		return fmt.Errorf("%w: at least one FILE", shared.ErrMissingArgument)
	}

	if err := r.signIn(ctx, cmd); err != nil {
		return err
	}

	var receipts tasks.ReceiptStore
	if !cmd.Bool("no-receipts") {
		repo, db, err := r.openReceipts()
		if err != nil {
			return err
		}
		defer db.Close()
		receipts = repo
	}
	engine := r.newEngine(receipts)

	if len(files) == 1 {
		return r.uploadOne(ctx, engine, files[0], cmd.String("title"))
	}
	return r.uploadMany(ctx, engine, files, cmd)
}

func (r *Runner) uploadOne(ctx context.Context, engine *tasks.UploadEngine, file, title string) error {
	flow := views.NewUploadFlow(engine, r.session, r.logger)
	flow.Open()
	flow.SelectFile(file)
	flow.SetTitle(title)

	progress := make(chan tasks.ProgressUpdate, progressBuffer)
	done := r.printProgress(progress)

	err := flow.Submit(ctx, progress)
	close(progress)
	done.Wait()

	if err != nil {
		if alert, ok := views.AsAlert(err); ok {
			return alert
		}
		return fmt.Errorf("%s: %w", views.MsgUploadFailed, err)
	}

	status := flow.Status()
	r.writePlain("✓ %s\n", status.Message)
	return r.writePlain("Video ID: %s\n", status.VideoID)
}

func (r *Runner) uploadMany(ctx context.Context, engine *tasks.UploadEngine, files []string, cmd *cli.Command) error {
	username := r.session.Username()
	if username == "" {
		return fmt.Errorf("%w: %s", shared.ErrNotAuthenticated, views.MsgLoginToUpload)
	}

	jobs := make([]tasks.UploadJob, len(files))
	for i, f := range files {
		jobs[i] = tasks.UploadJob{Path: f, Username: username}
	}

	opts := tasks.BulkUploadOpts{
		NumWorkers: int(cmd.Int("workers")),
		RateLimit:  cmd.Float("rate"),
	}
	if opts.NumWorkers == 0 {
		opts.NumWorkers = r.config.Upload.Workers
	}
	if opts.RateLimit == 0 {
		opts.RateLimit = r.config.Upload.RequestsPerSecond
	}

	progress := make(chan tasks.ProgressUpdate, progressBuffer)
	done := r.printProgress(progress)

	result, err := engine.BulkUpload(ctx, progress, jobs, opts)
	close(progress)
	done.Wait()

	if err != nil {
		return fmt.Errorf("bulk upload interrupted: %w", err)
	}

	r.writePlainHeader("Upload summary")
	for _, res := range result.Results {
		if res.Success() {
			r.writePlain("✓ %s → %s\n", res.Job.FileName(), res.VideoID)
		} else {
			r.writePlain("✗ %s: %v\n", res.Job.FileName(), res.Error)
		}
	}
	r.writePlain("\n%d uploaded, %d failed, %d total\n", result.Successful, result.Failed, result.Total)

	if result.Failed > 0 {
		return fmt.Errorf("%w: %d of %d files", shared.ErrUploadFailed, result.Failed, result.Total)
	}
	return nil
}

// printProgress logs each phase change from progress until the channel closes.
func (r *Runner) printProgress(progress <-chan tasks.ProgressUpdate) *sync.WaitGroup {
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		last := ""
		for update := range progress {
			if update.Phase == tasks.Transfer && update.Message == last {
				continue
			}
			last = update.Message
			r.logger.Info(update.Message, "phase", update.Phase)
		}
	}()
	return &wg
}

// UploadsList prints the locally recorded upload receipts.
func (r *Runner) UploadsList(ctx context.Context, cmd *cli.Command) error {
	repo, db, err := r.openReceipts()
	if err != nil {
		return err
	}
	defer db.Close()

	uploads, err := repo.List(models.ReceiptFilter{
		Username: cmd.String("username"),
		Limit:    int(cmd.Int("limit")),
	})
	if err != nil {
		return fmt.Errorf("failed to list uploads: %w", err)
	}

	_, err = r.output.Write(formatter.UploadsToText(uploads))
	return err
}

func uploadCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:      "upload",
		Usage:     "Upload video files",
		ArgsUsage: "FILE...",
		Flags: append([]cli.Flag{
			&cli.StringFlag{
				Name:  "title",
				Usage: "Title for a single upload",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Concurrent uploads when sending several files (default from config)",
			},
			&cli.FloatFlag{
				Name:  "rate",
				Usage: "Upload starts per second when sending several files (default from config)",
			},
			&cli.BoolFlag{
				Name:  "no-receipts",
				Usage: "Do not record receipts in the local database",
			},
		}, authFlags()...),
		Action: r.Upload,
	}
}

func uploadsCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "uploads",
		Usage: "Inspect locally recorded upload receipts",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List upload receipts",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "username",
						Usage: "Only show uploads by this user",
					},
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Show only the most recent N receipts",
					},
				},
				Action: r.UploadsList,
			},
		},
	}
}
