package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/vtx/internal/formatter"
	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/shared"
	"github.com/desertthunder/vtx/internal/views"
	"github.com/urfave/cli/v3"
)

// VideosList prints the feed, newest first.
func (r *Runner) VideosList(ctx context.Context, cmd *cli.Command) error {
	format, err := formatter.ParseFormat(cmd.String("format"))
	if err != nil {
		return err
	}

	feed := views.NewFeedView(r.backend, nil, r.logger)
	if err := feed.Load(ctx); err != nil {
		return fmt.Errorf("failed to fetch videos: %w", err)
	}

	if feed.Empty() && format == formatter.FormatText {
		return r.writePlain("%s\n", views.MsgNoVideos)
	}

	data, err := formatter.RenderVideos(feed.Videos(), format)
	if err != nil {
		return fmt.Errorf("failed to render videos: %w", err)
	}
	return formatter.WriteOutput(r.output, cmd.String("output"), data)
}

// findVideo looks id up in the backend's video list.
func (r *Runner) findVideo(ctx context.Context, id string) (models.Video, error) {
	if id == "" {
		return models.Video{}, fmt.Errorf("%w: --id", shared.ErrMissingArgument)
	}

	videos, err := r.backend.ListVideos(ctx)
	if err != nil {
		return models.Video{}, fmt.Errorf("failed to fetch videos: %w", err)
	}
	for _, v := range videos {
		if v.ID == id {
			return v, nil
		}
	}
	return models.Video{}, fmt.Errorf("%w: %s", shared.ErrVideoNotFound, id)
}

// openDetail signs in, finds the video and mounts a detail view on it.
//
// With countView the video is opened the way the feed opens it, recording a view first.
func (r *Runner) openDetail(ctx context.Context, cmd *cli.Command, countView bool) (*views.DetailView, error) {
	if err := r.signIn(ctx, cmd); err != nil {
		return nil, err
	}

	video, err := r.findVideo(ctx, cmd.String("id"))
	if err != nil {
		return nil, err
	}

	nav := views.NewNavigator()
	if countView {
		views.OpenVideo(ctx, r.backend, nav, r.logger, video)
	} else {
		nav.Navigate(views.VideoLocation(video))
	}

	detail := views.NewDetailView(r.backend, r.session, nav, r.logger).WithOpener(r.opener)
	if err := detail.Mount(nav.Current()); err != nil {
		return nil, err
	}
	return detail, nil
}

// VideosShow prints one video with its likes and comments.
func (r *Runner) VideosShow(ctx context.Context, cmd *cli.Command) error {
	detail, err := r.openDetail(ctx, cmd, cmd.Bool("view"))
	if err != nil {
		return err
	}

	state, _ := detail.State()
	if cmd.Bool("json") {
		return r.writeJSON(state.Video, true)
	}

	if _, err := r.output.Write(formatter.VideoToText(state.Video, r.session.Username())); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if !cmd.Bool("suggestions") {
		return nil
	}

	if err := detail.LoadSuggestions(ctx); err != nil {
		r.logger.Warn("failed to load suggestions", "error", err)
	}
	state, _ = detail.State()
	r.writePlainln("Suggestions")
	if len(state.Suggestions) == 0 {
		return r.writePlain("%s\n", views.MsgNoVideos)
	}
	for _, v := range state.Suggestions {
		r.writePlain("  %s  %s (%d views)\n", v.ID, v.Title, v.Views)
	}
	return nil
}

// VideosLike toggles the signed-in user's like and prints the new count.
func (r *Runner) VideosLike(ctx context.Context, cmd *cli.Command) error {
	detail, err := r.openDetail(ctx, cmd, false)
	if err != nil {
		return err
	}

	if err := detail.ToggleLike(ctx); err != nil {
		return err
	}

	state, _ := detail.State()
	verb := "Unliked"
	if state.LikedByMe {
		verb = "Liked"
	}
	return r.writePlain("✓ %s %q (%d likes)\n", verb, state.Video.Title, state.LikeCount)
}

// VideosComment posts --text as the signed-in user and prints the thread.
func (r *Runner) VideosComment(ctx context.Context, cmd *cli.Command) error {
	detail, err := r.openDetail(ctx, cmd, false)
	if err != nil {
		return err
	}

	text := cmd.String("text")
	if text == "" {
		return fmt.Errorf("%w: --text", shared.ErrMissingArgument)
	}

	detail.SetCommentInput(text)
	if err := detail.SubmitComment(ctx); err != nil {
		return err
	}

	state, _ := detail.State()
	r.writePlain("✓ Comment posted\n\n")
	return r.writePlain("%s", formatter.CommentsToText(state.Comments))
}

// VideosPlay opens the video file in the browser.
func (r *Runner) VideosPlay(ctx context.Context, cmd *cli.Command) error {
	detail, err := r.openDetail(ctx, cmd, true)
	if err != nil {
		return err
	}
	return detail.Play()
}

func videoIDFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "id",
		Usage:    "Video ID",
		Required: true,
	}
}

func videosCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "videos",
		Usage: "Browse the video feed",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List videos, newest first",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "format",
						Aliases: []string{"f"},
						Usage:   "Output format: text, json, csv or markdown",
						Value:   "text",
					},
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path",
					},
				},
				Action: r.VideosList,
			},
			{
				Name:  "show",
				Usage: "Show a video with its likes and comments",
				Flags: append([]cli.Flag{
					videoIDFlag(),
					&cli.BoolFlag{
						Name:  "view",
						Usage: "Count a view, as opening it from the feed does",
					},
					&cli.BoolFlag{
						Name:  "suggestions",
						Usage: "Also list the other videos",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				}, authFlags()...),
				Action: r.VideosShow,
			},
			{
				Name:   "like",
				Usage:  "Like or unlike a video",
				Flags:  append([]cli.Flag{videoIDFlag()}, authFlags()...),
				Action: r.VideosLike,
			},
			{
				Name:  "comment",
				Usage: "Comment on a video",
				Flags: append([]cli.Flag{
					videoIDFlag(),
					&cli.StringFlag{
						Name:     "text",
						Aliases:  []string{"t"},
						Usage:    "Comment text",
						Required: true,
					},
				}, authFlags()...),
				Action: r.VideosComment,
			},
			{
				Name:   "play",
				Usage:  "Open the video file in the browser",
				Flags:  append([]cli.Flag{videoIDFlag()}, authFlags()...),
				Action: r.VideosPlay,
			},
		},
	}
}
