// package formatter renders videos, users and upload receipts as text, JSON, CSV or Markdown
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/desertthunder/vtx/internal/models"
	"github.com/desertthunder/vtx/internal/shared"
)

// Format names an output encoding.
type Format string

const (
	FormatText     Format = "text"
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts text, txt, json, csv, markdown and md. Empty means text.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return "", fmt.Errorf("%w: unknown format %q (want text, json, csv or markdown)", shared.ErrInvalidArgument, s)
	}
}

// Date renders t as a local calendar date, or "" for the zero time.
func Date(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Local().Format("2006-01-02")
}

// VideosToCSV converts videos to CSV with columns: ID, Title, Owner, Views, Likes, Comments, Created, VideoFile
func VideosToCSV(videos []models.Video) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Owner", "Views", "Likes", "Comments", "Created", "VideoFile"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, v := range videos {
		record := []string{
			v.ID,
			v.Title,
			v.OwnerName(),
			strconv.Itoa(v.Views),
			strconv.Itoa(len(v.Likes)),
			strconv.Itoa(len(v.Comments)),
			Date(v.CreatedAt),
			v.VideoFileURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// VideosToMarkdown renders videos as a Markdown table
func VideosToMarkdown(videos []models.Video) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Videos\n\n")
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n\n", len(videos)))

	if len(videos) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Title | Owner | Views | Likes | Comments | Date |\n")
	buf.WriteString("|---|---|---|---|---|---|---|\n")
	for i, v := range videos {
		buf.WriteString(fmt.Sprintf("| %d | [%s](%s) | %s | %d | %d | %d | %s |\n",
			i+1, mdEscape(v.Title), v.VideoFileURL, mdEscape(v.OwnerName()), v.Views, len(v.Likes), len(v.Comments), Date(v.CreatedAt)))
	}

	return buf.Bytes(), nil
}

// VideosToText renders one line per video in feed order
func VideosToText(videos []models.Video) ([]byte, error) {
	var buf bytes.Buffer

	if len(videos) == 0 {
		buf.WriteString("No videos available.\n")
		return buf.Bytes(), nil
	}

	for i, v := range videos {
		buf.WriteString(fmt.Sprintf("%d. %s (%s)\n", i+1, v.Title, v.ID))
		buf.WriteString(fmt.Sprintf("   %s · %d views · %s\n", v.OwnerName(), v.Views, Date(v.CreatedAt)))
	}

	return buf.Bytes(), nil
}

// VideoToText renders a single video with its likes and comments
func VideoToText(v models.Video, viewer string) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s\n", v.Title))
	buf.WriteString(fmt.Sprintf("ID: %s\n", v.ID))
	buf.WriteString(fmt.Sprintf("Owner: %s\n", v.OwnerName()))
	buf.WriteString(fmt.Sprintf("Views: %d\n", v.Views))
	if d := Date(v.CreatedAt); d != "" {
		buf.WriteString(fmt.Sprintf("Uploaded: %s\n", d))
	}
	buf.WriteString(fmt.Sprintf("File: %s\n", v.VideoFileURL))

	likes := fmt.Sprintf("Likes: %d", len(v.Likes))
	if viewer != "" && v.LikedBy(viewer) {
		likes += " (liked by you)"
	}
	buf.WriteString(likes + "\n")

	buf.WriteString(fmt.Sprintf("Comments: %d\n", len(v.Comments)))
	buf.WriteString(CommentsToText(v.Comments))

	return buf.Bytes()
}

// CommentsToText renders "username: comment" lines
func CommentsToText(comments []models.Comment) string {
	var sb strings.Builder
	for _, c := range comments {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", c.Username, c.Comment))
	}
	return sb.String()
}

// UsersToText renders one username per line, marking the carousel position with an arrow
func UsersToText(users []models.UserSummary, current int) []byte {
	var buf bytes.Buffer

	if len(users) == 0 {
		buf.WriteString("No users found\n")
		return buf.Bytes()
	}

	for i, u := range users {
		marker := " "
		if i == current {
			marker = ">"
		}
		buf.WriteString(fmt.Sprintf("%s %d. %s\n", marker, i+1, u.Username))
	}

	return buf.Bytes()
}

// UsersToCSV converts users to CSV with columns: Username, Avatar
func UsersToCSV(users []models.UserSummary) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write([]string{"Username", "Avatar"}); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}
	for _, u := range users {
		if err := writer.Write([]string{u.Username, u.AvatarURL}); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// UsersToMarkdown renders users as a Markdown list with avatar links
func UsersToMarkdown(users []models.UserSummary) []byte {
	var buf bytes.Buffer

	buf.WriteString("# Creators\n\n")
	for i, u := range users {
		if u.AvatarURL != "" {
			buf.WriteString(fmt.Sprintf("%d. %s ([avatar](%s))\n", i+1, mdEscape(u.Username), u.AvatarURL))
		} else {
			buf.WriteString(fmt.Sprintf("%d. %s\n", i+1, mdEscape(u.Username)))
		}
	}

	return buf.Bytes()
}

// UploadsToText renders local upload receipts
func UploadsToText(uploads []*models.UploadRecord) []byte {
	var buf bytes.Buffer

	if len(uploads) == 0 {
		buf.WriteString("No uploads recorded\n")
		return buf.Bytes()
	}

	for _, u := range uploads {
		title := u.Title()
		if title == "" {
			title = "(untitled)"
		}
		buf.WriteString(fmt.Sprintf("#%d %s [%s] %s by %s on %s\n",
			u.Sequence(), title, u.VideoID(), u.FileName(), u.Username(), u.CreatedAt().Local().Format("2006-01-02 15:04")))
	}

	return buf.Bytes()
}

// RenderVideos encodes videos in format
func RenderVideos(videos []models.Video, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return shared.MarshalJSON(videos, true)
	case FormatCSV:
		return VideosToCSV(videos)
	case FormatMarkdown:
		return VideosToMarkdown(videos)
	default:
		return VideosToText(videos)
	}
}

// RenderUsers encodes users in format. current marks the carousel position in text output.
func RenderUsers(users []models.UserSummary, current int, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return shared.MarshalJSON(users, true)
	case FormatCSV:
		return UsersToCSV(users)
	case FormatMarkdown:
		return UsersToMarkdown(users), nil
	default:
		return UsersToText(users, current), nil
	}
}

// WriteOutput writes data to path, or to w when path is empty.
func WriteOutput(w io.Writer, path string, data []byte) error {
	if path == "" {
		_, err := w.Write(data)
		return err
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// DownloadImage downloads an image from the given URL and returns the raw bytes
func DownloadImage(url string) ([]byte, error) {
	if url == "" {
		return nil, fmt.Errorf("empty URL provided")
	}

	client := &http.Client{
		Timeout: 30 * time.Second,
	}

	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download image: status %d", resp.StatusCode)
	}

	imageData, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	return imageData, nil
}

// SaveAvatar downloads the user's avatar to path.
func SaveAvatar(user models.UserSummary, path string) error {
	if path == "" {
		return fmt.Errorf("%w: avatar output path", shared.ErrMissingArgument)
	}
	data, err := DownloadImage(user.AvatarURL)
	if err != nil {
		return err
	}
	return WriteOutput(nil, path, data)
}

func mdEscape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
