package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Fraction returns Step/Total clamped to [0, 1], or 0 when Total is unknown.
func (p ProgressUpdate) Fraction() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Step) / float64(p.Total)
	return min(max(f, 0), 1)
}

// Operation phase enumeration
type Phase int

const (
	OpenFile Phase = iota
	Transfer
	SaveReceipt
	BulkUpload
)

func (p Phase) String() string {
	switch p {
	case OpenFile:
		return "open_file"
	case Transfer:
		return "transfer"
	case SaveReceipt:
		return "save_receipt"
	case BulkUpload:
		return "bulk_upload"
	default:
		return ""
	}
}

func openFileUpdate(name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   OpenFile,
		Step:    0,
		Total:   1,
		Message: fmt.Sprintf("Opening %s...", name),
	}
}

func transferUpdate(name string, sent, total int64) ProgressUpdate {
	msg := fmt.Sprintf("Uploading %s (%s)", name, formatBytes(sent))
	if total > 0 {
		msg = fmt.Sprintf("Uploading %s (%s / %s)", name, formatBytes(sent), formatBytes(total))
	}
	return ProgressUpdate{
		Phase:   Transfer,
		Step:    int(sent),
		Total:   int(total),
		Message: msg,
	}
}

func receiptUpdate(name, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveReceipt,
		Step:    1,
		Total:   1,
		Message: fmt.Sprintf("Uploaded %s (ID: %s)", name, videoID),
		Data:    videoID,
	}
}

func bulkStartUpdate(step, total int, name string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BulkUpload,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] Uploading: %s...", step, total, name),
	}
}

func bulkCompletedUpdate(step, total int, name, videoID string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BulkUpload,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (ID: %s)", step, total, name, videoID),
	}
}

func bulkFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   BulkUpload,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}

func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
