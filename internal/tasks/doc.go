// Package tasks runs video uploads with real-time progress reporting.
//
// # Core Operations
//
// [UploadEngine] exposes two operations:
//
//  1. [UploadEngine.Upload] : a single file
//     - Opens the file and streams it to the backend as multipart form data
//     - Reports transferred bytes as [Transfer] updates
//     - Writes a local receipt when a [ReceiptStore] is configured
//
//  2. [UploadEngine.BulkUpload] : many files through a bounded worker pool
//     - Starts are paced by a rate limiter
//     - Failures are collected per file and never stop the batch
//
// # Progress Reporting
//
// All operations use non-blocking channels for progress updates.
//
// The [ProgressUpdate] struct contains phase, step counters, a message and optional data.
// Updates use select with default so a slow reader never stalls a transfer.
//
// # Receipts
//
// Receipts are best effort: a failed write is logged and reported on the result
// but does not turn a successful upload into a failure.
package tasks
