// Package models defines the domain entities of the vtx video platform client.
//
// The package contains two categories of types:
//
// 1. Backend DTOs: read-only records decoded from the video platform API
//   - [Video] : an uploaded video with its owner, likes and comments
//   - [Comment] : a single comment on a video
//   - [Like] : a user's like on a video
//   - [Owner] : the uploading user of a video
//   - [UserSummary] : a creator shown in the user directory
//
// 2. Persistent Entities: local records kept by the client in SQLite
//   - [UploadRecord] : receipt for a video uploaded through this client
//
// Persistent entities implement the [Model] interface providing ID, timestamps and validation.
// [Repository] is the storage contract for them, listed through a typed filter such as [ReceiptFilter].
package models
