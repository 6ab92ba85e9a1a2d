package models

import (
	"fmt"
	"time"
)

var _ Model = (*UploadRecord)(nil)

// UploadRecord is the local receipt written after the backend accepts an upload.
type UploadRecord struct {
	id        string
	sequence  int
	videoID   string
	title     string
	fileName  string
	username  string
	createdAt time.Time
	updatedAt time.Time
	deletedAt *time.Time
}

// NewUploadRecord creates a receipt stamped with the current time.
func NewUploadRecord(sequence int, videoID, title, fileName, username string) *UploadRecord {
	now := time.Now().UTC()
	return &UploadRecord{
		sequence:  sequence,
		videoID:   videoID,
		title:     title,
		fileName:  fileName,
		username:  username,
		createdAt: now,
		updatedAt: now,
	}
}

func (u *UploadRecord) ID() string            { return u.id }
func (u *UploadRecord) Sequence() int         { return u.sequence }
func (u *UploadRecord) VideoID() string       { return u.videoID }
func (u *UploadRecord) Title() string         { return u.title }
func (u *UploadRecord) FileName() string      { return u.fileName }
func (u *UploadRecord) Username() string      { return u.username }
func (u *UploadRecord) CreatedAt() time.Time  { return u.createdAt }
func (u *UploadRecord) UpdatedAt() time.Time  { return u.updatedAt }
func (u *UploadRecord) DeletedAt() *time.Time { return u.deletedAt }

func (u *UploadRecord) SetID(id string)           { u.id = id }
func (u *UploadRecord) SetSequence(seq int)       { u.sequence = seq }
func (u *UploadRecord) SetTitle(title string)     { u.title = title }
func (u *UploadRecord) SetCreatedAt(t time.Time)  { u.createdAt = t }
func (u *UploadRecord) SetUpdatedAt(t time.Time)  { u.updatedAt = t }
func (u *UploadRecord) SetDeletedAt(t *time.Time) { u.deletedAt = t }

// Validate requires the backend video ID, the local file name and the uploader.
func (u *UploadRecord) Validate() error {
	switch {
	case u.videoID == "":
		return fmt.Errorf("video id is required")
	case u.fileName == "":
		return fmt.Errorf("file name is required")
	case u.username == "":
		return fmt.Errorf("username is required")
	}
	return nil
}
