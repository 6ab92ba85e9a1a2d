package models

import (
	"sort"
	"time"
)

// UnknownOwner is shown when a video carries no owner record.
const UnknownOwner = "Unknown"

// Owner is the uploading user associated with a video.
type Owner struct {
	Username string `json:"username"`
}

// Like records that a user liked a video.
type Like struct {
	Username string `json:"username"`
}

// Comment is a single comment on a video.
type Comment struct {
	ID       string `json:"_id"`
	Username string `json:"username"`
	Comment  string `json:"comment"`
}

// Video is a video record as served by the backend.
type Video struct {
	ID           string    `json:"_id"`
	Title        string    `json:"title"`
	VideoFileURL string    `json:"videoFile"`
	Thumbnail    string    `json:"thumbnail,omitempty"`
	Views        int       `json:"views"`
	Owner        []Owner   `json:"owner"`
	Likes        []Like    `json:"likes"`
	Comments     []Comment `json:"comments"`
	CreatedAt    time.Time `json:"createdAt"`
}

// OwnerName returns the first owner's username, or [UnknownOwner].
func (v Video) OwnerName() string {
	if len(v.Owner) == 0 || v.Owner[0].Username == "" {
		return UnknownOwner
	}
	return v.Owner[0].Username
}

// LikedBy reports whether username appears in the like list.
// An empty username never matches.
func (v Video) LikedBy(username string) bool {
	return LikedBy(v.Likes, username)
}

// LikedBy reports whether username appears in likes.
func LikedBy(likes []Like, username string) bool {
	if username == "" {
		return false
	}
	for _, l := range likes {
		if l.Username == username {
			return true
		}
	}
	return false
}

// SortByRecency orders videos newest first by CreatedAt. Ties keep their input order.
func SortByRecency(videos []Video) {
	sort.SliceStable(videos, func(i, j int) bool {
		return videos[i].CreatedAt.After(videos[j].CreatedAt)
	})
}

// UserSummary is a creator listed in the user directory.
type UserSummary struct {
	Username  string `json:"username"`
	AvatarURL string `json:"avatar"`
}
