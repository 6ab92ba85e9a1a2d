package views

import "errors"

// Blocking alert messages.
const (
	MsgSelectPost        = "Please select a post first"
	MsgLoginToUpload     = "You must be logged in to upload a post"
	MsgUploadFailed      = "An error occurred while uploading the file"
	MsgUploadSucceeded   = "Video uploaded successfully! Refresh the feed to find your video."
	MsgUsersUnsuccessful = "Failed to fetch users"
	MsgUsersError        = "Error fetching data"
	MsgNoUsers           = "No users found"
	MsgNoVideos          = "No videos available."
	MsgLoginToLike       = "Please log in to like this video."
	MsgLikeFailed        = "Failed to update like."
	MsgLoginToComment    = "Please log in to comment on this video."
	MsgCommentFailed     = "Failed to post the comment."
)

// Alert is a message the user must dismiss before continuing.
type Alert struct {
	Message string
	Err     error // underlying cause, if any
}

func (a *Alert) Error() string { return a.Message }

func (a *Alert) Unwrap() error { return a.Err }

func newAlert(msg string, err error) *Alert {
	return &Alert{Message: msg, Err: err}
}

// AsAlert returns the alert carried by err, if any.
func AsAlert(err error) (*Alert, bool) {
	var a *Alert
	if errors.As(err, &a) {
		return a, true
	}
	return nil, false
}
