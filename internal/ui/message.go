package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vtx/internal/tasks"
	"github.com/desertthunder/vtx/internal/views"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgVideosLoaded MsgKind = iota
	MsgUsersLoaded
	MsgSuggestionsLoaded
	MsgNavigated
	MsgLoginDone
	MsgLikeDone
	MsgCommentDone
	MsgUploadProgress
	MsgUploadDone
)

type feedResult struct {
	feed *views.FeedView
	err  error
}

type progressResult struct {
	update tasks.ProgressUpdate
	next   tea.Cmd
}

// videosLoadedMsg is the constructor for [MsgVideosLoaded]
func videosLoadedMsg(feed *views.FeedView, err error) Msg {
	return Msg{kind: MsgVideosLoaded, data: feedResult{feed, err}}
}

// usersLoadedMsg is the constructor for [MsgUsersLoaded]
func usersLoadedMsg(err error) Msg {
	return Msg{kind: MsgUsersLoaded, data: err}
}

// suggestionsLoadedMsg is the constructor for [MsgSuggestionsLoaded]
func suggestionsLoadedMsg(err error) Msg {
	return Msg{kind: MsgSuggestionsLoaded, data: err}
}

// navigatedMsg is the constructor for [MsgNavigated]
func navigatedMsg(err error) Msg {
	return Msg{kind: MsgNavigated, data: err}
}

// loginDoneMsg is the constructor for [MsgLoginDone]
func loginDoneMsg(err error) Msg {
	return Msg{kind: MsgLoginDone, data: err}
}

// likeDoneMsg is the constructor for [MsgLikeDone]
func likeDoneMsg(err error) Msg {
	return Msg{kind: MsgLikeDone, data: err}
}

// commentDoneMsg is the constructor for [MsgCommentDone]
func commentDoneMsg(err error) Msg {
	return Msg{kind: MsgCommentDone, data: err}
}

// uploadProgressMsg is the constructor for [MsgUploadProgress]. next reads the following update.
func uploadProgressMsg(update tasks.ProgressUpdate, next tea.Cmd) Msg {
	return Msg{kind: MsgUploadProgress, data: progressResult{update, next}}
}

// uploadDoneMsg is the constructor for [MsgUploadDone]
func uploadDoneMsg(err error) Msg {
	return Msg{kind: MsgUploadDone, data: err}
}

// errOf returns the error carried by msg, if any.
func errOf(msg Msg) error {
	err, _ := msg.data.(error)
	return err
}
