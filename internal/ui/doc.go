// Package ui implements the interactive terminal client using bubbletea's Elm architecture.
//
// Screens follow the client routes held by [views.Navigator]:
//  1. "/" : video feed, newest first
//  2. "/video/{id}" : video detail with likes, comments and suggestions
//  3. "/userspage" : creator carousel
//  4. "/login" and "/register"
//
// The navigation bar (tab) and the upload dialog sit over every screen, and blocking alerts sit over both.
//
// The [Model] implements the standard Init/Update/View pattern, receiving results through the Msg union type.
// Every backend call runs as a [tea.Cmd]; screen state lives in the views package so the CLI shares it.
// Upload progress flows through a channel from [tasks.UploadEngine], read one update per command.
//
// Keyboard navigation uses vim-style bindings with contextual help displayed via charmbracelet/bubbles/help.
package ui
