package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vtx/internal/tasks"
	"github.com/desertthunder/vtx/internal/views"
)

const (
	uploadFile = iota
	uploadTitle
)

func newUploadInputs() []textinput.Model {
	file := textinput.New()
	file.Placeholder = "/path/to/video.mp4"
	file.Prompt = "File:  "

	title := textinput.New()
	title.Placeholder = "My video"
	title.Prompt = "Title: "
	title.CharLimit = 200

	return []textinput.Model{file, title}
}

// openUpload resets the dialog fields. The flow itself was opened by the navigation bar.
func (m *Model) openUpload() tea.Cmd {
	for i := range m.uploadInputs {
		m.uploadInputs[i].Reset()
	}
	m.uploadFocus = uploadFile
	m.progress = tasks.ProgressUpdate{}
	return focusInput(m.uploadInputs, m.uploadFocus)
}

func (m *Model) handleUploadKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		if m.uploading {
			return m, nil
		}
		m.upload.Close()
		for i := range m.uploadInputs {
			m.uploadInputs[i].Blur()
		}
		return m, nil
	case msg.Type == tea.KeyTab, msg.Type == tea.KeyDown:
		m.uploadFocus = cycle(m.uploadFocus, len(m.uploadInputs), true)
		return m, focusInput(m.uploadInputs, m.uploadFocus)
	case msg.Type == tea.KeyShiftTab, msg.Type == tea.KeyUp:
		m.uploadFocus = cycle(m.uploadFocus, len(m.uploadInputs), false)
		return m, focusInput(m.uploadInputs, m.uploadFocus)
	case key.Matches(msg, m.keys.enter):
		return m, m.submitUpload()
	}

	if m.uploading {
		return m, nil
	}

	var cmd tea.Cmd
	m.uploadInputs[m.uploadFocus], cmd = m.uploadInputs[m.uploadFocus].Update(msg)
	return m, cmd
}

// submitUpload starts the upload and a reader for its progress channel.
func (m *Model) submitUpload() tea.Cmd {
	if m.uploading {
		return nil
	}

	m.upload.SelectFile(trimmed(m.uploadInputs[uploadFile]))
	m.upload.SetTitle(m.uploadInputs[uploadTitle].Value())

	m.uploading = true
	m.progress = tasks.ProgressUpdate{}
	progress := make(chan tasks.ProgressUpdate, progressBuffer)

	return tea.Batch(m.runUpload(progress), waitForProgress(progress), m.spinner.Tick)
}

func (m *Model) runUpload(progress chan tasks.ProgressUpdate) tea.Cmd {
	flow := m.upload
	return func() tea.Msg {
		defer close(progress)
		return uploadDoneMsg(flow.Submit(m.ctx, progress))
	}
}

// waitForProgress reads one update; the handler schedules the next read until the channel closes.
func waitForProgress(progress <-chan tasks.ProgressUpdate) tea.Cmd {
	return func() tea.Msg {
		update, ok := <-progress
		if !ok {
			return nil
		}
		return uploadProgressMsg(update, waitForProgress(progress))
	}
}

func (m *Model) renderUpload() string {
	status := m.upload.Status()

	var b strings.Builder
	b.WriteString(styles.title.Render("Add Post"))
	b.WriteString("\n")
	for _, input := range m.uploadInputs {
		b.WriteString(input.View())
		b.WriteString("\n")
	}
	b.WriteString("\n")

	switch {
	case m.uploading:
		msg := m.progress.Message
		if msg == "" {
			msg = "Uploading..."
		}
		fmt.Fprintf(&b, "%s %s", m.spinner.View(), msg)
		if m.progress.Phase == tasks.Transfer && m.progress.Total > 0 {
			fmt.Fprintf(&b, " %3.0f%%", m.progress.Fraction()*100)
		}
		b.WriteString("\n")
	case status.State == views.UploadFailed:
		b.WriteString(styles.err.Render(status.Message))
		b.WriteString("\n")
	case status.State == views.UploadSucceeded:
		b.WriteString(styles.ok.Render(status.Message))
		b.WriteString("\n")
	}

	upload := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "upload"))
	closeKey := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))
	helpKeys := []key.Binding{upload, m.keys.field, closeKey, m.keys.forceQuit}

	return styles.dialog.Render(b.String()) + "\n" + m.help.ShortHelpView(helpKeys)
}
