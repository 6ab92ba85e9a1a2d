package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vtx/internal/views"
)

func newCommentInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Add a comment..."
	ti.Prompt = "> "
	ti.CharLimit = 500
	return ti
}

func (m *Model) loadSuggestions() tea.Cmd {
	detail := m.detail
	return func() tea.Msg {
		return suggestionsLoadedMsg(detail.LoadSuggestions(m.ctx))
	}
}

func (m *Model) toggleLike() tea.Cmd {
	detail := m.detail
	return func() tea.Msg {
		return likeDoneMsg(detail.ToggleLike(m.ctx))
	}
}

func (m *Model) submitComment() tea.Cmd {
	detail := m.detail
	return func() tea.Msg {
		return commentDoneMsg(detail.SubmitComment(m.ctx))
	}
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.commentInput.Focused() {
		return m.handleCommentKeys(msg)
	}

	switch {
	case key.Matches(msg, m.keys.back):
		if m.nav.Back() {
			return m, m.syncLocation()
		}
		return m, nil
	case key.Matches(msg, m.keys.like):
		return m, m.toggleLike()
	case key.Matches(msg, m.keys.comments):
		m.detail.ToggleComments()
		if state, ok := m.detail.State(); ok && state.CommentsOpen {
			return m, m.commentInput.Focus()
		}
		return m, nil
	case key.Matches(msg, m.keys.play):
		if err := m.detail.Play(); err != nil {
			m.logger.Error("failed to open video", "error", err)
			m.status = fmt.Sprintf("Could not open video: %v", err)
		}
		return m, nil
	case key.Matches(msg, m.keys.enter):
		if len(m.suggestionList.Items()) == 0 {
			return m, nil
		}
		if err := m.detail.SelectSuggestion(m.suggestionList.Index()); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.syncLocation()
	}

	var cmd tea.Cmd
	m.suggestionList, cmd = m.suggestionList.Update(msg)
	return m, cmd
}

// handleCommentKeys routes typing to the comment field while the panel is open.
func (m *Model) handleCommentKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.back):
		m.detail.CloseComments()
		m.commentInput.Blur()
		return m, nil
	case key.Matches(msg, m.keys.enter):
		m.detail.SetCommentInput(m.commentInput.Value())
		return m, m.submitComment()
	}

	var cmd tea.Cmd
	m.commentInput, cmd = m.commentInput.Update(msg)
	m.detail.SetCommentInput(m.commentInput.Value())
	return m, cmd
}

func (m *Model) renderDetail() string {
	state, ok := m.detail.State()
	if !ok {
		return ""
	}
	v := state.Video

	var b strings.Builder
	b.WriteString(styles.title.Render(v.Title))
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s • %d views", v.OwnerName(), v.Views)
	if date := views.FormatDate(v); date != "" {
		fmt.Fprintf(&b, " • %s", date)
	}
	b.WriteString("\n")
	if v.VideoFileURL != "" {
		b.WriteString(styles.help.Render(v.VideoFileURL))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	likes := fmt.Sprintf("♡ %d likes", state.LikeCount)
	if state.LikedByMe {
		likes = styles.ok.Render(fmt.Sprintf("♥ %d likes (liked)", state.LikeCount))
	}
	fmt.Fprintf(&b, "%s   %d comments\n\n", likes, state.CommentCount)

	if state.CommentsOpen {
		b.WriteString(styles.ok.Render("Comments"))
		b.WriteString("\n")
		if len(state.Comments) == 0 {
			b.WriteString(styles.help.Render("No comments yet."))
			b.WriteString("\n")
		}
		for _, c := range state.Comments {
			fmt.Fprintf(&b, "%s: %s\n", styles.warn.Render(c.Username), c.Comment)
		}
		b.WriteString(m.commentInput.View())
		b.WriteString("\n\n")
	}

	switch {
	case state.Loading:
		b.WriteString("Loading suggestions...\n")
	case len(state.Suggestions) == 0:
		b.WriteString(styles.help.Render("No other videos."))
		b.WriteString("\n")
	default:
		b.WriteString(m.suggestionList.View())
		b.WriteString("\n")
	}

	var helpKeys []key.Binding
	if m.commentInput.Focused() {
		post := key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "post"))
		closeKey := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close"))
		helpKeys = []key.Binding{post, closeKey, m.keys.forceQuit}
	} else {
		helpKeys = []key.Binding{m.keys.play, m.keys.like, m.keys.comments, m.keys.enter, m.keys.back, m.keys.menu, m.keys.quit}
	}
	b.WriteString("\n")
	b.WriteString(m.help.ShortHelpView(helpKeys))
	return b.String()
}
