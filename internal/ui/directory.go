package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vtx/internal/views"
)

func (m *Model) loadUsers() tea.Cmd {
	directory := m.directory
	return func() tea.Msg {
		return usersLoadedMsg(directory.Load(m.ctx))
	}
}

func (m *Model) handleDirectoryKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.nextCard):
		m.directory.Next()
	case key.Matches(msg, m.keys.prevCard):
		m.directory.Prev()
	case key.Matches(msg, m.keys.swipeL):
		m.directory.Swipe(views.SwipeLeft)
	case key.Matches(msg, m.keys.swipeR):
		m.directory.Swipe(views.SwipeRight)
	case key.Matches(msg, m.keys.refresh):
		return m, m.mount(m.loc)
	case key.Matches(msg, m.keys.back):
		if m.nav.Back() {
			return m, m.syncLocation()
		}
	}
	return m, nil
}

func (m *Model) renderDirectory() string {
	title := styles.title.Render("Creators")
	helpKeys := []key.Binding{m.keys.prevCard, m.keys.nextCard, m.keys.refresh, m.keys.back, m.keys.menu, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	var body string
	switch {
	case m.directory.Loading():
		body = "Loading creators..."
	case m.directory.Err() != "":
		body = styles.err.Render(m.directory.Err())
	default:
		user, ok := m.directory.Current()
		if !ok {
			body = views.MsgNoUsers
			break
		}
		avatar := user.AvatarURL
		if avatar == "" {
			avatar = "(no avatar)"
		}
		card := fmt.Sprintf("%s\n\n%s\n\n%d / %d",
			styles.ok.Render(user.Username),
			styles.help.Render(avatar),
			m.directory.Index()+1,
			m.directory.Len(),
		)
		body = styles.card.Render(card)
	}

	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}
