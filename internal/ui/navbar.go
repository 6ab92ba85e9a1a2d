package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vtx/internal/views"
)

func (m *Model) handleNavbarKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	items := m.navbar.Items()

	switch {
	case key.Matches(msg, m.keys.back), key.Matches(msg, m.keys.menu):
		m.focus = focusScreen
	case key.Matches(msg, m.keys.left):
		m.navIndex = views.PrevIndex(m.navIndex, len(items))
	case key.Matches(msg, m.keys.right):
		m.navIndex = views.NextIndex(m.navIndex, len(items))
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		return m, m.activate(items[m.navIndex%len(items)])
	}
	return m, nil
}

// activate runs a navigation bar entry and mounts the resulting screen.
func (m *Model) activate(action views.NavAction) tea.Cmd {
	m.focus = focusScreen
	m.navbar.Activate(action)

	if action == views.NavAddPost {
		return m.openUpload()
	}
	return m.syncLocation()
}

func (m *Model) renderNavbar() string {
	items := m.navbar.Items()
	labels := make([]string, len(items))
	for i, item := range items {
		label := item.String()
		if m.focus == focusNavbar && i == m.navIndex {
			labels[i] = styles.active.Render(label)
			continue
		}
		labels[i] = " " + label + " "
	}

	bar := styles.ok.Render("vtx") + "  " + strings.Join(labels, "")
	if user := m.session.Username(); m.session.IsAuthenticated() && user != "" {
		bar += "  " + styles.help.Render("signed in as "+user)
	}
	return styles.bar.Render(bar)
}
