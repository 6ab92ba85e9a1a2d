package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/vtx/internal/views"
)

func (m *Model) loadVideos() tea.Cmd {
	feed := m.feed
	return func() tea.Msg {
		return videosLoadedMsg(feed, feed.Load(m.ctx))
	}
}

func (m *Model) handleFeedKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.enter):
		if m.feed.Empty() || m.feed.Loading() {
			return m, nil
		}
		return m, m.openVideo(m.videoList.Index())
	case key.Matches(msg, m.keys.refresh):
		return m, m.mount(m.loc)
	}

	var cmd tea.Cmd
	m.videoList, cmd = m.videoList.Update(msg)
	return m, cmd
}

// openVideo records a view for the video at i and moves to its detail screen.
func (m *Model) openVideo(i int) tea.Cmd {
	feed := m.feed
	return func() tea.Msg {
		return navigatedMsg(feed.Select(m.ctx, i))
	}
}

func (m *Model) renderFeed() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.refresh, m.keys.menu, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	switch {
	case m.feed.Loading():
		return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render("Videos"), "Loading videos...", helpView)
	case m.feed.Empty():
		return fmt.Sprintf("%s\n%s\n\n%s", styles.title.Render("Videos"), views.MsgNoVideos, helpView)
	}
	return fmt.Sprintf("%s\n\n%s", m.videoList.View(), helpView)
}
