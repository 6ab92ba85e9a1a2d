package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/vtx/internal/services"
	"github.com/desertthunder/vtx/internal/session"
	"github.com/desertthunder/vtx/internal/shared"
	"github.com/desertthunder/vtx/internal/tasks"
	"github.com/desertthunder/vtx/internal/views"
)

// focusArea is the part of the screen receiving key presses.
type focusArea int

const (
	focusScreen focusArea = iota
	focusNavbar
)

const progressBuffer = 50

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	backend services.Backend
	session *session.Store
	nav     *views.Navigator
	logger  *log.Logger

	navbar    *views.Navbar
	login     *views.LoginView
	feed      *views.FeedView
	directory *views.DirectoryView
	detail    *views.DetailView
	upload    *views.UploadFlow

	loc      views.Location
	focus    focusArea
	navIndex int
	width    int
	height   int

	loginInputs []textinput.Model
	loginFocus  int
	loginErr    *shared.ValidationError
	loggingIn   bool

	videoList      list.Model
	suggestionList list.Model
	commentInput   textinput.Model

	uploadInputs []textinput.Model
	uploadFocus  int
	uploading    bool
	progress     tasks.ProgressUpdate
	spinner      spinner.Model

	alert  *views.Alert
	status string
	help   help.Model
	keys   keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The session starts empty and lives as long as the model.
func NewModel(ctx context.Context, backend services.Backend, engine *tasks.UploadEngine, logger *log.Logger) *Model {
	if logger == nil {
		logger = shared.NewLogger(io.Discard)
	}

	store := session.NewStore()
	nav := views.NewNavigator()
	upload := views.NewUploadFlow(engine, store, logger)

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.warn

	return &Model{
		ctx:            ctx,
		backend:        backend,
		session:        store,
		nav:            nav,
		logger:         logger,
		navbar:         views.NewNavbar(store, nav, upload),
		login:          views.NewLoginView(backend, store, nav, logger),
		feed:           views.NewFeedView(backend, nav, logger),
		directory:      views.NewDirectoryView(backend, logger),
		detail:         views.NewDetailView(backend, store, nav, logger),
		upload:         upload,
		loginInputs:    newLoginInputs(),
		videoList:      newVideoList("Videos"),
		suggestionList: newVideoList("Suggestions"),
		commentInput:   newCommentInput(),
		uploadInputs:   newUploadInputs(),
		spinner:        s,
		help:           help.New(),
		keys:           newKeyMap(),
	}
}

// WithRoute sets the starting screen from a client path such as "/userspage".
func (m *Model) WithRoute(path string) *Model {
	m.nav.Replace(views.ParseLocation(path))
	return m
}

// WithOpener replaces the function used to open video links.
func (m *Model) WithOpener(fn func(string) error) *Model {
	m.detail.WithOpener(fn)
	return m
}

// Session exposes the session store for inspection.
func (m *Model) Session() *session.Store {
	return m.session
}

// Init mounts the starting screen, fetching its data.
func (m *Model) Init() tea.Cmd {
	return m.mount(m.nav.Current())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if !m.uploading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case Msg:
		return m.handleMsg(msg)

	case tea.KeyMsg:
		return m.handleKeys(msg)
	}

	return m, nil
}

func (m *Model) handleMsg(msg Msg) (tea.Model, tea.Cmd) {
	switch msg.kind {
	case MsgVideosLoaded:
		res := msg.data.(feedResult)
		if res.feed != m.feed {
			return m, nil
		}
		return m, m.videoList.SetItems(videoItems(m.feed.Videos()))

	case MsgUsersLoaded:
		// The directory view keeps its own error text.
		return m, nil

	case MsgSuggestionsLoaded:
		state, ok := m.detail.State()
		if !ok {
			return m, nil
		}
		return m, m.suggestionList.SetItems(videoItems(state.Suggestions))

	case MsgNavigated:
		if err := errOf(msg); err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m, m.syncLocation()

	case MsgLoginDone:
		m.loggingIn = false
		err := errOf(msg)
		if err == nil {
			return m, m.syncLocation()
		}
		var verr *shared.ValidationError
		if errors.As(err, &verr) {
			m.loginErr = verr
		}
		return m, nil

	case MsgLikeDone:
		m.showAlert(errOf(msg))
		return m, nil

	case MsgCommentDone:
		err := errOf(msg)
		if err == nil {
			state, _ := m.detail.State()
			m.commentInput.SetValue(state.CommentInput)
			return m, nil
		}
		m.showAlert(err)
		return m, nil

	case MsgUploadProgress:
		res := msg.data.(progressResult)
		m.progress = res.update
		return m, res.next

	case MsgUploadDone:
		m.uploading = false
		err := errOf(msg)
		m.showAlert(err)
		if err == nil {
			m.uploadInputs[uploadFile].Reset()
		}
		return m, nil
	}

	return m, nil
}

// showAlert raises err as a blocking dialog when it carries a [views.Alert]. Other errors were logged by the view.
func (m *Model) showAlert(err error) {
	if a, ok := views.AsAlert(err); ok {
		m.alert = a
	}
}

func (m *Model) handleKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.forceQuit) {
		return m, tea.Quit
	}

	if m.alert != nil {
		if key.Matches(msg, m.keys.dismiss) {
			m.alert = nil
		}
		return m, nil
	}

	if m.upload.Status().Open {
		return m.handleUploadKeys(msg)
	}

	if m.focus == focusNavbar {
		return m.handleNavbarKeys(msg)
	}

	if key.Matches(msg, m.keys.menu) {
		m.focus = focusNavbar
		m.navIndex = 0
		return m, nil
	}

	if !m.typing() && key.Matches(msg, m.keys.quit) {
		return m, tea.Quit
	}

	switch m.loc.Route {
	case views.RouteHome:
		return m.handleFeedKeys(msg)
	case views.RouteVideo:
		return m.handleDetailKeys(msg)
	case views.RouteUsers:
		return m.handleDirectoryKeys(msg)
	case views.RouteLogin:
		return m.handleLoginKeys(msg)
	case views.RouteRegister:
		if key.Matches(msg, m.keys.back) && m.nav.Back() {
			return m, m.syncLocation()
		}
	}
	return m, nil
}

// typing reports whether a text field on the current screen has focus.
func (m *Model) typing() bool {
	switch m.loc.Route {
	case views.RouteLogin:
		return true
	case views.RouteVideo:
		return m.commentInput.Focused()
	}
	return false
}

// syncLocation mounts whatever the navigator now points at.
func (m *Model) syncLocation() tea.Cmd {
	return m.mount(m.nav.Current())
}

// mount switches to loc and starts the fetches that screen needs.
func (m *Model) mount(loc views.Location) tea.Cmd {
	m.loc = loc
	m.status = ""
	m.focus = focusScreen

	switch loc.Route {
	case views.RouteHome:
		m.feed = views.NewFeedView(m.backend, m.nav, m.logger)
		m.videoList.ResetSelected()
		return tea.Batch(m.videoList.SetItems(nil), m.loadVideos())

	case views.RouteUsers:
		m.directory = views.NewDirectoryView(m.backend, m.logger)
		return m.loadUsers()

	case views.RouteLogin:
		return m.resetLogin()

	case views.RouteVideo:
		if err := m.detail.Mount(loc); err != nil {
			return m.mount(m.nav.Current())
		}
		m.commentInput.Reset()
		m.commentInput.Blur()
		m.suggestionList.ResetSelected()
		return tea.Batch(m.suggestionList.SetItems(nil), m.loadSuggestions())
	}

	return nil
}

func (m *Model) resize() {
	w, h := max(m.width-4, 0), max(m.height-8, 0)
	m.videoList.SetSize(w, h)
	m.suggestionList.SetSize(w, max(h-10, 0))
	m.help.Width = m.width
}

// View renders the UI based on the current route and overlays.
func (m *Model) View() string {
	header := m.renderNavbar()

	var body string
	switch {
	case m.alert != nil:
		body = m.renderAlert()
	case m.upload.Status().Open:
		body = m.renderUpload()
	default:
		body = m.renderScreen()
	}

	parts := []string{header, body}
	if m.status != "" {
		parts = append(parts, styles.warn.Render(m.status))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) renderScreen() string {
	switch m.loc.Route {
	case views.RouteHome:
		return m.renderFeed()
	case views.RouteVideo:
		return m.renderDetail()
	case views.RouteUsers:
		return m.renderDirectory()
	case views.RouteLogin:
		return m.renderLogin()
	case views.RouteRegister:
		return m.renderRegister()
	default:
		return ""
	}
}

func (m *Model) renderAlert() string {
	box := styles.alert.Render(m.alert.Message)
	return fmt.Sprintf("%s\n\n%s", box, m.help.ShortHelpView([]key.Binding{m.keys.dismiss}))
}

func (m *Model) renderRegister() string {
	title := styles.title.Render("Register")
	info := "Registration is not available from this client."
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.menu, m.keys.quit})
	return fmt.Sprintf("%s\n%s\n\n%s", title, info, helpView)
}

// focusInput focuses inputs[i] and blurs the rest.
func focusInput(inputs []textinput.Model, i int) tea.Cmd {
	var cmd tea.Cmd
	for j := range inputs {
		if j == i {
			cmd = inputs[j].Focus()
			continue
		}
		inputs[j].Blur()
	}
	return cmd
}

// cycle moves i one step forward or back through n positions.
func cycle(i, n int, forward bool) int {
	if forward {
		return views.NextIndex(i, n)
	}
	return views.PrevIndex(i, n)
}

func trimmed(ti textinput.Model) string {
	return strings.TrimSpace(ti.Value())
}
