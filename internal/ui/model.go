package ui

import (
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/image-sourcery/internal/backend"
	"github.com/atomicstack/image-sourcery/internal/host"
	"github.com/atomicstack/image-sourcery/internal/session"
	"github.com/atomicstack/image-sourcery/internal/theme"
	"github.com/atomicstack/image-sourcery/internal/ui/command"
)

type Mode int

const (
	ModeBrowse Mode = iota
	ModeClassForm
	ModePathForm
)

func (m Mode) String() string {
	switch m {
	case ModeClassForm:
		return "class-form"
	case ModePathForm:
		return "path-form"
	default:
		return "browse"
	}
}

const appTitle = "image-sourcery"

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Host is the request surface the UI uses beyond what the session needs.
type Host interface {
	session.Host
	ListSubdirs(path string) []string
	FileSize(dir, file string) (int64, error)
	AppVersion() (string, error)
	RestartApp() error
	ReadyToShow() error
}

// Options wires the model to its collaborators. Notes and Watcher may be nil.
type Options struct {
	Width      int
	Height     int
	ShowFooter bool
	Host       Host
	Session    *session.Session
	Notes      <-chan host.Notification
	Watcher    *backend.Watcher
}

// Model implements the Bubble Tea model for the sorter.
type Model struct {
	session *session.Session
	host    Host
	notes   <-chan host.Notification
	backend *backend.Watcher
	bus     *command.Bus

	mode      Mode
	classForm *ClassForm
	pathForm  *PathForm

	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool
	showFooter  bool
	ready       bool

	version    string
	banner     banner
	errMsg     string
	infoMsg    string
	infoExpire time.Time
	image      imageCache
	size       sizeCache

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI around an already restored session.
func NewModel(opts Options) *Model {
	m := &Model{
		session:    opts.Session,
		host:       opts.Host,
		notes:      opts.Notes,
		backend:    opts.Watcher,
		bus:        command.New(),
		mode:       ModeBrowse,
		showFooter: opts.ShowFooter,
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	m.watchSource()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.fetchVersionCmd()}
	if m.notes != nil {
		cmds = append(cmds, waitForHostNote(m.notes))
	}
	if m.backend != nil {
		cmds = append(cmds, waitForBackendEvent(m.backend))
	}
	return tea.Batch(cmds...)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if handled, cmd := m.handleActiveForm(msg); handled {
		return m, cmd
	}
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) handleActiveForm(msg tea.Msg) (bool, tea.Cmd) {
	if _, ok := msg.(tea.KeyMsg); !ok {
		return false, nil
	}
	switch m.mode {
	case ModeClassForm:
		return m.handleClassForm(msg)
	case ModePathForm:
		return m.handlePathForm(msg)
	default:
		return false, nil
	}
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(versionMsg{}):        m.handleVersionMsg,
		reflect.TypeOf(hostNoteMsg{}):       m.handleHostNoteMsg,
		reflect.TypeOf(hostDoneMsg{}):       m.handleHostDoneMsg,
		reflect.TypeOf(backendEventMsg{}):   m.handleBackendEventMsg,
		reflect.TypeOf(backendDoneMsg{}):    m.handleBackendDoneMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// Session exposes the session driven by the model.
func (m *Model) Session() *session.Session {
	return m.session
}

// Mode reports which screen is active.
func (m *Model) Mode() Mode {
	return m.mode
}
