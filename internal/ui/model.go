package ui

import (
	"context"
	"reflect"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/vnc-launcher/internal/flatmenu"
	"github.com/atomicstack/vnc-launcher/internal/session"
	"github.com/atomicstack/vnc-launcher/internal/settings"
	"github.com/atomicstack/vnc-launcher/internal/termhost"
	"github.com/atomicstack/vnc-launcher/internal/theme"
	"github.com/atomicstack/vnc-launcher/internal/ui/command"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	// Width and Height pin the viewport. Zero follows the terminal.
	Width           int
	Height          int
	AlwaysShowPopup bool
	// DismissInterval overrides the menu dismiss delay when positive.
	DismissInterval time.Duration
	Bold            bool
	Palette         flatmenu.Palette
	Session         session.Session
	// Settings may be nil, in which case nothing is persisted.
	Settings *settings.Store
}

// Model implements the Bubble Tea model for the launcher.
type Model struct {
	width       int
	height      int
	fixedWidth  bool
	fixedHeight bool

	host    *termhost.Host
	bar     *flatmenu.Bar
	popup   *flatmenu.Popup
	// items indexes menu items by action so their state can follow the
	// session and settings. An action can appear in several menus.
	items map[string][]*flatmenu.Item

	palette  flatmenu.Palette
	session  session.Session
	settings *settings.Store
	viewer   settings.Viewer
	bus      *command.Bus
	ctx      context.Context

	prompt *connectForm
	hint   string

	errMsg     string
	infoMsg    string
	infoExpire time.Time

	queued   []tea.Cmd
	handlers map[reflect.Type]msgHandler
}

// NewModel builds the launcher UI with its menu bar and context menu.
func NewModel(opts Options) *Model {
	m := &Model{
		width:    defaultWidth,
		height:   defaultHeight,
		items:    map[string][]*flatmenu.Item{},
		palette:  opts.Palette,
		session:  opts.Session,
		settings: opts.Settings,
		bus:      command.New(),
		ctx:      context.Background(),
	}
	if m.palette == (flatmenu.Palette{}) {
		m.palette = theme.MenuPalette()
	}
	if opts.Width > 0 {
		m.width = opts.Width
		m.fixedWidth = true
	}
	if opts.Height > 0 {
		m.height = opts.Height
		m.fixedHeight = true
	}
	if m.settings != nil {
		m.viewer = settings.LoadViewer(m.settings)
	} else {
		m.viewer = settings.Viewer{Port: session.DefaultPort}
	}
	m.host = termhost.New(m.width, m.height)
	m.bar = m.buildBar(opts)
	m.popup = m.buildContextMenu(opts)
	m.resize()
	m.syncMenuState()
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if m.session == nil {
		return nil
	}
	return waitForSessionEvent(m.session)
}

// Update responds to Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmds := make([]tea.Cmd, 0, 4)
	if handled, cmd := m.handleConnectForm(msg); handled {
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
		return m, m.finishUpdate(cmds)
	}

	if handler := m.handlerFor(msg); handler != nil {
		if cmd := handler(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	} else if m.prompt != nil {
		if cmd := m.prompt.Forward(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return m, m.finishUpdate(cmds)
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(termhost.TimerMsg{}): m.handleTimerMsg,
		reflect.TypeOf(actionResultMsg{}):   m.handleActionResultMsg,
		reflect.TypeOf(sessionEventMsg{}):   m.handleSessionEventMsg,
		reflect.TypeOf(sessionDoneMsg{}):    m.handleSessionDoneMsg,
		reflect.TypeOf(connectPromptMsg{}):  m.handleConnectPromptMsg,
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

// finishUpdate collects commands queued by menu callbacks and the dismiss
// timers the menus armed during this update.
func (m *Model) finishUpdate(cmds []tea.Cmd) tea.Cmd {
	cmds = append(cmds, m.queued...)
	m.queued = nil
	m.syncMenuState()
	if cmd := m.host.Cmd(); cmd != nil {
		cmds = append(cmds, cmd)
	}
	if len(cmds) == 0 {
		return nil
	}
	return tea.Batch(cmds...)
}

func (m *Model) queue(cmd tea.Cmd) {
	if cmd != nil {
		m.queued = append(m.queued, cmd)
	}
}

func (m *Model) resize() {
	m.host.Resize(m.width, m.height)
	m.bar.SetBounds(flatmenu.Rect{W: m.width, H: 1})
	m.bar.Layout(m.host)
}
