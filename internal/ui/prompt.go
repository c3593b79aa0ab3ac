package ui

import (
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/vnc-launcher/internal/logging/events"
	"github.com/atomicstack/vnc-launcher/internal/session"
)

const maxSuggestions = 5

// connectForm asks for a remote address and suggests recent hosts as the
// user types.
type connectForm struct {
	input       textinput.Model
	recent      []string
	suggestions []string
	selected    int
	err         string
}

func newConnectForm(initial string, recent []string) *connectForm {
	ti := textinput.New()
	ti.Placeholder = "host, host:display or host::port"
	ti.CharLimit = 255
	ti.Focus()
	if initial != "" {
		ti.SetValue(initial)
		ti.CursorEnd()
	}
	f := &connectForm{
		input:    ti,
		recent:   append([]string(nil), recent...),
		selected: -1,
	}
	f.refreshSuggestions()
	return f
}

func (f *connectForm) Value() string         { return strings.TrimSpace(f.input.Value()) }
func (f *connectForm) InputView() string     { return f.input.View() }
func (f *connectForm) Error() string         { return f.err }
func (f *connectForm) Suggestions() []string { return f.suggestions }
func (f *connectForm) Selected() int         { return f.selected }

// Update handles a key press. It reports done once a valid address was
// submitted and cancel when the prompt was abandoned.
func (f *connectForm) Update(msg tea.Msg) (tea.Cmd, bool, bool) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+u":
			if f.input.Value() != "" {
				f.input.SetValue("")
				f.input.CursorStart()
				f.err = ""
				f.refreshSuggestions()
			}
			return nil, false, false
		case "tab", "down":
			f.cycle(1)
			return nil, false, false
		case "shift+tab", "up":
			f.cycle(-1)
			return nil, false, false
		}
		switch key.Type {
		case tea.KeyEsc:
			events.Session.CancelConnect(events.SessionReasonEscape)
			return nil, false, true
		case tea.KeyEnter:
			value := f.Value()
			if value == "" {
				events.Session.CancelConnect(events.SessionReasonEmpty)
				return nil, false, true
			}
			if _, err := session.ParseTarget(value); err != nil {
				f.err = err.Error()
				return nil, false, false
			}
			f.err = ""
			return nil, true, false
		}
	}

	before := f.input.Value()
	updated, cmd := f.input.Update(msg)
	f.input = updated
	if f.input.Value() != before {
		f.err = ""
		f.refreshSuggestions()
	}
	return cmd, false, false
}

// Forward passes non-key messages such as cursor blinks to the input.
func (f *connectForm) Forward(msg tea.Msg) tea.Cmd {
	updated, cmd := f.input.Update(msg)
	f.input = updated
	return cmd
}

// cycle moves the suggestion selection and copies it into the input.
func (f *connectForm) cycle(delta int) {
	n := len(f.suggestions)
	if n == 0 {
		return
	}
	next := f.selected + delta
	if f.selected < 0 && delta < 0 {
		next = n - 1
	}
	f.selected = (next%n + n) % n
	f.input.SetValue(f.suggestions[f.selected])
	f.input.CursorEnd()
	f.err = ""
}

func (f *connectForm) refreshSuggestions() {
	f.selected = -1
	f.suggestions = rankRecent(f.Value(), f.recent)
}

// rankRecent orders the recent hosts matching query by fuzzy distance,
// keeping recency order between equal matches.
func rankRecent(query string, recent []string) []string {
	var out []string
	if query == "" {
		out = append(out, recent...)
	} else {
		ranks := fuzzy.RankFindNormalizedFold(query, recent)
		sort.Stable(ranks)
		for _, rank := range ranks {
			out = append(out, rank.Target)
		}
	}
	if len(out) > maxSuggestions {
		out = out[:maxSuggestions]
	}
	return out
}

func (m *Model) handleConnectPromptMsg(tea.Msg) tea.Cmd {
	m.openConnectForm()
	return nil
}

func (m *Model) openConnectForm() {
	m.dismissMenus()
	m.errMsg = ""
	m.forceClearInfo()
	initial := ""
	if len(m.viewer.Recent) > 0 {
		initial = m.viewer.Recent[0]
	}
	m.prompt = newConnectForm(initial, m.viewer.Recent)
	events.Session.ConnectPrompt(len(m.viewer.Recent))
}

// handleConnectForm routes input to the prompt while it is open. Mouse
// input is swallowed so the menus stay inert behind it.
func (m *Model) handleConnectForm(msg tea.Msg) (bool, tea.Cmd) {
	if m.prompt == nil {
		return false, nil
	}
	switch msg.(type) {
	case tea.KeyMsg:
	case tea.MouseMsg:
		return true, nil
	default:
		return false, nil
	}
	cmd, done, cancel := m.prompt.Update(msg)
	if cancel {
		m.prompt = nil
		return true, cmd
	}
	if done {
		address := m.prompt.Value()
		m.prompt = nil
		t, err := m.targetFor(address)
		if err != nil {
			m.errMsg = err.Error()
			return true, cmd
		}
		return true, m.connect(t)
	}
	return true, cmd
}
