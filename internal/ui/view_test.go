package ui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"

	"github.com/atomicstack/vnc-launcher/internal/session"
)

func viewLines(env *testEnv) []string {
	return strings.Split(ansi.Strip(env.h.View()), "\n")
}

func TestViewShowsBarBodyAndStatus(t *testing.T) {
	env := newTestEnv(t, nil)
	lines := viewLines(env)
	if len(lines) != 24 {
		t.Fatalf("expected 24 rows, got %d", len(lines))
	}
	for _, title := range []string{"Connection", "Send", "View", "Help"} {
		if !strings.Contains(lines[0], title) {
			t.Fatalf("expected %q on the bar row, got %q", title, lines[0])
		}
	}
	body := strings.Join(lines[1:23], "\n")
	if !strings.Contains(body, "Not connected") || !strings.Contains(body, "Next connection: display 0") {
		t.Fatalf("expected offline body, got:\n%s", body)
	}
	status := lines[23]
	if !strings.Contains(status, defaultHint) || !strings.Contains(status, "○ offline") {
		t.Fatalf("unexpected status line %q", status)
	}
}

func TestViewShowsConnectionAndPreferences(t *testing.T) {
	env := newTestEnv(t, nil)
	env.sess.setConnected(session.NewTarget("desk"))
	m := env.model()
	m.viewer.Scaled = true
	m.viewer.Recent = []string{"desk::5900"}
	view := ansi.Strip(env.h.View())
	for _, want := range []string{"Connected to desk::5900", "scaled", "Recent hosts", "● desk::5900"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in view:\n%s", want, view)
		}
	}
}

func TestRecentRowsAlignColumns(t *testing.T) {
	got := recentRows([]string{"desk::5901", "build-server::6000", "desk:abc"})
	want := []string{
		"desk          5901  display 1",
		"build-server  6000",
		"desk:abc",
	}
	if strings.Join(got, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected rows:\n%s", strings.Join(got, "\n"))
	}
}

func TestViewPaintsOpenPopup(t *testing.T) {
	env := newTestEnv(t, nil)
	env.openBarMenu(t, "Connection")
	lines := viewLines(env)
	if !strings.Contains(lines[1], "Connect…") || !strings.Contains(lines[5], "Exit") {
		t.Fatalf("expected popup rows under the bar, got %q / %q", lines[1], lines[5])
	}
}

func TestStatusPrefersErrorOverHint(t *testing.T) {
	env := newTestEnv(t, nil)
	m := env.model()
	m.hint = "hint text"
	m.errMsg = "something failed"
	if got, ink := m.statusMessage(); got != "something failed" || ink == nil {
		t.Fatalf("expected error first, got %q", got)
	}
	m.errMsg = ""
	m.setInfo("saved")
	if got, _ := m.statusMessage(); got != "saved" {
		t.Fatalf("expected info next, got %q", got)
	}
	m.forceClearInfo()
	if got, _ := m.statusMessage(); got != "hint text" {
		t.Fatalf("expected hint last, got %q", got)
	}
}

func TestViewShowsPromptDialog(t *testing.T) {
	env := newTestEnv(t, nil)
	env.key("c")
	view := ansi.Strip(env.h.View())
	for _, want := range []string{"Connect to", "Esc cancels", "Type an address"} {
		if !strings.Contains(view, want) {
			t.Fatalf("expected %q in prompt view:\n%s", want, view)
		}
	}
}

func TestFitColumns(t *testing.T) {
	if got := fitColumns("left", "right", 12, nil); got != "left   right" {
		t.Fatalf("unexpected layout %q", got)
	}
	got := fitColumns("abcdefghij", "xy", 8, nil)
	if got != "abcde…xy" {
		t.Fatalf("expected left truncated, got %q", got)
	}
	if got := fitColumns("left", "right", 0, nil); got != "" {
		t.Fatalf("expected empty line for zero width, got %q", got)
	}
	filled := fitColumns("a", "b", 5, func(s string) string { return strings.ReplaceAll(s, " ", ".") })
	if filled != "a...b" {
		t.Fatalf("expected fill applied to the gap, got %q", filled)
	}
}

func TestEmptyViewForZeroSize(t *testing.T) {
	env := newTestEnv(t, nil)
	env.model().width = 0
	if env.h.View() != "" {
		t.Fatalf("expected empty view without a size")
	}
}
