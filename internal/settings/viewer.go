package settings

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/samber/lo"

	"github.com/atomicstack/vnc-launcher/internal/logging/events"
)

const (
	sectionViewer = "viewer"
	sectionRecent = "recent"

	// MaxRecent bounds the recent host list.
	MaxRecent = 10
)

// Viewer mirrors the viewer section of the settings file.
type Viewer struct {
	Host     string
	Port     int
	ProxyID  int
	Display  int
	ViewOnly bool
	Scaled   bool
	// Recent holds addresses most recent first.
	Recent []string
}

// LoadViewer reads the viewer settings, filling defaults for missing keys.
func LoadViewer(s *Store) Viewer {
	v := Viewer{
		Host:     s.Read("host", sectionViewer),
		Port:     s.ReadInt("port", sectionViewer, 5900),
		ProxyID:  s.ReadInt("proxy_id", sectionViewer, 0),
		Display:  s.ReadInt("display", sectionViewer, 0),
		ViewOnly: s.ReadBool("view_only", sectionViewer, false),
		Scaled:   s.ReadBool("scaled", sectionViewer, false),
	}
	for i := 0; i < MaxRecent; i++ {
		if addr := s.Read(recentKey(i), sectionRecent); addr != "" {
			v.Recent = append(v.Recent, addr)
		}
	}
	v.Recent = normaliseRecent(v.Recent)
	return v
}

// SaveViewer replaces the viewer and recent sections with v in one write.
func SaveViewer(s *Store, v Viewer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.set("host", v.Host, sectionViewer)
	s.set("port", strconv.Itoa(v.Port), sectionViewer)
	s.set("proxy_id", strconv.Itoa(v.ProxyID), sectionViewer)
	s.set("display", strconv.Itoa(v.Display), sectionViewer)
	s.set("view_only", strconv.FormatBool(v.ViewOnly), sectionViewer)
	s.set("scaled", strconv.FormatBool(v.Scaled), sectionViewer)
	s.file.DeleteSection(sectionRecent)
	for i, addr := range normaliseRecent(v.Recent) {
		s.set(recentKey(i), addr, sectionRecent)
	}
	events.Settings.Save(s.path, sectionViewer, "*")
	return s.save()
}

// Remember moves address to the front of the recent list.
func (v *Viewer) Remember(address string) {
	v.Recent = normaliseRecent(append([]string{address}, v.Recent...))
}

// Forget drops address from the recent list.
func (v *Viewer) Forget(address string) {
	v.Recent = lo.Without(v.Recent, strings.TrimSpace(address))
}

func normaliseRecent(list []string) []string {
	trimmed := lo.Map(list, func(addr string, _ int) string { return strings.TrimSpace(addr) })
	kept := lo.Uniq(lo.Compact(trimmed))
	return lo.Subset(kept, 0, MaxRecent)
}

func recentKey(i int) string {
	return fmt.Sprintf("host%d", i)
}
