package events

import "github.com/atomicstack/vnc-launcher/internal/logging"

type SettingsTracer struct{}

var Settings = SettingsTracer{}

func (SettingsTracer) Load(path string, sections int) {
	logging.Trace("settings.load", map[string]interface{}{"path": path, "sections": sections})
}

func (SettingsTracer) Save(path, section, key string) {
	logging.Trace("settings.save", map[string]interface{}{"path": path, "section": section, "key": key})
}
