package events

import "github.com/atomicstack/vnc-launcher/internal/logging"

type MenuTracer struct{}

var Menu = MenuTracer{}

func (MenuTracer) Highlight(menu, item string) {
	logging.Trace("menu.highlight", map[string]interface{}{"menu": menu, "item": item})
}

func (MenuTracer) PopupShow(owner, popup, item string, items int) {
	logging.Trace("menu.popup.show", map[string]interface{}{
		"owner": owner,
		"popup": popup,
		"item":  item,
		"items": items,
	})
}

func (MenuTracer) PopupHide(popup string) {
	logging.Trace("menu.popup.hide", map[string]interface{}{"popup": popup})
}

func (MenuTracer) Activate(menu, item string) {
	logging.Trace("menu.activate", map[string]interface{}{"menu": menu, "item": item})
}

func (MenuTracer) Dismiss(menu string) {
	logging.Trace("menu.dismiss", map[string]interface{}{"menu": menu})
}

func (MenuTracer) Track(menu string, x, y int) {
	logging.Trace("menu.track", map[string]interface{}{"menu": menu, "x": x, "y": y})
}
