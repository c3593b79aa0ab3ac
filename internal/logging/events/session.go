package events

import "github.com/atomicstack/vnc-launcher/internal/logging"

type SessionTracer struct{}

type sessionReason string

const (
	SessionReasonEscape sessionReason = "escape"
	SessionReasonEmpty  sessionReason = "empty"
)

var Session = SessionTracer{}

func (SessionTracer) ConnectPrompt(recent int) {
	logging.Trace("session.connect.prompt", map[string]interface{}{"recent": recent})
}

func (SessionTracer) CancelConnect(reason sessionReason) {
	logging.Trace("session.connect.cancel", map[string]interface{}{"reason": string(reason)})
}

func (SessionTracer) Connect(address string, args []string) {
	logging.Trace("session.connect", map[string]interface{}{"address": address, "args": args})
}

func (SessionTracer) Disconnect(address string) {
	logging.Trace("session.disconnect", map[string]interface{}{"address": address})
}

func (SessionTracer) Lost(address string, err error) {
	payload := map[string]interface{}{"address": address}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("session.lost", payload)
}

func (SessionTracer) SpecialKeys(keys string) {
	logging.Trace("session.keys", map[string]interface{}{"keys": keys})
}
