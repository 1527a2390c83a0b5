package events

import "github.com/atomicstack/image-sourcery/internal/logging"

type AppTracer struct{}

var App = AppTracer{}

func (AppTracer) Start(payload map[string]interface{}) {
	logging.Trace("app.start", payload)
}

func (AppTracer) Relaunch(executable string) {
	logging.Trace("app.relaunch", map[string]interface{}{"executable": executable})
}
