package events

import "github.com/atomicstack/image-sourcery/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type PromptTracer struct{}

var (
	UI     = UITracer{}
	Action = ActionTracer{}
	Prompt = PromptTracer{}
)

func (UITracer) Key(mode, key string) {
	logging.Trace("ui.key", map[string]interface{}{"mode": mode, "key": key})
}

func (UITracer) Ready(width, height int) {
	logging.Trace("ui.ready", map[string]interface{}{"width": width, "height": height})
}

func (UITracer) Banner(message string, restart bool) {
	logging.Trace("ui.banner", map[string]interface{}{"message": message, "restart": restart})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Success(info string) {
	logging.Trace("action.success", map[string]interface{}{"info": info})
}

func (PromptTracer) Open(kind string) {
	logging.Trace("prompt.open", map[string]interface{}{"kind": kind})
}

func (PromptTracer) Cancel(kind string) {
	logging.Trace("prompt.cancel", map[string]interface{}{"kind": kind})
}

func (PromptTracer) Submit(kind, value string) {
	logging.Trace("prompt.submit", map[string]interface{}{"kind": kind, "value": value})
}

func (PromptTracer) Complete(kind, value string) {
	logging.Trace("prompt.complete", map[string]interface{}{"kind": kind, "value": value})
}

type CommandTracer struct{}

var Command = CommandTracer{}

func (CommandTracer) Run(id, label string) {
	logging.Trace("command.run", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label string, err error) {
	payload := map[string]interface{}{"id": id, "label": label}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("command.result", payload)
}
