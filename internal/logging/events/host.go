package events

import "github.com/atomicstack/image-sourcery/internal/logging"

type HostTracer struct{}

type UpdateTracer struct{}

var (
	Host   = HostTracer{}
	Update = UpdateTracer{}
)

func (HostTracer) Request(id, kind string) {
	logging.Trace("host.request", map[string]interface{}{"id": id, "kind": kind})
}

func (HostTracer) Reply(id, kind string, err error) {
	payload := map[string]interface{}{"id": id, "kind": kind}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("host.reply", payload)
}

func (HostTracer) Notify(kind string) {
	logging.Trace("host.notify", map[string]interface{}{"kind": kind})
}

func (HostTracer) Dropped(kind string) {
	logging.Trace("host.notify.dropped", map[string]interface{}{"kind": kind})
}

func (HostTracer) DirChanged(dir string) {
	logging.Trace("host.dir.changed", map[string]interface{}{"dir": dir})
}

func (UpdateTracer) Transition(from, to string) {
	logging.Trace("update.state", map[string]interface{}{"from": from, "to": to})
}

func (UpdateTracer) Release(current, latest string, newer bool) {
	logging.Trace("update.release", map[string]interface{}{"current": current, "latest": latest, "newer": newer})
}

func (UpdateTracer) Error(stage string, err error) {
	if err == nil {
		return
	}
	logging.Trace("update.error", map[string]interface{}{"stage": stage, "error": err.Error()})
}
