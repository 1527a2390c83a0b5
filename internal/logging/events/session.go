package events

import "github.com/atomicstack/image-sourcery/internal/logging"

type SessionTracer struct{}

type DirRole string

const (
	DirSource DirRole = "source"
	DirTarget DirRole = "target"
)

var Session = SessionTracer{}

func (SessionTracer) Restore(source, target string, current, classes int) {
	logging.Trace("session.restore", map[string]interface{}{
		"source":  source,
		"target":  target,
		"current": current,
		"classes": classes,
	})
}

func (SessionTracer) SelectDir(role DirRole, path string, entries int) {
	logging.Trace("session.dir", map[string]interface{}{"role": string(role), "path": path, "entries": entries})
}

func (SessionTracer) Navigate(direction string, index int, file string) {
	logging.Trace("session.navigate", map[string]interface{}{"direction": direction, "index": index, "file": file})
}

func (SessionTracer) Assign(file, class string, remaining int) {
	logging.Trace("session.assign", map[string]interface{}{"file": file, "class": class, "remaining": remaining})
}

func (SessionTracer) AddClass(label string, digit int) {
	logging.Trace("session.class.add", map[string]interface{}{"label": label, "digit": digit})
}

func (SessionTracer) ClearClasses(count int) {
	logging.Trace("session.class.clear", map[string]interface{}{"count": count})
}

func (SessionTracer) Refresh(entries, current int) {
	logging.Trace("session.refresh", map[string]interface{}{"entries": entries, "current": current})
}

func (SessionTracer) PersistError(err error) {
	if err == nil {
		return
	}
	logging.Trace("session.persist.error", map[string]interface{}{"error": err.Error()})
}
