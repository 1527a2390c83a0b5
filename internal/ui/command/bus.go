package command

import (
	"github.com/atomicstack/image-sourcery/internal/logging/events"
)

// Request encapsulates an action invocation.
type Request struct {
	ID      string
	Label   string
	Handler func() error
}

// Bus runs user actions against the session and traces their outcome. Actions
// run on the caller's goroutine so session state is only touched from Update.
type Bus struct {
	last Result
}

// Result records the outcome of the most recent action.
type Result struct {
	ID  string
	Err error
}

// New initialises a command bus instance.
func New() *Bus {
	return &Bus{}
}

// Execute runs req and returns its error.
func (b *Bus) Execute(req Request) error {
	if req.Handler == nil {
		events.Command.Skip(req.ID, req.Label)
		return nil
	}
	events.Command.Run(req.ID, req.Label)
	err := req.Handler()
	events.Command.Result(req.ID, req.Label, err)
	b.last = Result{ID: req.ID, Err: err}
	return err
}

// Last returns the outcome of the most recent executed action.
func (b *Bus) Last() Result {
	return b.last
}
