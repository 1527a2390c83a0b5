package host

import (
	"context"
	"errors"
	"fmt"
)

var errNoUpdates = errors.New("updates are disabled")

type handler func(ctx context.Context, req Request) Reply

// router maps request kinds to the host operation that serves them.
type router struct {
	routes map[Kind]handler
}

func newRouter(h *Host) *router {
	return &router{routes: map[Kind]handler{
		KindListDir:     h.handleListDir,
		KindListSubdirs: h.handleListSubdirs,
		KindMoveFile:    h.handleMoveFile,
		KindGetFile:     h.handleGetFile,
		KindStatFile:    h.handleStatFile,
		KindAppVersion:  h.handleAppVersion,
		KindRestartApp:  h.handleRestartApp,
		KindReadyToShow: h.handleReadyToShow,
	}}
}

func (r *router) dispatch(ctx context.Context, req Request) Reply {
	fn, ok := r.routes[req.Kind]
	if !ok {
		return Reply{Err: fmt.Errorf("unknown request kind %q", req.Kind)}
	}
	return fn(ctx, req)
}

func payloadError(req Request) Reply {
	return Reply{Err: fmt.Errorf("%s: unexpected payload %T", req.Kind, req.Payload)}
}

func (h *Host) handleListDir(_ context.Context, req Request) Reply {
	path, ok := req.Payload.(string)
	if !ok {
		return payloadError(req)
	}
	return Reply{Data: ListDir(path)}
}

func (h *Host) handleListSubdirs(_ context.Context, req Request) Reply {
	path, ok := req.Payload.(string)
	if !ok {
		return payloadError(req)
	}
	return Reply{Data: ListSubdirs(path)}
}

func (h *Host) handleMoveFile(_ context.Context, req Request) Reply {
	move, ok := req.Payload.(MoveRequest)
	if !ok {
		return payloadError(req)
	}
	if err := MoveFile(move); err != nil {
		return Reply{Data: StatusFailed, Err: err}
	}
	return Reply{Data: StatusOK}
}

func (h *Host) handleGetFile(_ context.Context, req Request) Reply {
	file, ok := req.Payload.(FileRequest)
	if !ok {
		return payloadError(req)
	}
	encoded, err := ReadFile(file)
	if err != nil {
		return Reply{Err: err}
	}
	return Reply{Data: encoded}
}

func (h *Host) handleStatFile(_ context.Context, req Request) Reply {
	file, ok := req.Payload.(FileRequest)
	if !ok {
		return payloadError(req)
	}
	size, err := FileSize(file)
	if err != nil {
		return Reply{Err: err}
	}
	return Reply{Data: size}
}

func (h *Host) handleAppVersion(context.Context, Request) Reply {
	return Reply{Data: h.version}
}

func (h *Host) handleRestartApp(context.Context, Request) Reply {
	updates := h.updateService()
	if updates == nil {
		return Reply{Err: errNoUpdates}
	}
	if err := updates.Apply(); err != nil {
		return Reply{Err: fmt.Errorf("apply update: %w", err)}
	}
	return Reply{}
}

// handleReadyToShow starts the update check in the background so the serve
// loop keeps answering while the network round-trip runs.
func (h *Host) handleReadyToShow(ctx context.Context, _ Request) Reply {
	updates := h.updateService()
	if updates == nil {
		return Reply{}
	}
	h.checkOnce.Do(func() {
		h.workers.Add(1)
		go func() {
			defer h.workers.Done()
			_ = updates.Check(ctx)
		}()
	})
	return Reply{}
}
