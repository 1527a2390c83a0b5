package host

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// Client sends requests to a Host. SendSync blocks the caller until the host
// replies, which keeps consecutive requests strictly ordered.
type Client struct {
	requests chan<- Request
	stopped  <-chan struct{}
}

// SendSync delivers a request and waits for its reply.
func (c *Client) SendSync(ctx context.Context, kind Kind, payload interface{}) (interface{}, error) {
	req := Request{ID: uuid.NewString(), Kind: kind, Payload: payload, reply: make(chan Reply, 1)}
	select {
	case c.requests <- req:
	case <-c.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	select {
	case reply := <-req.reply:
		return reply.Data, reply.Err
	case <-c.stopped:
		return nil, ErrStopped
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Send delivers a request without waiting for a reply. It still blocks until
// the host has accepted the request.
func (c *Client) Send(ctx context.Context, kind Kind, payload interface{}) error {
	req := Request{ID: uuid.NewString(), Kind: kind, Payload: payload}
	select {
	case c.requests <- req:
		return nil
	case <-c.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
}

// ListDir returns the entries of path, or nil when the host could not read it.
func (c *Client) ListDir(path string) []string {
	data, err := c.SendSync(context.Background(), KindListDir, path)
	if err != nil {
		return nil
	}
	names, _ := data.([]string)
	return names
}

// ListSubdirs returns the sub-directories of path, or nil on error.
func (c *Client) ListSubdirs(path string) []string {
	data, err := c.SendSync(context.Background(), KindListSubdirs, path)
	if err != nil {
		return nil
	}
	names, _ := data.([]string)
	return names
}

// MoveFile asks the host to move file into targetDir/class and returns the
// host's status code.
func (c *Client) MoveFile(sourceDir, targetDir, class, file string) (int, error) {
	data, err := c.SendSync(context.Background(), KindMoveFile, MoveRequest{
		SourceDir: sourceDir,
		TargetDir: targetDir,
		Class:     class,
		File:      file,
	})
	status, ok := data.(int)
	if !ok {
		status = StatusFailed
	}
	return status, err
}

// ReadFile returns the base64 encoded content of dir/file.
func (c *Client) ReadFile(dir, file string) (string, error) {
	data, err := c.SendSync(context.Background(), KindGetFile, FileRequest{Dir: dir, File: file})
	if err != nil {
		return "", err
	}
	encoded, ok := data.(string)
	if !ok {
		return "", fmt.Errorf("get-file: unexpected reply %T", data)
	}
	return encoded, nil
}

// FileSize returns the size in bytes of dir/file.
func (c *Client) FileSize(dir, file string) (int64, error) {
	data, err := c.SendSync(context.Background(), KindStatFile, FileRequest{Dir: dir, File: file})
	if err != nil {
		return 0, err
	}
	size, ok := data.(int64)
	if !ok {
		return 0, fmt.Errorf("stat-file: unexpected reply %T", data)
	}
	return size, nil
}

// AppVersion returns the host's version string.
func (c *Client) AppVersion() (string, error) {
	data, err := c.SendSync(context.Background(), KindAppVersion, nil)
	if err != nil {
		return "", err
	}
	version, _ := data.(string)
	return version, nil
}

// RestartApp asks the host to install the downloaded update. It waits for the
// install to finish so the caller only quits once the new binary is in place.
func (c *Client) RestartApp() error {
	_, err := c.SendSync(context.Background(), KindRestartApp, nil)
	return err
}

// ReadyToShow tells the host the UI has drawn its first frame.
func (c *Client) ReadyToShow() error {
	return c.Send(context.Background(), KindReadyToShow, nil)
}
