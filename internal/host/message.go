package host

// Kind identifies a request the UI can send to the host.
type Kind string

const (
	KindListDir     Kind = "list-dir"
	KindListSubdirs Kind = "list-subdirs"
	KindMoveFile    Kind = "move-file"
	KindGetFile     Kind = "get-file"
	KindStatFile    Kind = "stat-file"
	KindAppVersion  Kind = "app-version"
	KindRestartApp  Kind = "restart-app"
	KindReadyToShow Kind = "ready-to-show"
)

// MoveRequest is the payload for KindMoveFile.
type MoveRequest struct {
	SourceDir string
	TargetDir string
	Class     string
	File      string
}

// FileRequest is the payload for KindGetFile and KindStatFile.
type FileRequest struct {
	Dir  string
	File string
}

// Request is a single message sent over the host channel. Requests sent with
// Client.Send carry no reply channel.
type Request struct {
	ID      string
	Kind    Kind
	Payload interface{}

	reply chan Reply
}

// Reply carries the host's answer to a Request.
type Reply struct {
	Data interface{}
	Err  error
}

// NoteKind identifies a fire-and-forget notification from host to UI.
type NoteKind int

const (
	NoteUpdateAvailable NoteKind = iota
	NoteUpdateDownloaded
	NoteUpdateError
)

func (k NoteKind) String() string {
	switch k {
	case NoteUpdateAvailable:
		return "update-available"
	case NoteUpdateDownloaded:
		return "update-downloaded"
	case NoteUpdateError:
		return "update-error"
	default:
		return "unknown"
	}
}

// Notification is pushed to the UI without a request.
type Notification struct {
	Kind    NoteKind
	Version string
	Err     error
}

// Status codes returned by KindMoveFile.
const (
	StatusOK     = 0
	StatusFailed = 1
)
