// internal/events/relay.go
package events

// Event type constants.
const (
	EventWebhookReceived = "webhook.received"
	EventFileAccepted    = "file.accepted"
	EventFileDuplicate   = "file.duplicate"
	EventScanTriggered   = "scan.triggered"
	EventPollMatched     = "poll.matched"
	EventPollTimeout     = "poll.timeout"
	EventNotifySent      = "notify.sent"
	EventNotifySkipped   = "notify.skipped"
	EventLibrarySynced   = "library.synced"
)

// Entity type constants.
const (
	EntityFile    = "file"
	EntityLibrary = "library"
	EntityWebhook = "webhook"
)

// WebhookReceived is emitted when an inbound webhook passes authentication.
type WebhookReceived struct {
	BaseEvent
	Source    string `json:"source"` // "sonarr" or "radarr"
	MediaType string `json:"media_type"`
	FileCount int    `json:"file_count"`
}

// FileAccepted is emitted when a file passes dedup and enters the pipeline.
type FileAccepted struct {
	BaseEvent
	Path      string `json:"path"`
	MediaType string `json:"media_type"`
	Library   string `json:"library,omitempty"`
}

// FileDuplicate is emitted when a file arrives inside the dedup window.
type FileDuplicate struct {
	BaseEvent
	Path       string  `json:"path"`
	AgeSeconds float64 `json:"age_seconds"`
}

// ScanTriggered is emitted when a library refresh is requested.
type ScanTriggered struct {
	BaseEvent
	Library   string `json:"library"`
	LibraryID string `json:"library_id,omitempty"` // empty for full-server refresh
	Path      string `json:"path"`
}

// PollMatched is emitted when polling finds the item with metadata ready.
type PollMatched struct {
	BaseEvent
	Path     string `json:"path"`
	ItemID   string `json:"item_id"`
	ItemName string `json:"item_name"`
	Attempts int    `json:"attempts"`
}

// PollTimeout is emitted when polling exhausts its attempts.
type PollTimeout struct {
	BaseEvent
	Path     string `json:"path"`
	Attempts int    `json:"attempts"`
}

// NotifySent is emitted after a notification is delivered.
type NotifySent struct {
	BaseEvent
	Path    string `json:"path"`
	Title   string `json:"title"`
	Library string `json:"library,omitempty"`
	Device  string `json:"device,omitempty"`
}

// NotifySkipped is emitted when routing or config suppresses a notification.
type NotifySkipped struct {
	BaseEvent
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// LibrarySynced is emitted after views are pulled from the media server.
type LibrarySynced struct {
	BaseEvent
	Added   int `json:"added"`
	Updated int `json:"updated"`
	Total   int `json:"total"`
}
