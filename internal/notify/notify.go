// Package notify sends optional desktop notifications after a completed
// release. It is opt-in, auto-disabled in CI and non-interactive sessions,
// and never fails the release it reports on.
package notify

// NotificationType represents the type of notification event.
type NotificationType string

const (
	// TypeSuccess indicates a successful operation
	TypeSuccess NotificationType = "success"
	// TypeFailure indicates a failed operation
	TypeFailure NotificationType = "failure"
)

// OutputType represents the notification output type.
type OutputType string

const (
	// OutputSound sends only an audible notification
	OutputSound OutputType = "sound"
	// OutputVisual sends only a visual notification
	OutputVisual OutputType = "visual"
	// OutputBoth sends both sound and visual notifications
	OutputBoth OutputType = "both"
)

// NotificationConfig holds user preferences for notification behavior.
// Configuration is loaded from the config hierarchy (env > project > user > defaults).
type NotificationConfig struct {
	// Enabled is the master switch for all notifications (default: false, opt-in)
	Enabled bool `koanf:"enabled"`

	// Type specifies the notification output type: sound, visual, or both (default: both)
	Type OutputType `koanf:"type"`

	// SoundFile is an optional custom sound file path
	SoundFile string `koanf:"sound_file"`
}

// DefaultConfig returns a NotificationConfig with default values.
func DefaultConfig() NotificationConfig {
	return NotificationConfig{
		Enabled:   false,
		Type:      OutputBoth,
		SoundFile: "",
	}
}

// Notification represents a single notification event to dispatch.
type Notification struct {
	// Title is the notification title (e.g., "relcut")
	Title string

	// Message is the notification body text
	Message string

	// NotificationType indicates the event type: success or failure
	NotificationType NotificationType
}
