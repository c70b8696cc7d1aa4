package notify

import (
	"context"
	"os"
	"time"

	"golang.org/x/term"
)

// Handler manages notification dispatch based on configuration.
// If notifications are disabled in config, running in CI, or the session is
// non-interactive, the handler no-ops on all calls.
type Handler struct {
	config NotificationConfig
	sender Sender
}

// NewHandler creates a new notification handler with the given configuration.
func NewHandler(config NotificationConfig) *Handler {
	return &Handler{
		config: config,
		sender: NewSender(),
	}
}

// NewHandlerWithSender creates a handler with a custom sender (for testing).
func NewHandlerWithSender(config NotificationConfig, sender Sender) *Handler {
	return &Handler{
		config: config,
		sender: sender,
	}
}

// ReleaseCompleted notifies that a release transition finished successfully.
// Failures to deliver the notification are swallowed.
func (h *Handler) ReleaseCompleted(message string) {
	if !h.isEnabled() {
		return
	}
	h.dispatch(Notification{
		Title:            "relcut",
		Message:          message,
		NotificationType: TypeSuccess,
	})
}

// isEnabled checks if notifications should be sent.
// Returns false if notifications are disabled, running in CI, or non-interactive.
func (h *Handler) isEnabled() bool {
	if !h.config.Enabled {
		return false
	}
	if isCI() {
		return false
	}
	return isInteractive()
}

// isCI checks for common CI environment variables.
func isCI() bool {
	ciVars := []string{
		"CI",
		"GITHUB_ACTIONS",
		"GITLAB_CI",
		"CIRCLECI",
		"TRAVIS",
		"JENKINS_URL",
		"BUILDKITE",
		"DRONE",
		"TEAMCITY_VERSION",
	}
	for _, v := range ciVars {
		if os.Getenv(v) != "" {
			return true
		}
	}
	return false
}

// isInteractive checks if the session is interactive (has TTY).
// Checks stdout rather than stdin because CLI tools often have stdin piped
// while stdout remains connected to the terminal.
func isInteractive() bool {
	if term.IsTerminal(int(os.Stdout.Fd())) {
		return true
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		return true
	}
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// dispatch sends a notification asynchronously with a timeout. It respects
// the configured notification type (sound, visual, or both). Delivery
// failures never block or fail the release being reported.
func (h *Handler) dispatch(n Notification) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		defer close(done)
		if h.config.Type != OutputSound && h.sender.VisualAvailable() {
			_ = h.sender.SendVisual(n)
		}
		if h.config.Type != OutputVisual && h.sender.SoundAvailable() {
			_ = h.sender.SendSound(h.config.SoundFile)
		}
	}()

	select {
	case <-done:
	case <-ctx.Done():
	}
}
