package notify

import (
	"fmt"
	"os/exec"
	"runtime"
)

// Sender defines the interface for platform-specific notification senders.
type Sender interface {
	// SendVisual sends a visual notification to the OS notification system
	SendVisual(n Notification) error

	// SendSound plays an audio notification
	SendSound(soundFile string) error

	// VisualAvailable returns true if visual notifications are supported
	VisualAvailable() bool

	// SoundAvailable returns true if sound notifications are supported
	SoundAvailable() bool
}

// NewSender creates a platform-specific notification sender based on the
// current OS. It returns a sender appropriate for darwin (macOS), linux, or
// windows. For unsupported platforms, it returns a no-op sender.
func NewSender() Sender {
	switch runtime.GOOS {
	case "darwin":
		return &darwinSender{}
	case "linux":
		return &linuxSender{}
	case "windows":
		return &windowsSender{}
	default:
		return &noopSender{}
	}
}

// toolAvailable checks if a command-line tool is available in PATH.
func toolAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// noopSender is a sender that does nothing (for unsupported platforms).
type noopSender struct{}

func (s *noopSender) SendVisual(_ Notification) error { return nil }
func (s *noopSender) SendSound(_ string) error        { return nil }
func (s *noopSender) VisualAvailable() bool           { return false }
func (s *noopSender) SoundAvailable() bool            { return false }

// darwinSender uses osascript and afplay on macOS.
type darwinSender struct{}

func (s *darwinSender) SendVisual(n Notification) error {
	script := fmt.Sprintf("display notification %q with title %q", n.Message, n.Title)
	return exec.Command("osascript", "-e", script).Run()
}

func (s *darwinSender) SendSound(soundFile string) error {
	if soundFile == "" {
		soundFile = "/System/Library/Sounds/Glass.aiff"
	}
	return exec.Command("afplay", soundFile).Run()
}

func (s *darwinSender) VisualAvailable() bool { return toolAvailable("osascript") }
func (s *darwinSender) SoundAvailable() bool  { return toolAvailable("afplay") }

// linuxSender uses notify-send and paplay on Linux.
type linuxSender struct{}

func (s *linuxSender) SendVisual(n Notification) error {
	urgency := "normal"
	if n.NotificationType == TypeFailure {
		urgency = "critical"
	}
	return exec.Command("notify-send", "--urgency", urgency, n.Title, n.Message).Run()
}

func (s *linuxSender) SendSound(soundFile string) error {
	if soundFile == "" {
		soundFile = "/usr/share/sounds/freedesktop/stereo/complete.oga"
	}
	return exec.Command("paplay", soundFile).Run()
}

func (s *linuxSender) VisualAvailable() bool { return toolAvailable("notify-send") }
func (s *linuxSender) SoundAvailable() bool  { return toolAvailable("paplay") }

// windowsSender uses powershell on Windows.
type windowsSender struct{}

func (s *windowsSender) SendVisual(n Notification) error {
	script := fmt.Sprintf(
		`[System.Reflection.Assembly]::LoadWithPartialName('System.Windows.Forms') | Out-Null; `+
			`$n = New-Object System.Windows.Forms.NotifyIcon; `+
			`$n.Icon = [System.Drawing.SystemIcons]::Information; `+
			`$n.Visible = $true; `+
			`$n.ShowBalloonTip(5000, %q, %q, 'Info')`,
		n.Title, n.Message)
	return exec.Command("powershell", "-NoProfile", "-Command", script).Run()
}

func (s *windowsSender) SendSound(_ string) error {
	return exec.Command("powershell", "-NoProfile", "-Command", "[console]::beep(800,300)").Run()
}

func (s *windowsSender) VisualAvailable() bool { return toolAvailable("powershell") }
func (s *windowsSender) SoundAvailable() bool  { return toolAvailable("powershell") }
