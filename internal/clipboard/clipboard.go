// Package clipboard writes text to the system clipboard through the
// platform's native utility.
package clipboard

import (
	"errors"
	"fmt"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoUtility reports that no clipboard utility is installed.
type ErrNoUtility struct {
	OS string
}

func (e *ErrNoUtility) Error() string {
	switch e.OS {
	case "linux":
		return "no clipboard utility found; install xclip, xsel or wl-clipboard"
	default:
		return fmt.Sprintf("clipboard not supported on %s", e.OS)
	}
}

// Copy copies text to the system clipboard.
func Copy(text string) error {
	switch runtime.GOOS {
	case "darwin":
		return pipe(text, "pbcopy")
	case "windows":
		return pipe(text, "cmd", "/c", "clip")
	case "linux":
		return copyLinux(text)
	default:
		return &ErrNoUtility{OS: runtime.GOOS}
	}
}

// copyLinux tries the common X11 and Wayland utilities in order.
func copyLinux(text string) error {
	candidates := [][]string{
		{"xclip", "-selection", "clipboard"},
		{"xsel", "--clipboard", "--input"},
		{"wl-copy"},
	}

	var lastErr error
	tried := false
	for _, c := range candidates {
		if !commandAvailable(c[0]) {
			continue
		}
		tried = true
		if err := pipe(text, c[0], c[1:]...); err != nil {
			lastErr = fmt.Errorf("%s failed: %w", c[0], err)
			continue
		}
		return nil
	}

	if tried {
		return lastErr
	}
	return &ErrNoUtility{OS: "linux"}
}

// CopyWithFallback copies and returns a user-facing confirmation message.
func CopyWithFallback(text string) (string, error) {
	if err := Copy(text); err != nil {
		var missing *ErrNoUtility
		if errors.As(err, &missing) {
			return "", err
		}
		return "", fmt.Errorf("failed to copy to clipboard: %w", err)
	}
	return "Copied to clipboard!", nil
}

// IsAvailable reports whether clipboard functionality is available.
func IsAvailable() bool {
	switch runtime.GOOS {
	case "darwin":
		return commandAvailable("pbcopy")
	case "windows":
		return true
	case "linux":
		return commandAvailable("xclip") || commandAvailable("xsel") || commandAvailable("wl-copy")
	default:
		return false
	}
}

func pipe(text, name string, args ...string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(text)
	return cmd.Run()
}

func commandAvailable(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}
