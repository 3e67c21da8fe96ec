// Package clipboard copies analysis output to the system clipboard.
package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrUnavailable is returned when no clipboard backend is installed
// (pbcopy, xclip, xsel, wl-copy or the Windows API).
var ErrUnavailable = errors.New("clipboard is not available")

var (
	writeAll    = clipboard.WriteAll
	unsupported = func() bool { return clipboard.Unsupported }
)

// Write copies text to the system clipboard.
func Write(text string) error {
	if !Available() {
		return ErrUnavailable
	}
	if err := writeAll(strings.TrimRight(text, "\n")); err != nil {
		return fmt.Errorf("writing clipboard: %w", err)
	}
	return nil
}

// Available reports whether a clipboard backend was found.
func Available() bool {
	return !unsupported()
}
