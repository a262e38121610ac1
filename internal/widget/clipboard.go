package widget

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
	ErrClipboardDenied      = errors.New("clipboard write denied")
)

// CopyFailedMessage is shown when the address could not be copied.
const CopyFailedMessage = "Failed to copy email. Please copy it manually."

// Clipboard writes text to the visitor's clipboard.
type Clipboard interface {
	WriteText(ctx context.Context, text string) error
}

// ClipboardFunc adapts a function to Clipboard.
type ClipboardFunc func(ctx context.Context, text string) error

func (f ClipboardFunc) WriteText(ctx context.Context, text string) error { return f(ctx, text) }

// Notifier is the part of Notification CopyEmail needs.
type Notifier interface {
	Show(msg string) error
}

// CopiedMessage is the toast text after a successful copy.
func CopiedMessage(address string) string {
	return "Email copied to clipboard: " + address
}

// CopyEmail writes address to the clipboard and reports the outcome on
// the toast. A failed write still shows a toast; the error is returned
// so callers can record it.
func CopyEmail(ctx context.Context, clip Clipboard, toast Notifier, address string) error {
	err := ErrClipboardUnavailable
	if clip != nil {
		err = clip.WriteText(ctx, address)
	}
	if err != nil {
		if showErr := toast.Show(CopyFailedMessage); showErr != nil {
			return errors.Join(fmt.Errorf("copying email: %w", err), showErr)
		}
		return fmt.Errorf("copying email: %w", err)
	}
	return toast.Show(CopiedMessage(address))
}
