// Package clipboard places action JSON on the system clipboard.
package clipboard

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrUnsupported reports that no clipboard utility is available.
var ErrUnsupported = errors.New("clipboard unavailable")

// Copier copies text verbatim.
type Copier interface {
	Copy(text string) error
}

// System copies through the platform clipboard (pbcopy, clip, xclip, xsel,
// wl-copy).
type System struct{}

func (System) Copy(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Memory keeps the last copied text; used where no system clipboard exists.
type Memory struct {
	Text string
}

func (m *Memory) Copy(text string) error {
	m.Text = text
	return nil
}
