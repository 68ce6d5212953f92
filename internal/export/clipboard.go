package export

import (
	"github.com/atotto/clipboard"
	"github.com/rotisserie/eris"
)

// Clipboard receives text copied from a result.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes to the OS clipboard.
type SystemClipboard struct{}

// WriteAll copies text. It fails when no clipboard utility is available.
func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return eris.New("export: clipboard is not supported on this system")
	}
	return eris.Wrap(clipboard.WriteAll(text), "export: copy to clipboard")
}

// Copy writes text to c.
func Copy(c Clipboard, text string) error {
	if c == nil {
		c = SystemClipboard{}
	}
	return c.WriteAll(text)
}
