package register

import "github.com/atotto/clipboard"

// SystemClipboard bridges the + and * registers to the host system
// clipboard.
type SystemClipboard struct{}

// Get returns the current clipboard content.
func (SystemClipboard) Get() (string, error) {
	return clipboard.ReadAll()
}

// Set replaces the clipboard content.
func (SystemClipboard) Set(content string) error {
	return clipboard.WriteAll(content)
}

// Available reports whether a system clipboard is reachable in this
// environment.
func (SystemClipboard) Available() bool {
	return !clipboard.Unsupported
}
