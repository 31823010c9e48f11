package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"
)

// System uses OS clipboard
type System struct{}

// Copy writes text to clipboard
func (System) Copy(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("write clipboard: %w", err)
	}
	return nil
}

// Paste reads text from clipboard
func (System) Paste() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return "", fmt.Errorf("read clipboard: %w", err)
	}
	return text, nil
}

// Supported returns false if no clipboard utility is available
func (System) Supported() bool {
	return !clipboard.Unsupported
}

// Memory keeps clipboard content in memory
type Memory struct {
	text string
	mx   sync.Mutex
}

func (m *Memory) Copy(text string) error {
	m.mx.Lock()
	defer m.mx.Unlock()
	m.text = text
	return nil
}

func (m *Memory) Paste() (string, error) {
	m.mx.Lock()
	defer m.mx.Unlock()
	return m.text, nil
}
