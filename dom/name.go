package dom

import "sync"

var _ NameProperty = (*WindowName)(nil)

// WindowName is an in-memory window name property
type WindowName struct {
	mu   sync.Mutex
	name string
}

// Name implements NameProperty.Name
func (windowName *WindowName) Name() string {
	windowName.mu.Lock()
	defer windowName.mu.Unlock()

	return windowName.name
}

// SetName implements NameProperty.SetName
func (windowName *WindowName) SetName(name string) {
	windowName.mu.Lock()
	defer windowName.mu.Unlock()

	windowName.name = name
}
