package dom

import "time"

// Window groups the storage media exposed by a page.
// A nil field means the medium is not supported.
type Window struct {
	SessionStorage Storage
	Cookies        CookieJar
	Root           BehaviorHost
	Name           NameProperty
}

// Storage is a session storage area.
type Storage interface {
	// GetItem returns the value stored at key. The second return
	// value is false if the key does not exist.
	GetItem(key string) (string, bool, error)
	// SetItem stores value at key
	SetItem(key, value string) error
	// RemoveItem deletes key. It has no effect if the key
	// does not exist.
	RemoveItem(key string) error
	// Clear deletes every key
	Clear() error
	// Keys lists every key in the storage area
	Keys() ([]string, error)
}

// CookieJar mirrors the document cookie property. Cookie returns
// every visible cookie as "name=value" pairs separated by "; ".
// SetCookie applies one cookie assignment such as
// "name=value;expires=Thu, 01 Jan 1970 00:00:00 GMT".
type CookieJar interface {
	Cookie() string
	SetCookie(cookie string)
}

// BehaviorHost is the root element of a document that may support
// attaching the userData persistence behavior.
type BehaviorHost interface {
	// SupportsBehavior reports whether behaviors can be attached
	SupportsBehavior() bool
	// CreateUserDataElement creates an element with the given tag name,
	// appends it to the root and attaches the userData behavior.
	CreateUserDataElement(tag string) (UserDataElement, error)
}

// UserDataElement is an element with the userData behavior attached.
// Attributes are persisted per store name with Save and restored
// with Load.
type UserDataElement interface {
	Load(store string) error
	Save(store string) error
	Attribute(name string) (string, bool)
	SetAttribute(name, value string)
	RemoveAttribute(name string)
	// Expire sets the expiry of the element's persisted data.
	// A time that is not in the future discards it.
	Expire(at time.Time) error
}

// NameProperty is the window name property.
type NameProperty interface {
	Name() string
	SetName(name string)
}

// NewMemoryWindow returns a window whose media
// all live in memory
func NewMemoryWindow() *Window {
	return &Window{
		SessionStorage: NewMemoryStorage(),
		Cookies:        NewCookieJar(CookieJarConfig{}),
		Root:           NewUserDataRoot(NewMemoryStorage()),
		Name:           &WindowName{},
	}
}
