// Package cookie persists to a session cookie.
//
// Cookie values use a small escaping scheme rather than URI
// encoding because cookies have a hard size budget: '%' becomes
// "%%", ';' becomes "%S" and '"' becomes "%Q".
package cookie

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/jrife/ssw/dom"
	"github.com/jrife/ssw/storage"
)

// Name is the candidate name
const Name = "cookie"

// MaxCookieSize is the largest name=value string SetCookie accepts
const MaxCookieSize = 4096

// ErrCookieTooLarge indicates that a cookie would exceed MaxCookieSize
var ErrCookieTooLarge = errors.New("cookie size exceeds 4096 byte limit")

var separator = regexp.MustCompile(`;\s*`)

var (
	_ storage.RawBackend = (*Backend)(nil)
	_ storage.Clearer    = (*Backend)(nil)
)

// Backend is the cookie backend
type Backend struct {
	jar        dom.CookieJar
	cookieName string
}

// New creates a backend storing its string in the
// cookie named cookieName
func New(jar dom.CookieJar, cookieName string) *Backend {
	return &Backend{jar: jar, cookieName: cookieName}
}

// Name implements storage.Candidate.Name
func (backend *Backend) Name() string {
	return Name
}

// IsAvailable sets a test cookie and reads it back, since
// refused session cookies cannot be detected otherwise.
// The test cookie is deleted again.
func (backend *Backend) IsAvailable() bool {
	if backend.jar == nil {
		return false
	}

	name := backend.cookieName + "-test"

	if err := SetCookie(backend.jar, name, name); err != nil {
		return false
	}

	value, ok := GetCookie(backend.jar, name)

	DeleteCookie(backend.jar, name)

	return ok && value == name
}

// Read implements storage.RawBackend.Read
func (backend *Backend) Read() (string, error) {
	value, _ := GetCookie(backend.jar, backend.cookieName)

	return value, nil
}

// Save implements storage.RawBackend.Save. An empty string
// is not written; SpecificClear deletes the cookie instead.
func (backend *Backend) Save(s string) error {
	if s == "" {
		return nil
	}

	return SetCookie(backend.jar, backend.cookieName, s)
}

// SpecificClear deletes the cookie
func (backend *Backend) SpecificClear() error {
	DeleteCookie(backend.jar, backend.cookieName)

	return nil
}

// EscapeCookie escapes value for use in a cookie
func EscapeCookie(value string) string {
	value = strings.ReplaceAll(value, "%", "%%")
	value = strings.ReplaceAll(value, ";", "%S")

	return strings.ReplaceAll(value, `"`, "%Q")
}

// UnescapeCookie reverses EscapeCookie. Escape sequences are
// decoded in one left to right pass so that "%%S" decodes to
// "%S" rather than "%;".
func UnescapeCookie(value string) string {
	if !strings.Contains(value, "%") {
		return value
	}

	var builder strings.Builder

	builder.Grow(len(value))

	for i := 0; i < len(value); i++ {
		if value[i] != '%' || i+1 == len(value) {
			builder.WriteByte(value[i])

			continue
		}

		switch value[i+1] {
		case '%':
			builder.WriteByte('%')
		case 'S':
			builder.WriteByte(';')
		case 'Q':
			builder.WriteByte('"')
		default:
			builder.WriteByte('%')

			continue
		}

		i++
	}

	return builder.String()
}

// GetCookie returns the unescaped value of the cookie called
// name. The second return value is false if there is no such
// cookie; an empty value is still a present cookie.
func GetCookie(jar dom.CookieJar, name string) (string, bool) {
	for _, pair := range separator.Split(jar.Cookie(), -1) {
		if pair == "" {
			continue
		}

		var testName, value string

		if i := strings.Index(pair, "="); i >= 0 {
			testName = pair[:i]
			value = pair[i+1:]
		} else {
			value = pair
		}

		if testName == name {
			return UnescapeCookie(value), true
		}
	}

	return "", false
}

// SetCookie sets a session cookie. It returns ErrCookieTooLarge
// if the escaped name=value string exceeds MaxCookieSize bytes.
func SetCookie(jar dom.CookieJar, name, value string) error {
	cookie := name + "=" + EscapeCookie(value)

	if len(cookie) > MaxCookieSize {
		return ErrCookieTooLarge
	}

	jar.SetCookie(cookie)

	return nil
}

// DeleteCookie expires the cookie called name
func DeleteCookie(jar dom.CookieJar, name string) {
	jar.SetCookie(name + "=;expires=" + time.Unix(0, 0).UTC().Format(dom.CookieTimeFormat))
}
