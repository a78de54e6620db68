package dom

import (
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// CookieTimeFormat is the layout of the expires attribute
const CookieTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// DefaultMaxCookieSize is the largest name=value string
// a MemoryCookieJar will accept.
const DefaultMaxCookieSize = 4096

var _ CookieJar = (*MemoryCookieJar)(nil)

// CookieJarConfig configures a MemoryCookieJar
type CookieJarConfig struct {
	// Disabled makes the jar ignore every assignment, like
	// a browser that refuses session cookies.
	Disabled bool
	// MaxSize is the largest accepted name=value string.
	// Defaults to DefaultMaxCookieSize.
	MaxSize int
	// Now returns the current time. Defaults to time.Now.
	Now func() time.Time
}

// MemoryCookieJar is an in-memory CookieJar. Cookies are
// listed in creation order and keep their position when
// they are overwritten.
type MemoryCookieJar struct {
	mu      sync.Mutex
	config  CookieJarConfig
	cookies *linkedhashmap.Map
}

// NewCookieJar creates an empty MemoryCookieJar
func NewCookieJar(config CookieJarConfig) *MemoryCookieJar {
	if config.MaxSize <= 0 {
		config.MaxSize = DefaultMaxCookieSize
	}

	if config.Now == nil {
		config.Now = time.Now
	}

	return &MemoryCookieJar{
		config:  config,
		cookies: linkedhashmap.New(),
	}
}

// Cookie implements CookieJar.Cookie
func (jar *MemoryCookieJar) Cookie() string {
	jar.mu.Lock()
	defer jar.mu.Unlock()

	pairs := make([]string, 0, jar.cookies.Size())
	iterator := jar.cookies.Iterator()

	for iterator.Next() {
		name := iterator.Key().(string)
		value := iterator.Value().(string)

		if name == "" {
			pairs = append(pairs, value)
		} else {
			pairs = append(pairs, name+"="+value)
		}
	}

	return strings.Join(pairs, "; ")
}

// SetCookie implements CookieJar.SetCookie
func (jar *MemoryCookieJar) SetCookie(cookie string) {
	if jar.config.Disabled {
		return
	}

	parts := strings.Split(cookie, ";")
	pair := strings.TrimSpace(parts[0])

	if len(pair) > jar.config.MaxSize {
		return
	}

	var name, value string

	if i := strings.Index(pair, "="); i >= 0 {
		name = strings.TrimSpace(pair[:i])
		value = strings.TrimSpace(pair[i+1:])
	} else {
		value = pair
	}

	jar.mu.Lock()
	defer jar.mu.Unlock()

	if jar.expired(parts[1:]) {
		jar.cookies.Remove(name)

		return
	}

	jar.cookies.Put(name, value)
}

func (jar *MemoryCookieJar) expired(attributes []string) bool {
	now := jar.config.Now()

	for _, attribute := range attributes {
		var key, value string

		if i := strings.Index(attribute, "="); i >= 0 {
			key = strings.ToLower(strings.TrimSpace(attribute[:i]))
			value = strings.TrimSpace(attribute[i+1:])
		} else {
			key = strings.ToLower(strings.TrimSpace(attribute))
		}

		switch key {
		case "max-age":
			if seconds, err := strconv.Atoi(value); err == nil && seconds <= 0 {
				return true
			}
		case "expires":
			if at, err := time.Parse(CookieTimeFormat, value); err == nil && !at.After(now) {
				return true
			}
		}
	}

	return false
}
