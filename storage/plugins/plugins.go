// Package plugins lists the storage candidates a page
// can offer, in priority order.
package plugins

import (
	"github.com/jrife/ssw/dom"
	"github.com/jrife/ssw/storage"
	"github.com/jrife/ssw/storage/plugins/cookie"
	"github.com/jrife/ssw/storage/plugins/domstorage"
	"github.com/jrife/ssw/storage/plugins/userdata"
	"github.com/jrife/ssw/storage/plugins/windowname"
)

// DefaultStoreName names the item, attribute or cookie
// holding the serialized box
const DefaultStoreName = "ssw"

// Options configures the candidates
type Options struct {
	// StoreName defaults to DefaultStoreName
	StoreName string
	// NativeStorage selects the native session storage
	// backend instead of the serialized one
	NativeStorage bool
}

// Plugins returns the candidates for window, highest
// priority first: session storage, userData, cookie and
// window name.
func Plugins(window *dom.Window, options Options) []storage.Candidate {
	if options.StoreName == "" {
		options.StoreName = DefaultStoreName
	}

	var sessionStorage storage.Candidate = domstorage.New(window.SessionStorage, options.StoreName)

	if options.NativeStorage {
		sessionStorage = domstorage.NewNative(window.SessionStorage)
	}

	return []storage.Candidate{
		sessionStorage,
		userdata.New(window.Root, options.StoreName),
		cookie.New(window.Cookies, options.StoreName),
		windowname.New(window.Name),
	}
}

// Names returns the names of the candidates in
// priority order
func Names() []string {
	return []string{domstorage.Name, userdata.Name, cookie.Name, windowname.Name}
}
