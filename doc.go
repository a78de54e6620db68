// Package ssw is a session storage wrapper: one get/add/remove/clear
// interface over whichever storage medium a page offers.
//
// The media are tried in priority order: session storage, the legacy
// userData behavior, a session cookie and finally the window name.
// The first one available is activated. Media that only hold a single
// string keep every value in one JSON document under a fixed name.
//
//	handle, err := ssw.Open(ssw.Config{Window: dom.NewJSWindow()})
//
//	if err != nil {
//		return err
//	}
//
//	if handle == nil {
//		// no medium is available
//	}
//
//	handle.Add("cart", []interface{}{"apples"})
//
// Open hides the registry. Use package registry directly to add
// custom candidates or to inspect what detection found.
package ssw
