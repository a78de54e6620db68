// Package dom models the page-side storage media that ssw can persist to.
//
// Each medium is an opaque capability behind a small interface:
//
//   - Storage: a session storage area holding string key/value pairs
//   - CookieJar: the document's cookie string with assignment semantics
//   - BehaviorHost: a root element that can attach the legacy userData
//     persistence behavior to helper elements
//   - NameProperty: the window's name property
//
// A Window groups the media a page exposes. A nil field means the page
// does not offer that medium. This package implements them in memory
// and, under js/wasm, on the real browser objects. Package dom/bbolt
// provides a durable Storage for hosts outside the browser.
package dom
