//go:build js && wasm

package dom_test

import (
	"syscall/js"
	"testing"

	"github.com/jrife/ssw/dom"
)

// ensureName gives hosts without a window, such as node, a
// name property to bind
func ensureName() {
	if js.Global().Get("name").IsUndefined() {
		js.Global().Set("name", "")
	}
}

func TestJSWindowName(t *testing.T) {
	ensureName()

	window := dom.NewJSWindow()

	if window.Name == nil {
		t.Fatalf("expected the name property to be bound")
	}

	window.Name.SetName(`{"k":"v"}`)

	if name := window.Name.Name(); name != `{"k":"v"}` {
		t.Fatalf(`expected {"k":"v"}, got %q`, name)
	}

	window.Name.SetName("")
}

func TestJSWindowSessionStorage(t *testing.T) {
	window := dom.NewJSWindow()

	if window.SessionStorage == nil {
		t.Skip("host has no sessionStorage")
	}

	defer window.SessionStorage.RemoveItem("ssw-js-test")

	if err := window.SessionStorage.SetItem("ssw-js-test", "v"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	value, ok, err := window.SessionStorage.GetItem("ssw-js-test")

	if err != nil || !ok || value != "v" {
		t.Fatalf("expected v, got %q ok=%v err=%#v", value, ok, err)
	}

	if err := window.SessionStorage.RemoveItem("ssw-js-test"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if _, ok, _ := window.SessionStorage.GetItem("ssw-js-test"); ok {
		t.Fatalf("expected the item to be removed")
	}
}
