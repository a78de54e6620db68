//go:build js && wasm

package ssw_test

import (
	"syscall/js"
	"testing"

	"github.com/jrife/ssw"
	"github.com/jrife/ssw/dom"
)

func TestOpenJSWindow(t *testing.T) {
	if js.Global().Get("name").IsUndefined() {
		js.Global().Set("name", "")
	}

	handle, err := ssw.Open(ssw.Config{Window: dom.NewJSWindow()})

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if handle == nil {
		t.Fatalf("expected a medium of the page to be active")
	}

	defer handle.Clear()

	if err := handle.Add("k", "v"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if value, ok, err := handle.Get("k"); err != nil || !ok || value != "v" {
		t.Fatalf("expected v, got %#v ok=%v err=%#v", value, ok, err)
	}
}
