package dom_test

import (
	"testing"
	"time"

	"github.com/jrife/ssw/dom"
)

func TestUserDataElement(t *testing.T) {
	storage := dom.NewMemoryStorage()
	root := dom.NewUserDataRoot(storage)

	if !root.SupportsBehavior() {
		t.Fatalf("expected root to support behaviors")
	}

	element, err := root.CreateUserDataElement("ssw")

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	element.SetAttribute("ssw", "{}")

	if err := element.Save("ssw"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	// A second element sees what the first one saved
	reader, _ := root.CreateUserDataElement("ssw")

	if _, ok := reader.Attribute("ssw"); ok {
		t.Fatalf("expected attribute to be absent before load")
	}

	if err := reader.Load("ssw"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if value, ok := reader.Attribute("ssw"); !ok || value != "{}" {
		t.Fatalf("expected {}, got %q", value)
	}

	element.RemoveAttribute("ssw")

	if err := element.Save("ssw"); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	reader.Load("ssw")

	if _, ok := reader.Attribute("ssw"); ok {
		t.Fatalf("expected removed attribute to stay removed after save")
	}

	element.SetAttribute("ssw", "{}")
	element.Save("ssw")

	if err := element.Expire(time.Unix(0, 0)); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	keys, _ := storage.Keys()

	if len(keys) != 0 {
		t.Fatalf("expected expired store to be discarded, got %v", keys)
	}
}

func TestUserDataRootWithoutStorage(t *testing.T) {
	root := dom.NewUserDataRoot(nil)

	if root.SupportsBehavior() {
		t.Fatalf("expected root without storage to lack behavior support")
	}

	if _, err := root.CreateUserDataElement("ssw"); err == nil {
		t.Fatalf("expected an error")
	}
}
