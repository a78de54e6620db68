package userdata_test

import (
	"testing"

	"github.com/jrife/ssw/dom"
	"github.com/jrife/ssw/storage/plugins/userdata"
)

func TestBackend(t *testing.T) {
	persisted := dom.NewMemoryStorage()
	backend := userdata.New(dom.NewUserDataRoot(persisted), "ssw")

	if !backend.IsAvailable() {
		t.Fatalf("expected backend to be available")
	}

	if _, err := backend.Read(); err == nil {
		t.Fatalf("expected read before init to fail")
	}

	if err := backend.SpecificInit(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if err := backend.Save(`{"a":"b"}`); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	// Another page load sees the saved store
	other := userdata.New(dom.NewUserDataRoot(persisted), "ssw")
	other.SpecificInit()

	if value, err := other.Read(); err != nil || value != `{"a":"b"}` {
		t.Fatalf("expected the saved string, got %q, %#v", value, err)
	}

	if err := backend.SpecificClear(); err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if value, _ := other.Read(); value != "" {
		t.Fatalf("expected the store to be expired, got %q", value)
	}
}

func TestUnavailable(t *testing.T) {
	if userdata.New(nil, "ssw").IsAvailable() {
		t.Fatalf("expected backend without root to be unavailable")
	}

	if userdata.New(dom.NewUserDataRoot(nil), "ssw").IsAvailable() {
		t.Fatalf("expected backend without behavior support to be unavailable")
	}
}
