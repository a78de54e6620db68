//go:build !js

package ssw_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/ssw"
	"github.com/jrife/ssw/dom"
	"github.com/jrife/ssw/dom/bbolt"
)

func TestOpenSurvivesReload(t *testing.T) {
	storage, err := bbolt.NewTemp()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	defer storage.Delete()

	window := &dom.Window{SessionStorage: storage}
	first, _ := ssw.Open(ssw.Config{Window: window})
	first.AddAll(map[string]interface{}{"a": 1.0, "b": "two"})

	second, _ := ssw.Open(ssw.Config{Window: window})
	all, err := second.All()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if diff := cmp.Diff(map[string]interface{}{"a": 1.0, "b": "two"}, all); diff != "" {
		t.Fatal(diff)
	}
}
