package config_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/jrife/ssw/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := config.Load()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	expected := config.Config{
		StoreName: "ssw",
		Media:     []string{"domstorage", "userdata", "cookie", "windowname"},
		LogLevel:  "info",
	}

	if diff := cmp.Diff(expected, cfg); diff != "" {
		t.Fatal(diff)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SSW_PATH", "/tmp/page.db")
	t.Setenv("SSW_MEDIA", "cookie,windowname")
	t.Setenv("SSW_FORCE", "windowname")
	t.Setenv("SSW_NATIVE_STORAGE", "true")

	cfg, err := config.Load()

	if err != nil {
		t.Fatalf("expected err to be nil, got %#v", err)
	}

	if cfg.Path != "/tmp/page.db" || cfg.Force != "windowname" || !cfg.NativeStorage {
		t.Fatalf("unexpected config %#v", cfg)
	}

	if cfg.Offers("domstorage") || !cfg.Offers("cookie") {
		t.Fatalf("unexpected media %v", cfg.Media)
	}
}

func TestLoadRejectsUnknownMedia(t *testing.T) {
	t.Setenv("SSW_MEDIA", "localstorage")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected an unknown medium to be rejected")
	}
}

func TestLoadRejectsUnknownForce(t *testing.T) {
	t.Setenv("SSW_FORCE", "flash")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected an unknown forced medium to be rejected")
	}
}
