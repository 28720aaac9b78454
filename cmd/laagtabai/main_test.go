package main

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/laagtabai/laag-tui/internal/nav"
)

func TestRoutesTableListsEveryRoute(t *testing.T) {
	reg := nav.DefaultRegistry()
	out := routesTable(reg)
	for _, name := range reg.Names() {
		if !strings.Contains(out, string(name)) {
			t.Fatalf("routes table is missing %s:\n%s", name, out)
		}
	}
	if !strings.Contains(out, "LandmarkID string") {
		t.Fatalf("expected param schema in table:\n%s", out)
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	cmd := rootCmd()
	path := filepath.Join(t.TempDir(), "none.toml")
	if err := cmd.ParseFlags([]string{"--config", path, "--locale", "ceb", "--skip-onboarding"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	var f flags
	f.config = path
	f.locale = "ceb"
	f.skipOnboarding = true
	cfg, err := loadConfig(cmd, f)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Locale != "ceb" || !cfg.SkipOnboarding {
		t.Fatalf("flags not applied: %+v", cfg)
	}
	if cfg.Theme != "laag" {
		t.Fatalf("unset flags must keep defaults, got theme %q", cfg.Theme)
	}
}
