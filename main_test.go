package main

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hoshinonyaruko/snake-in-term/config"
	"github.com/hoshinonyaruko/snake-in-term/game"
	"github.com/hoshinonyaruko/snake-in-term/watch"
)

// waitReload polls reload until it reports new settings or the deadline passes.
func waitReload(reload func() (game.Settings, bool), d time.Duration) (game.Settings, bool) {
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if s, ok := reload(); ok {
			return s, true
		}
		time.Sleep(10 * time.Millisecond)
	}
	return game.Settings{}, false
}

func TestReloader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	if err := os.WriteFile(path, []byte(`{"rows": 7, "snake_glyph": "*"}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := watch.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	var logs bytes.Buffer
	reload := reloader(w, path, cfg, log.New(&logs, "", 0))
	if _, ok := reload(); ok {
		t.Fatal("reload reported before any change")
	}

	if err := os.WriteFile(path, []byte(`{"rows": 9, "snake_glyph": "o", "base_tick_ms": 300}`), 0644); err != nil {
		t.Fatal(err)
	}
	s, ok := waitReload(reload, 2*time.Second)
	if !ok {
		t.Fatal("change not picked up")
	}
	if s.Theme.Snake != 'o' {
		t.Errorf("snake glyph = %q, want 'o'", s.Theme.Snake)
	}
	if s.Timing.Base != 300*time.Millisecond {
		t.Errorf("base tick = %v, want 300ms", s.Timing.Base)
	}
	if cfg.Rows != 7 {
		t.Errorf("running config rows changed to %d", cfg.Rows)
	}
	if !strings.Contains(logs.String(), "next game only") {
		t.Errorf("size change not logged:\n%s", logs.String())
	}
}

func TestReloaderKeepsSettingsOnBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.json")
	if err := os.WriteFile(path, []byte(`{}`), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatal(err)
	}
	w, err := watch.New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer w.Close()

	var logs bytes.Buffer
	reload := reloader(w, path, cfg, log.New(&logs, "", 0))

	if err := os.WriteFile(path, []byte(`{"snake_glyph": "**"}`), 0644); err != nil {
		t.Fatal(err)
	}
	deadline := time.Now().Add(2 * time.Second)
	for !strings.Contains(logs.String(), "reload "+path) {
		if s, ok := reload(); ok {
			t.Fatalf("invalid config applied: %+v", s)
		}
		if time.Now().After(deadline) {
			t.Fatalf("failed reload not logged:\n%s", logs.String())
		}
		time.Sleep(10 * time.Millisecond)
	}
}
