package assets

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestManager_RootPriority(t *testing.T) {
	low := t.TempDir()
	high := t.TempDir()
	writeFile(t, filepath.Join(low, "maps", "a.tmj"), "low")
	writeFile(t, filepath.Join(high, "maps", "a.tmj"), "high")
	writeFile(t, filepath.Join(low, "only_low.txt"), "low only")

	m := NewManager()
	if err := m.AddRoot(low); err != nil {
		t.Fatalf("AddRoot failed: %v", err)
	}
	if err := m.AddRoot(high); err != nil {
		t.Fatalf("AddRoot failed: %v", err)
	}

	data, err := m.Load(filepath.Join("maps", "a.tmj"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "high" {
		t.Errorf("expected last added root to win, got %q", data)
	}

	data, err = m.Load("only_low.txt")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "low only" {
		t.Errorf("unexpected content %q", data)
	}
}

func TestManager_LoadCaches(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "tiles.png")
	writeFile(t, path, "v1")

	m := NewManager()
	if err := m.AddRoot(root); err != nil {
		t.Fatalf("AddRoot failed: %v", err)
	}

	if _, err := m.Load("tiles.png"); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	writeFile(t, path, "v2")

	data, err := m.Load("tiles.png")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if string(data) != "v1" {
		t.Errorf("expected cached content v1, got %q", data)
	}

	hits, misses := m.cache.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("expected 1 hit 1 miss, got %d/%d", hits, misses)
	}
}

func TestManager_Errors(t *testing.T) {
	m := NewManager()

	if err := m.AddRoot(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing root")
	}

	file := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, file, "x")
	if err := m.AddRoot(file); err == nil {
		t.Error("expected error for non-directory root")
	}

	if _, err := m.Load("nope.png"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCache_Eviction(t *testing.T) {
	c := NewCache(2)
	c.Set("a", []byte("1"))
	c.Set("b", []byte("2"))
	c.Get("a")
	c.Set("c", []byte("3"))

	if c.Len() != 2 {
		t.Errorf("expected 2 entries, got %d", c.Len())
	}
	if _, ok := c.Get("b"); ok {
		t.Error("least recently used entry should be evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("recently used entry should survive")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("expected empty cache after Clear, got %d", c.Len())
	}
	if hits, misses := c.Stats(); hits != 0 || misses != 0 {
		t.Errorf("expected stats reset, got %d/%d", hits, misses)
	}
}

func TestFind(t *testing.T) {
	base := t.TempDir()
	writeFile(t, filepath.Join(base, ".tsx", "ground.tsx"), "preferred")
	writeFile(t, filepath.Join(base, "ground.tsx"), "sibling")
	writeFile(t, filepath.Join(base, "deep", "nested", "well.png"), "nested")
	writeFile(t, filepath.Join(base, "rel", "house.tsx"), "relative")

	tests := []struct {
		name      string
		preferred string
		ref       string
		want      string
	}{
		{"preferred dir wins", TilesetDir, "../tilesets/ground.tsx", filepath.Join(base, ".tsx", "ground.tsx")},
		{"relative to base", "", "rel/house.tsx", filepath.Join(base, "rel", "house.tsx")},
		{"recursive search", ImageDir, "../../art/well.png", filepath.Join(base, "deep", "nested", "well.png")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Find(base, tt.preferred, tt.ref)
			if err != nil {
				t.Fatalf("Find failed: %v", err)
			}
			if got != tt.want {
				t.Errorf("expected %s, got %s", tt.want, got)
			}
		})
	}
}

func TestFind_NotFound(t *testing.T) {
	base := t.TempDir()

	for _, ref := range []string{"", "missing.tsx"} {
		if _, err := Find(base, TilesetDir, ref); !errors.Is(err, ErrNotFound) {
			t.Errorf("Find(%q): expected ErrNotFound, got %v", ref, err)
		}
	}
}
