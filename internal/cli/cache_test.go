package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(home, ".cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestCacheDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xdg-cache")

	dir, err := cacheDir()
	if err != nil {
		t.Fatalf("cacheDir() error = %v", err)
	}
	if want := filepath.Join("/tmp/xdg-cache", appName); dir != want {
		t.Errorf("cacheDir() = %q, want %q", dir, want)
	}
}

func TestMeasureCache(t *testing.T) {
	dir := t.TempDir()

	// A cache layout: sharded subdirectories holding entry files.
	sub := filepath.Join(dir, "ab")
	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(sub, "one.json"), []byte("12345"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "two.json"), []byte("123"), 0o644); err != nil {
		t.Fatal(err)
	}

	entries, size := measureCache(dir)
	if entries != 2 {
		t.Errorf("entries = %d, want 2", entries)
	}
	if size != 8 {
		t.Errorf("size = %d, want 8", size)
	}
}

func TestMeasureCacheMissingDir(t *testing.T) {
	entries, size := measureCache(filepath.Join(t.TempDir(), "never-created"))
	if entries != 0 || size != 0 {
		t.Errorf("missing dir = (%d, %d), want empty", entries, size)
	}
}
