package cli

import (
	"context"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/mindmap/pkg/cache"
)

func TestCachePathCommand(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv("MINDMAP_CACHE_DIR", dir)

	out, err := execute(t, "", "cache", "path")
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(out) != dir {
		t.Errorf("cache path = %q, want %q", out, dir)
	}
}

func TestCacheClearCommand(t *testing.T) {
	isolate(t)
	dir := filepath.Join(t.TempDir(), "cache")
	t.Setenv("MINDMAP_CACHE_DIR", dir)

	ctx := context.Background()
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{"a", "b"} {
		if err := fc.Set(ctx, k, []byte("v"), time.Hour); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatalf("cache clear: %v", err)
	}
	if _, ok, _ := fc.Get(ctx, "a"); ok {
		t.Error("entry survived cache clear")
	}

	// Clearing an empty cache is not an error.
	if _, err := execute(t, "", "cache", "clear"); err != nil {
		t.Fatalf("second cache clear: %v", err)
	}
}

func TestNewCache(t *testing.T) {
	cfg := testConfig(t)

	c, err := newCache(context.Background(), cfg, true)
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("noCache: got %T, want *cache.NullCache", c)
	}

	c, err = newCache(context.Background(), cfg, false)
	if err != nil {
		t.Fatal(err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("got %T, want *cache.FileCache", c)
	}
	if fc.Dir() != cfg.CacheDir {
		t.Errorf("dir = %q, want %q", fc.Dir(), cfg.CacheDir)
	}
}

func TestNewCacheBadRedisURL(t *testing.T) {
	cfg := testConfig(t)
	cfg.RedisURL = "not-a-redis-url"
	if _, err := newCache(context.Background(), cfg, false); err == nil {
		t.Error("expected error for invalid redis URL")
	}
}
