package render

import "testing"

func TestCacheKey(t *testing.T) {
	opts1 := DefaultOptions()
	opts2 := DefaultOptions().WithWidth(100)
	opts3 := DefaultOptions().WithStyle("light")

	key1 := cacheKey(opts1)
	key2 := cacheKey(opts2)
	key3 := cacheKey(opts3)

	if key1 == key2 {
		t.Error("Different widths should produce different keys")
	}
	if key1 == key3 {
		t.Error("Different styles should produce different keys")
	}

	// Same options should produce same key
	if cacheKey(opts1) != cacheKey(DefaultOptions()) {
		t.Error("Same options should produce same key")
	}
}

func TestCacheReuse(t *testing.T) {
	ClearCache()
	defer ClearCache()

	opts := DefaultOptions()
	for i := 0; i < 3; i++ {
		if _, err := Markdown("# Test", opts); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if CacheSize() != 1 {
		t.Errorf("expected 1 cached renderer, got %d", CacheSize())
	}

	if _, err := Markdown("# Test", opts.WithWidth(40)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if CacheSize() != 2 {
		t.Errorf("expected 2 cached renderers, got %d", CacheSize())
	}
}

func TestCache_FailedRendererNotCached(t *testing.T) {
	ClearCache()
	defer ClearCache()

	if _, err := Markdown("# Test", DefaultOptions().WithStyle("nonexistent_style_path")); err == nil {
		t.Fatal("expected error for invalid style path")
	}
	if CacheSize() != 0 {
		t.Errorf("expected empty cache, got %d", CacheSize())
	}
}
