package render

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/glamour"
)

// rendererCache keeps one renderer per option set.
// glamour.TermRenderer is not safe for concurrent Render calls, so the
// lock is held for the whole render.
type rendererCache struct {
	mu        sync.Mutex
	renderers map[string]*glamour.TermRenderer
}

var globalCache = &rendererCache{
	renderers: make(map[string]*glamour.TermRenderer),
}

// cacheKey generates a unique key based on options.
func cacheKey(opts Options) string {
	return fmt.Sprintf("%s:%d:%t:%t:%t:%t",
		opts.Style,
		opts.Width,
		opts.EnableEmoji,
		opts.PreserveNewLines,
		opts.TableWrap,
		opts.InlineTableLinks,
	)
}

func (c *rendererCache) render(content string, opts Options) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(opts)
	renderer, ok := c.renderers[key]
	if !ok {
		var err error
		renderer, err = createRenderer(opts)
		if err != nil {
			return "", err
		}
		c.renderers[key] = renderer
	}

	return renderer.Render(content)
}

// createRenderer creates a new TermRenderer with the specified options.
func createRenderer(opts Options) (*glamour.TermRenderer, error) {
	rendererOpts := []glamour.TermRendererOption{
		glamour.WithStylePath(opts.Style),
		glamour.WithWordWrap(opts.Width),
		glamour.WithTableWrap(opts.TableWrap),
		glamour.WithInlineTableLinks(opts.InlineTableLinks),
	}

	if opts.EnableEmoji {
		rendererOpts = append(rendererOpts, glamour.WithEmoji())
	}

	if opts.PreserveNewLines {
		rendererOpts = append(rendererOpts, glamour.WithPreservedNewLines())
	}

	return glamour.NewTermRenderer(rendererOpts...)
}

// ClearCache drops all cached renderers (useful for testing).
func ClearCache() {
	globalCache.mu.Lock()
	globalCache.renderers = make(map[string]*glamour.TermRenderer)
	globalCache.mu.Unlock()
}

// CacheSize returns the number of cached renderers.
func CacheSize() int {
	globalCache.mu.Lock()
	defer globalCache.mu.Unlock()
	return len(globalCache.renderers)
}
