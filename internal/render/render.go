package render

import (
	"strings"

	"github.com/rs/zerolog/log"
)

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	return globalCache.render(content, opts)
}

// MarkdownWithWidth is a convenience function for rendering with specific width.
func MarkdownWithWidth(content string, width int) (string, error) {
	return Markdown(content, DefaultOptions().WithWidth(width))
}

// Formatter returns a function that renders a response for inline display
// after the "Bot: " prefix. Rendering failures fall back to the raw text.
func Formatter(opts Options) func(string) string {
	return func(text string) string {
		out, err := Markdown(text, opts)
		if err != nil {
			log.Warn().Err(err).Str("style", opts.Style).Msg("markdown rendering failed")
			return text
		}
		return strings.Trim(out, "\n")
	}
}
