// Package prompt builds the text sent to the completion service from a
// user message and an instruction template.
package prompt

import (
	"errors"
	"strings"
)

// Placeholder is the token replaced by the user's message.
const Placeholder = "{message}"

// DefaultText is the built-in instruction template.
const DefaultText = "You are a friendly chatbot. Respond to: {message}"

var (
	ErrMissingPlaceholder   = errors.New("template must contain the " + Placeholder + " placeholder")
	ErrDuplicatePlaceholder = errors.New("template must contain the " + Placeholder + " placeholder only once")
)

// Template is an instruction string with exactly one placeholder.
type Template struct {
	text  string
	index int
}

// New parses text into a Template. The placeholder must appear exactly once.
func New(text string) (*Template, error) {
	idx := strings.Index(text, Placeholder)
	if idx < 0 {
		return nil, ErrMissingPlaceholder
	}
	if strings.Contains(text[idx+len(Placeholder):], Placeholder) {
		return nil, ErrDuplicatePlaceholder
	}
	return &Template{text: text, index: idx}, nil
}

// MustNew is like New but panics on an invalid template.
func MustNew(text string) *Template {
	t, err := New(text)
	if err != nil {
		panic(err)
	}
	return t
}

var defaultTemplate = MustNew(DefaultText)

// Default returns the built-in template.
func Default() *Template {
	return defaultTemplate
}

// Build substitutes message into the template. The message is inserted
// verbatim and is never expanded again, so it may itself contain the
// placeholder token.
func (t *Template) Build(message string) string {
	var sb strings.Builder
	sb.Grow(len(t.text) - len(Placeholder) + len(message))
	sb.WriteString(t.text[:t.index])
	sb.WriteString(message)
	sb.WriteString(t.text[t.index+len(Placeholder):])
	return sb.String()
}

// Text returns the raw template text.
func (t *Template) Text() string {
	return t.text
}
