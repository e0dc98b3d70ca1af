// Package repl runs the line-oriented chat loop on plain readers and writers.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	// Banner is printed once before the first prompt
	Banner = "Chatbot ready. Type 'exit' to quit."
	// UserPrompt precedes every line of input
	UserPrompt = "You: "
	// BotPrefix precedes every response
	BotPrefix = "Bot: "
	// ExitCommand ends the session; matched case-insensitively
	ExitCommand = "exit"
)

// Responder produces the reply to one user message
type Responder interface {
	Respond(ctx context.Context, message string) (string, error)
}

// ResponderFunc adapts a plain function to Responder
type ResponderFunc func(ctx context.Context, message string) (string, error)

// Respond calls f
func (f ResponderFunc) Respond(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}

type settings struct {
	format     func(string) string
	onResponse func(string)
}

// Option customizes Run
type Option func(*settings)

// WithFormatter post-processes each response before it is printed
func WithFormatter(fn func(string) string) Option {
	return func(s *settings) {
		s.format = fn
	}
}

// WithOnResponse is called with the raw text of each successful response
func WithOnResponse(fn func(string)) Option {
	return func(s *settings) {
		s.onResponse = fn
	}
}

// Run prints the banner and then reads one message per line from in until
// the user types exit or input ends. Either way it returns nil. The first
// error from r ends the loop and is returned.
func Run(ctx context.Context, r Responder, in io.Reader, out io.Writer, opts ...Option) error {
	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	reader := bufio.NewReader(in)
	fmt.Fprintln(out, Banner)

	for {
		fmt.Fprint(out, UserPrompt)

		line, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("failed to read input: %w", err)
		}
		if errors.Is(err, io.EOF) && line == "" {
			// keep the shell prompt off the "You: " line
			fmt.Fprintln(out)
			return nil
		}

		message := trimLineEnding(line)
		if IsExit(message) {
			return nil
		}

		reply, err := r.Respond(ctx, message)
		if err != nil {
			return fmt.Errorf("failed to get response: %w", err)
		}

		if s.onResponse != nil {
			s.onResponse(reply)
		}
		text := reply
		if s.format != nil {
			text = s.format(reply)
		}
		fmt.Fprintln(out, BotPrefix+text)
	}
}

// IsExit reports whether line is the exit command. Whitespace is significant.
func IsExit(line string) bool {
	return strings.EqualFold(line, ExitCommand)
}

func trimLineEnding(line string) string {
	line = strings.TrimSuffix(line, "\n")
	return strings.TrimSuffix(line, "\r")
}
