// Package chatbot turns a user message into a templated prompt and hands it
// to a completion client.
package chatbot

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/diogo/chatbot/internal/api"
	"github.com/diogo/chatbot/internal/prompt"
)

// Service answers one message at a time. It keeps no conversation state:
// every call is independent of the ones before it.
type Service struct {
	client api.Completer
	tmpl   *prompt.Template
}

// NewService creates a Service. A nil template uses prompt.Default().
func NewService(client api.Completer, tmpl *prompt.Template) *Service {
	if tmpl == nil {
		tmpl = prompt.Default()
	}
	return &Service{client: client, tmpl: tmpl}
}

// Respond builds the prompt for message and returns the client's reply.
// Client errors are returned as-is.
func (s *Service) Respond(ctx context.Context, message string) (string, error) {
	p := s.tmpl.Build(message)
	turnID := uuid.NewString()
	start := time.Now()

	reply, err := s.client.Complete(ctx, p)
	if err != nil {
		log.Debug().
			Str("turn_id", turnID).
			Int("prompt_len", len(p)).
			Dur("duration", time.Since(start)).
			Err(err).
			Msg("completion failed")
		return "", err
	}

	log.Debug().
		Str("turn_id", turnID).
		Int("prompt_len", len(p)).
		Dur("duration", time.Since(start)).
		Int("response_len", len(reply)).
		Msg("completion")

	return reply, nil
}
