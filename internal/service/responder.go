package service

import (
	"context"
	"fmt"

	"github.com/clipbook/clipbook/internal/config"
	"github.com/clipbook/clipbook/internal/domain"
)

// ResponderRequest carries everything a responder needs to produce a reply.
type ResponderRequest struct {
	UserID  string
	Message string
	Intent  Intent
	Context string        // rendered library context block
	Clips   []domain.Clip // the clips the context block covers, newest first
}

// Responder turns a classified chat message into an assistant reply.
// Implementations never return errors: failures are stringified into the
// reply so the conversation flow and persistence stay uniform.
type Responder interface {
	Respond(ctx context.Context, req ResponderRequest) string
}

// NewResponder selects the responder implementation from configuration.
func NewResponder(cfg *config.Config) (Responder, error) {
	switch cfg.Assistant.Responder {
	case "", "rule":
		return NewRuleResponder(), nil
	case "llm":
		return NewLLMResponder(&cfg.LLM), nil
	default:
		return nil, fmt.Errorf("unknown assistant responder %q (want rule or llm)", cfg.Assistant.Responder)
	}
}
