package service

import (
	"context"
	"strings"
	"time"

	"github.com/clipbook/clipbook/internal/domain"
	"github.com/clipbook/clipbook/internal/logger"
	"github.com/clipbook/clipbook/internal/ratelimit"
)

// ConversationStore is the persistence surface the chat flow needs.
// *repository.ConversationRepository satisfies it.
type ConversationStore interface {
	Ensure(ctx context.Context, userID string) (*domain.Conversation, error)
	AppendMessage(ctx context.Context, conversationID string, from domain.MessageFrom, text string) (*domain.Message, error)
	ListMessages(ctx context.Context, conversationID string, limit int) ([]domain.Message, error)
}

// ChatService runs the assistant conversation flow: rate limit, persist the
// user message, build library context, respond, persist the reply.
type ChatService struct {
	conversations ConversationStore
	limiter       ratelimit.Limiter
	builder       *ContextBuilder
	responder     Responder
	historyLimit  int
}

func NewChatService(conversations ConversationStore, limiter ratelimit.Limiter, builder *ContextBuilder, responder Responder, historyLimit int) *ChatService {
	if historyLimit <= 0 {
		historyLimit = 50
	}
	return &ChatService{
		conversations: conversations,
		limiter:       limiter,
		builder:       builder,
		responder:     responder,
		historyLimit:  historyLimit,
	}
}

// ChatResult is the outcome of one chat turn.
type ChatResult struct {
	ConversationID string `json:"conversation_id"`
	Reply          string `json:"reply"`
	RateLimited    bool   `json:"-"`
}

// ErrEmptyMessage rejects blank chat input before any other work happens.
var ErrEmptyMessage = errEmptyMessage{}

type errEmptyMessage struct{}

func (errEmptyMessage) Error() string { return "message must not be empty" }

// Send processes one user message. playlistID optionally scopes the library
// context to a single playlist. A rate-limited turn returns RateLimited=true
// with nothing persisted. Responder failures never surface as errors; they
// come back as "Error: ..." replies and are persisted like any other reply.
func (s *ChatService) Send(ctx context.Context, userID, playlistID, message string) (*ChatResult, error) {
	if strings.TrimSpace(message) == "" {
		return nil, ErrEmptyMessage
	}

	if !s.limiter.Allow(ctx, userID) {
		logger.CtxWarn(ctx, "chat rate limited")
		return &ChatResult{RateLimited: true}, nil
	}

	conv, err := s.conversations.Ensure(ctx, userID)
	if err != nil {
		return nil, err
	}
	ctx = logger.SetConversationID(ctx, conv.ID)

	if _, err := s.conversations.AppendMessage(ctx, conv.ID, domain.MessageFromUser, message); err != nil {
		return nil, err
	}

	intent := ClassifyIntent(message)
	contextBlock, clips := s.builder.Build(ctx, userID, playlistID)

	start := time.Now()
	reply := s.responder.Respond(ctx, ResponderRequest{
		UserID:  userID,
		Message: message,
		Intent:  intent,
		Context: contextBlock,
		Clips:   clips,
	})
	logger.With(logger.Fields{
		"intent":          string(intent),
		logger.FieldCount: len(clips),
	}).WithDuration(time.Since(start).Milliseconds()).Info(ctx, "chat turn answered")

	// Error replies are persisted too: the transcript shows the user what
	// happened on their turn.
	if _, err := s.conversations.AppendMessage(ctx, conv.ID, domain.MessageFromAssistant, reply); err != nil {
		return nil, err
	}

	return &ChatResult{
		ConversationID: conv.ID,
		Reply:          reply,
	}, nil
}

// History returns the most recent messages of the user's conversation in
// chronological order. A non-positive limit falls back to the configured
// page size. A user who never chatted gets an empty history, not an error.
func (s *ChatService) History(ctx context.Context, userID string, limit int) ([]domain.Message, error) {
	if limit <= 0 || limit > s.historyLimit {
		limit = s.historyLimit
	}
	conv, err := s.conversations.Ensure(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.conversations.ListMessages(ctx, conv.ID, limit)
}
