package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/clipbook/clipbook/internal/domain"
)

type fakeConversationStore struct {
	conv      domain.Conversation
	messages  []domain.Message
	ensureErr error
	appendErr error
}

func (f *fakeConversationStore) Ensure(_ context.Context, userID string) (*domain.Conversation, error) {
	if f.ensureErr != nil {
		return nil, f.ensureErr
	}
	if f.conv.ID == "" {
		f.conv = domain.Conversation{ID: "conv-1", UserID: userID}
	}
	return &f.conv, nil
}

func (f *fakeConversationStore) AppendMessage(_ context.Context, conversationID string, from domain.MessageFrom, text string) (*domain.Message, error) {
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	msg := domain.Message{
		ID:             "msg",
		ConversationID: conversationID,
		From:           from,
		Text:           text,
		CreatedAt:      time.Now(),
	}
	f.messages = append(f.messages, msg)
	return &msg, nil
}

func (f *fakeConversationStore) ListMessages(_ context.Context, _ string, limit int) ([]domain.Message, error) {
	if limit > 0 && len(f.messages) > limit {
		return f.messages[len(f.messages)-limit:], nil
	}
	return f.messages, nil
}

type fakeLimiter struct {
	allow bool
	calls int
}

func (f *fakeLimiter) Allow(_ context.Context, _ string) bool {
	f.calls++
	return f.allow
}

type fakeResponder struct {
	reply   string
	lastReq ResponderRequest
}

func (f *fakeResponder) Respond(_ context.Context, req ResponderRequest) string {
	f.lastReq = req
	return f.reply
}

func newTestChatService(store *fakeConversationStore, limiter *fakeLimiter, responder *fakeResponder, clips []domain.Clip) *ChatService {
	builder := NewContextBuilder(&fakeClipReader{clips: clips}, &fakePlaylistReader{}, ContextBuilderConfig{})
	return NewChatService(store, limiter, builder, responder, 50)
}

func TestChatService_EmptyMessageRejected(t *testing.T) {
	store := &fakeConversationStore{}
	limiter := &fakeLimiter{allow: true}
	svc := newTestChatService(store, limiter, &fakeResponder{reply: "ok"}, nil)

	for _, msg := range []string{"", "   ", "\n\t"} {
		if _, err := svc.Send(context.Background(), "u1", "", msg); !errors.Is(err, ErrEmptyMessage) {
			t.Errorf("Send(%q) error = %v, want ErrEmptyMessage", msg, err)
		}
	}
	if limiter.calls != 0 {
		t.Error("empty messages must not consume rate limit budget")
	}
	if len(store.messages) != 0 {
		t.Error("empty messages must not be persisted")
	}
}

func TestChatService_RateLimited(t *testing.T) {
	store := &fakeConversationStore{}
	svc := newTestChatService(store, &fakeLimiter{allow: false}, &fakeResponder{reply: "ok"}, nil)

	result, err := svc.Send(context.Background(), "u1", "", "hello")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.RateLimited {
		t.Error("expected a rate-limited result")
	}
	if len(store.messages) != 0 {
		t.Error("rate-limited turns must not be persisted")
	}
}

func TestChatService_PersistsBothSides(t *testing.T) {
	store := &fakeConversationStore{}
	responder := &fakeResponder{reply: "Watch the Go talk."}
	clips := []domain.Clip{testClip("Go Talk", "concurrency", nil, time.Now())}
	svc := newTestChatService(store, &fakeLimiter{allow: true}, responder, clips)

	result, err := svc.Send(context.Background(), "u1", "", "recommend something")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Reply != "Watch the Go talk." {
		t.Errorf("reply = %q", result.Reply)
	}
	if result.ConversationID != "conv-1" {
		t.Errorf("conversation id = %q", result.ConversationID)
	}

	if len(store.messages) != 2 {
		t.Fatalf("expected user and assistant messages persisted, got %d", len(store.messages))
	}
	if store.messages[0].From != domain.MessageFromUser || store.messages[0].Text != "recommend something" {
		t.Errorf("first message = %+v", store.messages[0])
	}
	if store.messages[1].From != domain.MessageFromAssistant || store.messages[1].Text != "Watch the Go talk." {
		t.Errorf("second message = %+v", store.messages[1])
	}

	// The responder saw the classified intent and the rendered context.
	if responder.lastReq.Intent != IntentRecommend {
		t.Errorf("intent = %s, want recommend", responder.lastReq.Intent)
	}
	if len(responder.lastReq.Clips) != 1 {
		t.Errorf("responder should receive the context clips, got %d", len(responder.lastReq.Clips))
	}
}

func TestChatService_ErrorRepliesArePersisted(t *testing.T) {
	store := &fakeConversationStore{}
	responder := &fakeResponder{reply: "Error: assistant returned status 503"}
	svc := newTestChatService(store, &fakeLimiter{allow: true}, responder, nil)

	result, err := svc.Send(context.Background(), "u1", "", "hello")
	if err != nil {
		t.Fatalf("responder failures must not surface as errors, got %v", err)
	}
	if result.Reply != responder.reply {
		t.Errorf("reply = %q", result.Reply)
	}
	if len(store.messages) != 2 || store.messages[1].Text != responder.reply {
		t.Error("error replies must be persisted like any other reply")
	}
}

func TestChatService_History(t *testing.T) {
	store := &fakeConversationStore{}
	svc := newTestChatService(store, &fakeLimiter{allow: true}, &fakeResponder{reply: "hi"}, nil)

	// Fresh user gets an empty history, not an error.
	messages, err := svc.History(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 0 {
		t.Errorf("expected empty history, got %d messages", len(messages))
	}

	if _, err := svc.Send(context.Background(), "u1", "", "hello"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	messages, err = svc.History(context.Background(), "u1", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 2 {
		t.Errorf("expected 2 messages after one turn, got %d", len(messages))
	}

	// A limit caps the returned slice to the most recent messages.
	messages, err = svc.History(context.Background(), "u1", 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(messages) != 1 {
		t.Errorf("expected 1 message with limit 1, got %d", len(messages))
	}
}
