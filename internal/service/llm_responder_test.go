package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/clipbook/clipbook/internal/config"
)

func TestNormalizeModelReply(t *testing.T) {
	tests := []struct {
		name     string
		body     string
		expected string
		wantErr  bool
	}{
		{
			name:     "openai chat completion shape",
			body:     `{"choices":[{"message":{"content":"Watch the Go talk next."}}]}`,
			expected: "Watch the Go talk next.",
		},
		{
			name:     "openai legacy text shape",
			body:     `{"choices":[{"text":"Watch the Go talk next."}]}`,
			expected: "Watch the Go talk next.",
		},
		{
			name:     "hf array of generated_text",
			body:     `[{"generated_text":"Here is a summary."}]`,
			expected: "Here is a summary.",
		},
		{
			name:     "bare generated_text object",
			body:     `{"generated_text":"Here is a summary."}`,
			expected: "Here is a summary.",
		},
		{
			name:     "plain json string",
			body:     `"Just a string reply."`,
			expected: "Just a string reply.",
		},
		{
			name:     "whitespace around content is trimmed",
			body:     `{"choices":[{"message":{"content":"  padded  "}}]}`,
			expected: "padded",
		},
		{
			name:    "empty body",
			body:    "",
			wantErr: true,
		},
		{
			name:    "empty choices",
			body:    `{"choices":[]}`,
			wantErr: true,
		},
		{
			name:    "unrecognized shape",
			body:    `{"foo":"bar"}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := normalizeModelReply([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error, got reply %q", got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.expected {
				t.Errorf("reply = %q, want %q", got, tt.expected)
			}
		})
	}
}

func newTestLLMResponder(baseURL string) *LLMResponder {
	return NewLLMResponder(&config.LLMConfig{
		Model:   "test-model",
		BaseURL: baseURL,
	})
}

func TestLLMResponder_SuccessfulReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"choices":[{"message":{"content":"Here you go."}}]}`))
	}))
	defer srv.Close()

	got := newTestLLMResponder(srv.URL).Respond(context.Background(), ResponderRequest{
		Message: "summarize my clips",
		Context: "Library: all saved clips\n(no clips)",
	})
	if got != "Here you go." {
		t.Errorf("reply = %q, want %q", got, "Here you go.")
	}
}

func TestLLMResponder_Non2xxBecomesErrorReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"error":"overloaded"}`))
	}))
	defer srv.Close()

	got := newTestLLMResponder(srv.URL).Respond(context.Background(), ResponderRequest{Message: "hi"})
	if !strings.HasPrefix(got, "Error:") {
		t.Errorf("non-2xx should produce an Error: reply, got %q", got)
	}
	if !strings.Contains(got, "503") {
		t.Errorf("reply should mention the status code, got %q", got)
	}
}

func TestLLMResponder_TransportFailureBecomesErrorReply(t *testing.T) {
	// Point at a closed server so the request fails outright.
	srv := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {}))
	srv.Close()

	got := newTestLLMResponder(srv.URL).Respond(context.Background(), ResponderRequest{Message: "hi"})
	if !strings.HasPrefix(got, "Error:") {
		t.Errorf("transport failure should produce an Error: reply, got %q", got)
	}
}

func TestLLMResponder_UnparseableReplyBecomesErrorReply(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"unexpected":"shape"}`))
	}))
	defer srv.Close()

	got := newTestLLMResponder(srv.URL).Respond(context.Background(), ResponderRequest{Message: "hi"})
	if !strings.HasPrefix(got, "Error:") {
		t.Errorf("unparseable payload should produce an Error: reply, got %q", got)
	}
}
