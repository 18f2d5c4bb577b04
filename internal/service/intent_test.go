package service

import "testing"

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected Intent
	}{
		{"summary keyword", "give me a summary of my clips", IntentSummarize},
		{"summarise spelling", "can you summarise this playlist", IntentSummarize},
		{"tldr", "tldr of my library please", IntentSummarize},
		{"mixed case", "SUMMARIZE my saved videos", IntentSummarize},
		{"recommend", "recommend something to watch", IntentRecommend},
		{"watch next phrase", "what should i watch next?", IntentRecommend},
		{"quiz", "quiz me on what I saved", IntentQuiz},
		{"test me phrase", "test me on these videos", IntentQuiz},
		{"plan", "make a plan for this week", IntentPlan},
		{"study", "help me study these clips", IntentPlan},
		{"fallback to search", "anything about rust lifetimes?", IntentSearch},
		{"empty message", "", IntentSearch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyIntent(tt.message); got != tt.expected {
				t.Errorf("ClassifyIntent(%q) = %s, want %s", tt.message, got, tt.expected)
			}
		})
	}
}

func TestClassifyIntent_OrderPrecedence(t *testing.T) {
	// A message hitting several lexicons routes to the first matching intent.
	if got := ClassifyIntent("summarize and recommend"); got != IntentSummarize {
		t.Errorf("expected summarize to win over recommend, got %s", got)
	}
	if got := ClassifyIntent("recommend a study plan"); got != IntentRecommend {
		t.Errorf("expected recommend to win over plan, got %s", got)
	}
}
