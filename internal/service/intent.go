package service

import (
	"strings"

	"github.com/clipbook/clipbook/internal/prompts"
)

// Intent is the classified purpose of a chat message.
type Intent string

const (
	IntentSummarize Intent = "summarize"
	IntentRecommend Intent = "recommend"
	IntentQuiz      Intent = "quiz"
	IntentPlan      Intent = "plan"
	IntentSearch    Intent = "search" // default: treat the message as a library search
)

// ClassifyIntent routes a free-text message to one of the five intents by
// substring membership against the fixed keyword sets. Matching is
// case-insensitive; anything unmatched falls back to library search.
func ClassifyIntent(message string) Intent {
	lower := strings.ToLower(message)

	if containsAny(lower, prompts.SummarizeWords) {
		return IntentSummarize
	}
	if containsAny(lower, prompts.RecommendWords) {
		return IntentRecommend
	}
	if containsAny(lower, prompts.QuizWords) {
		return IntentQuiz
	}
	if containsAny(lower, prompts.PlanWords) {
		return IntentPlan
	}
	return IntentSearch
}

func containsAny(lower string, words []string) bool {
	for _, word := range words {
		if word == "" {
			continue
		}
		if strings.Contains(lower, word) {
			return true
		}
	}
	return false
}
