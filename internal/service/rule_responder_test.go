package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/clipbook/clipbook/internal/domain"
	"github.com/clipbook/clipbook/internal/prompts"
)

func ruleRespond(intent Intent, message string, clips []domain.Clip) string {
	return NewRuleResponder().Respond(context.Background(), ResponderRequest{
		UserID:  "u1",
		Message: message,
		Intent:  intent,
		Clips:   clips,
	})
}

func TestRuleResponder_EmptyLibrary(t *testing.T) {
	for _, intent := range []Intent{IntentSummarize, IntentRecommend, IntentQuiz, IntentPlan, IntentSearch} {
		t.Run(string(intent), func(t *testing.T) {
			got := ruleRespond(intent, "anything", nil)
			if got != prompts.NoClipsMessage {
				t.Errorf("empty library reply = %q, want the no-clips message", got)
			}
		})
	}
}

func TestRuleResponder_Deterministic(t *testing.T) {
	clips := []domain.Clip{
		testClip("Go Concurrency", "Goroutines explained.", []string{"go"}, time.Now()),
		testClip("Rust Intro", "Ownership basics.", []string{"rust"}, time.Now()),
	}
	first := ruleRespond(IntentSummarize, "summarize", clips)
	for i := 0; i < 5; i++ {
		if got := ruleRespond(IntentSummarize, "summarize", clips); got != first {
			t.Fatal("same input must produce the same reply")
		}
	}
}

func TestRuleResponder_RecommendShortestUnwatched(t *testing.T) {
	clipA := testClip("Long Unwatched", "", nil, time.Now())
	clipA.DurationSeconds = 1800
	clipB := testClip("Short Unwatched", "", nil, time.Now())
	clipB.DurationSeconds = 300
	clipC := testClip("Watched Short", "", nil, time.Now())
	clipC.DurationSeconds = 60
	clipC.Watched = true

	got := ruleRespond(IntentRecommend, "what next", []domain.Clip{clipA, clipB, clipC})
	if !strings.Contains(got, `"Short Unwatched"`) {
		t.Errorf("expected the shortest unwatched clip, got %q", got)
	}
	if !strings.Contains(got, "5m") {
		t.Errorf("expected the duration in the reply, got %q", got)
	}
}

func TestRuleResponder_RecommendUnknownDurationSortsLast(t *testing.T) {
	noDuration := testClip("No Duration", "", nil, time.Now())
	withDuration := testClip("Timed", "", nil, time.Now())
	withDuration.DurationSeconds = 900

	got := ruleRespond(IntentRecommend, "recommend", []domain.Clip{noDuration, withDuration})
	if !strings.Contains(got, `"Timed"`) {
		t.Errorf("clip with a known duration should win, got %q", got)
	}
}

func TestRuleResponder_RecommendAllWatched(t *testing.T) {
	clip := testClip("Seen It", "", nil, time.Now())
	clip.Watched = true

	got := ruleRespond(IntentRecommend, "recommend", []domain.Clip{clip})
	if !strings.Contains(got, "rewatch") || !strings.Contains(got, `"Seen It"`) {
		t.Errorf("all-watched library should suggest a rewatch, got %q", got)
	}
}

func TestRuleResponder_QuizUsesTitles(t *testing.T) {
	clips := []domain.Clip{
		testClip("Alpha", "", nil, time.Now()),
		testClip("Beta", "", nil, time.Now()),
		testClip("Gamma", "", nil, time.Now()),
		testClip("Delta", "", nil, time.Now()),
	}
	got := ruleRespond(IntentQuiz, "quiz me", clips)

	for _, title := range []string{"Alpha", "Beta", "Gamma"} {
		if !strings.Contains(got, title) {
			t.Errorf("quiz should reference %q, got %q", title, got)
		}
	}
	if strings.Contains(got, "Delta") {
		t.Errorf("quiz should cap at three questions, got %q", got)
	}
}

func TestRuleResponder_PlanDays(t *testing.T) {
	clips := []domain.Clip{
		testClip("One", "", nil, time.Now()),
		testClip("Two", "", nil, time.Now()),
	}
	got := ruleRespond(IntentPlan, "make a plan", clips)

	if !strings.Contains(got, "Day 1") || !strings.Contains(got, "Day 2") {
		t.Errorf("plan should cover one day per clip, got %q", got)
	}
	if strings.Contains(got, "Day 3") {
		t.Errorf("plan should not invent days beyond the clips, got %q", got)
	}
}

func TestRuleResponder_SearchRanksByMatchCount(t *testing.T) {
	both := testClip("Go testing tutorial", "table driven testing in go", nil, time.Now())
	one := testClip("Go basics", "introduction", nil, time.Now())
	none := testClip("Cooking pasta", "carbonara", nil, time.Now())

	got := ruleRespond(IntentSearch, "go testing", []domain.Clip{none, one, both})

	bothIdx := strings.Index(got, "Go testing tutorial")
	oneIdx := strings.Index(got, "Go basics")
	if bothIdx == -1 || oneIdx == -1 {
		t.Fatalf("expected both matching clips in reply, got %q", got)
	}
	if bothIdx > oneIdx {
		t.Errorf("clip matching more query words should rank first, got %q", got)
	}
	if strings.Contains(got, "Cooking pasta") {
		t.Errorf("non-matching clip should be excluded, got %q", got)
	}
}

func TestRuleResponder_SearchCapsAtFive(t *testing.T) {
	clips := make([]domain.Clip, 8)
	for i := range clips {
		clips[i] = testClip("golang video "+strings.Repeat("i", i+1), "", nil, time.Now())
	}
	got := ruleRespond(IntentSearch, "golang", clips)

	if n := strings.Count(got, "- "); n != 5 {
		t.Errorf("expected 5 results, got %d:\n%s", n, got)
	}
}

func TestRuleResponder_SearchNoMatches(t *testing.T) {
	clips := []domain.Clip{testClip("Cooking pasta", "carbonara", nil, time.Now())}
	got := ruleRespond(IntentSearch, "quantum physics", clips)

	if !strings.Contains(got, "couldn't find") {
		t.Errorf("expected a no-match message, got %q", got)
	}
}
