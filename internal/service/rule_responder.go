package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/clipbook/clipbook/internal/domain"
	"github.com/clipbook/clipbook/internal/prompts"
)

// RuleResponder produces deterministic replies from the clip snapshot alone,
// with no network calls. It is the default responder and the offline
// fallback when no model proxy is configured.
type RuleResponder struct{}

func NewRuleResponder() *RuleResponder {
	return &RuleResponder{}
}

// Respond never fails: every branch degrades to a fixed message when the
// snapshot is empty.
func (r *RuleResponder) Respond(_ context.Context, req ResponderRequest) string {
	if len(req.Clips) == 0 {
		return prompts.NoClipsMessage
	}

	switch req.Intent {
	case IntentSummarize:
		return r.summarize(req.Clips)
	case IntentRecommend:
		return r.recommend(req.Clips)
	case IntentQuiz:
		return r.quiz(req.Clips)
	case IntentPlan:
		return r.plan(req.Clips)
	default:
		return r.search(req.Message, req.Clips)
	}
}

const summaryMaxClips = 5

func (r *RuleResponder) summarize(clips []domain.Clip) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Your library has %d clip", len(clips)))
	if len(clips) != 1 {
		sb.WriteString("s")
	}
	sb.WriteString(". Most recent:\n")

	for i, clip := range clips {
		if i >= summaryMaxClips {
			break
		}
		sb.WriteString(fmt.Sprintf("- %s\n", clip.Title()))
	}

	if topics := topicWords(clips, 5); len(topics) > 0 {
		sb.WriteString("Main topics: " + strings.Join(topics, ", ") + ".")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// recommend picks the shortest unwatched clip so the suggestion is the
// quickest win. Unknown durations sort last among unwatched clips.
func (r *RuleResponder) recommend(clips []domain.Clip) string {
	var pick *domain.Clip
	for i := range clips {
		clip := &clips[i]
		if clip.Watched {
			continue
		}
		if pick == nil || shorter(clip, pick) {
			pick = clip
		}
	}

	if pick == nil {
		return fmt.Sprintf("You've watched everything here. Maybe rewatch %q, it's the most recent clip you saved.", clips[0].Title())
	}

	reply := fmt.Sprintf("Watch %q next.", pick.Title())
	if pick.DurationSeconds > 0 {
		reply += fmt.Sprintf(" It's only %s and you haven't watched it yet.", formatDuration(pick.DurationSeconds))
	} else {
		reply += " You haven't watched it yet."
	}
	return reply
}

func shorter(a, b *domain.Clip) bool {
	switch {
	case a.DurationSeconds > 0 && b.DurationSeconds > 0:
		return a.DurationSeconds < b.DurationSeconds
	case a.DurationSeconds > 0:
		return true
	default:
		return false
	}
}

func formatDuration(seconds int) string {
	if seconds < 60 {
		return fmt.Sprintf("%ds", seconds)
	}
	minutes := seconds / 60
	if rest := seconds % 60; rest != 0 {
		return fmt.Sprintf("%dm%ds", minutes, rest)
	}
	return fmt.Sprintf("%dm", minutes)
}

const quizMaxQuestions = 3

func (r *RuleResponder) quiz(clips []domain.Clip) string {
	templates := []string{
		"What is the main takeaway of %q?",
		"Name one concept covered in %q.",
		"How would you explain %q to a friend in two sentences?",
	}

	var sb strings.Builder
	sb.WriteString("Quick quiz from your clips:\n")
	n := len(clips)
	if n > quizMaxQuestions {
		n = quizMaxQuestions
	}
	for i := 0; i < n; i++ {
		sb.WriteString(fmt.Sprintf("%d. %s\n", i+1, fmt.Sprintf(templates[i%len(templates)], clips[i].Title())))
	}
	sb.WriteString("Reply with your answers and save new clips on anything you missed.")
	return sb.String()
}

func (r *RuleResponder) plan(clips []domain.Clip) string {
	var sb strings.Builder
	sb.WriteString("A short study plan from your library:\n")
	days := len(clips)
	if days > 3 {
		days = 3
	}
	for i := 0; i < days; i++ {
		clip := clips[i]
		line := fmt.Sprintf("Day %d: watch %q", i+1, clip.Title())
		if clip.DurationSeconds > 0 {
			line += fmt.Sprintf(" (%s)", formatDuration(clip.DurationSeconds))
		}
		line += " and note three key points."
		sb.WriteString(line + "\n")
	}
	sb.WriteString("Finish by asking me for a quiz.")
	return sb.String()
}

const searchMaxResults = 5

// search scores each clip by how many query words appear as substrings in
// its title, description, and tags. Ties break by recency; the input is
// already newest first, so a stable sort preserves that order.
func (r *RuleResponder) search(message string, clips []domain.Clip) string {
	words := queryWords(message)

	type scored struct {
		clip  domain.Clip
		score int
	}
	var matches []scored
	for _, clip := range clips {
		haystack := strings.ToLower(clip.Title() + " " + clip.Description + " " + strings.Join(clip.Tags, " "))
		score := 0
		for _, w := range words {
			if strings.Contains(haystack, w) {
				score++
			}
		}
		if score > 0 {
			matches = append(matches, scored{clip: clip, score: score})
		}
	}

	if len(matches) == 0 {
		return "I couldn't find any saved clips matching that. Try different words, or save some clips on the topic first."
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})
	if len(matches) > searchMaxResults {
		matches = matches[:searchMaxResults]
	}

	var sb strings.Builder
	sb.WriteString("From your clips:\n")
	for _, m := range matches {
		sb.WriteString("- " + m.clip.Title() + "\n")
	}
	return strings.TrimRight(sb.String(), "\n")
}

// stopWords excludes filler from both topic extraction and search scoring.
var stopWords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "that": true,
	"this": true, "you": true, "your": true, "how": true, "what": true,
	"are": true, "was": true, "can": true, "from": true, "about": true,
	"have": true, "not": true, "but": true, "all": true, "any": true,
	"show": true, "find": true, "clips": true, "clip": true, "video": true,
	"videos": true,
}

func queryWords(message string) []string {
	fields := strings.Fields(strings.ToLower(message))
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		f = strings.Trim(f, ".,!?:;\"'()")
		if len(f) < 2 || stopWords[f] {
			continue
		}
		words = append(words, f)
	}
	return words
}

// topicWords returns the most frequent non-stopword terms across titles,
// descriptions, and tags. Ties break alphabetically so output is stable.
func topicWords(clips []domain.Clip, limit int) []string {
	counts := map[string]int{}
	for _, clip := range clips {
		text := strings.ToLower(clip.Title() + " " + clip.Description + " " + strings.Join(clip.Tags, " "))
		seen := map[string]bool{}
		for _, f := range strings.Fields(text) {
			f = strings.Trim(f, ".,!?:;\"'()")
			if len(f) < 3 || stopWords[f] || seen[f] {
				continue
			}
			seen[f] = true
			counts[f]++
		}
	}

	words := make([]string, 0, len(counts))
	for w, c := range counts {
		if c >= 2 {
			words = append(words, w)
		}
	}
	sort.Slice(words, func(i, j int) bool {
		if counts[words[i]] != counts[words[j]] {
			return counts[words[i]] > counts[words[j]]
		}
		return words[i] < words[j]
	})
	if len(words) > limit {
		words = words[:limit]
	}
	return words
}
