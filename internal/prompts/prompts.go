package prompts

// ============================================================================
// Intent lexicons
// ============================================================================
//
// A message routes to the first intent whose keyword appears as a substring
// of the lower-cased message. Keywords are matched in declaration order;
// anything that matches nothing falls back to library search.

// SummarizeWords routes to the summarize branch. "summar" covers summary,
// summarize, summarise, summarization.
var SummarizeWords = []string{
	"summar", "overview", "tl;dr", "tldr", "recap",
}

// RecommendWords routes to the recommend branch.
var RecommendWords = []string{
	"recommend", "suggest", "what should i watch", "watch next", "next video",
}

// QuizWords routes to the quiz branch.
var QuizWords = []string{
	"quiz", "test me", "question me",
}

// PlanWords routes to the study-plan branch.
var PlanWords = []string{
	"plan", "schedule", "study",
}

// ============================================================================
// Assistant prompt
// ============================================================================

// AssistantSystemPrompt frames the hosted model as a librarian over the
// user's own saved clips. The library context block is appended after it.
const AssistantSystemPrompt = `You are ClipBook's library assistant. You answer questions about the user's saved video clips: summaries of what they have collected, recommendations on what to watch next, quizzes over the material, and short study plans.

Rules:
- Only use the clip library context provided below. Never invent clips the user has not saved.
- When the library context is empty, say so and suggest saving some clips first.
- Keep answers short and practical; refer to clips by their titles.
- When recommending, prefer clips the user has not watched yet.`

// NoClipsMessage is the deterministic reply used by every responder branch
// when the user's library (or selected playlist) holds no clips.
const NoClipsMessage = "You don't have any clips saved here yet. Save a few videos and ask me again!"
