package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/clipbook/clipbook/internal/config"
	"github.com/clipbook/clipbook/internal/logger"
	"github.com/clipbook/clipbook/internal/prompts"
)

// LLMResponder answers through a hosted model behind an OpenAI-compatible
// proxy. Providers sometimes wrap replies in different payload shapes, so
// the response is normalized at this boundary; the rest of the app only
// ever sees a plain reply string.
type LLMResponder struct {
	client *resty.Client
	model  string
}

func NewLLMResponder(cfg *config.LLMConfig) *LLMResponder {
	client := resty.New().
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetTimeout(60 * time.Second).
		SetHeader("Content-Type", "application/json")
	if cfg.APIKey != "" {
		client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	}
	return &LLMResponder{
		client: client,
		model:  cfg.Model,
	}
}

type chatCompletionRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Respond sends one request per message, no retries. Transport failures and
// non-2xx responses are stringified into the reply so the caller's flow
// stays uniform with the rule responder.
func (r *LLMResponder) Respond(ctx context.Context, req ResponderRequest) string {
	system := prompts.AssistantSystemPrompt
	if req.Context != "" {
		system += "\n\nUser's clip library:\n" + req.Context
	}

	start := time.Now()
	resp, err := r.client.R().
		SetContext(ctx).
		SetBody(chatCompletionRequest{
			Model: r.model,
			Messages: []chatMessage{
				{Role: "system", Content: system},
				{Role: "user", Content: req.Message},
			},
		}).
		Post("/chat/completions")
	if err != nil {
		logger.CtxError(ctx, "llm request failed: %v", err)
		return fmt.Sprintf("Error: assistant request failed: %v", err)
	}

	logger.With(logger.Fields{
		logger.FieldProvider: "llm",
		logger.FieldStatus:   resp.StatusCode(),
	}).WithDuration(time.Since(start).Milliseconds()).Info(ctx, "llm responder completed")

	if resp.StatusCode() < 200 || resp.StatusCode() >= 300 {
		return fmt.Sprintf("Error: assistant returned status %d: %s", resp.StatusCode(), snippetOf(resp.String(), 200))
	}

	reply, err := normalizeModelReply(resp.Body())
	if err != nil {
		logger.CtxError(ctx, "llm reply unparseable: %v", err)
		return fmt.Sprintf("Error: could not read assistant reply: %v", err)
	}
	return reply
}

// normalizeModelReply extracts the assistant text from the payload shapes
// seen across providers:
//
//   - OpenAI style: {"choices":[{"message":{"content":"..."}}]}
//   - HF inference: [{"generated_text":"..."}]
//   - bare object:  {"generated_text":"..."}
//   - plain string: "..."
func normalizeModelReply(body []byte) (string, error) {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return "", fmt.Errorf("empty response body")
	}

	var openai struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			Text string `json:"text"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &openai); err == nil && len(openai.Choices) > 0 {
		if c := strings.TrimSpace(openai.Choices[0].Message.Content); c != "" {
			return c, nil
		}
		if c := strings.TrimSpace(openai.Choices[0].Text); c != "" {
			return c, nil
		}
	}

	var generatedList []struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &generatedList); err == nil && len(generatedList) > 0 {
		if c := strings.TrimSpace(generatedList[0].GeneratedText); c != "" {
			return c, nil
		}
	}

	var generated struct {
		GeneratedText string `json:"generated_text"`
	}
	if err := json.Unmarshal(body, &generated); err == nil {
		if c := strings.TrimSpace(generated.GeneratedText); c != "" {
			return c, nil
		}
	}

	var plain string
	if err := json.Unmarshal(body, &plain); err == nil && strings.TrimSpace(plain) != "" {
		return strings.TrimSpace(plain), nil
	}

	return "", fmt.Errorf("unrecognized reply shape: %s", snippetOf(trimmed, 120))
}

func snippetOf(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "…"
}
