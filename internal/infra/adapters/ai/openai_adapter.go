package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"marvel-tutor/internal/domain/ports/adapter"
	"marvel-tutor/internal/infra/metrics"
)

// Compile-time assurance this adapter satisfies the port
var _ adapter.AIServiceAdapter = (*OpenAIAdapter)(nil)

// OpenAIAdapter implements adapter.AIServiceAdapter against the OpenAI API.
// It prefers the Responses call shape and falls back to the legacy Chat
// Completions shape when the primary attempt fails for any reason. The
// fallback is the only retry this adapter performs; it does not distinguish
// transient from permanent failures.
type OpenAIAdapter struct {
	apiKey string
	base   string // e.g., https://api.openai.com/v1
	model  string
	client *http.Client
}

func NewOpenAIAdapter(apiKey, model, base string) (*OpenAIAdapter, error) {
	if apiKey == "" {
		return nil, errors.New("openai api key empty")
	}
	if model == "" {
		model = "gpt-4o-mini"
	}
	if base == "" {
		base = "https://api.openai.com/v1"
	}
	return &OpenAIAdapter{
		apiKey: apiKey,
		base:   strings.TrimRight(base, "/"),
		model:  model,
		client: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (o *OpenAIAdapter) Chat(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	if model == "" {
		model = o.model
	}

	start := time.Now()
	reply, err := o.chatResponses(ctx, model, messages)
	if err == nil {
		metrics.ObserveCompletion("openai", model, int(time.Since(start).Milliseconds()), true)
		return reply, nil
	}

	// Legacy call shape
	metrics.FallbackUsed("openai", model)
	reply, err2 := o.chatCompletions(ctx, model, messages)
	metrics.ObserveCompletion("openai", model, int(time.Since(start).Milliseconds()), err2 == nil)
	if err2 != nil {
		return "", fmt.Errorf("responses: %v; chat completions: %w", err, err2)
	}
	return reply, nil
}

func (o *OpenAIAdapter) CountTokens(ctx context.Context, model string, messages []adapter.Message) (int, error) {
	if model == "" {
		model = o.model
	}
	return countPromptTokens(model, messages)
}

// chatResponses uses the Responses API (primary call shape).
func (o *OpenAIAdapter) chatResponses(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	reqBody := struct {
		Model string            `json:"model"`
		Input []adapter.Message `json:"input"`
	}{Model: model, Input: messages}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, o.base+"/responses", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai responses http %d", resp.StatusCode)
	}

	var payload struct {
		Output []struct {
			Type    string `json:"type"`
			Content []struct {
				Type string `json:"type"`
				Text string `json:"text"`
			} `json:"content"`
		} `json:"output"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	var sb strings.Builder
	for _, out := range payload.Output {
		for _, blk := range out.Content {
			if blk.Type == "output_text" {
				sb.WriteString(blk.Text)
			}
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no output text")
	}
	return sb.String(), nil
}

// chatCompletions uses the older Chat Completions API (fallback shape).
func (o *OpenAIAdapter) chatCompletions(ctx context.Context, model string, messages []adapter.Message) (string, error) {
	reqBody := struct {
		Model    string            `json:"model"`
		Messages []adapter.Message `json:"messages"`
	}{Model: model, Messages: messages}

	b, _ := json.Marshal(reqBody)
	req, _ := http.NewRequestWithContext(ctx, http.MethodPost, o.base+"/chat/completions", bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+o.apiKey)

	resp, err := o.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("openai http %d", resp.StatusCode)
	}

	var payload struct {
		Choices []struct {
			Message adapter.Message `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	for _, c := range payload.Choices {
		if c.Message.Content != "" {
			return strings.TrimSpace(c.Message.Content), nil
		}
	}
	return "", errors.New("no choice content")
}
