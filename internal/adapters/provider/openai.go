package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	openai "github.com/sashabaranov/go-openai"

	"github.com/turanbagtur/novel-translator/internal/adapters/prompt"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

const groqBaseURL = "https://api.groq.com/openai/v1"

// OpenAI serves both the OpenAI API and Groq's OpenAI-compatible endpoint;
// the two differ only in base URL and default model.
type OpenAI struct {
	name        string
	client      *openai.Client
	model       string
	maxTokens   int
	temperature float64
	builder     *prompt.Builder
}

func newOpenAI(cfg *domain.APIConfig, b *prompt.Builder, timeout time.Duration) *OpenAI {
	c := openai.DefaultConfig(cfg.APIKey)
	if ex := parseExtras(cfg); ex.BaseURL != "" {
		c.BaseURL = ex.BaseURL
	}
	c.HTTPClient = &http.Client{Timeout: llmTimeout(timeout)}
	model := cfg.Model
	if model == "" {
		model = "gpt-4-turbo-preview"
	}
	return &OpenAI{
		name:        "openai",
		client:      openai.NewClientWithConfig(c),
		model:       model,
		maxTokens:   maxTokens(cfg),
		temperature: temperature(cfg),
		builder:     b,
	}
}

func newGroq(cfg *domain.APIConfig, b *prompt.Builder, timeout time.Duration) *OpenAI {
	c := openai.DefaultConfig(cfg.APIKey)
	c.BaseURL = groqBaseURL
	if ex := parseExtras(cfg); ex.BaseURL != "" {
		c.BaseURL = ex.BaseURL
	}
	c.HTTPClient = &http.Client{Timeout: llmTimeout(timeout)}
	model := cfg.Model
	if model == "" {
		model = "mixtral-8x7b-32768"
	}
	return &OpenAI{
		name:        "groq",
		client:      openai.NewClientWithConfig(c),
		model:       model,
		maxTokens:   maxTokens(cfg),
		temperature: temperature(cfg),
		builder:     b,
	}
}

func (p *OpenAI) Name() string { return p.name }

func (p *OpenAI) Translate(ctx context.Context, req ports.TranslateRequest) (ports.TranslateResult, error) {
	userPrompt, err := p.builder.Build(ctx, req)
	if err != nil {
		return ports.TranslateResult{}, err
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a professional novel translator."},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: float32(p.temperature),
		MaxTokens:   p.maxTokens,
	})
	if err != nil {
		return ports.TranslateResult{}, fmt.Errorf("%s translate: %w", p.name, err)
	}
	if len(resp.Choices) == 0 {
		return ports.TranslateResult{}, fmt.Errorf("%s translate: no choices returned", p.name)
	}
	return finish(resp.Choices[0].Message.Content, req.ExtractTerms), nil
}
