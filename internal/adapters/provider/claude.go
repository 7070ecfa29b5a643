package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/turanbagtur/novel-translator/internal/adapters/prompt"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

type Claude struct {
	client      anthropic.Client
	model       anthropic.Model
	maxTokens   int
	temperature float64
	builder     *prompt.Builder
}

func newClaude(cfg *domain.APIConfig, b *prompt.Builder, timeout time.Duration) *Claude {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithHTTPClient(&http.Client{Timeout: llmTimeout(timeout)}),
	}
	if ex := parseExtras(cfg); ex.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(ex.BaseURL))
	}
	model := cfg.Model
	if model == "" {
		model = "claude-3-sonnet-20240229"
	}
	return &Claude{
		client:      anthropic.NewClient(opts...),
		model:       anthropic.Model(model),
		maxTokens:   maxTokens(cfg),
		temperature: temperature(cfg),
		builder:     b,
	}
}

func (p *Claude) Name() string { return "claude" }

func (p *Claude) Translate(ctx context.Context, req ports.TranslateRequest) (ports.TranslateResult, error) {
	userPrompt, err := p.builder.Build(ctx, req)
	if err != nil {
		return ports.TranslateResult{}, err
	}

	message, err := p.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       p.model,
		MaxTokens:   int64(p.maxTokens),
		Temperature: anthropic.Float(p.temperature),
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})
	if err != nil {
		return ports.TranslateResult{}, fmt.Errorf("claude translate: %w", err)
	}

	var text string
	for _, block := range message.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	if text == "" {
		return ports.TranslateResult{}, fmt.Errorf("claude translate: no text in response")
	}
	return finish(text, req.ExtractTerms), nil
}
