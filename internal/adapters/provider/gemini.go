package provider

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"google.golang.org/genai"

	"github.com/turanbagtur/novel-translator/internal/adapters/prompt"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

type Gemini struct {
	client      *genai.Client
	model       string
	maxTokens   int
	temperature float64
	builder     *prompt.Builder
}

func newGemini(ctx context.Context, cfg *domain.APIConfig, b *prompt.Builder, timeout time.Duration) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: llmTimeout(timeout)},
	})
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	model := cfg.Model
	if model == "" {
		model = "gemini-pro"
	}
	return &Gemini{
		client:      client,
		model:       model,
		maxTokens:   maxTokens(cfg),
		temperature: temperature(cfg),
		builder:     b,
	}, nil
}

func (p *Gemini) Name() string { return "gemini" }

func (p *Gemini) Translate(ctx context.Context, req ports.TranslateRequest) (ports.TranslateResult, error) {
	userPrompt, err := p.builder.Build(ctx, req)
	if err != nil {
		return ports.TranslateResult{}, err
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{genai.NewPartFromText(userPrompt)}, genai.RoleUser),
	}
	temp := float32(p.temperature)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		MaxOutputTokens: int32(p.maxTokens),
	}
	result, err := p.client.Models.GenerateContent(ctx, p.model, contents, cfg)
	if err != nil {
		return ports.TranslateResult{}, fmt.Errorf("gemini translate: %w", err)
	}
	if result == nil || len(result.Candidates) == 0 {
		return ports.TranslateResult{}, fmt.Errorf("gemini translate: empty response")
	}

	var text string
	for _, candidate := range result.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			text += part.Text
		}
		if text != "" {
			break
		}
	}
	if text == "" {
		return ports.TranslateResult{}, fmt.Errorf("gemini translate: no text in response")
	}
	return finish(text, req.ExtractTerms), nil
}
