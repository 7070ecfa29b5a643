package provider

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/turanbagtur/novel-translator/internal/adapters/prompt"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

// Chat is a plain OpenAI-compatible /chat/completions backend used for
// services without a dedicated SDK (DeepSeek, Perplexity).
type Chat struct {
	name        string
	baseURL     string
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	builder     *prompt.Builder
	http        *resty.Client
}

func newChat(name, baseURL, defaultModel string, cfg *domain.APIConfig, b *prompt.Builder, timeout time.Duration) *Chat {
	if ex := parseExtras(cfg); ex.BaseURL != "" {
		baseURL = ex.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = defaultModel
	}
	if timeout <= 0 {
		timeout = defaultLLMTimeout
	}
	return &Chat{
		name:        name,
		baseURL:     strings.TrimRight(baseURL, "/"),
		apiKey:      cfg.APIKey,
		model:       model,
		maxTokens:   maxTokens(cfg),
		temperature: temperature(cfg),
		builder:     b,
		http:        resty.New().SetTimeout(timeout),
	}
}

func newDeepSeek(cfg *domain.APIConfig, b *prompt.Builder, timeout time.Duration) *Chat {
	return newChat("deepseek", "https://api.deepseek.com/v1", "deepseek-chat", cfg, b, timeout)
}

func newPerplexity(cfg *domain.APIConfig, b *prompt.Builder, timeout time.Duration) *Chat {
	return newChat("perplexity", "https://api.perplexity.ai", "llama-3.1-sonar-large-128k-online", cfg, b, timeout)
}

func (p *Chat) Name() string { return p.name }

func (p *Chat) Translate(ctx context.Context, req ports.TranslateRequest) (ports.TranslateResult, error) {
	userPrompt, err := p.builder.Build(ctx, req)
	if err != nil {
		return ports.TranslateResult{}, err
	}

	body := map[string]any{
		"model": p.model,
		"messages": []map[string]string{
			{"role": "system", "content": "You are a professional novel translator."},
			{"role": "user", "content": userPrompt},
		},
		"temperature": p.temperature,
		"max_tokens":  p.maxTokens,
	}
	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	r, err := p.http.R().SetContext(ctx).
		SetHeader("Authorization", "Bearer "+p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(p.baseURL + "/chat/completions")
	if err != nil {
		return ports.TranslateResult{}, fmt.Errorf("%s translate: %w", p.name, err)
	}
	if r.IsError() {
		return ports.TranslateResult{}, fmt.Errorf("%s translate: %s; body: %s", p.name, r.Status(), r.String())
	}
	if len(resp.Choices) == 0 {
		return ports.TranslateResult{}, fmt.Errorf("%s translate: no choices returned", p.name)
	}
	return finish(resp.Choices[0].Message.Content, req.ExtractTerms), nil
}
