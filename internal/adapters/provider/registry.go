package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/turanbagtur/novel-translator/internal/adapters/prompt"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

// Per-class call timeouts applied when the caller passes none.
const (
	defaultLLMTimeout = 120 * time.Second
	defaultMTTimeout  = 60 * time.Second
)

func llmTimeout(d time.Duration) time.Duration {
	if d <= 0 {
		return defaultLLMTimeout
	}
	return d
}

// Names lists every accepted backend identifier, in registry order.
// "chatgpt" is an alias for "openai".
var Names = []string{
	"openai",
	"chatgpt",
	"gemini",
	"claude",
	"groq",
	"deepseek",
	"perplexity",
	"deepl",
	"google-translate",
	"microsoft-translator",
	"libretranslate",
	"mymemory",
	"yandex",
}

// Known reports whether name resolves to a supported backend.
func Known(name string) bool {
	n := strings.ToLower(name)
	for _, v := range Names {
		if v == n {
			return true
		}
	}
	return false
}

type UnknownProviderError struct {
	Name string
}

func (e *UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider: %s (available: %s)", e.Name, strings.Join(Names, ", "))
}

// extras are optional per-provider settings stored as JSON on the config row.
type extras struct {
	BaseURL  string `json:"base_url"`
	Region   string `json:"region"`
	FolderID string `json:"folder_id"`
	Email    string `json:"email"`
	IsPro    bool   `json:"is_pro"`
}

func parseExtras(cfg *domain.APIConfig) extras {
	var e extras
	if cfg.ExtraRaw != "" {
		_ = json.Unmarshal([]byte(cfg.ExtraRaw), &e)
	}
	if e.BaseURL == "" {
		e.BaseURL = cfg.APIURL
	}
	return e
}

func maxTokens(cfg *domain.APIConfig) int {
	if cfg.MaxTokens > 0 {
		return cfg.MaxTokens
	}
	return 4000
}

func temperature(cfg *domain.APIConfig) float64 {
	if cfg.Temperature > 0 {
		return cfg.Temperature
	}
	return 0.7
}

// New builds the backend named by cfg.ProviderName. Lookup is
// case-insensitive; unknown names return *UnknownProviderError. The prompt
// builder is only consulted by LLM-class backends; classic MT backends
// ignore it. A zero timeout falls back to the per-class default.
func New(ctx context.Context, name string, cfg *domain.APIConfig, b *prompt.Builder, timeout time.Duration) (ports.Provider, error) {
	switch strings.ToLower(name) {
	case "openai", "chatgpt":
		return newOpenAI(cfg, b, timeout), nil
	case "groq":
		return newGroq(cfg, b, timeout), nil
	case "gemini":
		return newGemini(ctx, cfg, b, timeout)
	case "claude":
		return newClaude(cfg, b, timeout), nil
	case "deepseek":
		return newDeepSeek(cfg, b, timeout), nil
	case "perplexity":
		return newPerplexity(cfg, b, timeout), nil
	case "deepl", "google-translate", "microsoft-translator", "libretranslate", "mymemory", "yandex":
		return newMT(strings.ToLower(name), cfg, timeout), nil
	default:
		return nil, &UnknownProviderError{Name: name}
	}
}

// finish applies the shared response protocol: with term extraction on,
// the raw response goes through the two-stage parser and collapses to
// translation plus terms; otherwise the trimmed response is the
// translation.
func finish(raw string, extract bool) ports.TranslateResult {
	raw = strings.TrimSpace(raw)
	if !extract {
		return ports.TranslateResult{Translation: raw, Raw: raw}
	}
	translation, terms := prompt.Parse(raw).Collapse()
	return ports.TranslateResult{Translation: translation, Terms: terms, Raw: raw}
}
