package provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/turanbagtur/novel-translator/internal/adapters/prompt"
	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

func TestNew_UnknownProvider(t *testing.T) {
	_, err := New(context.Background(), "babelfish", &domain.APIConfig{}, nil, 0)
	var unknown *UnknownProviderError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected UnknownProviderError, got %v", err)
	}
	if !strings.Contains(err.Error(), "babelfish") {
		t.Errorf("error should name the provider: %v", err)
	}
	if !strings.Contains(err.Error(), "libretranslate") {
		t.Errorf("error should enumerate valid names: %v", err)
	}
	// Every name the factory accepts shows up in the listing.
	if !strings.Contains(err.Error(), "chatgpt") {
		t.Errorf("error should list the chatgpt alias: %v", err)
	}
}

func TestNew_KnownProviders(t *testing.T) {
	cfg := &domain.APIConfig{APIKey: "k"}
	b := prompt.NewBuilder(nil)
	for _, name := range Names {
		if name == "gemini" {
			continue // needs a live client handshake
		}
		p, err := New(context.Background(), name, cfg, b, 0)
		if err != nil {
			t.Errorf("New(%q): %v", name, err)
			continue
		}
		want := name
		if name == "chatgpt" {
			want = "openai"
		}
		if p.Name() != want {
			t.Errorf("New(%q).Name() = %q", name, p.Name())
		}
		if !Known(name) {
			t.Errorf("Known(%q) = false", name)
		}
	}
	// Alias resolves to the canonical backend, case-insensitively.
	p, err := New(context.Background(), "ChatGPT", cfg, b, 0)
	if err != nil {
		t.Fatalf("alias: %v", err)
	}
	if p.Name() != "openai" {
		t.Errorf("chatgpt alias should resolve to openai, got %q", p.Name())
	}
}

func TestApplyGlossary_CaseInsensitive(t *testing.T) {
	got := applyGlossary("ARTHUR met arthur near Arthur's house.", map[string]string{"Arthur": "Artur"})
	if strings.Contains(strings.ToLower(got), "arthur") {
		t.Errorf("all case variants should be replaced: %q", got)
	}
	if strings.Count(got, "Artur") != 3 {
		t.Errorf("want 3 replacements, got %q", got)
	}
}

func TestApplyGlossary_EscapesMetaChars(t *testing.T) {
	got := applyGlossary("the (Void) waits", map[string]string{"(Void)": "(Boşluk)"})
	if got != "the (Boşluk) waits" {
		t.Errorf("got %q", got)
	}
}

func TestExtractNames(t *testing.T) {
	set := extractNames("Sir Arthur walked to Camelot. Arthur smiled. the end")
	if len(set.Character) == 0 {
		t.Fatal("expected extracted names")
	}
	for _, p := range set.Character {
		if p.Original != p.Translation {
			t.Errorf("heuristic names map to themselves, got %+v", p)
		}
	}
	seen := map[string]int{}
	for _, p := range set.Character {
		seen[p.Original]++
	}
	for name, n := range seen {
		if n > 1 {
			t.Errorf("name %q extracted %d times", name, n)
		}
	}
}

func TestExtractNames_CapAtTen(t *testing.T) {
	text := "Aa and Bb and Cc and Dd and Ee and Ff and Gg and Hh and Ii and Jj and Kk and Ll"
	set := extractNames(text)
	if len(set.Character) > 10 {
		t.Errorf("got %d names, cap is 10", len(set.Character))
	}
}

func TestChat_Translate(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			http.NotFound(w, r)
			return
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer secret" {
			t.Errorf("auth header = %q", auth)
		}
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "TRANSLATION: Merhaba.\n\nTERMS:\n```json\n{\"character\":[{\"original\":\"Arthur\",\"translation\":\"Arthur\"}]}\n```"}},
			},
		})
	}))
	defer srv.Close()

	cfg := &domain.APIConfig{APIKey: "secret", ExtraRaw: `{"base_url":"` + srv.URL + `"}`}
	p := newDeepSeek(cfg, prompt.NewBuilder(nil), 0)

	res, err := p.Translate(context.Background(), ports.TranslateRequest{
		Text: "Hello.", SourceLang: "en", TargetLang: "tr", ExtractTerms: true,
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if res.Translation != "Merhaba." {
		t.Errorf("translation = %q", res.Translation)
	}
	if len(res.Terms.Character) != 1 || res.Terms.Character[0].Original != "Arthur" {
		t.Errorf("terms = %+v", res.Terms)
	}
	if gotBody["model"] != "deepseek-chat" {
		t.Errorf("default model = %v", gotBody["model"])
	}
}

func TestChat_ErrorEchoesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	cfg := &domain.APIConfig{APIKey: "k", ExtraRaw: `{"base_url":"` + srv.URL + `"}`}
	p := newPerplexity(cfg, prompt.NewBuilder(nil), 0)
	_, err := p.Translate(context.Background(), ports.TranslateRequest{Text: "x", SourceLang: "en", TargetLang: "tr"})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("error should echo response body, got %v", err)
	}
}

func TestMT_LibreTranslateWithGlossary(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["q"] != "Sir Arthur smiled." {
			t.Errorf("q = %q", body["q"])
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]string{"translatedText": "Bay arthur gülümsedi."})
	}))
	defer srv.Close()

	p := newMT("libretranslate", &domain.APIConfig{ExtraRaw: `{"base_url":"` + srv.URL + `"}`}, 0)
	res, err := p.Translate(context.Background(), ports.TranslateRequest{
		Text:       "Sir Arthur smiled.",
		SourceLang: "en", TargetLang: "tr",
		Glossary: map[string]string{"Arthur": "Artur"},
	})
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if res.Translation != "Bay Artur gülümsedi." {
		t.Errorf("glossary post-pass missing: %q", res.Translation)
	}
	if !res.Terms.Empty() {
		t.Errorf("libretranslate should not extract terms, got %+v", res.Terms)
	}
}

func TestMT_DeepLLangMapping(t *testing.T) {
	if deeplLang("tr") != "TR" {
		t.Errorf("tr -> %q", deeplLang("tr"))
	}
	if deeplLang("pt-br") != "PT-BR" {
		t.Errorf("unmapped codes should uppercase, got %q", deeplLang("pt-br"))
	}
}

func TestMT_MyMemoryStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"responseStatus":  403,
			"responseDetails": "invalid language pair",
		})
	}))
	defer srv.Close()

	p := newMT("mymemory", &domain.APIConfig{ExtraRaw: `{"base_url":"` + srv.URL + `"}`}, 0)
	_, err := p.Translate(context.Background(), ports.TranslateRequest{Text: "x", SourceLang: "en", TargetLang: "xx"})
	if err == nil || !strings.Contains(err.Error(), "invalid language pair") {
		t.Errorf("expected body status error, got %v", err)
	}
}
