package provider

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/turanbagtur/novel-translator/internal/domain"
	"github.com/turanbagtur/novel-translator/internal/ports"
)

// MT is a classic machine-translation backend. These services take bare
// text (no prompt protocol), so glossary terms are enforced by a
// case-insensitive replacement pass over their output instead.
type MT struct {
	kind   string
	apiKey string
	ex     extras
	http   *resty.Client
}

func newMT(kind string, cfg *domain.APIConfig, timeout time.Duration) *MT {
	if timeout <= 0 {
		timeout = defaultMTTimeout
	}
	return &MT{
		kind:   kind,
		apiKey: cfg.APIKey,
		ex:     parseExtras(cfg),
		http:   resty.New().SetTimeout(timeout),
	}
}

func (p *MT) Name() string { return p.kind }

func (p *MT) Translate(ctx context.Context, req ports.TranslateRequest) (ports.TranslateResult, error) {
	var (
		text string
		err  error
	)
	switch p.kind {
	case "deepl":
		text, err = p.deepl(ctx, req)
	case "google-translate":
		text, err = p.googleTranslate(ctx, req)
	case "microsoft-translator":
		text, err = p.microsoft(ctx, req)
	case "libretranslate":
		text, err = p.libre(ctx, req)
	case "mymemory":
		text, err = p.mymemory(ctx, req)
	case "yandex":
		text, err = p.yandex(ctx, req)
	default:
		return ports.TranslateResult{}, &UnknownProviderError{Name: p.kind}
	}
	if err != nil {
		return ports.TranslateResult{}, err
	}

	raw := text
	text = applyGlossary(text, req.Glossary)

	res := ports.TranslateResult{Translation: text, Raw: raw}
	if req.ExtractTerms && p.kind == "deepl" {
		res.Terms = extractNames(req.Text)
	}
	return res, nil
}

// applyGlossary rewrites every case-insensitive occurrence of a source
// term to its stored translation.
func applyGlossary(text string, glossary map[string]string) string {
	for original, translation := range glossary {
		re := regexp.MustCompile(`(?i)` + regexp.QuoteMeta(original))
		text = re.ReplaceAllLiteralString(text, translation)
	}
	return text
}

var nameRE = regexp.MustCompile(`\b[A-Z][a-z]+(?:\s+[A-Z][a-z]+)*\b`)

// extractNames is a coarse fallback for services that cannot extract
// terminology themselves: capitalized word runs in the source text become
// character candidates, first ten matches, deduplicated.
func extractNames(text string) domain.TermSet {
	names := nameRE.FindAllString(text, -1)
	if len(names) > 10 {
		names = names[:10]
	}
	seen := make(map[string]bool, len(names))
	var set domain.TermSet
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		set.Character = append(set.Character, domain.TermPair{Original: name, Translation: name})
	}
	return set
}

// deeplLangs maps ISO codes to DeepL's uppercase form.
var deeplLangs = map[string]string{
	"en": "EN", "tr": "TR", "de": "DE", "fr": "FR",
	"es": "ES", "ja": "JA", "zh": "ZH", "ko": "KO",
}

func deeplLang(code string) string {
	if v, ok := deeplLangs[code]; ok {
		return v
	}
	return strings.ToUpper(code)
}

func (p *MT) deepl(ctx context.Context, req ports.TranslateRequest) (string, error) {
	base := p.ex.BaseURL
	if base == "" {
		if p.ex.IsPro {
			base = "https://api.deepl.com"
		} else {
			base = "https://api-free.deepl.com"
		}
	}
	body := map[string]any{
		"text":                []string{req.Text},
		"target_lang":         deeplLang(req.TargetLang),
		"formality":           "default",
		"preserve_formatting": true,
	}
	if src := deeplLang(req.SourceLang); src != "AUTO" {
		body["source_lang"] = src
	}
	var resp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	r, err := p.http.R().SetContext(ctx).
		SetHeader("Authorization", "DeepL-Auth-Key "+p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(strings.TrimRight(base, "/") + "/v2/translate")
	if err != nil {
		return "", fmt.Errorf("deepl translate: %w", err)
	}
	if r.IsError() {
		return "", fmt.Errorf("deepl translate: %s; body: %s", r.Status(), r.String())
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("deepl translate: empty response")
	}
	return resp.Translations[0].Text, nil
}

func (p *MT) googleTranslate(ctx context.Context, req ports.TranslateRequest) (string, error) {
	base := p.ex.BaseURL
	if base == "" {
		base = "https://translation.googleapis.com/language/translate/v2"
	}
	var resp struct {
		Data struct {
			Translations []struct {
				TranslatedText string `json:"translatedText"`
			} `json:"translations"`
		} `json:"data"`
	}
	r, err := p.http.R().SetContext(ctx).
		SetQueryParam("key", p.apiKey).
		SetBody(map[string]string{
			"q":      req.Text,
			"source": req.SourceLang,
			"target": req.TargetLang,
			"format": "text",
		}).SetResult(&resp).
		Post(base)
	if err != nil {
		return "", fmt.Errorf("google translate: %w", err)
	}
	if r.IsError() {
		return "", fmt.Errorf("google translate: %s; body: %s", r.Status(), r.String())
	}
	if len(resp.Data.Translations) == 0 {
		return "", fmt.Errorf("google translate: empty response")
	}
	return resp.Data.Translations[0].TranslatedText, nil
}

func (p *MT) microsoft(ctx context.Context, req ports.TranslateRequest) (string, error) {
	base := p.ex.BaseURL
	if base == "" {
		base = "https://api.cognitive.microsofttranslator.com"
	}
	region := p.ex.Region
	if region == "" {
		region = "global"
	}
	var resp []struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	r, err := p.http.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"api-version": "3.0",
			"from":        req.SourceLang,
			"to":          req.TargetLang,
		}).
		SetHeader("Ocp-Apim-Subscription-Key", p.apiKey).
		SetHeader("Ocp-Apim-Subscription-Region", region).
		SetHeader("Content-Type", "application/json").
		SetBody([]map[string]string{{"text": req.Text}}).
		SetResult(&resp).
		Post(strings.TrimRight(base, "/") + "/translate")
	if err != nil {
		return "", fmt.Errorf("microsoft translator: %w", err)
	}
	if r.IsError() {
		return "", fmt.Errorf("microsoft translator: %s; body: %s", r.Status(), r.String())
	}
	if len(resp) == 0 || len(resp[0].Translations) == 0 {
		return "", fmt.Errorf("microsoft translator: empty response")
	}
	return resp[0].Translations[0].Text, nil
}

func (p *MT) libre(ctx context.Context, req ports.TranslateRequest) (string, error) {
	base := p.ex.BaseURL
	if base == "" {
		base = "https://libretranslate.com"
	}
	body := map[string]string{
		"q":      req.Text,
		"source": req.SourceLang,
		"target": req.TargetLang,
		"format": "text",
	}
	if p.apiKey != "" {
		body["api_key"] = p.apiKey
	}
	var resp struct {
		TranslatedText string `json:"translatedText"`
	}
	r, err := p.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).SetResult(&resp).
		Post(strings.TrimRight(base, "/") + "/translate")
	if err != nil {
		return "", fmt.Errorf("libretranslate: %w", err)
	}
	if r.IsError() {
		return "", fmt.Errorf("libretranslate: %s; body: %s", r.Status(), r.String())
	}
	return resp.TranslatedText, nil
}

func (p *MT) mymemory(ctx context.Context, req ports.TranslateRequest) (string, error) {
	base := p.ex.BaseURL
	if base == "" {
		base = "https://api.mymemory.translated.net"
	}
	params := map[string]string{
		"q":        req.Text,
		"langpair": req.SourceLang + "|" + req.TargetLang,
	}
	if p.ex.Email != "" {
		params["de"] = p.ex.Email
	}
	var resp struct {
		ResponseStatus  any    `json:"responseStatus"`
		ResponseDetails string `json:"responseDetails"`
		ResponseData    struct {
			TranslatedText string `json:"translatedText"`
		} `json:"responseData"`
	}
	r, err := p.http.R().SetContext(ctx).
		SetQueryParams(params).SetResult(&resp).
		Get(strings.TrimRight(base, "/") + "/get")
	if err != nil {
		return "", fmt.Errorf("mymemory translate: %w", err)
	}
	if r.IsError() {
		return "", fmt.Errorf("mymemory translate: %s; body: %s", r.Status(), r.String())
	}
	// MyMemory reports its status inside the body, sometimes as a string.
	if s := fmt.Sprint(resp.ResponseStatus); s != "200" {
		return "", fmt.Errorf("mymemory translate: API returned error: %s", resp.ResponseDetails)
	}
	return resp.ResponseData.TranslatedText, nil
}

func (p *MT) yandex(ctx context.Context, req ports.TranslateRequest) (string, error) {
	base := p.ex.BaseURL
	if base == "" {
		base = "https://translate.api.cloud.yandex.net/translate/v2"
	}
	var resp struct {
		Translations []struct {
			Text string `json:"text"`
		} `json:"translations"`
	}
	r, err := p.http.R().SetContext(ctx).
		SetHeader("Authorization", "Api-Key "+p.apiKey).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]any{
			"texts":              []string{req.Text},
			"sourceLanguageCode": req.SourceLang,
			"targetLanguageCode": req.TargetLang,
			"folderId":           p.ex.FolderID,
		}).SetResult(&resp).
		Post(strings.TrimRight(base, "/") + "/translate")
	if err != nil {
		return "", fmt.Errorf("yandex translate: %w", err)
	}
	if r.IsError() {
		return "", fmt.Errorf("yandex translate: %s; body: %s", r.Status(), r.String())
	}
	if len(resp.Translations) == 0 {
		return "", fmt.Errorf("yandex translate: empty response")
	}
	return resp.Translations[0].Text, nil
}
