package cost

import (
	"math"
	"strings"
)

// rates are USD per 1K tokens. Character-priced translation APIs are
// folded into token-equivalent input rates with zero output cost.
type rate struct {
	input  float64
	output float64
}

type modelRate struct {
	match string // substring of the lowercased model name
	rate  rate
}

type providerPricing struct {
	flat   *rate
	models []modelRate // ordered; first entry is the default
}

var pricing = map[string]providerPricing{
	"gemini": {flat: &rate{input: 0.00025, output: 0.00075}},
	"openai": {models: []modelRate{
		{match: "gpt-4o", rate: rate{input: 0.0025, output: 0.01}},
		{match: "gpt-4-turbo", rate: rate{input: 0.01, output: 0.03}},
		{match: "gpt-3.5-turbo", rate: rate{input: 0.0005, output: 0.0015}},
	}},
	"claude": {models: []modelRate{
		{match: "claude-3-sonnet", rate: rate{input: 0.003, output: 0.015}},
		{match: "claude-3-haiku", rate: rate{input: 0.00025, output: 0.00125}},
	}},
	"groq":                 {flat: &rate{}},
	"deepseek":             {flat: &rate{input: 0.00014, output: 0.00028}},
	"perplexity":           {flat: &rate{input: 0.001, output: 0.002}},
	"deepl":                {flat: &rate{input: 0.000006}},
	"google-translate":     {flat: &rate{input: 0.00002}},
	"microsoft-translator": {flat: &rate{input: 0.00001}},
	"yandex":               {flat: &rate{input: 0.000015}},
	"libretranslate":       {flat: &rate{}},
	"mymemory":             {flat: &rate{}},
}

// Estimate is the cost breakdown for one translation call.
type Estimate struct {
	InputCost    float64 `json:"input_cost"`
	OutputCost   float64 `json:"output_cost"`
	TotalCost    float64 `json:"total_cost"`
	Currency     string  `json:"currency"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	TotalTokens  int     `json:"total_tokens"`
	IsEstimate   bool    `json:"is_estimate,omitempty"`
}

// lookupRate resolves pricing for a provider/model pair. Model matching is
// by substring; a provider with per-model rates falls back to its first
// entry, and an unknown provider prices at zero.
func lookupRate(provider, model string) (rate, bool) {
	p, ok := pricing[strings.ToLower(provider)]
	if !ok {
		return rate{}, false
	}
	if p.flat != nil {
		return *p.flat, true
	}
	model = strings.ToLower(model)
	for _, m := range p.models {
		if model != "" && strings.Contains(model, m.match) {
			return m.rate, true
		}
	}
	return p.models[0].rate, true
}

// EstimateCost computes the rounded USD cost of a call. Unknown providers
// yield a zero estimate, never an error.
func EstimateCost(provider, model string, inputTokens, outputTokens int) Estimate {
	e := Estimate{
		Currency:     "USD",
		InputTokens:  inputTokens,
		OutputTokens: outputTokens,
		TotalTokens:  inputTokens + outputTokens,
	}
	r, ok := lookupRate(provider, model)
	if !ok {
		return e
	}
	e.InputCost = round6(float64(inputTokens) / 1000 * r.input)
	e.OutputCost = round6(float64(outputTokens) / 1000 * r.output)
	e.TotalCost = round6(float64(inputTokens)/1000*r.input + float64(outputTokens)/1000*r.output)
	return e
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
