package cost

import "testing"

func TestEstimateCost_FlatProvider(t *testing.T) {
	e := EstimateCost("gemini", "", 1000, 2000)
	if e.InputCost != 0.00025 {
		t.Errorf("input cost = %v", e.InputCost)
	}
	if e.OutputCost != 0.0015 {
		t.Errorf("output cost = %v", e.OutputCost)
	}
	if e.TotalCost != 0.00175 {
		t.Errorf("total cost = %v", e.TotalCost)
	}
	if e.Currency != "USD" || e.TotalTokens != 3000 {
		t.Errorf("estimate = %+v", e)
	}
}

func TestEstimateCost_ModelSubstringMatch(t *testing.T) {
	e := EstimateCost("openai", "gpt-4-turbo-preview", 1000, 1000)
	if e.InputCost != 0.01 || e.OutputCost != 0.03 {
		t.Errorf("gpt-4-turbo-preview should match gpt-4-turbo rates: %+v", e)
	}

	e = EstimateCost("OpenAI", "GPT-4o-mini", 1000, 1000)
	if e.InputCost != 0.0025 {
		t.Errorf("model match should be case-insensitive: %+v", e)
	}
}

func TestEstimateCost_FirstModelFallback(t *testing.T) {
	e := EstimateCost("claude", "claude-5-opus", 1000, 1000)
	if e.InputCost != 0.003 || e.OutputCost != 0.015 {
		t.Errorf("unmatched model should use first entry (claude-3-sonnet): %+v", e)
	}
	e = EstimateCost("openai", "", 1000, 0)
	if e.InputCost != 0.0025 {
		t.Errorf("empty model should use first entry (gpt-4o): %+v", e)
	}
}

func TestEstimateCost_UnknownProviderIsZero(t *testing.T) {
	e := EstimateCost("babelfish", "any", 100000, 100000)
	if e.TotalCost != 0 || e.InputCost != 0 || e.OutputCost != 0 {
		t.Errorf("unknown provider must price at zero: %+v", e)
	}
	if e.TotalTokens != 200000 {
		t.Errorf("token counts still reported: %+v", e)
	}
}

func TestEstimateCost_Deterministic(t *testing.T) {
	a := EstimateCost("deepseek", "deepseek-chat", 12345, 6789)
	b := EstimateCost("deepseek", "deepseek-chat", 12345, 6789)
	if a != b {
		t.Errorf("equal inputs must yield identical estimates: %+v vs %+v", a, b)
	}
}

func TestEstimateCost_Rounding(t *testing.T) {
	// 1 token of deepl input is 6e-9 USD, rounds to zero at 6 decimals.
	e := EstimateCost("deepl", "", 1, 0)
	if e.InputCost != 0 {
		t.Errorf("expected sub-micro cost to round to 0, got %v", e.InputCost)
	}
	e = EstimateCost("deepl", "", 1_000_000, 0)
	if e.InputCost != 0.006 {
		t.Errorf("input cost = %v", e.InputCost)
	}
}

func TestEstimateChapter(t *testing.T) {
	e := EstimateChapter("groq", "mixtral-8x7b-32768", "some chapter text to translate")
	if !e.IsEstimate {
		t.Error("chapter estimates must be flagged")
	}
	if e.InputTokens <= 0 {
		t.Errorf("input tokens = %d", e.InputTokens)
	}
	want := int(float64(e.InputTokens) * 1.2)
	if e.OutputTokens != want {
		t.Errorf("output tokens = %d, want %d", e.OutputTokens, want)
	}
	if e.TotalCost != 0 {
		t.Errorf("groq is free, got %v", e.TotalCost)
	}
}

func TestCountTokens_NonEmpty(t *testing.T) {
	n := CountTokens("Hello, world. This is a short paragraph of English text.")
	if n <= 0 {
		t.Fatalf("token count = %d", n)
	}
	if CountTokens("") != 0 {
		t.Errorf("empty text should count zero tokens")
	}
}
