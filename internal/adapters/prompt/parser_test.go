package prompt

import (
	"testing"
)

func TestParse_FencedJSON(t *testing.T) {
	raw := "TRANSLATION: Merhaba dünya.\n\nTERMS:\n```json\n{\"character\": [{\"original\": \"Arthur\", \"translation\": \"Arthur\"}]}\n```"

	out := Parse(raw)
	p, ok := out.(Parsed)
	if !ok {
		t.Fatalf("expected Parsed, got %T", out)
	}
	if p.Translation != "Merhaba dünya." {
		t.Errorf("translation = %q", p.Translation)
	}
	if len(p.Terms.Character) != 1 || p.Terms.Character[0].Original != "Arthur" {
		t.Errorf("terms = %+v", p.Terms)
	}
}

func TestParse_BareBraceSpan(t *testing.T) {
	raw := "TRANSLATION: Selam.\n\nTERMS:\n{\"location\": [{\"original\": \"Avalon\", \"translation\": \"Avalon\"}]}"

	out := Parse(raw)
	p, ok := out.(Parsed)
	if !ok {
		t.Fatalf("expected Parsed, got %T", out)
	}
	if p.Translation != "Selam." {
		t.Errorf("translation = %q", p.Translation)
	}
	if len(p.Terms.Location) != 1 {
		t.Errorf("terms = %+v", p.Terms)
	}
}

func TestParse_NoMarkers(t *testing.T) {
	raw := "Merhaba dünya."
	out := Parse(raw)
	u, ok := out.(Unparsed)
	if !ok {
		t.Fatalf("expected Unparsed, got %T", out)
	}
	tr, terms := u.Collapse()
	if tr != "Merhaba dünya." {
		t.Errorf("collapsed translation = %q", tr)
	}
	if !terms.Empty() {
		t.Errorf("expected empty terms, got %+v", terms)
	}
}

func TestParse_MalformedJSON(t *testing.T) {
	raw := "TRANSLATION: Selam.\n\nTERMS:\n{broken"
	out := Parse(raw)
	if _, ok := out.(Unparsed); !ok {
		t.Fatalf("expected Unparsed for malformed terms, got %T", out)
	}
	tr, terms := out.Collapse()
	if tr != raw {
		t.Errorf("collapse should return the full response, got %q", tr)
	}
	if !terms.Empty() {
		t.Errorf("expected empty terms")
	}
}

func TestParse_MarkersWithoutJSON(t *testing.T) {
	raw := "TRANSLATION: Selam.\n\nTERMS:\nnone found"
	if _, ok := Parse(raw).(Unparsed); !ok {
		t.Fatal("expected Unparsed when no JSON follows TERMS:")
	}
}

func TestParse_AllCategories(t *testing.T) {
	raw := `TRANSLATION: Metin.

TERMS:
` + "```json" + `
{
  "character": [{"original": "Kael", "translation": "Kael"}],
  "location": [{"original": "Dark Forest", "translation": "Karanlık Orman"}],
  "skill": [{"original": "Fireball", "translation": "Ateş Topu"}],
  "item": [{"original": "Moon Blade", "translation": "Ay Kılıcı"}],
  "organization": [{"original": "Iron Guild", "translation": "Demir Lonca"}]
}
` + "```"

	p, ok := Parse(raw).(Parsed)
	if !ok {
		t.Fatal("expected Parsed")
	}
	if p.Terms.Len() != 5 {
		t.Errorf("terms len = %d, want 5", p.Terms.Len())
	}
	cats := p.Terms.Categories()
	if cats[4].Type != "general" {
		t.Errorf("organization should map to general, got %q", cats[4].Type)
	}
}
