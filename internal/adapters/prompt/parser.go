package prompt

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

// Outcome is the result of parsing a raw model response. Parsing never
// fails: a response that follows the TRANSLATION:/TERMS: protocol becomes
// Parsed, anything else becomes Unparsed carrying the raw text.
type Outcome interface {
	// Collapse flattens the outcome to what the pipeline stores.
	Collapse() (translation string, terms domain.TermSet)
}

type Parsed struct {
	Translation string
	Terms       domain.TermSet
}

func (p Parsed) Collapse() (string, domain.TermSet) { return p.Translation, p.Terms }

type Unparsed struct {
	Raw string
}

func (u Unparsed) Collapse() (string, domain.TermSet) {
	return strings.TrimSpace(u.Raw), domain.TermSet{}
}

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// Parse splits a model response into translation and extracted terms.
// The terms JSON is looked for first inside a fenced json block, then as
// a bare brace span. A missing or malformed TERMS section yields Unparsed,
// which collapses to the full response with no terms.
func Parse(raw string) Outcome {
	if !strings.Contains(raw, "TRANSLATION:") || !strings.Contains(raw, "TERMS:") {
		return Unparsed{Raw: raw}
	}
	head, tail, _ := strings.Cut(raw, "TERMS:")
	translation := strings.TrimSpace(strings.ReplaceAll(head, "TRANSLATION:", ""))

	jsonText := ""
	if m := fencedJSON.FindStringSubmatch(tail); m != nil {
		jsonText = m[1]
	} else if open := strings.Index(tail, "{"); open >= 0 {
		if close := strings.LastIndex(tail, "}"); close > open {
			jsonText = tail[open : close+1]
		}
	}
	if jsonText == "" {
		return Unparsed{Raw: raw}
	}

	var terms domain.TermSet
	if err := json.Unmarshal([]byte(jsonText), &terms); err != nil {
		return Unparsed{Raw: raw}
	}
	return Parsed{Translation: translation, Terms: terms}
}
