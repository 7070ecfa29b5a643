package prompt

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"github.com/turanbagtur/novel-translator/internal/ports"
)

const builtinHeader = `You are a professional novel translator. Translate the following text from {{.SourceLang}} to {{.TargetLang}}.

IMPORTANT GUIDELINES:
- Maintain the narrative style and tone of the original text
- Preserve character emotions and dialogue nuances
- Keep the text natural and fluent in {{.TargetLang}}
- DO NOT add explanations or notes
- DO NOT translate sound effects literally - adapt them culturally
- Maintain paragraph structure
`

const extractInstructions = `

AFTER THE TRANSLATION, please identify and list important terms in JSON format:
- Character names (people, important figures)
- Location names (places, cities, realms)
- Special terms (abilities, skills, techniques, magic)
- Important items (artifacts, weapons, special objects)
- Organizations/Groups (guilds, clans, factions)

Format:
TRANSLATION: [your translation here]

TERMS:
` + "```json" + `
{
  "character": [{"original": "name", "translation": "..."}],
  "location": [{"original": "place", "translation": "..."}],
  "skill": [{"original": "ability", "translation": "..."}],
  "item": [{"original": "object", "translation": "..."}],
  "organization": [{"original": "group", "translation": "..."}]
}
` + "```" + `
`

type headerData struct {
	SourceLang string
	TargetLang string
}

// Builder assembles the full translation prompt for LLM-class backends.
// The role-framing header can be overridden per provider, per project or
// globally through the template store; the terminology, context and
// extraction blocks are fixed protocol.
type Builder struct {
	Templates ports.TemplateRepository
	// ProviderRef scopes header overrides to one configured backend.
	ProviderRef *int64
}

func NewBuilder(templates ports.TemplateRepository) *Builder {
	return &Builder{Templates: templates}
}

func (b *Builder) Build(ctx context.Context, req ports.TranslateRequest) (string, error) {
	header, err := b.header(ctx, req)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString(header)

	if len(req.Glossary) > 0 {
		sb.WriteString("\nTERMINOLOGY (Use these exact translations for consistency):\n")
		keys := make([]string, 0, len(req.Glossary))
		for k := range req.Glossary {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, "- %s = %s\n", k, req.Glossary[k])
		}
	}

	if req.Context != "" {
		fmt.Fprintf(&sb, "\nPREVIOUS CONTEXT:\n%s\n", req.Context)
	}

	fmt.Fprintf(&sb, "\nTEXT TO TRANSLATE:\n%s\n\nTRANSLATION:", req.Text)

	if req.ExtractTerms {
		sb.WriteString(extractInstructions)
	}
	return sb.String(), nil
}

func (b *Builder) header(ctx context.Context, req ports.TranslateRequest) (string, error) {
	body := b.overrideBody(ctx, req)
	if body == "" {
		body = builtinHeader
	}
	tpl, err := template.New("header").Parse(body)
	if err != nil {
		return "", fmt.Errorf("parse prompt template: %w", err)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, headerData{SourceLang: req.SourceLang, TargetLang: req.TargetLang}); err != nil {
		return "", fmt.Errorf("render prompt template: %w", err)
	}
	return buf.String(), nil
}

// overrideBody walks provider -> project -> global and returns the first
// stored header, or "" when none is set. Lookup errors degrade to the
// builtin rather than failing the translation.
func (b *Builder) overrideBody(ctx context.Context, req ports.TranslateRequest) string {
	if b.Templates == nil {
		return ""
	}
	if b.ProviderRef != nil {
		if t, _ := b.Templates.GetEffective(ctx, "provider", b.ProviderRef, "translate", "system"); t != nil && t.Body != "" {
			return t.Body
		}
	}
	if req.ProjectID != 0 {
		pid := req.ProjectID
		if t, _ := b.Templates.GetEffective(ctx, "project", &pid, "translate", "system"); t != nil && t.Body != "" {
			return t.Body
		}
	}
	if t, _ := b.Templates.GetEffective(ctx, "global", nil, "translate", "system"); t != nil && t.Body != "" {
		return t.Body
	}
	return ""
}
