package ports

import (
	"context"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

// TranslateRequest carries one chunk of text through a provider.
type TranslateRequest struct {
	Text         string
	SourceLang   string
	TargetLang   string
	Glossary     map[string]string
	Context      string
	ExtractTerms bool
	// ProjectID scopes prompt template resolution; zero means no project
	// scope.
	ProjectID int64
}

type TranslateResult struct {
	Translation string
	Terms       domain.TermSet
	// Raw is the unprocessed provider response, kept for diagnostics.
	Raw string
}

// Provider is a single translation backend. Implementations must not touch
// persistence; their only side effect is the outbound call.
type Provider interface {
	Name() string
	Translate(ctx context.Context, req TranslateRequest) (TranslateResult, error)
}
