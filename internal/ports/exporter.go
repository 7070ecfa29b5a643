package ports

import "github.com/turanbagtur/novel-translator/internal/domain"

// BookExporter renders a project's translated chapters into one output
// format.
type BookExporter interface {
	Format() string
	Export(p *domain.Project, chapters []*domain.Chapter) ([]byte, error)
}

// GlossaryExporter renders a project glossary into one output format.
type GlossaryExporter interface {
	Format() string
	Export(entries []*domain.GlossaryEntry) ([]byte, error)
}
