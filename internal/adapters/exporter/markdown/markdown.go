package markdown

import (
	"bytes"
	"fmt"
	"time"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "markdown" }

func (e *Exporter) Export(p *domain.Project, chapters []*domain.Chapter) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "# %s\n\n", p.Name)
	if p.Description != "" {
		fmt.Fprintf(&buf, "*%s*\n\n", p.Description)
	}
	fmt.Fprintf(&buf, "- Kaynak Dil: %s\n", p.SourceLang)
	fmt.Fprintf(&buf, "- Hedef Dil: %s\n", p.TargetLang)
	fmt.Fprintf(&buf, "- Bölüm Sayısı: %d\n", len(chapters))
	fmt.Fprintf(&buf, "- Oluşturulma: %s\n\n", time.Now().Format("02.01.2006 15:04"))

	for _, c := range chapters {
		fmt.Fprintf(&buf, "## Bölüm %d", c.Number)
		if c.Title != "" {
			fmt.Fprintf(&buf, ": %s", c.Title)
		}
		buf.WriteString("\n\n")
		if c.TranslatedText != nil {
			buf.WriteString(*c.TranslatedText)
		}
		buf.WriteString("\n\n")
	}
	return buf.Bytes(), nil
}
