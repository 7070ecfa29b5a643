package txt

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

const lineWidth = 60

type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "txt" }

func (e *Exporter) Export(p *domain.Project, chapters []*domain.Chapter) ([]byte, error) {
	var buf bytes.Buffer
	rule := strings.Repeat("=", lineWidth)

	buf.WriteString(rule + "\n")
	buf.WriteString(center(p.Name, lineWidth) + "\n")
	buf.WriteString(rule + "\n\n")

	if p.Description != "" {
		buf.WriteString(p.Description + "\n\n")
	}
	fmt.Fprintf(&buf, "Kaynak Dil: %s\n", p.SourceLang)
	fmt.Fprintf(&buf, "Hedef Dil: %s\n", p.TargetLang)
	fmt.Fprintf(&buf, "Bölüm Sayısı: %d\n", len(chapters))
	fmt.Fprintf(&buf, "Oluşturulma: %s\n\n", time.Now().Format("02.01.2006 15:04"))
	buf.WriteString(rule + "\n\n")

	for _, c := range chapters {
		heading := chapterHeading(c)
		fmt.Fprintf(&buf, "\n\n%s\n", heading)
		buf.WriteString(strings.Repeat("-", len([]rune(heading))) + "\n\n")
		if c.TranslatedText != nil {
			buf.WriteString(*c.TranslatedText)
		}
		buf.WriteString("\n\n")
	}
	return buf.Bytes(), nil
}

func chapterHeading(c *domain.Chapter) string {
	h := fmt.Sprintf("Bölüm %d", c.Number)
	if c.Title != "" {
		h += ": " + c.Title
	}
	return h
}

func center(s string, width int) string {
	n := len([]rune(s))
	if n >= width {
		return s
	}
	left := (width - n) / 2
	return strings.Repeat(" ", left) + s
}
