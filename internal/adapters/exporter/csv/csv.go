package csv

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

// Exporter writes a project glossary as CSV, one term per row.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "csv" }

func (e *Exporter) Export(entries []*domain.GlossaryEntry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	_ = w.Write([]string{"original_term", "translated_term", "term_type", "confirmed", "usage_count"})
	for _, g := range entries {
		_ = w.Write([]string{
			g.OriginalTerm,
			g.TranslatedTerm,
			g.TermType,
			strconv.FormatBool(g.Confirmed),
			strconv.Itoa(g.UsageCount),
		})
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
