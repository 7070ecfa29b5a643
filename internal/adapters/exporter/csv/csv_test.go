package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"testing"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

func TestExport(t *testing.T) {
	out, err := New().Export([]*domain.GlossaryEntry{
		{OriginalTerm: "Arthur", TranslatedTerm: "Artur", TermType: domain.TermCharacter, Confirmed: true, UsageCount: 7},
		{OriginalTerm: "Mana, raw", TranslatedTerm: "Mana", TermType: domain.TermGeneral},
	})
	if err != nil {
		t.Fatal(err)
	}

	rows, err := stdcsv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][0] != "original_term" || rows[0][4] != "usage_count" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][0] != "Arthur" || rows[1][3] != "true" || rows[1][4] != "7" {
		t.Errorf("row = %v", rows[1])
	}
	// Values containing commas survive the round trip.
	if rows[2][0] != "Mana, raw" {
		t.Errorf("quoted field = %q", rows[2][0])
	}
}
