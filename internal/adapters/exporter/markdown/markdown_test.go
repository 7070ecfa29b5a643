package markdown

import (
	"strings"
	"testing"

	"github.com/turanbagtur/novel-translator/internal/domain"
)

func TestExport(t *testing.T) {
	body := "Çevrilmiş metin."
	p := &domain.Project{Name: "Novel", SourceLang: "en", TargetLang: "tr"}
	chapters := []*domain.Chapter{{Number: 3, Title: "Başlangıç", TranslatedText: &body}}

	out, err := New().Export(p, chapters)
	if err != nil {
		t.Fatal(err)
	}
	s := string(out)
	if !strings.HasPrefix(s, "# Novel\n") {
		t.Errorf("missing title heading: %q", s[:20])
	}
	if !strings.Contains(s, "## Bölüm 3: Başlangıç\n\nÇevrilmiş metin.") {
		t.Errorf("chapter section wrong:\n%s", s)
	}
	if !strings.Contains(s, "- Kaynak Dil: en") {
		t.Error("missing metadata list")
	}
}
