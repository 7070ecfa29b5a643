package translator

import (
	"strings"
	"testing"
)

func TestSplitChunks_SmallTextIsOneChunk(t *testing.T) {
	text := "First paragraph.\n\nSecond paragraph."
	chunks := SplitChunks(text, 0)
	if len(chunks) != 1 {
		t.Fatalf("got %d chunks, want 1", len(chunks))
	}
	if chunks[0] != text {
		t.Errorf("chunk = %q", chunks[0])
	}
}

func TestSplitChunks_SplitsOnParagraphBoundary(t *testing.T) {
	a := strings.Repeat("a", 40)
	b := strings.Repeat("b", 40)
	c := strings.Repeat("c", 40)
	chunks := SplitChunks(a+"\n\n"+b+"\n\n"+c, 100)
	if len(chunks) != 2 {
		t.Fatalf("got %d chunks: %q", len(chunks), chunks)
	}
	if chunks[0] != a+"\n\n"+b {
		t.Errorf("chunk 0 = %q", chunks[0])
	}
	if chunks[1] != c {
		t.Errorf("chunk 1 = %q", chunks[1])
	}
}

func TestSplitChunks_OversizedParagraphKeptWhole(t *testing.T) {
	big := strings.Repeat("x", 5000)
	chunks := SplitChunks("intro\n\n"+big+"\n\noutro", 3000)
	found := false
	for _, c := range chunks {
		if c == big {
			found = true
		}
		if strings.Contains(c, "xy") {
			t.Error("paragraph was split internally")
		}
	}
	if !found {
		t.Errorf("oversized paragraph should be its own chunk, got %d chunks", len(chunks))
	}
}

func TestSplitChunks_RoundTrip(t *testing.T) {
	paras := []string{"One.", "Two.", "Three.", "Four.", "Five."}
	text := strings.Join(paras, "\n\n")
	chunks := SplitChunks(text, 12)

	rejoined := strings.Join(chunks, "\n\n")
	if got := len(strings.Split(rejoined, "\n\n")); got != len(paras) {
		t.Errorf("paragraph count after rejoin = %d, want %d", got, len(paras))
	}
	if rejoined != text {
		t.Errorf("rejoined text differs:\n%q\n%q", rejoined, text)
	}
}

func TestSplitChunks_OrderPreserved(t *testing.T) {
	var paras []string
	for i := 0; i < 20; i++ {
		paras = append(paras, strings.Repeat(string(rune('a'+i)), 30))
	}
	chunks := SplitChunks(strings.Join(paras, "\n\n"), 100)
	joined := strings.Join(chunks, "\n\n")
	if joined != strings.Join(paras, "\n\n") {
		t.Error("chunk order or content not preserved")
	}
}
