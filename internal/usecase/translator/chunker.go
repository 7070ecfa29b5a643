package translator

import "strings"

// DefaultChunkSize is the character budget per provider call.
const DefaultChunkSize = 3000

// SplitChunks cuts text into provider-sized pieces along blank-line
// paragraph boundaries. Paragraphs are never split: one paragraph larger
// than the budget becomes its own oversized chunk.
func SplitChunks(text string, maxSize int) []string {
	if maxSize <= 0 {
		maxSize = DefaultChunkSize
	}
	paragraphs := strings.Split(text, "\n\n")
	var chunks []string
	var current strings.Builder

	for _, para := range paragraphs {
		if current.Len()+len(para) < maxSize {
			current.WriteString(para)
			current.WriteString("\n\n")
			continue
		}
		if current.Len() > 0 {
			chunks = append(chunks, strings.TrimSpace(current.String()))
			current.Reset()
		}
		current.WriteString(para)
		current.WriteString("\n\n")
	}
	if current.Len() > 0 {
		chunks = append(chunks, strings.TrimSpace(current.String()))
	}
	return chunks
}
