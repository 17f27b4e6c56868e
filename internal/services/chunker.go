package services

import (
	"strings"
	"unicode/utf8"
)

type TextChunker interface {
	ChunkText(text string, maxChunkSize int, overlap int) []string
}

type textChunker struct{}

func NewTextChunker() TextChunker {
	return &textChunker{}
}

// ChunkText splits text into overlapping chunks suitable for embedding.
// Cleaned resume text is a single flat line, so the splitter works on
// sentence boundaries rather than paragraphs.
func (tc *textChunker) ChunkText(text string, maxChunkSize int, overlap int) []string {
	if maxChunkSize <= 0 {
		maxChunkSize = 1000
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= maxChunkSize {
		overlap = maxChunkSize / 4
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	if utf8.RuneCountInString(text) <= maxChunkSize {
		return []string{text}
	}

	var chunks []string
	var current strings.Builder

	for _, sentence := range splitIntoSentences(text) {
		if current.Len()+len(sentence)+1 > maxChunkSize && current.Len() > 0 {
			chunks = append(chunks, current.String())

			current.Reset()
			if overlap > 0 {
				overlapText := lastNRunes(chunks[len(chunks)-1], overlap)
				current.WriteString(overlapText)
				if overlapText != "" {
					current.WriteString(" ")
				}
			}
		}

		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sentence)
	}

	if current.Len() > 0 {
		chunks = append(chunks, current.String())
	}

	return chunks
}

func splitIntoSentences(text string) []string {
	sentences := strings.FieldsFunc(text, func(r rune) bool {
		return r == '.' || r == '!' || r == '?' || r == '|'
	})

	var result []string
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s != "" {
			result = append(result, s)
		}
	}
	return result
}

func lastNRunes(text string, n int) string {
	if n <= 0 {
		return ""
	}

	runes := []rune(text)
	if len(runes) <= n {
		return text
	}

	return string(runes[len(runes)-n:])
}
