package rag

import (
	"context"
	"strings"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/vectorindex"
)

const (
	apologyGeneration = "I encountered an error while processing this question. Please try rephrasing your question or check if the document contains relevant information."
	apologyProcessing = "Sorry, I encountered an error processing this question. Please try again."
)

const (
	sampleQuery        = "document content overview summary"
	sampleChunkCount   = 5
	samplePreviewLimit = 500
)

// sampleText retrieves a representative sample for the document classifier by
// querying the index rather than reading it front to back, so boilerplate
// opening pages do not dominate the sample.
func sampleText(ctx context.Context, index *vectorindex.Index) (string, error) {
	chunks, err := index.SimilaritySearch(ctx, sampleQuery, sampleChunkCount)
	if err != nil {
		return "", err
	}

	previews := make([]string, 0, len(chunks))
	for _, c := range chunks {
		text := c.Text
		if len(text) > samplePreviewLimit {
			text = text[:samplePreviewLimit]
		}
		previews = append(previews, text)
	}
	return strings.Join(previews, " "), nil
}

var answerReplacer = strings.NewReplacer("\\n", " ", "\n", " ")

// normalizeAnswer flattens whitespace and closes the final sentence. Endings
// that look like an upstream token cut ("...the", "...of", "...with") are
// left alone so we do not dress up a truncated answer as a finished one.
func normalizeAnswer(text string) string {
	flat := answerReplacer.Replace(text)
	result := strings.Join(strings.Fields(flat), " ")
	if result == "" {
		return result
	}

	switch result[len(result)-1] {
	case '.', '!', '?', ':', ';':
		return result
	}
	for _, suffix := range []string{" with", " of", " the"} {
		if strings.HasSuffix(result, suffix) {
			return result
		}
	}
	return result + "."
}
