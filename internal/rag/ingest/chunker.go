package ingest

import (
	"strings"

	"github.com/google/uuid"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

// ChunkParams sizes the splitter for one document class.
type ChunkParams struct {
	Size    int
	Overlap int
}

// ChunkParamsFor adapts chunk sizing to the file type. Dense prose formats
// take larger chunks; for pdf and word the document count stands in for
// density, long documents get more overlap so clauses split across pages
// survive chunking.
func ChunkParamsFor(fileType docmodel.FileType, docCount int) ChunkParams {
	switch fileType {
	case docmodel.PowerPoint, docmodel.Image:
		return ChunkParams{Size: 1300, Overlap: 130}
	case docmodel.Excel, docmodel.CSV:
		return ChunkParams{Size: 1560, Overlap: 195}
	case docmodel.Text:
		return ChunkParams{Size: 1950, Overlap: 260}
	default:
		switch {
		case docCount > 400:
			return ChunkParams{Size: 1820, Overlap: 455}
		case docCount > 100:
			return ChunkParams{Size: 2080, Overlap: 325}
		default:
			return ChunkParams{Size: 2340, Overlap: 260}
		}
	}
}

// splitTextIntoChunks cuts text on the best available separator, carrying an
// overlap tail from chunk to chunk for semantic continuity.
func splitTextIntoChunks(text string, limit int, overlap int) []string {
	if len(text) <= limit {
		return []string{text}
	}

	// Separators ordered from "best" to "worst" for semantic meaning
	separators := []string{"\n\n", "\n", ". ", " ", ""}

	var splitChar string
	found := false
	for _, s := range separators {
		if strings.Contains(text, s) {
			splitChar = s
			found = true
			break
		}
	}

	if !found {
		// Hard cut if no separator found (rare)
		return []string{text[:limit]}
	}

	var chunks []string
	parts := strings.Split(text, splitChar)
	var currentChunk strings.Builder

	for _, part := range parts {
		if currentChunk.Len()+len(part)+len(splitChar) > limit {
			if currentChunk.Len() > 0 {
				chunks = append(chunks, currentChunk.String())
			}

			overlapContent := ""
			if currentChunk.Len() > overlap {
				overlapContent = currentChunk.String()[currentChunk.Len()-overlap:]
			}

			currentChunk.Reset()
			currentChunk.WriteString(overlapContent)
		}

		if currentChunk.Len() > 0 && splitChar != "" {
			currentChunk.WriteString(splitChar)
		}
		currentChunk.WriteString(part)
	}

	if currentChunk.Len() > 0 {
		chunks = append(chunks, currentChunk.String())
	}

	return chunks
}

// PrepareChunks splits every document and maps the pieces into indexable
// chunks, preserving per-document metadata.
func PrepareChunks(docs []docmodel.Document, params ChunkParams) []docmodel.Chunk {
	var allChunks []docmodel.Chunk

	for _, doc := range docs {
		if strings.TrimSpace(doc.Text) == "" {
			continue
		}
		for i, text := range splitTextIntoChunks(doc.Text, params.Size, params.Overlap) {
			allChunks = append(allChunks, docmodel.Chunk{
				ChunkId: uuid.NewString(),
				Text:    text,
				Order:   i,
				Meta:    doc.Meta,
			})
		}
	}

	return allChunks
}
