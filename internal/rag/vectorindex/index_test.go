package vectorindex

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

type mockEmbedder struct {
	getEmbeddingFunc   func(ctx context.Context, query string) ([]float32, error)
	batchEmbeddingFunc func(ctx context.Context, chunks []string) ([][]float32, error)
}

func (m *mockEmbedder) GetEmbedding(ctx context.Context, query string) ([]float32, error) {
	return m.getEmbeddingFunc(ctx, query)
}

func (m *mockEmbedder) BatchEmbedding(ctx context.Context, chunks []string) ([][]float32, error) {
	return m.batchEmbeddingFunc(ctx, chunks)
}

// axisEmbedder maps known words onto fixed unit vectors so similarity is fully
// deterministic in the tests.
func axisEmbedder() *mockEmbedder {
	vectors := map[string][]float32{
		"grace":   {1, 0, 0},
		"period":  {0.9, 0.1, 0},
		"waiting": {0, 1, 0},
		"maternity": {
			0, 0, 1,
		},
	}
	lookup := func(text string) []float32 {
		if v, ok := vectors[text]; ok {
			return v
		}
		return []float32{0.1, 0.1, 0.1}
	}
	return &mockEmbedder{
		getEmbeddingFunc: func(_ context.Context, query string) ([]float32, error) {
			return lookup(query), nil
		},
		batchEmbeddingFunc: func(_ context.Context, chunks []string) ([][]float32, error) {
			out := make([][]float32, len(chunks))
			for i, c := range chunks {
				out[i] = lookup(c)
			}
			return out, nil
		},
	}
}

func testChunks(texts ...string) []docmodel.Chunk {
	chunks := make([]docmodel.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = docmodel.Chunk{ChunkId: fmt.Sprintf("chunk_%d", i), Text: t, Order: i}
	}
	return chunks
}

func TestBuildRejectsEmptyInput(t *testing.T) {
	_, err := Build(context.Background(), nil, axisEmbedder())
	if err == nil {
		t.Fatal("expected error for empty chunk list")
	}
}

func TestBuildPropagatesEmbeddingFailure(t *testing.T) {
	e := &mockEmbedder{
		batchEmbeddingFunc: func(context.Context, []string) ([][]float32, error) {
			return nil, errors.New("quota exceeded")
		},
	}
	_, err := Build(context.Background(), testChunks("a"), e)
	if err == nil {
		t.Fatal("expected error when batch embedding fails")
	}
}

func TestSimilaritySearchOrdersByCosine(t *testing.T) {
	ix, err := Build(context.Background(), testChunks("grace", "waiting", "period", "maternity"), axisEmbedder())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	got, err := ix.SimilaritySearch(context.Background(), "grace", 2)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Text != "grace" || got[1].Text != "period" {
		t.Errorf("unexpected order: %q, %q", got[0].Text, got[1].Text)
	}
}

func TestSimilaritySearchClampsK(t *testing.T) {
	ix, err := Build(context.Background(), testChunks("grace", "waiting"), axisEmbedder())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	got, err := ix.SimilaritySearch(context.Background(), "grace", 10)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 2 {
		t.Errorf("expected all chunks when k exceeds index size, got %d", len(got))
	}
}

func TestDiversitySearchPrefersSpread(t *testing.T) {
	// "grace" and "period" are near-duplicates; with low lambda the second
	// pick should jump to a dissimilar chunk instead.
	ix, err := Build(context.Background(), testChunks("grace", "period", "waiting"), axisEmbedder())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	got, err := ix.DiversitySearch(context.Background(), "grace", 2, 0.3)
	if err != nil {
		t.Fatalf("search failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(got))
	}
	if got[0].Text != "grace" {
		t.Errorf("first pick should be the most relevant chunk, got %q", got[0].Text)
	}
	if got[1].Text == "period" {
		t.Error("second pick should not be the near-duplicate chunk")
	}
}

func TestSearchWithoutEmbedderFails(t *testing.T) {
	ix := &Index{Dim: 3, Vectors: [][]float32{{1, 0, 0}}, Chunks: testChunks("a")}
	if _, err := ix.SimilaritySearch(context.Background(), "a", 1); err == nil {
		t.Fatal("expected error when no embedder is attached")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	chunks := testChunks("grace", "waiting")
	chunks[0].Meta = docmodel.Metadata{Source: "policy.pdf", Method: "pdf"}
	ix, err := Build(context.Background(), chunks, axisEmbedder())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}

	var buf bytes.Buffer
	if err := ix.Encode(&buf); err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	decoded, err := Decode(&buf)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if decoded.Dim != ix.Dim || decoded.Len() != ix.Len() {
		t.Fatalf("decoded index shape mismatch: dim %d len %d", decoded.Dim, decoded.Len())
	}
	if decoded.Chunks[0].Meta.Source != "policy.pdf" {
		t.Errorf("chunk metadata lost in round trip: %+v", decoded.Chunks[0].Meta)
	}

	decoded.Attach(axisEmbedder())
	got, err := decoded.SimilaritySearch(context.Background(), "waiting", 1)
	if err != nil {
		t.Fatalf("search on decoded index failed: %v", err)
	}
	if got[0].Text != "waiting" {
		t.Errorf("decoded index returned wrong chunk: %q", got[0].Text)
	}
}
