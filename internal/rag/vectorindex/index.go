package vectorindex

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/embedding"
)

// Index is an immutable in-process vector index over the chunks of one
// document. It is built once, optionally persisted by the content store, and
// read-shared by every concurrent question task of a request. The embedder is
// attached separately because it does not survive serialization.
type Index struct {
	Dim     int
	Vectors [][]float32
	Chunks  []docmodel.Chunk

	embedder embedding.Embedder
}

// Build embeds every chunk and assembles the index. Empty chunk lists are an
// error: an index that can never return context is worse than a degraded
// answer path.
func Build(ctx context.Context, chunks []docmodel.Chunk, e embedding.Embedder) (*Index, error) {
	if len(chunks) == 0 {
		return nil, errors.New("no chunks to index")
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := e.BatchEmbedding(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embedding chunks failed: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("mismatch: got %d chunks but %d vectors", len(chunks), len(vectors))
	}

	return &Index{
		Dim:      len(vectors[0]),
		Vectors:  vectors,
		Chunks:   chunks,
		embedder: e,
	}, nil
}

// Attach wires an embedder into an index that was decoded from cache.
func (ix *Index) Attach(e embedding.Embedder) {
	ix.embedder = e
}

func (ix *Index) Len() int {
	return len(ix.Chunks)
}

// SimilaritySearch returns the k chunks whose embeddings are closest to the
// query by cosine similarity.
func (ix *Index) SimilaritySearch(ctx context.Context, query string, k int) ([]docmodel.Chunk, error) {
	idxs, _, err := ix.rank(ctx, query)
	if err != nil {
		return nil, err
	}
	if k > len(idxs) {
		k = len(idxs)
	}
	out := make([]docmodel.Chunk, 0, k)
	for _, j := range idxs[:k] {
		out = append(out, ix.Chunks[j])
	}
	return out, nil
}

// DiversitySearch runs maximal marginal relevance selection: lambda weighs
// relevance to the query against redundancy with already-selected chunks.
func (ix *Index) DiversitySearch(ctx context.Context, query string, k int, lambda float64) ([]docmodel.Chunk, error) {
	idxs, scores, err := ix.rank(ctx, query)
	if err != nil {
		return nil, err
	}
	if k <= 0 || len(idxs) == 0 {
		return nil, nil
	}

	// candidate pool larger than k so diversity has something to choose from
	pool := k * 4
	if pool < 20 {
		pool = 20
	}
	if pool > len(idxs) {
		pool = len(idxs)
	}
	candidates := idxs[:pool]

	selected := make([]int, 0, k)
	remaining := append([]int(nil), candidates...)

	for len(selected) < k && len(remaining) > 0 {
		bestPos := 0
		bestScore := math.Inf(-1)
		for pos, cand := range remaining {
			redundancy := 0.0
			for _, s := range selected {
				sim := cosine(ix.Vectors[cand], ix.Vectors[s])
				if sim > redundancy {
					redundancy = sim
				}
			}
			mmr := lambda*scores[cand] - (1-lambda)*redundancy
			if mmr > bestScore {
				bestScore = mmr
				bestPos = pos
			}
		}
		selected = append(selected, remaining[bestPos])
		remaining = append(remaining[:bestPos], remaining[bestPos+1:]...)
	}

	out := make([]docmodel.Chunk, 0, len(selected))
	for _, j := range selected {
		out = append(out, ix.Chunks[j])
	}
	return out, nil
}

// rank embeds the query and returns every chunk index sorted by descending
// cosine similarity, along with the per-chunk score slice.
func (ix *Index) rank(ctx context.Context, query string) ([]int, []float64, error) {
	if ix.embedder == nil {
		return nil, nil, errors.New("index has no embedder attached")
	}
	qv, err := ix.embedder.GetEmbedding(ctx, query)
	if err != nil {
		return nil, nil, fmt.Errorf("query embedding failed: %w", err)
	}

	scores := make([]float64, len(ix.Vectors))
	for i := range ix.Vectors {
		scores[i] = cosine(ix.Vectors[i], qv)
	}
	idxs := make([]int, len(scores))
	for i := range idxs {
		idxs[i] = i
	}
	sort.SliceStable(idxs, func(a, b int) bool { return scores[idxs[a]] > scores[idxs[b]] })
	return idxs, scores, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, na, nb float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		na += float64(a[i]) * float64(a[i])
		nb += float64(b[i]) * float64(b[i])
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Encode writes the index in gob form for the content store.
func (ix *Index) Encode(w io.Writer) error {
	return gob.NewEncoder(w).Encode(ix)
}

// Decode reads an index back from its gob form. Call Attach before searching.
func Decode(r io.Reader) (*Index, error) {
	var ix Index
	if err := gob.NewDecoder(r).Decode(&ix); err != nil {
		return nil, err
	}
	return &ix, nil
}
