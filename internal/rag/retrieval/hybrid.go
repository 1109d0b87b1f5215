package retrieval

import (
	"context"
	"crypto/md5"
	"strings"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

// Searcher is the slice of the vector index the retriever needs.
type Searcher interface {
	SimilaritySearch(ctx context.Context, query string, k int) ([]docmodel.Chunk, error)
	DiversitySearch(ctx context.Context, query string, k int, lambda float64) ([]docmodel.Chunk, error)
}

type Retriever struct {
	index  Searcher
	logger *logger_i.Logger
}

func NewRetriever(index Searcher) *Retriever {
	return &Retriever{
		index:  index,
		logger: logger_i.NewLogger("retriever"),
	}
}

// Retrieve runs the three-strategy hybrid search: plain similarity for a
// third of the budget, MMR for another third, then up to three keyword probes
// at a sixth each. Results are merged with first-seen dedup and capped at K.
// It never fails: any strategy error degrades to a single plain similarity
// search, and even that error yields an empty (not nil-dereferencing) result.
func (r *Retriever) Retrieve(ctx context.Context, question string, questionType docmodel.QuestionType, params Params) []docmodel.Chunk {
	var merged []docmodel.Chunk
	degraded := false

	similar, err := r.index.SimilaritySearch(ctx, question, params.K/3)
	if err != nil {
		r.logger.Warn("similarity strategy failed", "error", err)
		degraded = true
	}
	merged = append(merged, similar...)

	diverse, err := r.index.DiversitySearch(ctx, question, params.K/3, params.LambdaMult)
	if err != nil {
		r.logger.Warn("diversity strategy failed", "error", err)
		degraded = true
	}
	merged = append(merged, diverse...)

	keywords := searchKeywords(question, questionType)
	if len(keywords) > 3 {
		keywords = keywords[:3]
	}
	for _, kw := range keywords {
		docs, err := r.index.SimilaritySearch(ctx, kw, params.K/6)
		if err != nil {
			// keyword probes are best-effort, skip and move on
			continue
		}
		merged = append(merged, docs...)
	}

	if degraded {
		return r.fallback(ctx, question, params.K)
	}
	return dedupe(merged, params.K)
}

func (r *Retriever) fallback(ctx context.Context, question string, k int) []docmodel.Chunk {
	docs, err := r.index.SimilaritySearch(ctx, question, k)
	if err != nil {
		r.logger.Error("fallback similarity search failed", "error", err)
		return nil
	}
	return docs
}

// dedupe drops chunks whose leading 300 characters hash identically, keeping
// first-seen order, capped at k.
func dedupe(chunks []docmodel.Chunk, k int) []docmodel.Chunk {
	seen := make(map[[16]byte]struct{}, len(chunks))
	unique := make([]docmodel.Chunk, 0, k)

	for _, c := range chunks {
		preview := c.Text
		if len(preview) > 300 {
			preview = preview[:300]
		}
		key := md5.Sum([]byte(strings.TrimSpace(preview)))
		if _, dup := seen[key]; dup {
			continue
		}
		if len(unique) >= k {
			break
		}
		seen[key] = struct{}{}
		unique = append(unique, c)
	}
	return unique
}

// JoinContext renders retrieved chunks into the prompt context block.
func JoinContext(chunks []docmodel.Chunk) string {
	parts := make([]string, 0, len(chunks))
	for _, c := range chunks {
		parts = append(parts, c.Text)
	}
	return strings.Join(parts, "\n\n")
}
