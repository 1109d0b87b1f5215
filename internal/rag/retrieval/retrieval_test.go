package retrieval

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

type mockSearcher struct {
	similaritySearchFunc func(ctx context.Context, query string, k int) ([]docmodel.Chunk, error)
	diversitySearchFunc  func(ctx context.Context, query string, k int, lambda float64) ([]docmodel.Chunk, error)
}

func (m *mockSearcher) SimilaritySearch(ctx context.Context, query string, k int) ([]docmodel.Chunk, error) {
	return m.similaritySearchFunc(ctx, query, k)
}

func (m *mockSearcher) DiversitySearch(ctx context.Context, query string, k int, lambda float64) ([]docmodel.Chunk, error) {
	return m.diversitySearchFunc(ctx, query, k, lambda)
}

func chunk(text string) docmodel.Chunk {
	return docmodel.Chunk{Text: text}
}

func TestParamsFor(t *testing.T) {
	tests := []struct {
		qt   docmodel.QuestionType
		dt   docmodel.DocumentType
		want Params
	}{
		{docmodel.PolicyTable, docmodel.DocPolicy, Params{26, 0.9}},
		{docmodel.PolicyList, docmodel.DocPolicy, Params{24, 0.8}},
		{docmodel.PolicyYesNo, docmodel.DocPolicy, Params{20, 0.6}},
		{docmodel.PolicyTime, docmodel.DocPolicy, Params{20, 0.6}},
		{docmodel.PolicyGeneral, docmodel.DocPolicy, Params{21, 0.7}},
		{docmodel.AcademicExplanation, docmodel.DocAcademic, Params{40, 0.8}},
		{docmodel.AcademicLaws, docmodel.DocAcademic, Params{33, 0.7}},
		{docmodel.AcademicDefinition, docmodel.DocAcademic, Params{24, 0.6}},
		{docmodel.AcademicGeneral, docmodel.DocAcademic, Params{26, 0.7}},
		{docmodel.LegalArticle, docmodel.DocLegal, Params{24, 0.7}},
		{docmodel.LegalYesNo, docmodel.DocLegal, Params{20, 0.6}},
		{docmodel.QuestionType("presentation_info"), docmodel.DocPresentation, Params{16, 0.8}},
		{docmodel.QuestionType("spreadsheet_general"), docmodel.DocSpreadsheet, Params{16, 0.8}},
		{docmodel.QuestionType("image_info"), docmodel.DocImage, Params{11, 0.9}},
		{docmodel.QuestionType("document_general"), docmodel.DocWord, Params{21, 0.7}},
		{docmodel.GeneralInquiry, docmodel.DocGeneral, Params{20, 0.6}},
	}
	for _, tc := range tests {
		if got := ParamsFor(tc.qt, tc.dt); got != tc.want {
			t.Errorf("ParamsFor(%q, %q) = %+v, want %+v", tc.qt, tc.dt, got, tc.want)
		}
	}
}

func TestSearchKeywords(t *testing.T) {
	tests := []struct {
		name     string
		question string
		qt       docmodel.QuestionType
		contains string
	}{
		{"presentation prefix", "show the agenda", docmodel.QuestionType("presentation_info"), "slide"},
		{"spreadsheet prefix", "total revenue", docmodel.QuestionType("spreadsheet_general"), "column"},
		{"image prefix", "describe it", docmodel.QuestionType("image_general"), "diagram"},
		{"policy table", "what are the limits", docmodel.PolicyTable, "table of benefits"},
		{"grace period", "What is the grace period?", docmodel.PolicyTime, "thirty days"},
		{"waiting period", "How long is the waiting period?", docmodel.PolicyTime, "continuous coverage"},
		{"three laws", "State the three laws", docmodel.AcademicLaws, "laws of motion"},
		{"newton", "What did Newton prove?", docmodel.AcademicDefinition, "principia"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			kws := searchKeywords(tc.question, tc.qt)
			found := false
			for _, kw := range kws {
				if kw == tc.contains {
					found = true
				}
			}
			if !found {
				t.Errorf("keywords %v missing %q", kws, tc.contains)
			}
		})
	}
}

func TestSearchKeywordsFallsBackToQuestionWords(t *testing.T) {
	kws := searchKeywords("Describe the reimbursement workflow for outpatient dental treatments", docmodel.PolicyGeneral)
	if len(kws) != 4 {
		t.Fatalf("expected 4 fallback words, got %v", kws)
	}
	for _, kw := range kws {
		if len(kw) <= 3 {
			t.Errorf("fallback word too short: %q", kw)
		}
	}
}

func TestRetrieveMergesAndDeduplicates(t *testing.T) {
	searcher := &mockSearcher{
		similaritySearchFunc: func(_ context.Context, query string, k int) ([]docmodel.Chunk, error) {
			if strings.Contains(query, "grace") && len(query) > 15 {
				return []docmodel.Chunk{chunk("alpha"), chunk("beta")}, nil
			}
			// keyword probes
			return []docmodel.Chunk{chunk("alpha"), chunk("delta")}, nil
		},
		diversitySearchFunc: func(context.Context, string, int, float64) ([]docmodel.Chunk, error) {
			return []docmodel.Chunk{chunk("beta"), chunk("gamma")}, nil
		},
	}

	r := NewRetriever(searcher)
	got := r.Retrieve(context.Background(), "What is the grace period for premium payment?", docmodel.PolicyTime, Params{K: 20, LambdaMult: 0.6})

	texts := make([]string, len(got))
	for i, c := range got {
		texts[i] = c.Text
	}
	want := []string{"alpha", "beta", "gamma", "delta"}
	if len(texts) != len(want) {
		t.Fatalf("got %v, want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Fatalf("got %v, want %v", texts, want)
		}
	}
}

func TestRetrieveCapsAtK(t *testing.T) {
	n := 0
	searcher := &mockSearcher{
		similaritySearchFunc: func(_ context.Context, _ string, k int) ([]docmodel.Chunk, error) {
			out := make([]docmodel.Chunk, k)
			for i := range out {
				n++
				out[i] = chunk(strings.Repeat("x", n)) // all distinct
			}
			return out, nil
		},
		diversitySearchFunc: func(_ context.Context, _ string, k int, _ float64) ([]docmodel.Chunk, error) {
			out := make([]docmodel.Chunk, k)
			for i := range out {
				n++
				out[i] = chunk(strings.Repeat("y", n))
			}
			return out, nil
		},
	}

	r := NewRetriever(searcher)
	got := r.Retrieve(context.Background(), "list every exclusion and every benefit in this policy with details", docmodel.PolicyList, Params{K: 6, LambdaMult: 0.8})
	if len(got) > 6 {
		t.Errorf("result exceeds budget: %d chunks", len(got))
	}
}

func TestRetrieveFallsBackOnStrategyFailure(t *testing.T) {
	fallbackK := 0
	searcher := &mockSearcher{
		similaritySearchFunc: func(_ context.Context, _ string, k int) ([]docmodel.Chunk, error) {
			if k == 20 {
				fallbackK = k
				return []docmodel.Chunk{chunk("fallback")}, nil
			}
			return []docmodel.Chunk{chunk("partial")}, nil
		},
		diversitySearchFunc: func(context.Context, string, int, float64) ([]docmodel.Chunk, error) {
			return nil, errors.New("mmr blew up")
		},
	}

	r := NewRetriever(searcher)
	got := r.Retrieve(context.Background(), "anything", docmodel.GeneralInquiry, Params{K: 20, LambdaMult: 0.6})
	if fallbackK != 20 {
		t.Error("expected full-k fallback similarity search")
	}
	if len(got) != 1 || got[0].Text != "fallback" {
		t.Errorf("unexpected fallback result: %v", got)
	}
}

func TestRetrieveNeverReturnsErrorEvenWhenEverythingFails(t *testing.T) {
	searcher := &mockSearcher{
		similaritySearchFunc: func(context.Context, string, int) ([]docmodel.Chunk, error) {
			return nil, errors.New("index gone")
		},
		diversitySearchFunc: func(context.Context, string, int, float64) ([]docmodel.Chunk, error) {
			return nil, errors.New("index gone")
		},
	}

	r := NewRetriever(searcher)
	got := r.Retrieve(context.Background(), "anything", docmodel.GeneralInquiry, Params{K: 20, LambdaMult: 0.6})
	if len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestJoinContext(t *testing.T) {
	got := JoinContext([]docmodel.Chunk{chunk("one"), chunk("two")})
	if got != "one\n\ntwo" {
		t.Errorf("unexpected join: %q", got)
	}
}
