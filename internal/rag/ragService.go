package rag

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/keypool"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/metrics"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/classify"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/contentstore"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/embedding"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/ingest"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/llm"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/prompt"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/retrieval"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/vectorindex"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/session"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

// Fetcher is what the service needs from the downloader.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (content []byte, contentType string, skipped bool, err error)
}

// Extractor is what the service needs from document extraction.
type Extractor interface {
	Extract(ctx context.Context, url string, fileType docmodel.FileType, ext string, content []byte) []docmodel.Document
}

// Service answers a batch of questions against one remote document. The
// handler only sees this contract; everything below it (download, extraction,
// indexing, retrieval, generation) stays private to the package.
type Service interface {
	AnswerAll(ctx context.Context, documentURL string, questions []string) ([]string, error)
}

type service struct {
	fetcher     Fetcher
	extractor   Extractor
	store       *contentstore.Store
	embedder    embedding.Embedder
	llmProvider llm.Provider
	keys        *keypool.Pool
	logger      *logger_i.Logger
}

// NewService constructor
func NewService(fetcher Fetcher, extractor Extractor, store *contentstore.Store, em embedding.Embedder, provider llm.Provider, keys *keypool.Pool) Service {
	return &service{
		fetcher:     fetcher,
		extractor:   extractor,
		store:       store,
		embedder:    em,
		llmProvider: provider,
		keys:        keys,
		logger:      logger_i.NewLogger("RAG Service"),
	}
}

func (s *service) AnswerAll(ctx context.Context, documentURL string, questions []string) ([]string, error) {
	if len(questions) == 0 {
		return []string{}, nil
	}

	keyLabel, apiKey := s.keys.Next()
	if apiKey == "" {
		return nil, errors.New("no upstream api keys configured")
	}
	s.logger.Info("processing run request", "questions", len(questions), "apiKey", keyLabel)

	content, contentType, skipped, err := s.executeDownloadStep(ctx, documentURL)
	if err != nil {
		return nil, fmt.Errorf("file download failed: %w", err)
	}
	if skipped {
		s.logger.Info("document skipped, answering from knowledge")
		return s.knowledgeAnswers(ctx, apiKey, questions, "binary_skipped"), nil
	}

	fileType, ext := ingest.DetectFileType(documentURL, contentType, content)
	s.logger.Info("detected file type", "fileType", fileType, "ext", ext)

	if fileType == docmodel.Binary {
		return s.knowledgeAnswers(ctx, apiKey, questions, "binary_content"), nil
	}

	index, sampleFileType, err := s.executeIndexStep(ctx, documentURL, fileType, ext, content)
	if err != nil {
		return nil, err
	}
	if index == nil {
		// nothing extractable, e.g. an archive full of binaries
		return s.knowledgeAnswers(ctx, apiKey, questions, "no_content"), nil
	}

	docType := docmodel.DocGeneral
	if sample, sampleErr := sampleText(ctx, index); sampleErr != nil {
		s.logger.Warn("document type detection failed", "error", sampleErr)
	} else {
		docType = classify.DetectDocumentType(sample, sampleFileType)
	}
	s.logger.Info("classified document", "docType", docType)

	retriever := retrieval.NewRetriever(index)
	sessions := session.NewManager()

	answers := make([]string, len(questions))
	var wg sync.WaitGroup
	for i, q := range questions {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("question task panicked", "question", i+1, "panic", r)
					answers[i] = apologyProcessing
				}
			}()
			metrics.IncrementQuestionsInFlight()
			defer metrics.DecrementQuestionsInFlight()

			answers[i] = s.answerOne(ctx, apiKey, q, docType, retriever, sessions)
		}(i, q)
	}
	wg.Wait()

	return answers, nil
}

// answerOne runs the per-question pipeline: preprocess, classify, retrieve,
// compose, generate. It always returns an answer string, degrading to the
// apology text when generation fails outright.
func (s *service) answerOne(ctx context.Context, apiKey, question string, docType docmodel.DocumentType, retriever *retrieval.Retriever, sessions *session.Manager) string {
	processed := classify.PreprocessQuestion(question)
	questionType := classify.ClassifyQuestion(processed, docType)
	params := retrieval.ParamsFor(questionType, docType)

	previous := sessions.RelevantContext(processed)

	retrievalStart := time.Now()
	chunks := retriever.Retrieve(ctx, processed, questionType, params)
	metrics.CaptureExecutionMetrics("retrieval", time.Since(retrievalStart))

	contextText := retrieval.JoinContext(chunks)
	if previous != "" {
		contextText += "\n\n" + previous
	}

	system, user, meaningful := prompt.Compose(questionType, docType, contextText, processed)
	if !meaningful {
		metrics.RecordKnowledgeFallback("no_context")
	}
	budget := llm.BudgetFor(docType, questionType, meaningful)

	llmStart := time.Now()
	answer, err := s.llmProvider.Generate(ctx, apiKey, llm.Request{
		System:      system,
		User:        user,
		MaxTokens:   budget.MaxTokens,
		Temperature: budget.Temperature,
	})
	metrics.CaptureExecutionMetrics("llm_generation", time.Since(llmStart))
	if err != nil {
		s.logger.Error("llm call failed", "error", err)
		return apologyGeneration
	}

	trimmed := normalizeAnswer(answer)
	sessions.Add(processed, trimmed, questionType)
	return trimmed
}

// knowledgeAnswers resolves every question from model knowledge alone. Used
// when the document itself cannot contribute (skipped, binary, empty).
func (s *service) knowledgeAnswers(ctx context.Context, apiKey string, questions []string, reason string) []string {
	answers := make([]string, len(questions))
	var wg sync.WaitGroup
	for i, q := range questions {
		wg.Add(1)
		go func(i int, q string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					s.logger.Error("knowledge task panicked", "question", i+1, "panic", r)
					answers[i] = apologyProcessing
				}
			}()
			metrics.RecordKnowledgeFallback(reason)

			system, user, _ := prompt.Compose(docmodel.GeneralInquiry, docmodel.DocGeneral, "", q)
			budget := llm.BudgetFor(docmodel.DocGeneral, docmodel.GeneralInquiry, false)

			answer, err := s.llmProvider.Generate(ctx, apiKey, llm.Request{
				System:      system,
				User:        user,
				MaxTokens:   budget.MaxTokens,
				Temperature: budget.Temperature,
			})
			if err != nil {
				s.logger.Error("knowledge answer failed", "error", err)
				answers[i] = apologyGeneration
				return
			}
			answers[i] = normalizeAnswer(answer)
		}(i, q)
	}
	wg.Wait()
	return answers
}

func (s *service) executeDownloadStep(ctx context.Context, url string) ([]byte, string, bool, error) {
	start := time.Now()
	defer func() { metrics.CaptureExecutionMetrics("download", time.Since(start)) }()

	return s.fetcher.Fetch(ctx, url)
}

// executeIndexStep resolves the vector index for the document, via the
// content-addressed cache when possible. A nil index with nil error means
// the document yielded no indexable text.
func (s *service) executeIndexStep(ctx context.Context, url string, fileType docmodel.FileType, ext string, content []byte) (*vectorindex.Index, docmodel.FileType, error) {
	fingerprint := contentstore.Fingerprint(url, content)

	if cached, ok := s.store.Lookup(fingerprint); ok {
		s.logger.Info("vector index served from cache", "fingerprint", fingerprint)
		metrics.RecordIndexCacheHit()
		cached.Attach(s.embedder)
		return cached, fileType, nil
	}
	metrics.RecordIndexCacheMiss()

	extractStart := time.Now()
	docs := s.extractor.Extract(ctx, url, fileType, ext, content)
	metrics.CaptureExecutionMetrics("extraction", time.Since(extractStart))

	if len(docs) == 0 {
		return nil, fileType, nil
	}

	chunks := ingest.PrepareChunks(docs, ingest.ChunkParamsFor(fileType, len(docs)))
	if len(chunks) == 0 {
		return nil, fileType, nil
	}
	s.logger.Info("prepared chunks", "documents", len(docs), "chunks", len(chunks))

	buildStart := time.Now()
	index, err := vectorindex.Build(ctx, chunks, s.embedder)
	metrics.CaptureExecutionMetrics("index_build", time.Since(buildStart))
	if err != nil {
		return nil, fileType, fmt.Errorf("building vector index: %w", err)
	}

	go s.store.Save(fingerprint, index)
	return index, fileType, nil
}
