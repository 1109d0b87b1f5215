package llm

import (
	"context"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

// Request is one fully-prepared chat completion call.
type Request struct {
	System      string
	User        string
	MaxTokens   int
	Temperature float64
}

// Provider generates one answer. The api key travels per call because keys
// rotate per request through the key pool.
type Provider interface {
	Generate(ctx context.Context, apiKey string, req Request) (string, error)
}

// Budget is the generation allowance for one answer.
type Budget struct {
	MaxTokens   int
	Temperature float64
}

// BudgetFor sizes the completion. Knowledge-fallback answers get extra head
// room and a warmer temperature since nothing grounds them; structured
// extraction (tables, images, legal) runs cold.
func BudgetFor(docType docmodel.DocumentType, questionType docmodel.QuestionType, meaningful bool) Budget {
	if !meaningful {
		return Budget{MaxTokens: 1560, Temperature: 0.4}
	}

	switch docType {
	case docmodel.DocImage:
		return Budget{MaxTokens: 1040, Temperature: 0.1}
	case docmodel.DocPresentation, docmodel.DocSpreadsheet:
		return Budget{MaxTokens: 1560, Temperature: 0.2}
	case docmodel.DocAcademic:
		if questionType == docmodel.AcademicLaws {
			return Budget{MaxTokens: 2080, Temperature: 0.2}
		}
		return Budget{MaxTokens: 1820, Temperature: 0.2}
	case docmodel.DocPolicy:
		if questionType == docmodel.PolicyTable {
			return Budget{MaxTokens: 1560, Temperature: 0.1}
		}
		return Budget{MaxTokens: 1300, Temperature: 0.2}
	case docmodel.DocLegal:
		return Budget{MaxTokens: 1300, Temperature: 0.1}
	default:
		return Budget{MaxTokens: 1300, Temperature: 0.2}
	}
}
