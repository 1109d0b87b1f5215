package retrieval

import (
	"strings"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

// Params drives one retrieval pass: K is the total context budget in chunks,
// LambdaMult weighs relevance against diversity in the MMR pass.
type Params struct {
	K          int
	LambdaMult float64
}

// ParamsFor picks the retrieval budget for a question. Table questions over
// policy documents need wide, diverse context to reconstruct rows; image
// documents barely have any text to retrieve from.
func ParamsFor(questionType docmodel.QuestionType, docType docmodel.DocumentType) Params {
	switch docType {
	case docmodel.DocPolicy:
		switch questionType {
		case docmodel.PolicyTable:
			return Params{K: 26, LambdaMult: 0.9}
		case docmodel.PolicyList:
			return Params{K: 24, LambdaMult: 0.8}
		case docmodel.PolicyYesNo, docmodel.PolicyTime:
			return Params{K: 20, LambdaMult: 0.6}
		default:
			return Params{K: 21, LambdaMult: 0.7}
		}
	case docmodel.DocAcademic:
		switch questionType {
		case docmodel.AcademicExplanation:
			return Params{K: 40, LambdaMult: 0.8}
		case docmodel.AcademicLaws:
			return Params{K: 33, LambdaMult: 0.7}
		case docmodel.AcademicDefinition:
			return Params{K: 24, LambdaMult: 0.6}
		default:
			return Params{K: 26, LambdaMult: 0.7}
		}
	case docmodel.DocLegal:
		if questionType == docmodel.LegalArticle {
			return Params{K: 24, LambdaMult: 0.7}
		}
		return Params{K: 20, LambdaMult: 0.6}
	case docmodel.DocPresentation, docmodel.DocSpreadsheet:
		return Params{K: 16, LambdaMult: 0.8}
	case docmodel.DocImage:
		return Params{K: 11, LambdaMult: 0.9}
	case docmodel.DocWord:
		return Params{K: 21, LambdaMult: 0.7}
	default:
		return Params{K: 20, LambdaMult: 0.6}
	}
}

// searchKeywords picks the extra probe terms for the keyword strategy. The
// curated lists target phrasing that questions rarely share with the document
// text they ask about; without a match the longest question words stand in.
func searchKeywords(question string, questionType docmodel.QuestionType) []string {
	q := strings.ToLower(question)
	qt := string(questionType)

	switch {
	case strings.HasPrefix(qt, "presentation"):
		return []string{"slide", "presentation", "title", "bullet", "overview"}
	case strings.HasPrefix(qt, "spreadsheet"):
		return []string{"table", "data", "column", "row", "chart", "value"}
	case strings.HasPrefix(qt, "image"):
		return []string{"image", "picture", "visual", "diagram", "figure"}
	case questionType == docmodel.PolicyTable ||
		strings.Contains(q, "sub-limit") || strings.Contains(q, "room rent") ||
		strings.Contains(q, "icu charges") || strings.Contains(q, "plan a"):
		return []string{"table of benefits", "plan a", "plan b", "room charges", "icu charges", "per day per insured person", "up to", "% of si"}
	case strings.Contains(q, "grace period"):
		return []string{"grace period", "premium payment", "thirty days"}
	case strings.Contains(q, "waiting period"):
		return []string{"waiting period", "continuous coverage", "months"}
	case strings.Contains(q, "three laws"):
		return []string{"law i", "law ii", "law iii", "first law", "second law", "third law", "laws of motion"}
	case strings.Contains(q, "newton"):
		return []string{"newton", "principia", "proposition", "theorem"}
	}

	var words []string
	for _, w := range strings.Fields(question) {
		if len(w) > 3 {
			words = append(words, w)
		}
		if len(words) == 4 {
			break
		}
	}
	return words
}
