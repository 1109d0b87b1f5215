package classify

import (
	"strings"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

// abbreviationExpansions rewrites domain shorthand so embeddings see the full
// term. Section order matters for nothing here; each entry is an independent
// literal replacement, skipped when the expansion is already present.
var abbreviationExpansions = []struct {
	Abbr string
	Full string
}{
	{"IVF", "In Vitro Fertilization (IVF)"},
	{"OPD", "Outpatient Department (OPD)"},
	{"ICU", "Intensive Care Unit (ICU)"},
	{"Rs", "Rupees"},
	{"C-section", "Caesarean section"},
	{"AYUSH", "Ayurveda, Yoga, Unani, Siddha, and Homeopathy (AYUSH)"},
	{"ECG", "Electrocardiogram (ECG)"},
	{"IONM", "Intra Operative Neuro Monitoring (IONM)"},
	{"PED", "Pre-Existing Disease (PED)"},
	{"NCD", "No Claim Discount (NCD)"},
	{"TPA", "Third Party Administrator (TPA)"},
}

// PreprocessQuestion expands known abbreviations in place. Idempotent:
// running it twice never double-expands.
func PreprocessQuestion(question string) string {
	processed := question
	for _, e := range abbreviationExpansions {
		if strings.Contains(processed, e.Abbr) && !strings.Contains(processed, e.Full) {
			processed = strings.ReplaceAll(processed, e.Abbr, e.Full)
		}
	}
	return processed
}

func containsAny(text string, words ...string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}

// ClassifyQuestion maps a question onto a sub-type of its document's class.
// Checks run in priority order, most specific first; note the yes/no check
// sits after time/list for policy questions because bare auxiliaries like
// "is" match nearly everything.
func ClassifyQuestion(question string, docType docmodel.DocumentType) docmodel.QuestionType {
	q := strings.ToLower(question)

	switch docType {
	case docmodel.DocPolicy:
		switch {
		case containsAny(q, "sub-limit", "room rent", "icu charges", "plan a", "plan b", "table", "charges per day"):
			return docmodel.PolicyTable
		case containsAny(q, "list", "documents", "what are", "give me"):
			return docmodel.PolicyList
		case containsAny(q, "when", "how long", "period", "time"):
			return docmodel.PolicyTime
		case containsAny(q, "is", "does", "can", "will", "are", "has", "covered"):
			return docmodel.PolicyYesNo
		default:
			return docmodel.PolicyGeneral
		}

	case docmodel.DocAcademic:
		switch {
		case containsAny(q, "how does", "explain", "demonstrate", "derive", "why"):
			return docmodel.AcademicExplanation
		case containsAny(q, "what is", "define", "who was", "what are"):
			return docmodel.AcademicDefinition
		case containsAny(q, "three laws", "laws of motion"):
			return docmodel.AcademicLaws
		default:
			return docmodel.AcademicGeneral
		}

	case docmodel.DocLegal:
		switch {
		case containsAny(q, "article", "which article", "under which"):
			return docmodel.LegalArticle
		case containsAny(q, "is", "can", "legal", "allowed"):
			return docmodel.LegalYesNo
		default:
			return docmodel.LegalGeneral
		}

	case docmodel.DocPresentation, docmodel.DocSpreadsheet, docmodel.DocImage, docmodel.DocWord:
		base := string(docType)
		switch {
		case containsAny(q, "what is", "what are", "list", "show"):
			return docmodel.QuestionType(base + "_info")
		case containsAny(q, "how", "why", "explain"):
			return docmodel.QuestionType(base + "_explanation")
		default:
			return docmodel.QuestionType(base + "_general")
		}
	}

	return docmodel.GeneralInquiry
}
