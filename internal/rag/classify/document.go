package classify

import (
	"strings"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

// keywordSet scores a document category: hits on High count 3, Medium 2,
// Low 1, and the category applies once the total reaches Threshold.
type keywordSet struct {
	High      []string
	Medium    []string
	Low       []string
	Threshold int
}

type documentClassifierConfig struct {
	Policy   keywordSet
	Academic keywordSet
	Legal    keywordSet
}

var defaultDocumentConfig = documentClassifierConfig{
	Policy: keywordSet{
		High:      []string{"policy", "premium", "claim", "coverage", "insured", "mediclaim", "table of benefits"},
		Medium:    []string{"benefit", "exclusion", "deductible", "hospitalisation", "waiting period", "sum insured", "plan a", "plan b"},
		Low:       []string{"tpa", "cashless", "reimbursement", "network provider", "room charges", "icu charges"},
		Threshold: 6,
	},
	Academic: keywordSet{
		High:      []string{"newton", "principia", "proposition", "theorem", "lemma", "law i", "law ii", "law iii"},
		Medium:    []string{"force", "motion", "velocity", "acceleration", "gravity", "mass", "laws of motion"},
		Low:       []string{"physics", "mathematical", "philosophy", "demonstration"},
		Threshold: 4,
	},
	Legal: keywordSet{
		High:      []string{"constitution", "article", "amendment", "preamble"},
		Medium:    []string{"rights", "law", "legal", "court", "justice"},
		Low:       []string{"government", "citizen", "state", "parliament"},
		Threshold: 4,
	},
}

func (ks keywordSet) score(text string) int {
	score := 0
	for _, kw := range ks.High {
		if strings.Contains(text, kw) {
			score += 3
		}
	}
	for _, kw := range ks.Medium {
		if strings.Contains(text, kw) {
			score += 2
		}
	}
	for _, kw := range ks.Low {
		if strings.Contains(text, kw) {
			score++
		}
	}
	return score
}

// DetectDocumentType decides which answering profile a document gets. The
// file type wins outright for formats whose structure already tells the
// story; free-text formats fall through to weighted keyword scoring on a
// sample of the content.
func DetectDocumentType(contentSample string, fileType docmodel.FileType) docmodel.DocumentType {
	switch fileType {
	case docmodel.PowerPoint:
		return docmodel.DocPresentation
	case docmodel.Excel, docmodel.CSV:
		return docmodel.DocSpreadsheet
	case docmodel.Image:
		return docmodel.DocImage
	case docmodel.Word:
		return docmodel.DocWord
	}

	lower := strings.ToLower(contentSample)
	cfg := defaultDocumentConfig

	// policy outranks academic outranks legal when several clear the bar
	if cfg.Policy.score(lower) >= cfg.Policy.Threshold {
		return docmodel.DocPolicy
	}
	if cfg.Academic.score(lower) >= cfg.Academic.Threshold {
		return docmodel.DocAcademic
	}
	if cfg.Legal.score(lower) >= cfg.Legal.Threshold {
		return docmodel.DocLegal
	}
	return docmodel.DocGeneral
}
