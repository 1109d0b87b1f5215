package prompt

import (
	"strings"
	"unicode"
)

// noInfoPatterns are the phrases extraction and retrieval leave behind when
// they had nothing real to say. Context carrying any of them never reaches
// the document-grounded prompt.
var noInfoPatterns = []string{
	"there is no information provided in the context",
	"no information provided",
	"cannot be processed for text content",
	"content extraction failed",
	"processing failed",
	"unable to retrieve relevant content",
	"failed to load",
	"error processing",
	"technical difficulties",
	"processing encountered technical limitations",
	"no content was extracted",
	"binary file from",
	"unsupported file type",
}

// IsContextMeaningful gates the prompt split: meaningful context gets the
// document-grounded template, anything else falls back to model knowledge.
func IsContextMeaningful(context, question string) bool {
	trimmed := strings.TrimSpace(context)
	if len(trimmed) < 50 {
		return false
	}

	contextLower := strings.ToLower(context)
	for _, pattern := range noInfoPatterns {
		if strings.Contains(contextLower, pattern) {
			return false
		}
	}

	hasDigits := strings.ContainsFunc(context, unicode.IsDigit)

	longWords := 0
	for _, w := range strings.Fields(context) {
		if len(w) > 6 {
			longWords++
		}
	}
	hasSubstance := longWords > 10

	questionWords := strings.Fields(strings.ToLower(question))
	if len(questionWords) > 3 {
		questionWords = questionWords[:3]
	}
	relatesToQuestion := false
	for _, w := range questionWords {
		if strings.Contains(contextLower, w) {
			relatesToQuestion = true
			break
		}
	}

	return (hasDigits || hasSubstance || relatesToQuestion) && len(trimmed) > 100
}
