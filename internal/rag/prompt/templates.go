package prompt

import (
	"fmt"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

const (
	groundedSystem = "You are a helpful and knowledgeable assistant that provides accurate, complete answers based on the provided context."

	knowledgeSystem = "You are a helpful assistant. Since no relevant information was found in the document, answer the question using your general knowledge about the topic."

	knowledgeSystemSpreadsheet = "You are a helpful assistant. Since the Excel/spreadsheet data is not clearly available, answer the question using your general knowledge about the topic, Excel functionality, data analysis concepts, or related domain knowledge as appropriate."
)

const presentationTemplate = `You are a presentation analysis expert.

Using ONLY the provided presentation context, answer the question clearly and comprehensively.

Your answer must be:
- Extract information from slides, titles, and content
- Include key points and structured information
- Be clear and well-organized (3-4 sentences maximum)
- Reference slide content when relevant

Context:
%s

Question: %s

Answer:`

const spreadsheetTemplate = `You are a spreadsheet data analysis expert.

Using ONLY the provided spreadsheet context, answer the question about data, tables, or values.

Your answer must be:
- Extract exact data from tables and cells
- Include specific numbers, values, and calculations
- Present data clearly and accurately (3-4 sentences maximum)
- Reference table structure when relevant

Context:
%s

Question: %s

Answer:`

const imageTemplate = `You are an image content analysis expert.

Using ONLY the provided image context (OCR extracted text), answer the question about the visual content.

Your answer must be:
- Extract information from OCR text and visual elements
- Describe relevant visual content clearly
- Be concise and accurate (2-3 sentences maximum)
- Note if image processing limitations apply

Context:
%s

Question: %s

Answer:`

const documentTemplate = `You are a document analysis expert.

Using ONLY the provided document context, answer the question comprehensively.

Your answer must be:
- Extract relevant information from the document
- Include key details and supporting information
- Be well-structured and informative (3-4 sentences maximum)
- Reference document sections when applicable

Context:
%s

Question: %s

Answer:`

const policyTableTemplate = `You are a precise insurance policy expert specializing in policy tables and structured data.

Using ONLY the provided policy context, answer the question about tables, limits, charges, or plan-specific information.

Your answer must be:
- Extract exact information from tables, charts, or structured data
- Include specific amounts, percentages, and plan details
- Reference the exact section or table when available
- Be precise and complete (3-4 sentences maximum)
- If information is in a table format, present it clearly

Context:
%s

Question: %s

Answer:`

const policyTemplate = `You are a comprehensive insurance policy expert.

Using ONLY the provided policy context, provide a complete answer to the question.

Your answer must be:
- Comprehensive yet concise (3-4 sentences maximum)
- Include all relevant details, procedures, and conditions
- Reference specific policy sections when applicable
- Be well-structured and professional

Context:
%s

Question: %s

Answer:`

const defaultTemplate = `You are a helpful document assistant.

Using ONLY the provided context, answer the question clearly and accurately.

Your answer must be:
- Clear and informative (3-4 sentences maximum)
- Include relevant details from the context
- Be well-structured and professional

Context:
%s

Question: %s

Answer:`

func templateFor(questionType docmodel.QuestionType, docType docmodel.DocumentType) string {
	switch docType {
	case docmodel.DocPresentation:
		return presentationTemplate
	case docmodel.DocSpreadsheet:
		return spreadsheetTemplate
	case docmodel.DocImage:
		return imageTemplate
	case docmodel.DocWord:
		return documentTemplate
	case docmodel.DocPolicy:
		if questionType == docmodel.PolicyTable {
			return policyTableTemplate
		}
		return policyTemplate
	default:
		return defaultTemplate
	}
}

// Compose builds the system and user messages for one question. Meaningful
// reports whether the context passed the relevance gate; when it did not the
// messages switch to the knowledge-fallback pair and the caller should pick
// the matching generation budget.
func Compose(questionType docmodel.QuestionType, docType docmodel.DocumentType, context, question string) (system, user string, meaningful bool) {
	meaningful = IsContextMeaningful(context, question)
	if meaningful {
		return groundedSystem, fmt.Sprintf(templateFor(questionType, docType), context, question), true
	}

	user = fmt.Sprintf("Answer this question using your knowledge: %s", question)
	if docType == docmodel.DocSpreadsheet {
		return knowledgeSystemSpreadsheet, user, false
	}
	return knowledgeSystem, user, false
}
