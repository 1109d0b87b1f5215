package docmodel

import "time"

// FileType is the coarse wire-level format detected from the document
// reference before any extraction happens.
type FileType string

const (
	PDF        FileType = "pdf"
	PowerPoint FileType = "powerpoint"
	Word       FileType = "word"
	Excel      FileType = "excel"
	CSV        FileType = "csv"
	Image      FileType = "image"
	Text       FileType = "text"
	Archive    FileType = "archive"
	Binary     FileType = "binary"
)

// DocumentType is the semantic class assigned after sampling the index.
type DocumentType string

const (
	DocPolicy       DocumentType = "policy"
	DocAcademic     DocumentType = "academic"
	DocLegal        DocumentType = "legal"
	DocPresentation DocumentType = "presentation"
	DocSpreadsheet  DocumentType = "spreadsheet"
	DocImage        DocumentType = "image"
	DocWord         DocumentType = "document"
	DocGeneral      DocumentType = "general"
)

// QuestionType is a document-type-scoped sub-classification of one question.
type QuestionType string

const (
	PolicyTable         QuestionType = "policy_table"
	PolicyYesNo         QuestionType = "policy_yes_no"
	PolicyList          QuestionType = "policy_list"
	PolicyTime          QuestionType = "policy_time"
	PolicyGeneral       QuestionType = "policy_general"
	AcademicExplanation QuestionType = "academic_explanation"
	AcademicDefinition  QuestionType = "academic_definition"
	AcademicLaws        QuestionType = "academic_laws"
	AcademicGeneral     QuestionType = "academic_general"
	LegalArticle        QuestionType = "legal_article"
	LegalYesNo          QuestionType = "legal_yes_no"
	LegalGeneral        QuestionType = "legal_general"
	GeneralInquiry      QuestionType = "general_inquiry"
)

// Metadata carries the provenance of an extracted document. ErrorKind is set
// when extraction degraded; the context relevance gate recognises it
// downstream and routes to the knowledge fallback.
type Metadata struct {
	Source      string            `json:"source"`
	ContentType FileType          `json:"content_type"`
	Method      string            `json:"method,omitempty"`
	ErrorKind   string            `json:"error,omitempty"`
	Extra       map[string]string `json:"extra,omitempty"`
}

// Document is one unit of extracted text, pre-chunking.
type Document struct {
	Text string   `json:"text"`
	Meta Metadata `json:"metadata"`
}

// Chunk is an indexable slice of a Document. Order is the chunk's position
// inside its source document; after indexing it is informational only.
type Chunk struct {
	ChunkId string   `json:"chunk_id"`
	Text    string   `json:"content"`
	Order   int      `json:"chunk_order"`
	Meta    Metadata `json:"metadata"`
}

// QAPair is one answered question tracked by the session ring.
type QAPair struct {
	Question  string
	Answer    string
	Type      QuestionType
	Timestamp time.Time
}
