package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/config"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/rag/contentstore"
	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/pkg/logger_i"
)

// Extractor turns downloaded bytes into text documents. It never returns an
// error: extraction failures produce placeholder documents whose text the
// relevance gate recognises downstream, so the question still gets answered
// from model knowledge.
type Extractor struct {
	cache  *contentstore.ContentCache
	logger *logger_i.Logger
}

func NewExtractor(cache *contentstore.ContentCache) *Extractor {
	return &Extractor{
		cache:  cache,
		logger: logger_i.NewLogger("extractor"),
	}
}

func (e *Extractor) Extract(ctx context.Context, url string, fileType docmodel.FileType, ext string, content []byte) []docmodel.Document {
	switch fileType {
	case docmodel.PDF:
		return e.extractPDF(url, content)
	case docmodel.PowerPoint:
		return e.extractPowerPoint(ctx, url, content)
	case docmodel.Word:
		return e.extractWord(url, ext, content)
	case docmodel.Excel:
		return e.extractExcel(url, content)
	case docmodel.CSV:
		return e.extractCSV(url, content)
	case docmodel.Text:
		return e.extractPlainText(url, content)
	case docmodel.Image:
		return []docmodel.Document{imagePlaceholder(url)}
	case docmodel.Archive:
		return e.extractArchive(ctx, url, content)
	default:
		return []docmodel.Document{binaryPlaceholder(url)}
	}
}

func (e *Extractor) extractPDF(url string, content []byte) []docmodel.Document {
	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		e.logger.Error("failed opening pdf", "error", err)
		return []docmodel.Document{extractionFailed(url, docmodel.PDF)}
	}

	var docs []docmodel.Document
	numPages := reader.NumPage()
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := protectExtract(page)
		if err != nil {
			e.logger.Warn("skipping unreadable pdf page", "page", i, "error", err)
			continue
		}
		if strings.TrimSpace(text) == "" {
			continue
		}
		docs = append(docs, docmodel.Document{
			Text: text,
			Meta: docmodel.Metadata{
				Source:      url,
				ContentType: docmodel.PDF,
				Method:      "pdf",
				Extra:       map[string]string{"page": fmt.Sprint(i)},
			},
		})
	}
	if len(docs) == 0 {
		return []docmodel.Document{extractionFailed(url, docmodel.PDF)}
	}
	return docs
}

// protectExtract guards GetPlainText, which can hang on malformed content
// streams, with a hard timeout per page.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(time.Second * 10):
		return "", errors.New("timeout")
	}
}

func (e *Extractor) extractPowerPoint(ctx context.Context, url string, content []byte) []docmodel.Document {
	if cached, ok := e.cache.Get(ctx, url); ok {
		e.logger.Info("presentation text served from cache", "url", url)
		return []docmodel.Document{{
			Text: cached,
			Meta: docmodel.Metadata{Source: url, ContentType: docmodel.PowerPoint, Method: "cache"},
		}}
	}

	text, err := powerPointText(content)
	if err != nil {
		e.logger.Error("powerpoint extraction failed", "error", err)
		return []docmodel.Document{extractionFailed(url, docmodel.PowerPoint)}
	}

	e.cache.Put(ctx, url, text)
	return []docmodel.Document{{
		Text: text,
		Meta: docmodel.Metadata{Source: url, ContentType: docmodel.PowerPoint, Method: "pptx"},
	}}
}

// powerPointText walks the slide XML parts of a pptx archive and collects
// their text runs, slide by slide in deck order.
func powerPointText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("opening pptx archive: %w", err)
	}

	var slideNames []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "ppt/slides/slide") && strings.HasSuffix(f.Name, ".xml") {
			slideNames = append(slideNames, f.Name)
		}
	}
	if len(slideNames) == 0 {
		return "", errors.New("no slides found in presentation")
	}
	sort.Strings(slideNames)

	var sb strings.Builder
	for i, name := range slideNames {
		rc, err := zr.Open(name)
		if err != nil {
			continue
		}
		runs, err := xmlTextRuns(rc, "t")
		rc.Close()
		if err != nil || len(runs) == 0 {
			continue
		}
		fmt.Fprintf(&sb, "Slide %d:\n%s\n\n", i+1, strings.Join(runs, "\n"))
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("no text content in presentation")
	}
	return text, nil
}

func (e *Extractor) extractWord(url, ext string, content []byte) []docmodel.Document {
	tmp, err := os.CreateTemp("", "doc-*"+ext)
	if err != nil {
		e.logger.Error("temp file for word extraction failed", "error", err)
		return []docmodel.Document{wordPlaceholder(url)}
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		return []docmodel.Document{wordPlaceholder(url)}
	}
	tmp.Close()

	text, err := cat.File(tmp.Name())
	if err != nil || strings.TrimSpace(text) == "" {
		e.logger.Warn("word extraction failed", "error", err)
		return []docmodel.Document{wordPlaceholder(url)}
	}

	return []docmodel.Document{{
		Text: text,
		Meta: docmodel.Metadata{Source: url, ContentType: docmodel.Word, Method: "cat"},
	}}
}

func (e *Extractor) extractExcel(url string, content []byte) []docmodel.Document {
	text, err := excelText(content)
	if err != nil {
		e.logger.Error("excel extraction failed", "error", err)
		return []docmodel.Document{extractionFailed(url, docmodel.Excel)}
	}
	return []docmodel.Document{{
		Text: text,
		Meta: docmodel.Metadata{Source: url, ContentType: docmodel.Excel, Method: "xlsx"},
	}}
}

// excelText pulls the shared string table and sheet names from an xlsx
// archive. Cell-level layout is not reconstructed; the string content plus
// sheet inventory is enough for retrieval over spreadsheet text.
func excelText(content []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("opening xlsx archive: %w", err)
	}

	var sb strings.Builder
	var sheets []string
	for _, f := range zr.File {
		if strings.HasPrefix(f.Name, "xl/worksheets/sheet") && strings.HasSuffix(f.Name, ".xml") {
			sheets = append(sheets, strings.TrimSuffix(filepath.Base(f.Name), ".xml"))
		}
	}
	if len(sheets) > 0 {
		sort.Strings(sheets)
		fmt.Fprintf(&sb, "Workbook sheets: %s\n\n", strings.Join(sheets, ", "))
	}

	for _, f := range zr.File {
		if f.Name != "xl/sharedStrings.xml" {
			continue
		}
		rc, err := zr.Open(f.Name)
		if err != nil {
			return "", fmt.Errorf("opening shared strings: %w", err)
		}
		runs, err := xmlTextRuns(rc, "t")
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("parsing shared strings: %w", err)
		}
		sb.WriteString(strings.Join(runs, "\n"))
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", errors.New("no text content in workbook")
	}
	return text, nil
}

func (e *Extractor) extractCSV(url string, content []byte) []docmodel.Document {
	reader := csv.NewReader(bytes.NewReader(content))
	reader.FieldsPerRecord = -1

	var sb strings.Builder
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			e.logger.Warn("csv parse stopped early", "error", err)
			break
		}
		sb.WriteString(strings.Join(record, " | "))
		sb.WriteByte('\n')
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return []docmodel.Document{extractionFailed(url, docmodel.CSV)}
	}
	return []docmodel.Document{{
		Text: text,
		Meta: docmodel.Metadata{Source: url, ContentType: docmodel.CSV, Method: "csv"},
	}}
}

func (e *Extractor) extractPlainText(url string, content []byte) []docmodel.Document {
	text := string(content)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	if strings.TrimSpace(text) == "" {
		return []docmodel.Document{extractionFailed(url, docmodel.Text)}
	}
	return []docmodel.Document{{
		Text: text,
		Meta: docmodel.Metadata{Source: url, ContentType: docmodel.Text, Method: "text"},
	}}
}

// extractArchive opens a zip and recurses into every usable member. Nothing
// extractable leaves the caller with an empty slice; the pipeline then falls
// back to knowledge answers.
func (e *Extractor) extractArchive(ctx context.Context, url string, content []byte) []docmodel.Document {
	zr, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		e.logger.Error("cannot open archive", "error", err)
		return nil
	}

	maxMember := uint64(config.MaxArchiveMemberSizeMB) * 1024 * 1024
	var docs []docmodel.Document
	for _, f := range zr.File {
		name := f.Name
		if strings.HasSuffix(name, "/") || strings.HasPrefix(name, "__MACOSX/") || strings.HasPrefix(filepath.Base(name), ".") {
			continue
		}
		if f.UncompressedSize64 == 0 || f.UncompressedSize64 > maxMember {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			e.logger.Warn("failed opening archive member", "member", name, "error", err)
			continue
		}
		memberContent, err := io.ReadAll(io.LimitReader(rc, int64(maxMember)))
		rc.Close()
		if err != nil {
			continue
		}

		memberType, memberExt := DetectFileType(name, "", memberContent)
		if memberType == docmodel.Archive || memberType == docmodel.Binary {
			// no nested archives, no binaries
			continue
		}
		memberDocs := e.Extract(ctx, url+"#"+name, memberType, memberExt, memberContent)
		for _, d := range memberDocs {
			if d.Meta.ErrorKind == "" {
				docs = append(docs, d)
			}
		}
	}

	e.logger.Info("archive processed", "members", len(zr.File), "documents", len(docs))
	return docs
}

// xmlTextRuns streams an XML document and returns the character data of every
// element with the given local name.
func xmlTextRuns(r io.Reader, local string) ([]string, error) {
	decoder := xml.NewDecoder(r)
	var runs []string
	depth := 0

	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return runs, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Local == local {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == local && depth > 0 {
				depth--
			}
		case xml.CharData:
			if depth > 0 {
				if s := string(t); strings.TrimSpace(s) != "" {
					runs = append(runs, s)
				}
			}
		}
	}
	return runs, nil
}

func extractionFailed(url string, fileType docmodel.FileType) docmodel.Document {
	return docmodel.Document{
		Text: fmt.Sprintf("Document from %s. Content extraction failed.", url),
		Meta: docmodel.Metadata{Source: url, ContentType: fileType, ErrorKind: "extraction_failed"},
	}
}

func wordPlaceholder(url string) docmodel.Document {
	return docmodel.Document{
		Text: fmt.Sprintf("Word document from %s. Content extraction failed.", url),
		Meta: docmodel.Metadata{Source: url, ContentType: docmodel.Word, ErrorKind: "extraction_failed"},
	}
}

func imagePlaceholder(url string) docmodel.Document {
	return docmodel.Document{
		Text: fmt.Sprintf("Image file detected from %s. Text extraction from images is not available; the image may contain charts, diagrams, or text that could not be read automatically.", url),
		Meta: docmodel.Metadata{Source: url, ContentType: docmodel.Image, ErrorKind: "ocr_unavailable"},
	}
}

func binaryPlaceholder(url string) docmodel.Document {
	return docmodel.Document{
		Text: fmt.Sprintf("Binary file from %s. Binary files cannot be processed for text content.", url),
		Meta: docmodel.Metadata{Source: url, ContentType: docmodel.Binary, ErrorKind: "binary_content"},
	}
}
