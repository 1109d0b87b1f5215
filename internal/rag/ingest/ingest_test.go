package ingest

import (
	"archive/zip"
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

func TestDetectFileType(t *testing.T) {
	tests := []struct {
		name        string
		url         string
		contentType string
		content     []byte
		wantType    docmodel.FileType
		wantExt     string
	}{
		{"pdf extension", "https://host/policy.pdf", "", nil, docmodel.PDF, ".pdf"},
		{"extension beats query", "https://host/deck.pptx?sig=abc.zip", "", nil, docmodel.PowerPoint, ".pptx"},
		{"uppercase path lowered", "https://host/REPORT.XLSX", "", nil, docmodel.Excel, ".xlsx"},
		{"csv extension", "https://host/data.csv", "", nil, docmodel.CSV, ".csv"},
		{"mime fallback", "https://host/download", "application/pdf", nil, docmodel.PDF, ".pdf"},
		{"mime with charset", "https://host/download", "text/plain; charset=utf-8", nil, docmodel.Text, ".txt"},
		{"octet stream", "https://host/blob", "application/octet-stream", nil, docmodel.Binary, ".bin"},
		{"pdf magic bytes", "https://host/blob", "", []byte("%PDF-1.7 rest"), docmodel.PDF, ".pdf"},
		{"zip magic bytes", "https://host/blob", "", []byte("PK\x03\x04data"), docmodel.Archive, ".zip"},
		{"unknown defaults to binary", "https://host/blob", "", []byte("plain stuff"), docmodel.Binary, ".bin"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gotType, gotExt := DetectFileType(tc.url, tc.contentType, tc.content)
			if gotType != tc.wantType || gotExt != tc.wantExt {
				t.Errorf("got (%q, %q), want (%q, %q)", gotType, gotExt, tc.wantType, tc.wantExt)
			}
		})
	}
}

func TestFetchDownloadsSmallFile(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/pdf")
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Length", "11")
			return
		}
		_, _ = w.Write([]byte("%PDF-1.7 xx"))
	}))
	defer server.Close()

	d := NewDownloaderWithClient(server.Client())
	content, contentType, skipped, err := d.Fetch(context.Background(), server.URL+"/doc.pdf")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if skipped {
		t.Fatal("small pdf should not be skipped")
	}
	if !bytes.HasPrefix(content, []byte("%PDF")) {
		t.Errorf("unexpected content: %q", content)
	}
	if contentType != "application/pdf" {
		t.Errorf("unexpected content type: %q", contentType)
	}
}

func TestFetchSkipsLargeBinary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.Header().Set("Content-Type", "application/octet-stream")
			w.Header().Set("Content-Length", "62914560") // 60MB
			return
		}
		t.Error("GET should never be issued for a skipped binary")
	}))
	defer server.Close()

	d := NewDownloaderWithClient(server.Client())
	content, _, skipped, err := d.Fetch(context.Background(), server.URL+"/blob.bin")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !skipped || content != nil {
		t.Error("large binary must be skipped without download")
	}
}

func TestFetchSkipsBinaryOfUnknownSize(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			http.Error(w, "no head for you", http.StatusMethodNotAllowed)
			return
		}
		t.Error("GET should never be issued for an unidentified binary")
	}))
	defer server.Close()

	d := NewDownloaderWithClient(server.Client())
	_, _, skipped, err := d.Fetch(context.Background(), server.URL+"/blob.bin")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}
	if !skipped {
		t.Error("binary without size info must be skipped")
	}
}

func TestFetchReportsHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	d := NewDownloaderWithClient(server.Client())
	_, _, _, err := d.Fetch(context.Background(), server.URL+"/doc.pdf")
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
}

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := w.Write([]byte(content)); err != nil {
			t.Fatal(err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

const slideXML = `<?xml version="1.0"?>
<p:sld xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main">
  <p:cSld><p:spTree>
    <p:sp><p:txBody><a:p><a:r><a:t>Quarterly Review</a:t></a:r></a:p>
    <a:p><a:r><a:t>Revenue grew 12 percent</a:t></a:r></a:p></p:txBody></p:sp>
  </p:spTree></p:cSld>
</p:sld>`

func TestExtractPowerPoint(t *testing.T) {
	content := buildZip(t, map[string]string{
		"ppt/slides/slide1.xml": slideXML,
		"ppt/theme/theme1.xml":  `<theme/>`,
	})

	e := NewExtractor(nil)
	docs := e.Extract(context.Background(), "https://host/deck.pptx", docmodel.PowerPoint, ".pptx", content)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if !strings.Contains(docs[0].Text, "Slide 1:") || !strings.Contains(docs[0].Text, "Quarterly Review") {
		t.Errorf("slide text missing: %q", docs[0].Text)
	}
	if docs[0].Meta.Method != "pptx" {
		t.Errorf("unexpected method: %q", docs[0].Meta.Method)
	}
}

func TestExtractExcel(t *testing.T) {
	sharedStrings := `<?xml version="1.0"?>
<sst xmlns="http://schemas.openxmlformats.org/spreadsheetml/2006/main">
  <si><t>Premium</t></si>
  <si><t>5000</t></si>
</sst>`
	content := buildZip(t, map[string]string{
		"xl/sharedStrings.xml":      sharedStrings,
		"xl/worksheets/sheet1.xml":  `<worksheet/>`,
		"[Content_Types].xml":       `<Types/>`,
	})

	e := NewExtractor(nil)
	docs := e.Extract(context.Background(), "https://host/report.xlsx", docmodel.Excel, ".xlsx", content)
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if !strings.Contains(docs[0].Text, "Premium") || !strings.Contains(docs[0].Text, "sheet1") {
		t.Errorf("workbook text missing: %q", docs[0].Text)
	}
}

func TestExtractCSV(t *testing.T) {
	e := NewExtractor(nil)
	docs := e.Extract(context.Background(), "https://host/data.csv", docmodel.CSV, ".csv", []byte("plan,limit\nA,5000\nB,7500\n"))
	if len(docs) != 1 {
		t.Fatalf("expected 1 document, got %d", len(docs))
	}
	if !strings.Contains(docs[0].Text, "plan | limit") || !strings.Contains(docs[0].Text, "B | 7500") {
		t.Errorf("csv rows missing: %q", docs[0].Text)
	}
}

func TestExtractImageProducesPlaceholder(t *testing.T) {
	e := NewExtractor(nil)
	docs := e.Extract(context.Background(), "https://host/chart.png", docmodel.Image, ".png", []byte{0x89, 0x50})
	if len(docs) != 1 {
		t.Fatalf("expected 1 placeholder document, got %d", len(docs))
	}
	if docs[0].Meta.ErrorKind == "" {
		t.Error("image placeholder must carry an error marker")
	}
	if !strings.Contains(docs[0].Text, "https://host/chart.png") {
		t.Errorf("placeholder should name the source: %q", docs[0].Text)
	}
}

func TestExtractCorruptPDFProducesPlaceholder(t *testing.T) {
	e := NewExtractor(nil)
	docs := e.Extract(context.Background(), "https://host/doc.pdf", docmodel.PDF, ".pdf", []byte("not a pdf at all"))
	if len(docs) != 1 {
		t.Fatalf("expected 1 placeholder document, got %d", len(docs))
	}
	if docs[0].Meta.ErrorKind != "extraction_failed" {
		t.Errorf("unexpected error kind: %q", docs[0].Meta.ErrorKind)
	}
}

func TestExtractArchiveRecursesIntoMembers(t *testing.T) {
	content := buildZip(t, map[string]string{
		"notes/summary.txt":    "The policy covers hospitalisation after a thirty day waiting period.",
		"data.csv":             "plan,limit\nA,5000\n",
		"__MACOSX/._junk":      "resource fork",
		"nested.zip":           "PK\x03\x04fake nested archive",
		"empty_directory/":     "",
		".hidden":              "skip me",
	})

	e := NewExtractor(nil)
	docs := e.Extract(context.Background(), "https://host/bundle.zip", docmodel.Archive, ".zip", content)
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents from archive, got %d: %+v", len(docs), docs)
	}
	for _, d := range docs {
		if !strings.HasPrefix(d.Meta.Source, "https://host/bundle.zip#") {
			t.Errorf("member source should be anchored to the archive url: %q", d.Meta.Source)
		}
	}
}

func TestExtractArchiveOnGarbageReturnsNothing(t *testing.T) {
	e := NewExtractor(nil)
	docs := e.Extract(context.Background(), "https://host/bundle.zip", docmodel.Archive, ".zip", []byte("definitely not a zip"))
	if len(docs) != 0 {
		t.Errorf("expected no documents, got %d", len(docs))
	}
}

func TestChunkParamsFor(t *testing.T) {
	tests := []struct {
		fileType docmodel.FileType
		docCount int
		want     ChunkParams
	}{
		{docmodel.PowerPoint, 1, ChunkParams{1300, 130}},
		{docmodel.Image, 1, ChunkParams{1300, 130}},
		{docmodel.Excel, 1, ChunkParams{1560, 195}},
		{docmodel.CSV, 1, ChunkParams{1560, 195}},
		{docmodel.Text, 1, ChunkParams{1950, 260}},
		{docmodel.PDF, 500, ChunkParams{1820, 455}},
		{docmodel.PDF, 150, ChunkParams{2080, 325}},
		{docmodel.PDF, 50, ChunkParams{2340, 260}},
		{docmodel.Word, 10, ChunkParams{2340, 260}},
	}
	for _, tc := range tests {
		if got := ChunkParamsFor(tc.fileType, tc.docCount); got != tc.want {
			t.Errorf("ChunkParamsFor(%q, %d) = %+v, want %+v", tc.fileType, tc.docCount, got, tc.want)
		}
	}
}

func TestSplitTextIntoChunks(t *testing.T) {
	text := "This is a long sentence. This is another sentence that will be split."
	chunks := splitTextIntoChunks(text, 30, 5)

	if len(chunks) < 2 {
		t.Errorf("Expected multiple chunks, got %d", len(chunks))
	}
	for _, c := range chunks {
		if len(c) == 0 {
			t.Error("empty chunk produced")
		}
	}
}

func TestSplitTextIntoChunksShortText(t *testing.T) {
	chunks := splitTextIntoChunks("short", 100, 10)
	if len(chunks) != 1 || chunks[0] != "short" {
		t.Errorf("short text should pass through unchanged: %v", chunks)
	}
}

func TestPrepareChunks(t *testing.T) {
	docs := []docmodel.Document{
		{Text: "Page one content.", Meta: docmodel.Metadata{Source: "u", ContentType: docmodel.PDF}},
		{Text: "Page two content.", Meta: docmodel.Metadata{Source: "u", ContentType: docmodel.PDF}},
		{Text: "   ", Meta: docmodel.Metadata{Source: "u"}},
	}

	chunks := PrepareChunks(docs, ChunkParams{Size: 1000, Overlap: 100})
	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	if chunks[0].ChunkId == chunks[1].ChunkId {
		t.Error("chunk ids must be unique")
	}
	if chunks[0].Meta.Source != "u" || chunks[0].Order != 0 {
		t.Errorf("metadata mismatch in chunk 0: %+v", chunks[0])
	}
}
