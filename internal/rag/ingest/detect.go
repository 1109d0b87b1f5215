package ingest

import (
	"bytes"
	"net/url"
	"path"
	"strings"

	"github.com/yatharthchopra2424/Bajaj-Policy-MVP-Rag/internal/domain/docmodel"
)

var extensionTypes = map[string]docmodel.FileType{
	".pdf":  docmodel.PDF,
	".ppt":  docmodel.PowerPoint,
	".pptx": docmodel.PowerPoint,
	".doc":  docmodel.Word,
	".docx": docmodel.Word,
	".xls":  docmodel.Excel,
	".xlsx": docmodel.Excel,
	".jpg":  docmodel.Image,
	".jpeg": docmodel.Image,
	".png":  docmodel.Image,
	".gif":  docmodel.Image,
	".bmp":  docmodel.Image,
	".tiff": docmodel.Image,
	".bin":  docmodel.Binary,
	".zip":  docmodel.Archive,
	".rar":  docmodel.Archive,
	".7z":   docmodel.Archive,
	".txt":  docmodel.Text,
	".csv":  docmodel.CSV,
}

var mimeTypes = map[string]struct {
	fileType docmodel.FileType
	ext      string
}{
	"application/pdf":                {docmodel.PDF, ".pdf"},
	"application/vnd.ms-powerpoint":  {docmodel.PowerPoint, ".ppt"},
	"application/vnd.openxmlformats-officedocument.presentationml.presentation": {docmodel.PowerPoint, ".pptx"},
	"application/msword": {docmodel.Word, ".doc"},
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": {docmodel.Word, ".docx"},
	"application/vnd.ms-excel": {docmodel.Excel, ".xls"},
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": {docmodel.Excel, ".xlsx"},
	"image/jpeg":               {docmodel.Image, ".jpg"},
	"image/png":                {docmodel.Image, ".png"},
	"image/gif":                {docmodel.Image, ".gif"},
	"text/plain":               {docmodel.Text, ".txt"},
	"text/csv":                 {docmodel.CSV, ".csv"},
	"application/zip":          {docmodel.Archive, ".zip"},
	"application/octet-stream": {docmodel.Binary, ".bin"},
}

// DetectFileType resolves the document format, trying the url extension
// first, then the content type header, then magic bytes. Unrecognized input
// lands on binary, never an error.
func DetectFileType(rawURL, contentType string, content []byte) (docmodel.FileType, string) {
	urlPath := rawURL
	if parsed, err := url.Parse(rawURL); err == nil {
		urlPath = parsed.Path
	}
	ext := strings.ToLower(path.Ext(urlPath))
	if fileType, ok := extensionTypes[ext]; ok {
		return fileType, ext
	}

	if contentType != "" {
		// strip parameters like charset
		mime := strings.TrimSpace(strings.SplitN(contentType, ";", 2)[0])
		if entry, ok := mimeTypes[mime]; ok {
			return entry.fileType, entry.ext
		}
	}

	if len(content) > 0 {
		switch {
		case bytes.HasPrefix(content, []byte("%PDF")):
			return docmodel.PDF, ".pdf"
		case bytes.HasPrefix(content, []byte("PK")):
			return docmodel.Archive, ".zip"
		case bytes.Contains(head(content, 1000), []byte("Microsoft Office")):
			return docmodel.Word, ".docx"
		}
	}

	return docmodel.Binary, ".bin"
}

func head(b []byte, n int) []byte {
	if len(b) > n {
		return b[:n]
	}
	return b
}
