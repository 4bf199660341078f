package parser

import (
	"bytes"
	"io"
	"path/filepath"
	"strings"
)

// Parser converts raw document bytes into plain text.
type Parser interface {
	Parse(r io.Reader, filename string) (string, error)
}

// ForFile returns the parser for a filename. Unknown extensions fall
// back to the plain-text parser, which decodes the bytes as UTF-8 and
// drops anything undecodable.
func ForFile(filename string) Parser {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".pdf":
		return &PDFParser{FallbackPdftotext: true}
	case ".docx":
		return &DOCXParser{}
	case ".md", ".markdown":
		return &MarkdownParser{}
	case ".html", ".htm":
		return &HTMLParser{}
	case ".csv":
		return &CSVParser{}
	default:
		return &TextParser{}
	}
}

// ExtractText converts one uploaded document into plain text,
// dispatching on the file extension.
func ExtractText(data []byte, filename string) (string, error) {
	return ForFile(filename).Parse(bytes.NewReader(data), filename)
}
