package resume

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for files that are neither PDF nor DOCX.
var ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and docx are allowed")

// ErrNoText is returned when a document parses but yields no extractable text,
// for example a scanned resume without an OCR layer.
var ErrNoText = errors.New("no extractable text found in the document")

var (
	docxTags   = regexp.MustCompile(`<[^>]+>`)
	blankRuns  = regexp.MustCompile(`[ \t\r\f\v]+`)
	newlineRun = regexp.MustCompile(`\n+`)
)

// ExtractText returns the plain text of an uploaded resume. The format is
// picked from the filename extension.
func ExtractText(filename string, data []byte) (string, error) {
	var text string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".pdf":
		text, err = pdfText(data)
	case ".docx":
		text, err = docxText(data)
	default:
		return "", ErrUnsupportedFormat
	}

	if err != nil {
		return "", err
	}

	if text == "" {
		return "", ErrNoText
	}

	return text, nil
}

func pdfText(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}

	return collapseWhitespace(buf.String()), nil
}

// docxText pulls word/document.xml out of the docx archive and strips markup.
func docxText(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	var doc []byte
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("open document.xml: %w", err)
		}

		doc, err = io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return "", fmt.Errorf("read document.xml: %w", err)
		}
		break
	}

	if len(doc) == 0 {
		return "", errors.New("no document.xml found in docx")
	}

	xml := string(doc)
	// Paragraph and tab boundaries become whitespace before tags are dropped.
	xml = strings.ReplaceAll(xml, "</w:p>", "\n")
	xml = strings.ReplaceAll(xml, "<w:tab/>", "\t")
	xml = docxTags.ReplaceAllString(xml, " ")

	return collapseWhitespace(xml), nil
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = blankRuns.ReplaceAllString(s, " ")
	s = newlineRun.ReplaceAllString(s, "\n")
	return strings.TrimSpace(s)
}
