package util

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// MaxResumeChars caps the text kept from an uploaded resume.
const MaxResumeChars = 4000

var (
	xmlTags    = regexp.MustCompile(`<[^>]+>`)
	whitespace = regexp.MustCompile(`\s+`)
)

// ExtractResumeText pulls plain text out of a resume file, picked by
// extension. Supported: .pdf, .docx, .txt and .md.
func ExtractResumeText(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%s is not valid UTF-8 text", filename)
		}
		text = string(data)
	case ".pdf":
		text, err = extractPDFText(data)
	case ".docx":
		text, err = extractDocxText(data)
	default:
		return "", fmt.Errorf("unsupported resume type %q", filepath.Ext(filename))
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if text == "" {
		return "", fmt.Errorf("no text found in %s", filename)
	}
	if r := []rune(text); len(r) > MaxResumeChars {
		text = string(r[:MaxResumeChars])
	}
	return text, nil
}

func extractPDFText(data []byte) (text string, err error) {
	// the parser panics on some malformed streams
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("failed to read pdf: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}
	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, perr := page.GetPlainText(nil)
		if perr != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer doc.Close()

	// content is the raw document.xml body; entities survive tag stripping
	return html.UnescapeString(xmlTags.ReplaceAllString(doc.Editable().GetContent(), " ")), nil
}
