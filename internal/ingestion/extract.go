// Package ingestion turns uploaded documents and job-posting pages into the
// plain text the tailoring core consumes. It handles plain text, Markdown,
// PDF, DOCX, and HTML uploads, plus fetching a posting straight from a URL.
package ingestion

import (
	"path/filepath"
	"regexp"
	"strings"
)

var blankRuns = regexp.MustCompile(`\n{3,}`)

// ExtractText converts an uploaded file to plain text, dispatching on the
// file extension. The result is cleaned but not interpreted; parsing belongs
// to the core.
func ExtractText(filename string, data []byte) (string, error) {
	var (
		text string
		err  error
	)
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".txt", ".md":
		text = string(data)
	case ".pdf":
		text, err = extractPDF(data)
	case ".docx":
		text, err = extractDocx(data)
	case ".html", ".htm":
		text, err = extractHTML(string(data))
	default:
		return "", &UnsupportedFormatError{Filename: filename}
	}
	if err != nil {
		return "", &ExtractionError{Filename: filename, Message: "could not read document", Cause: err}
	}
	return CleanText(text), nil
}

// CleanText normalizes extracted text: LF line endings, trimmed lines, and
// at most one blank line between paragraphs
func CleanText(content string) string {
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}

	content = strings.Join(lines, "\n")
	content = blankRuns.ReplaceAllString(content, "\n\n")
	return strings.TrimSpace(content)
}
