package ingestion

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/nguyenthenguyen/docx"
)

var (
	paragraphClose = regexp.MustCompile(`</w:p>`)
	xmlTag         = regexp.MustCompile(`<[^>]+>`)

	xmlEntities = strings.NewReplacer(
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
		"&quot;", `"`,
		"&apos;", "'",
	)
)

func extractDocx(content []byte) (string, error) {
	reader := bytes.NewReader(content)
	doc, err := docx.ReadDocxFromMemory(reader, int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns the raw document XML; paragraph closes become line
	// breaks and the remaining markup is stripped
	raw := doc.Editable().GetContent()
	raw = paragraphClose.ReplaceAllString(raw, "\n")
	raw = xmlTag.ReplaceAllString(raw, "")
	return xmlEntities.Replace(raw), nil
}
