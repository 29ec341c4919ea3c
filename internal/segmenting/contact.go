package segmenting

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Contact info lives in the first few lines of a résumé. These patterns are
// best-effort; anything missed stays empty and the user can correct it.
var (
	emailPattern    = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern    = regexp.MustCompile(`(?:\+?1[-.\s]?)?(?:\(?\d{3}\)?[-.\s]?)?\d{3}[-.\s]?\d{4}`)
	linkedinPattern = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?linkedin\.com/in/[\w-]+/?`)
	githubPattern   = regexp.MustCompile(`(?i)(?:https?://)?(?:www\.)?github\.com/[\w-]+/?`)
	locationPattern = regexp.MustCompile(`([A-Z][a-z]+(?:\s[A-Z][a-z]+)?)\s*,\s*([A-Z]{2}|[A-Z][a-z]+(?:\s[A-Z][a-z]+)?)(?:\s+\d{5}(?:-\d{4})?)?`)
)

const contactScanLines = 15

// extractContact pulls contact fields and the candidate name from the head
// of the résumé
func (s *Segmenter) extractContact(lines []string) types.ContactInfo {
	head := lines
	if len(head) > contactScanLines {
		head = head[:contactScanLines]
	}
	top := strings.Join(head, "\n")

	contact := types.ContactInfo{
		Email:    emailPattern.FindString(top),
		Phone:    phonePattern.FindString(top),
		LinkedIn: linkedinPattern.FindString(top),
		GitHub:   githubPattern.FindString(top),
	}
	if loc := locationPattern.FindString(top); loc != "" {
		contact.Location = strings.TrimSpace(loc)
	}
	contact.Name = s.extractName(head)
	return contact
}

// extractName finds the first plausible name line: short, mostly letters,
// not a heading and not contact data
func (s *Segmenter) extractName(lines []string) string {
	limit := 5
	if len(lines) < limit {
		limit = len(lines)
	}

	for _, raw := range lines[:limit] {
		line := strings.TrimSpace(raw)
		if line == "" || len(line) > 50 {
			continue
		}

		lower := strings.ToLower(line)
		if strings.Contains(line, "@") || strings.Contains(lower, "http") || strings.Contains(lower, "www.") {
			continue
		}

		digits := 0
		for _, r := range line {
			if r >= '0' && r <= '9' {
				digits++
			}
		}
		if float64(digits)/float64(len(line)) > 0.3 {
			continue
		}

		if _, ok := s.headingKind(line); ok {
			continue
		}

		if words := len(strings.Fields(line)); words >= 1 && words <= 5 {
			return line
		}
	}
	return ""
}

// isContactLine reports whether a line carries only contact data, so the
// summary fallback can skip it
func isContactLine(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(line, "@") || strings.Contains(lower, "http") || strings.Contains(lower, "www.") {
		return true
	}
	stripped := phonePattern.ReplaceAllString(line, "")
	stripped = locationPattern.ReplaceAllString(stripped, "")
	stripped = strings.Trim(stripped, " |,;-–•")
	return stripped == ""
}
