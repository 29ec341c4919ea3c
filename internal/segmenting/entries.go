package segmenting

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

const monthOrSeason = `(?:Jan(?:uary)?|Feb(?:ruary)?|Mar(?:ch)?|Apr(?:il)?|May|Jun(?:e)?|` +
	`Jul(?:y)?|Aug(?:ust)?|Sep(?:tember)?|Oct(?:ober)?|Nov(?:ember)?|Dec(?:ember)?|` +
	`Spring|Summer|Fall|Winter|Q[1-4])`

var (
	// dateRangePattern matches display forms like "Jan 2020 - Present",
	// "2020 - 2022", or "Summer 2021 to now"
	dateRangePattern = regexp.MustCompile(`(?i)(?:` + monthOrSeason + `[\s,]*)?\d{2,4}\s*(?:[-–—]+|to)\s*(?:` + monthOrSeason + `[\s,]*)?(?:\d{2,4}|present|current|now|ongoing)`)

	yearPattern = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)

	bulletMarker = regexp.MustCompile(`^\s*(?:[-•*▪◦‣⁃]|\d+[.)])\s*`)
)

// parseEntries groups section lines into entries. A short non-bullet line
// starts a new entry unless it reads as the org/date line of the current
// one; bullets and long continuation lines attach to the entry in progress.
func (s *Segmenter) parseEntries(kind types.SectionKind, lines []string) ([]types.CVSection, []error) {
	var entries []types.CVSection
	var issues []error
	var current []string

	flush := func() {
		if len(current) == 0 {
			return
		}
		entry, issue := s.parseSingleEntry(kind, current)
		if issue != nil {
			issues = append(issues, issue)
		}
		if entry != nil {
			entries = append(entries, *entry)
		}
		current = nil
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		isBullet := bulletMarker.MatchString(line)
		isDateLine := dateRangePattern.MatchString(line) && len(line) < 30
		isLikelyTitle := !isBullet && !isDateLine && len(line) < 100

		if isLikelyTitle && len(current) > 0 && !looksLikeContinuation(line, current) {
			flush()
		}
		current = append(current, line)
	}
	flush()

	return entries, issues
}

// looksLikeContinuation decides whether a title-like line is really the
// org/date line of the entry being accumulated
func looksLikeContinuation(line string, current []string) bool {
	if len(current) > 2 {
		return false
	}
	for _, prev := range current {
		if bulletMarker.MatchString(prev) {
			return false
		}
	}
	if strings.Contains(line, "|") || dateRangePattern.MatchString(line) {
		return true
	}
	return len(current) == 1 && len(line) < 60
}

func (s *Segmenter) parseSingleEntry(kind types.SectionKind, lines []string) (*types.CVSection, error) {
	title := lines[0]
	var organization, dateRange string
	var issue error

	headerEnd := len(lines)
	if headerEnd > 4 {
		headerEnd = 4
	}

	for _, line := range lines[1:headerEnd] {
		if match := dateRangePattern.FindString(line); match != "" {
			if dateRange == "" {
				dateRange = strings.TrimSpace(match)
			}
			remaining := strings.Replace(line, match, "", 1)
			remaining = strings.Trim(remaining, " |-–—")
			if remaining != "" && organization == "" {
				organization = remaining
			}
			continue
		}

		if strings.Contains(line, "|") {
			for _, part := range strings.Split(line, "|") {
				part = strings.TrimSpace(part)
				if part == "" {
					continue
				}
				if match := dateRangePattern.FindString(part); match != "" {
					if dateRange == "" {
						dateRange = strings.TrimSpace(match)
					}
				} else if organization == "" {
					organization = part
				}
			}
			continue
		}

		if !bulletMarker.MatchString(line) && len(line) < 60 && organization == "" {
			organization = line
		}
	}

	// A year with no parseable range means the dates are there but unclear.
	// Keep the entry, leave the range empty, report it.
	if dateRange == "" {
		for _, line := range lines[1:headerEnd] {
			if yearPattern.MatchString(line) {
				issue = &AmbiguousDateRangeError{EntryTitle: title}
				break
			}
		}
	}

	var points []string
	for _, line := range lines[1:] {
		if line == organization {
			continue
		}
		if dateRange != "" && strings.Contains(line, dateRange) && len(line) < 40 {
			continue
		}

		if bulletMarker.MatchString(line) {
			text := strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
			if text != "" {
				points = append(points, text)
			}
		} else if len(line) > 20 {
			if len(points) > 0 {
				points[len(points)-1] += " " + line
			} else {
				points = append(points, line)
			}
		}
	}

	organization = strings.Trim(organization, " |-–—•")
	if title == "" || title == organization {
		return nil, issue
	}

	return &types.CVSection{
		Kind:         kind,
		Title:        title,
		Organization: organization,
		DateRange:    dateRange,
		Points:       points,
	}, issue
}
