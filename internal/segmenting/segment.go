// Package segmenting splits raw résumé text into typed sections, producing
// the structured profile the rest of the pipeline works on. Unrecognized
// headings are kept as unclassified sections so no user content is lost.
package segmenting

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

// Segmenter parses raw résumé text against the shared heading vocabulary.
// It is stateless and safe for concurrent use.
type Segmenter struct {
	tables *vocab.Tables
}

// New builds a Segmenter over the given vocabulary tables
func New(tables *vocab.Tables) *Segmenter {
	return &Segmenter{tables: tables}
}

var (
	pageNumberLine = regexp.MustCompile(`\n\s*(?:Page\s*)?\d+\s*(?:of\s*\d+)?\s*\n`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)
	categoryLabel  = regexp.MustCompile(`[A-Za-z ]+:`)
	skillSplit     = regexp.MustCompile(`[,|\n;]`)
)

// block is a run of lines under one heading. Kind "" is the leading text
// before any recognized heading.
type block struct {
	kind    string
	heading string
	lines   []string
}

// Parse splits raw résumé text into a UserProfile. The second return value
// lists non-fatal issues found along the way (unrecognized headings,
// ambiguous dates, missing skills); the profile is still complete. The only
// fatal condition is empty input.
func (s *Segmenter) Parse(raw string) (*types.UserProfile, []error, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil, &EmptyInputError{Message: "résumé text is empty"}
	}

	text := cleanText(raw)
	lines := strings.Split(text, "\n")

	profile := &types.UserProfile{Contact: s.extractContact(lines)}

	blocks, issues := s.splitBlocks(lines)
	byKind := make(map[string][]string)
	var lead []string
	var unclassified []block

	for _, b := range blocks {
		switch b.kind {
		case "":
			lead = append(lead, b.lines...)
		case "unclassified":
			unclassified = append(unclassified, b)
		default:
			byKind[b.kind] = append(byKind[b.kind], b.lines...)
		}
	}

	var entryIssues []error
	profile.Experience, entryIssues = s.parseEntries(types.SectionExperience, byKind["experience"])
	issues = append(issues, entryIssues...)
	profile.Education, entryIssues = s.parseEntries(types.SectionEducation, byKind["education"])
	issues = append(issues, entryIssues...)
	profile.Projects, entryIssues = s.parseEntries(types.SectionProjects, byKind["projects"])
	issues = append(issues, entryIssues...)

	profile.Skills = parseSkills(byKind["skills"])
	if len(profile.Skills) == 0 {
		issues = append(issues, &NoSkillsFoundError{})
	}

	profile.Summary = joinProse(byKind["summary"])
	if profile.Summary == "" {
		profile.Summary = s.leadSummary(lead, profile.Contact.Name)
	}

	for _, b := range unclassified {
		section := types.CVSection{
			Kind:  types.SectionUnclassified,
			Title: strings.TrimRight(strings.TrimSpace(b.heading), ":"),
		}
		for _, line := range b.lines {
			point := strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
			if point != "" {
				section.Points = append(section.Points, point)
			}
		}
		profile.Unclassified = append(profile.Unclassified, section)
	}

	return profile, issues, nil
}

// splitBlocks walks the lines once, starting a new block at each heading.
// The first occurrence of a recognized kind wins; repeats of the same kind
// append to it. Heading-shaped lines that match nothing become unclassified
// blocks and are reported.
func (s *Segmenter) splitBlocks(lines []string) ([]block, []error) {
	var blocks []block
	var issues []error

	current := block{}
	seenHeading := false

	for _, raw := range lines {
		line := strings.TrimSpace(raw)

		if kind, ok := s.headingKind(line); ok {
			blocks = append(blocks, current)
			current = block{kind: kind, heading: line}
			seenHeading = true
			continue
		}

		if looksLikeHeading(line, seenHeading) {
			issues = append(issues, &UnrecognizedSectionError{Heading: strings.TrimRight(line, ":")})
			blocks = append(blocks, current)
			current = block{kind: "unclassified", heading: line}
			seenHeading = true
			continue
		}

		if line != "" {
			current.lines = append(current.lines, line)
		}
	}
	blocks = append(blocks, current)

	return blocks, issues
}

// headingKind matches a line against the heading synonym table. Matching is
// case-insensitive and tolerates trailing punctuation.
func (s *Segmenter) headingKind(line string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(line))
	normalized = strings.TrimRight(normalized, ":;.")
	normalized = strings.Join(strings.Fields(normalized), " ")
	if normalized == "" {
		return "", false
	}

	for _, group := range s.tables.Headings {
		for _, synonym := range group.Synonyms {
			if normalized == synonym {
				return group.Kind, true
			}
		}
	}
	return "", false
}

// looksLikeHeading flags a heading-shaped line whose text matched no known
// synonym. All-caps lines only count once a real heading has been seen, so a
// capitalized name at the top is not mistaken for a section.
func looksLikeHeading(line string, seenHeading bool) bool {
	if line == "" || len(line) > 40 || bulletMarker.MatchString(line) {
		return false
	}
	if len(strings.Fields(line)) > 4 || dateRangePattern.MatchString(line) {
		return false
	}

	if strings.HasSuffix(line, ":") {
		return true
	}
	if !seenHeading {
		return false
	}
	hasLetter := strings.IndexFunc(line, func(r rune) bool {
		return r >= 'A' && r <= 'Z' || r >= 'a' && r <= 'z'
	}) >= 0
	return hasLetter && line == strings.ToUpper(line)
}

// leadSummary turns leading text before the first heading into a summary,
// skipping the name line and contact lines
func (s *Segmenter) leadSummary(lead []string, name string) string {
	var kept []string
	for _, line := range lead {
		if line == name || isContactLine(line) {
			continue
		}
		kept = append(kept, line)
	}
	return joinProse(kept)
}

// joinProse joins section lines into a single paragraph, dropping bullet
// markers
func joinProse(lines []string) string {
	var kept []string
	for _, line := range lines {
		line = strings.TrimSpace(bulletMarker.ReplaceAllString(line, ""))
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, " ")
}

// parseSkills flattens a skills section into a deduplicated list. Handles
// comma lists, pipe-separated category rows, and bulleted lines.
func parseSkills(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}

	stripped := make([]string, len(lines))
	for i, line := range lines {
		stripped[i] = bulletMarker.ReplaceAllString(line, " ")
	}
	text := strings.Join(stripped, "\n")
	text = categoryLabel.ReplaceAllString(text, " ")
	text = strings.NewReplacer("•", " ", "▪", " ", "◦", " ", "‣", " ", "⁃", " ", "*", " ").Replace(text)

	var skills []string
	seen := make(map[string]bool)
	for _, part := range skillSplit.Split(text, -1) {
		skill := strings.TrimSpace(part)
		if len(skill) < 2 || len(skill) > 50 {
			continue
		}
		lower := strings.ToLower(skill)
		switch lower {
		case "skills", "tools", "technologies", "languages":
			continue
		}
		if seen[lower] {
			continue
		}
		seen[lower] = true
		skills = append(skills, skill)
	}
	return skills
}

func cleanText(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = pageNumberLine.ReplaceAllString(text, "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")

	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
