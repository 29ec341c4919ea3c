// Package requirements extracts structured requirements from raw job-posting
// text: required and preferred skills, responsibilities, qualifications, and
// culture signals. Extraction is best-effort; an empty result set is valid,
// never an error.
package requirements

import (
	"regexp"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

// Extractor parses job-posting text against the shared marker vocabulary.
// It is stateless and safe for concurrent use.
type Extractor struct {
	tables *vocab.Tables
}

// New builds an Extractor over the given vocabulary tables
func New(tables *vocab.Tables) *Extractor {
	return &Extractor{tables: tables}
}

var (
	blankRuns     = regexp.MustCompile(`\n{3,}`)
	bulletLine    = regexp.MustCompile(`^\s*[-•*]\s*(.+)$`)
	bulletChars   = strings.NewReplacer("▪", "•", "◦", "•", "‣", "•", "⁃", "•", "►", "•")
	skillPrefixes = regexp.MustCompile(`(?i)^(?:experience\s+(?:with|in)|knowledge\s+of|proficiency\s+(?:with|in)|familiarity\s+with)\s*`)

	labeledTitle   = regexp.MustCompile(`(?i)^(?:position|role|job\s*title|title)\s*:\s*(.+)$`)
	labeledCompany = regexp.MustCompile(`(?i)^(?:company|employer|organization)\s*:\s*(.+)$`)
	aboutCompany   = regexp.MustCompile(`(?i)^about\s+(.+?)(?:\s*[-|:]|$)`)
	hiringCompany  = regexp.MustCompile(`([A-Z][A-Za-z0-9\s&]+?)\s+(?:is\s+)?(?:looking|hiring|seeking)`)
	titleShape     = regexp.MustCompile(`(?i)(?:senior|junior|lead|staff|principal|associate)?\s*` +
		`(?:software|frontend|backend|full\s*stack|data|devops|ml|ai|cloud|platform)?\s*` +
		`(?:engineer|developer|architect|scientist|analyst|manager|designer)`)

	degreePattern = regexp.MustCompile(`(?i)\b(?:bachelor'?s?|master'?s?|ph\.?d\.?|b\.?s\.?|m\.?s\.?|b\.?a\.?|m\.?b\.?a\.?)\b(?:\s+(?:degree\s+)?(?:in|of)\s+\w[\w\s]*)?`)
	yearsPattern  = regexp.MustCompile(`(?i)(\d+)\+?\s*(?:years?|yrs?)\s*(?:of\s+)?(?:experience|exp)?`)
	certPatterns  = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:aws|azure|gcp|google)\s+certifi(?:ed|cation)`),
		regexp.MustCompile(`(?i)pmp\s+certifi(?:ed|cation)`),
		regexp.MustCompile(`(?i)scrum\s+(?:master\s+)?certifi(?:ed|cation)`),
		regexp.MustCompile(`(?i)\bcissp\b`),
		regexp.MustCompile(`(?i)\bcka\b|\bckad\b`),
	}
)

// sectionClass tags a run of posting lines by the header that opened it
type sectionClass int

const (
	classNone sectionClass = iota
	classRequired
	classPreferred
	classResponsibilities
	classSkip
)

// Parse extracts a JobDescription from raw posting text. The second return
// value lists non-fatal issues; the only fatal condition is empty input.
// RawText is retained verbatim for audit.
func (e *Extractor) Parse(raw string) (*types.JobDescription, []error, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil, &EmptyInputError{Message: "job posting text is empty"}
	}

	text := cleanText(raw)
	lines := strings.Split(text, "\n")

	jd := &types.JobDescription{
		RawText: raw,
		Title:   e.extractTitle(lines),
		Company: e.extractCompany(lines),
	}

	classified := e.classifyLines(lines)

	required, preferred := e.extractSkills(classified)
	jd.RequiredSkills = required
	jd.PreferredSkills = preferred

	jd.Responsibilities = e.extractResponsibilities(classified)
	jd.Qualifications = extractQualifications(text)
	jd.ImplicitExpectations = e.detectExpectations(text)

	var issues []error
	if len(required) == 0 && len(preferred) == 0 {
		issues = append(issues, &NoSkillsFoundError{})
	}
	return jd, issues, nil
}

type classifiedLine struct {
	text  string
	class sectionClass
}

// classifyLines walks the posting once, tagging each content line with the
// class of the most recent section header above it
func (e *Extractor) classifyLines(lines []string) []classifiedLine {
	out := make([]classifiedLine, 0, len(lines))
	current := classNone

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		if class, ok := e.headerClass(line); ok {
			current = class
			continue
		}
		out = append(out, classifiedLine{text: line, class: current})
	}
	return out
}

// headerClass matches a line alone on its own row against the posting
// header vocabularies, tolerating trailing punctuation
func (e *Extractor) headerClass(line string) (sectionClass, bool) {
	normalized := strings.ToLower(strings.TrimSpace(line))
	normalized = strings.TrimRight(normalized, ":;.")
	normalized = strings.Join(strings.Fields(normalized), " ")
	if normalized == "" || len(normalized) > 40 {
		return classNone, false
	}

	groups := []struct {
		phrases []string
		class   sectionClass
	}{
		{e.tables.RequiredHeaders, classRequired},
		{e.tables.PreferredHeaders, classPreferred},
		{e.tables.ResponsibilityHeaders, classResponsibilities},
		{e.tables.SkipHeaders, classSkip},
	}
	for _, g := range groups {
		for _, phrase := range g.phrases {
			if normalized == phrase {
				return g.class, true
			}
		}
	}
	return classNone, false
}

// extractSkills pulls required and preferred skills from the classified
// lines. Lines under a Required header take that class wholesale; under a
// Preferred header a required marker phrase still wins. Elsewhere an inline
// marker decides, and a skill with no proximate marker defaults to required.
func (e *Extractor) extractSkills(lines []classifiedLine) (required, preferred []string) {
	var req, pref []string

	for _, cl := range lines {
		switch cl.class {
		case classSkip:
			continue
		case classRequired:
			req = append(req, e.skillsInLine(cl.text, true)...)
		case classPreferred:
			// An explicit required marker outranks the section class
			if e.hasMarker(cl.text, e.tables.RequiredInline) {
				req = append(req, e.skillsInLine(cl.text, true)...)
			} else {
				pref = append(pref, e.skillsInLine(cl.text, true)...)
			}
		default:
			found := e.skillsInLine(cl.text, false)
			if len(found) == 0 {
				continue
			}
			switch {
			case e.hasMarker(cl.text, e.tables.RequiredInline):
				req = append(req, found...)
			case e.hasMarker(cl.text, e.tables.PreferredInline):
				pref = append(pref, found...)
			default:
				req = append(req, found...)
			}
		}
	}

	required = dedupe(req)
	preferred = dedupe(pref)

	// A skill marked required anywhere outranks a preferred mention
	seen := make(map[string]bool, len(required))
	for _, skill := range required {
		seen[strings.ToLower(skill)] = true
	}
	kept := preferred[:0]
	for _, skill := range preferred {
		if !seen[strings.ToLower(skill)] {
			kept = append(kept, skill)
		}
	}
	preferred = kept

	return required, preferred
}

// skillsInLine finds skill tokens in one line: known lexicon entries first,
// then, inside an explicit skill section, the cleaned bullet text itself when
// it is short enough to be a skill name we simply do not know
func (e *Extractor) skillsInLine(line string, allowFallback bool) []string {
	var found []string
	lower := strings.ToLower(line)

	for _, skill := range e.tables.KnownSkills {
		if containsWord(lower, skill) {
			found = append(found, skill)
		}
	}
	if len(found) > 0 || !allowFallback {
		return found
	}

	if m := bulletLine.FindStringSubmatch(line); m != nil {
		candidate := strings.TrimSpace(skillPrefixes.ReplaceAllString(m[1], ""))
		if len(candidate) >= 2 && len(candidate) < 50 {
			found = append(found, candidate)
		}
	}
	return found
}

// hasMarker reports whether any marker phrase appears un-negated in the
// line ("not required" does not count as a required marker).
func (e *Extractor) hasMarker(line string, markers []string) bool {
	lower := strings.ToLower(line)
	for _, marker := range markers {
		if strings.Contains(lower, marker) && !strings.Contains(lower, "not "+marker) {
			return true
		}
	}
	return false
}

// extractResponsibilities takes bullets under a responsibilities header
// first, then falls back to bullets opening with a curated action verb
func (e *Extractor) extractResponsibilities(lines []classifiedLine) []string {
	const limit = 10
	var out []string

	for _, cl := range lines {
		if cl.class != classResponsibilities {
			continue
		}
		if m := bulletLine.FindStringSubmatch(cl.text); m != nil {
			if item := strings.TrimSpace(m[1]); len(item) > 10 {
				out = append(out, item)
			}
		} else if len(cl.text) > 20 {
			out = append(out, cl.text)
		}
	}

	if len(out) == 0 {
		for _, cl := range lines {
			if cl.class == classSkip {
				continue
			}
			m := bulletLine.FindStringSubmatch(cl.text)
			if m == nil {
				continue
			}
			item := strings.TrimSpace(m[1])
			if e.startsWithActionVerb(item) {
				out = append(out, item)
			}
		}
	}

	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

func (e *Extractor) startsWithActionVerb(item string) bool {
	fields := strings.Fields(strings.ToLower(item))
	if len(fields) == 0 {
		return false
	}
	first := strings.Trim(fields[0], ".,;:")
	for _, verb := range e.tables.ActionVerbs {
		if first == verb || first == verb+"s" || first == verb+"ing" {
			return true
		}
	}
	return false
}

// extractQualifications collects degree, years-of-experience, and
// certification mentions, capped at 10
func extractQualifications(text string) []string {
	var quals []string

	for _, m := range degreePattern.FindAllString(text, -1) {
		if q := strings.TrimSpace(m); q != "" {
			quals = append(quals, q)
		}
	}
	for _, m := range yearsPattern.FindAllStringSubmatch(text, -1) {
		quals = append(quals, m[1]+"+ years experience")
	}
	for _, re := range certPatterns {
		if m := re.FindString(text); m != "" {
			quals = append(quals, m)
		}
	}

	quals = dedupe(quals)
	if len(quals) > 10 {
		quals = quals[:10]
	}
	return quals
}

// detectExpectations maps culture-signal phrases to plain-language
// expectations, deduplicated in table order
func (e *Extractor) detectExpectations(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	seen := make(map[string]bool)

	for _, exp := range e.tables.Expectations {
		if strings.Contains(lower, exp.Phrase) && !seen[exp.Meaning] {
			seen[exp.Meaning] = true
			out = append(out, exp.Meaning)
		}
	}
	return out
}

func (e *Extractor) extractTitle(lines []string) string {
	limit := 10
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if m := labeledTitle.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	headLimit := 5
	if len(lines) < headLimit {
		headLimit = len(lines)
	}
	for _, raw := range lines[:headLimit] {
		line := strings.TrimSpace(raw)
		if len(line) < 5 || len(line) > 80 {
			continue
		}
		lower := strings.ToLower(line)
		if strings.HasPrefix(lower, "about") || strings.HasPrefix(lower, "join") || strings.HasPrefix(lower, "at ") {
			continue
		}
		if _, ok := e.headerClass(line); ok {
			continue
		}
		if titleShape.MatchString(line) {
			return line
		}
		if words := len(strings.Fields(line)); words >= 2 && words <= 8 {
			return line
		}
	}
	return ""
}

func (e *Extractor) extractCompany(lines []string) string {
	limit := 15
	if len(lines) < limit {
		limit = len(lines)
	}
	for _, line := range lines[:limit] {
		if m := labeledCompany.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	aboutLimit := 20
	if len(lines) < aboutLimit {
		aboutLimit = len(lines)
	}
	for _, line := range lines[:aboutLimit] {
		if m := aboutCompany.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			company := strings.TrimSpace(m[1])
			switch strings.ToLower(company) {
			case "the role", "this role", "the position", "us", "me":
				continue
			}
			return company
		}
	}

	// Match per line so the capture group cannot run across line breaks
	for _, line := range lines[:aboutLimit] {
		if m := hiringCompany.FindStringSubmatch(strings.TrimSpace(line)); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// containsWord reports whether phrase appears in lower-cased text on word
// boundaries
func containsWord(lower, phrase string) bool {
	idx := 0
	for {
		pos := strings.Index(lower[idx:], phrase)
		if pos < 0 {
			return false
		}
		start := idx + pos
		end := start + len(phrase)
		beforeOK := start == 0 || !isWordChar(lower[start-1])
		afterOK := end == len(lower) || !isWordChar(lower[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isWordChar(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= '0' && b <= '9' || b == '+' || b == '#'
}

func dedupe(items []string) []string {
	out := make([]string, 0, len(items))
	seen := make(map[string]bool, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		key := strings.ToLower(item)
		if len(key) < 2 || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, item)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func cleanText(raw string) string {
	text := strings.ReplaceAll(raw, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = blankRuns.ReplaceAllString(text, "\n\n")
	text = bulletChars.Replace(text)
	return strings.TrimSpace(text)
}
