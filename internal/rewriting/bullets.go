package rewriting

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/jonathan/cv-tailor/internal/types"
)

// injectionPatterns map a generic term in a bullet to the specific skills
// that could make it explicit. A skill is only proposed when the profile
// already holds it, and the proposal always carries a question.
var injectionPatterns = []struct {
	term       string
	candidates []string
}{
	{"web application", []string{"react", "vue", "angular", "next.js"}},
	{"frontend", []string{"react", "vue", "angular"}},
	{"backend", []string{"node", "python", "java", "go"}},
	{"api", []string{"rest", "graphql"}},
	{"database", []string{"postgresql", "mysql", "mongodb", "redis"}},
	{"cloud", []string{"aws", "gcp", "azure"}},
	{"mobile app", []string{"react native", "flutter", "swift", "kotlin"}},
	{"machine learning", []string{"tensorflow", "pytorch", "sklearn"}},
}

var sentencePattern = regexp.MustCompile(`[^.!?]+[.!?]?`)

// rewriteSection applies the per-section operations in order: bullet
// reordering, weak-verb substitution, then injection proposals
func (r *Rewriter) rewriteSection(section *types.CVSection, kind types.SectionKind, index int, jd *types.JobDescription, injectable map[string]bool) []types.Suggestion {
	ref := types.SectionRef{Kind: kind, Index: index}
	var out []types.Suggestion

	jdSkills := make([]string, 0, len(jd.RequiredSkills)+len(jd.PreferredSkills))
	jdSkills = append(jdSkills, jd.RequiredSkills...)
	jdSkills = append(jdSkills, jd.PreferredSkills...)

	if s, ok := r.reorderPoints(section, ref, jdSkills); ok {
		out = append(out, s)
	}

	if r.opts.BulletRewrite {
		for i, point := range section.Points {
			rewritten, reasons := r.upgradeVerbs(point)
			if rewritten == point {
				continue
			}
			reason := strings.Join(reasons, "; ")
			if cited := r.citedSkills(point, jdSkills); len(cited) > 0 {
				reason += "; bullet mentions " + strings.Join(cited, ", ")
			}
			section.Points[i] = rewritten
			out = append(out, types.Suggestion{
				Section: ref,
				Kind:    types.ChangeBulletRewrite,
				Before:  point,
				After:   rewritten,
				Reason:  reason,
			})
		}
	}

	if r.opts.InjectionPrompts {
		for _, point := range section.Points {
			if s, ok := r.injectSkill(point, ref, injectable); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// reorderPoints stably sorts a section's bullets by how many posting skills
// each mentions, most first. Unmatched bullets keep their relative order.
func (r *Rewriter) reorderPoints(section *types.CVSection, ref types.SectionRef, jdSkills []string) (types.Suggestion, bool) {
	if len(section.Points) < 2 {
		return types.Suggestion{}, false
	}

	counts := make([]int, len(section.Points))
	for i, point := range section.Points {
		counts[i] = r.matchCount(point, jdSkills)
	}

	order := make([]int, len(section.Points))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	reordered := make([]string, len(section.Points))
	changed := false
	for i, idx := range order {
		reordered[i] = section.Points[idx]
		if idx != i {
			changed = true
		}
	}
	if !changed {
		return types.Suggestion{}, false
	}

	before := strings.Join(section.Points, "\n")
	section.Points = reordered

	cited := r.citedSkills(reordered[0], jdSkills)
	return types.Suggestion{
		Section: ref,
		Kind:    types.ChangeReorder,
		Before:  before,
		After:   strings.Join(reordered, "\n"),
		Reason:  fmt.Sprintf("Moved the bullet mentioning %s to the top", strings.Join(cited, ", ")),
	}, true
}

// upgradeVerbs swaps weak verb phrases for their stronger counterparts,
// preserving a leading capital. Bullets already opening with a strong verb
// are left alone.
func (r *Rewriter) upgradeVerbs(point string) (string, []string) {
	if r.startsWithStrongVerb(point) {
		return point, nil
	}

	result := point
	var reasons []string
	for _, swap := range r.tables.VerbSwaps {
		replaced, ok := replaceFold(result, swap.Weak, swap.Strong)
		if !ok {
			continue
		}
		result = replaced
		reasons = append(reasons, fmt.Sprintf("replaced '%s' with '%s'", swap.Weak, swap.Strong))
	}
	return result, reasons
}

func (r *Rewriter) startsWithStrongVerb(point string) bool {
	fields := strings.Fields(strings.ToLower(point))
	if len(fields) == 0 {
		return false
	}
	first := strings.Trim(fields[0], ".,;:")
	for _, verb := range r.tables.StrongVerbs {
		if first == verb {
			return true
		}
	}
	return false
}

// injectSkill proposes making an implicit skill explicit in a bullet. The
// proposal carries a confirmatory question and is never applied to the
// draft; at most one proposal per bullet.
func (r *Rewriter) injectSkill(point string, ref types.SectionRef, injectable map[string]bool) (types.Suggestion, bool) {
	lower := strings.ToLower(point)
	for _, pattern := range injectionPatterns {
		idx := strings.Index(lower, pattern.term)
		if idx < 0 {
			continue
		}
		for _, skill := range pattern.candidates {
			if !injectable[skill] || strings.Contains(lower, skill) {
				continue
			}
			display := titleCase(skill)
			return types.Suggestion{
				Section:  ref,
				Kind:     types.ChangeBulletRewrite,
				Before:   point,
				After:    point[:idx] + display + " " + point[idx:],
				Reason:   fmt.Sprintf("The posting asks for %s and your CV already mentions it elsewhere", skill),
				Question: fmt.Sprintf("Did this work actually involve %s?", display),
			}, true
		}
	}
	return types.Suggestion{}, false
}

// replaceFold replaces every whole-word occurrence of weak with strong,
// case-insensitively, keeping a capital first letter where the original had
// one
func replaceFold(text, weak, strong string) (string, bool) {
	lower := strings.ToLower(text)
	weak = strings.ToLower(weak)

	var b strings.Builder
	idx := 0
	changed := false
	for {
		pos := strings.Index(lower[idx:], weak)
		if pos < 0 {
			break
		}
		start := idx + pos
		end := start + len(weak)
		if !boundedWord(lower, start, end) {
			b.WriteString(text[idx : start+1])
			idx = start + 1
			continue
		}

		b.WriteString(text[idx:start])
		replacement := strong
		if unicode.IsUpper(rune(text[start])) {
			replacement = capitalize(strong)
		}
		b.WriteString(replacement)
		idx = end
		changed = true
	}
	b.WriteString(text[idx:])
	return b.String(), changed
}

// boundedWord reports whether text[start:end] sits on word boundaries, so
// "did" is not swapped inside "candid"
func boundedWord(text string, start, end int) bool {
	if start > 0 && isLetter(text[start-1]) {
		return false
	}
	if end < len(text) && isLetter(text[end]) {
		return false
	}
	return true
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z' || b >= 'A' && b <= 'Z'
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// titleCase capitalizes the first letter of each word for display ("react
// native" to "React Native")
func titleCase(s string) string {
	fields := strings.Fields(s)
	for i, field := range fields {
		fields[i] = capitalize(field)
	}
	return strings.Join(fields, " ")
}

// splitSentences breaks prose into sentences, keeping terminal punctuation
func splitSentences(text string) []string {
	var out []string
	for _, m := range sentencePattern.FindAllString(text, -1) {
		if s := strings.TrimSpace(m); s != "" {
			out = append(out, s)
		}
	}
	return out
}
