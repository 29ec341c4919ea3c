// Package explaining renders human-readable explanations for a tailoring
// run. Every string is built from a fixed template slot-filled with matcher
// and rewriter output, so every claim traces back to a concrete matched
// token. Same inputs always produce the same text.
package explaining

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Match-score bands for the strategy template
const (
	strongMatchPercent   = 70
	moderateMatchPercent = 40

	// DefaultTopSkills is how many skills the strategy string names
	DefaultTopSkills = 3
)

// Strategy templates. The tone is a career mentor, not a machine: specific,
// honest about gaps, no buzzwords.
const (
	strongTemplate = "Great news! Your CV matches %d%% of the required skills. " +
		"We focused on making your strongest matches (%s) more visible to recruiters who scan quickly."
	moderateTemplate = "Your CV covers %d%% of what %s is looking for. " +
		"We highlighted your relevant experience with %s. " +
		"You might want to think about how to address %s if you have related experience."
	weakTemplate = "Honest assessment: your CV matches %d%% of the required skills. " +
		"We made the most of what you have (%s), but there are gaps in %s. " +
		"Consider whether this role is the right fit, or if you can bridge these gaps."
	noRequiredTemplate = "The job posting didn't list specific required skills, so we focused on " +
		"general improvements and making your experience clearer."
)

// Generator builds Explanations records. Stateless and deterministic.
type Generator struct {
	norm *skills.Normalizer
	topN int
}

// New builds a Generator naming up to topN skills in the strategy string;
// topN below 1 falls back to DefaultTopSkills
func New(norm *skills.Normalizer, topN int) *Generator {
	if topN < 1 {
		topN = DefaultTopSkills
	}
	return &Generator{norm: norm, topN: topN}
}

// Explain renders the full explanation record for one run
func (g *Generator) Explain(jd *types.JobDescription, summary types.MatchSummary, suggestions []types.Suggestion) types.Explanations {
	return types.Explanations{
		Strategy:       g.strategy(jd, summary, suggestions),
		SectionChanges: sectionChanges(suggestions),
		KeyPoints:      g.keyPoints(jd, summary, suggestions),
	}
}

// strategy picks a template by match band and fills it with the skills that
// drove the most suggestions
func (g *Generator) strategy(jd *types.JobDescription, summary types.MatchSummary, suggestions []types.Suggestion) string {
	if len(jd.RequiredSkills) == 0 {
		return noRequiredTemplate
	}

	top := formatSkillList(g.topSkills(summary.MatchedSkills, suggestions))
	if top == "" {
		top = "your relevant skills"
	}
	gaps := formatSkillList(firstN(summary.MissingSkills, g.topN))
	if gaps == "" {
		gaps = "some areas"
	}
	company := jd.Company
	if company == "" {
		company = "this company"
	}

	switch {
	case summary.MatchScore >= strongMatchPercent:
		return fmt.Sprintf(strongTemplate, summary.MatchScore, top)
	case summary.MatchScore >= moderateMatchPercent:
		return fmt.Sprintf(moderateTemplate, summary.MatchScore, company, top, gaps)
	default:
		return fmt.Sprintf(weakTemplate, summary.MatchScore, top, gaps)
	}
}

// topSkills ranks the matched skills by how many suggestions cite them,
// most-cited first, ties keeping match order, and returns the first topN
func (g *Generator) topSkills(matched []string, suggestions []types.Suggestion) []string {
	if len(matched) == 0 {
		return nil
	}

	counts := make([]int, len(matched))
	for i, skill := range matched {
		canonical := g.norm.Canonical(skill)
		for _, s := range suggestions {
			if strings.Contains(strings.ToLower(s.Reason), canonical) {
				counts[i]++
			}
		}
	}

	order := make([]int, len(matched))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	out := make([]string, 0, g.topN)
	for _, idx := range order {
		out = append(out, matched[idx])
		if len(out) == g.topN {
			break
		}
	}
	return out
}

// keyPoints renders the quick-read bullet list for the result
func (g *Generator) keyPoints(jd *types.JobDescription, summary types.MatchSummary, suggestions []types.Suggestion) []string {
	matchedRequired := g.matchedRequired(jd, summary)

	points := []string{
		fmt.Sprintf("Your CV matches %d%% of required skills", summary.MatchScore),
	}
	if len(matchedRequired) > 0 {
		points = append(points, "Strong match on: "+strings.Join(firstN(matchedRequired, 3), ", "))
	}
	if len(summary.MissingSkills) > 0 {
		points = append(points, "Gaps to consider: "+strings.Join(firstN(summary.MissingSkills, 3), ", "))
	}
	if len(suggestions) > 0 {
		points = append(points, fmt.Sprintf("We suggest %d improvement(s) to your bullet points", len(suggestions)))
	} else {
		points = append(points, "No major changes needed - your CV is well-written")
	}
	if len(matchedRequired) > 0 {
		points = append(points, "Skills reordered to show best matches first")
	}
	return points
}

// matchedRequired filters the summary's matched skills down to the ones the
// posting requires, preserving order
func (g *Generator) matchedRequired(jd *types.JobDescription, summary types.MatchSummary) []string {
	var out []string
	for _, skill := range summary.MatchedSkills {
		for _, required := range jd.RequiredSkills {
			if g.norm.Match(skill, required) {
				out = append(out, skill)
				break
			}
		}
	}
	return out
}

// sectionChanges summarizes the applied suggestions per section, in first
// appearance order. Question-bearing proposals are excluded; they changed
// nothing.
func sectionChanges(suggestions []types.Suggestion) []types.SectionChange {
	type tally struct {
		reorders int
		rewrites int
		summary  int
		skills   int
	}

	var order []string
	tallies := make(map[string]*tally)
	for i := range suggestions {
		s := &suggestions[i]
		if !s.Applied() {
			continue
		}
		key := s.Section.String()
		counts, ok := tallies[key]
		if !ok {
			counts = &tally{}
			tallies[key] = counts
			order = append(order, key)
		}
		switch s.Kind {
		case types.ChangeReorder:
			counts.reorders++
		case types.ChangeBulletRewrite:
			counts.rewrites++
		case types.ChangeSummaryRewrite:
			counts.summary++
		case types.ChangeSkillReorder:
			counts.skills++
		}
	}

	var out []types.SectionChange
	for _, key := range order {
		counts := tallies[key]
		var parts []string
		if counts.skills > 0 {
			parts = append(parts, "Reordered your skills list to lead with the best matches")
		}
		if counts.reorders > 0 {
			parts = append(parts, "Moved the most relevant bullet points to the top")
		}
		if counts.rewrites > 0 {
			parts = append(parts, fmt.Sprintf("Strengthened %d bullet point(s)", counts.rewrites))
		}
		if counts.summary > 0 {
			parts = append(parts, "Reordered your summary to lead with relevant experience")
		}
		out = append(out, types.SectionChange{Section: key, Text: strings.Join(parts, "; ")})
	}
	return out
}

// DiffSuggestions fills in the word-level diff on each suggestion that
// rewrites existing text. Reorders keep the same words, and insertions
// awaiting confirmation have no before text, so neither is diffed.
func DiffSuggestions(suggestions []types.Suggestion) {
	for i := range suggestions {
		s := &suggestions[i]
		if s.Kind != types.ChangeBulletRewrite && s.Kind != types.ChangeSummaryRewrite {
			continue
		}
		if s.Before == "" || s.After == "" || s.Before == s.After {
			continue
		}
		s.Diff = WordDiff(s.Before, s.After)
	}
}

// WordDiff describes the word-level difference between two texts, for the
// "why?" view on a single suggestion
func WordDiff(original, rewritten string) string {
	originalWords := wordSet(original)
	rewrittenWords := wordSet(rewritten)

	var added, removed []string
	for word := range rewrittenWords {
		if !originalWords[word] {
			added = append(added, word)
		}
	}
	for word := range originalWords {
		if !rewrittenWords[word] {
			removed = append(removed, word)
		}
	}
	sort.Strings(added)
	sort.Strings(removed)

	var parts []string
	if len(added) > 0 {
		parts = append(parts, "Added: "+strings.Join(added, ", "))
	}
	if len(removed) > 0 {
		parts = append(parts, "Removed: "+strings.Join(removed, ", "))
	}
	if len(parts) == 0 {
		return "Minor wording adjustment (no significant word changes)"
	}
	return strings.Join(parts, "; ")
}

func wordSet(text string) map[string]bool {
	out := make(map[string]bool)
	for _, word := range strings.Fields(strings.ToLower(text)) {
		out[word] = true
	}
	return out
}

// formatSkillList joins skills for prose: "A", "A and B", or "A, B, and C"
func formatSkillList(skills []string) string {
	switch len(skills) {
	case 0:
		return ""
	case 1:
		return skills[0]
	case 2:
		return skills[0] + " and " + skills[1]
	default:
		return strings.Join(skills[:len(skills)-1], ", ") + ", and " + skills[len(skills)-1]
	}
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
