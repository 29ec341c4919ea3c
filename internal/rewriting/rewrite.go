// Package rewriting produces a tailored draft of an annotated profile. All
// changes are conservative: reordering within existing content and verb
// substitution from a closed vocabulary. Nothing is deleted and no skill the
// profile does not already hold is ever written into the draft; skill
// injection is only ever surfaced as a question-bearing suggestion.
package rewriting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

// Options toggles the rewrite operation classes individually
type Options struct {
	// BulletRewrite enables weak-verb substitution in bullet points
	BulletRewrite bool
	// InjectionPrompts enables question-bearing skill injection
	// suggestions; they are never applied to the draft
	InjectionPrompts bool
}

// Rewriter turns an annotated profile into a tailored draft plus the
// suggestions behind every change. Stateless and deterministic.
type Rewriter struct {
	tables *vocab.Tables
	norm   *skills.Normalizer
	opts   Options
}

// New builds a Rewriter over the shared vocabulary and normalizer
func New(tables *vocab.Tables, norm *skills.Normalizer, opts Options) *Rewriter {
	return &Rewriter{tables: tables, norm: norm, opts: opts}
}

// Rewrite returns a tailored copy of the annotated profile and the ordered
// suggestion list. The input profile is never mutated. Suggestions carrying
// a question are proposals only; the draft does not include them.
func (r *Rewriter) Rewrite(annotated *types.UserProfile, jd *types.JobDescription) (*types.UserProfile, []types.Suggestion) {
	draft := annotated.Clone()
	var suggestions []types.Suggestion

	if s, ok := r.reorderSkills(draft, jd); ok {
		suggestions = append(suggestions, s)
	}

	injectable := r.injectableSkills(annotated, jd)
	for i := range draft.Experience {
		suggestions = append(suggestions, r.rewriteSection(&draft.Experience[i], types.SectionExperience, i, jd, injectable)...)
	}
	for i := range draft.Projects {
		suggestions = append(suggestions, r.rewriteSection(&draft.Projects[i], types.SectionProjects, i, jd, injectable)...)
	}

	if s, ok := r.tailorSummary(draft, jd); ok {
		suggestions = append(suggestions, s)
	}

	return draft, suggestions
}

// reorderSkills stably partitions the skills list into matched-required,
// matched-preferred, and other. Pure permutation; running it on an already
// reordered list is a no-op.
func (r *Rewriter) reorderSkills(draft *types.UserProfile, jd *types.JobDescription) (types.Suggestion, bool) {
	if len(draft.Skills) < 2 {
		return types.Suggestion{}, false
	}

	var required, preferred, other []string
	for _, skill := range draft.Skills {
		switch {
		case r.matchesAny(skill, jd.RequiredSkills):
			required = append(required, skill)
		case r.matchesAny(skill, jd.PreferredSkills):
			preferred = append(preferred, skill)
		default:
			other = append(other, skill)
		}
	}

	reordered := make([]string, 0, len(draft.Skills))
	reordered = append(reordered, required...)
	reordered = append(reordered, preferred...)
	reordered = append(reordered, other...)

	if equalStrings(draft.Skills, reordered) {
		return types.Suggestion{}, false
	}

	before := strings.Join(draft.Skills, ", ")
	draft.Skills = reordered

	matched := make([]string, 0, len(required)+len(preferred))
	matched = append(matched, required...)
	matched = append(matched, preferred...)

	return types.Suggestion{
		Section: types.SectionRef{Kind: types.SectionSkillsList, Index: -1},
		Kind:    types.ChangeSkillReorder,
		Before:  before,
		After:   strings.Join(reordered, ", "),
		Reason:  fmt.Sprintf("Moved skills the posting asks for (%s) to the front", strings.Join(firstN(matched, 3), ", ")),
	}, true
}

// tailorSummary re-ranks summary sentences by how many required skills they
// mention, stable on ties. No sentence is added or removed.
func (r *Rewriter) tailorSummary(draft *types.UserProfile, jd *types.JobDescription) (types.Suggestion, bool) {
	sentences := splitSentences(draft.Summary)
	if len(sentences) < 2 {
		return types.Suggestion{}, false
	}

	counts := make([]int, len(sentences))
	for i, sentence := range sentences {
		counts[i] = r.matchCount(sentence, jd.RequiredSkills)
	}

	order := make([]int, len(sentences))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	ranked := make([]string, len(sentences))
	changed := false
	for i, idx := range order {
		ranked[i] = sentences[idx]
		if idx != i {
			changed = true
		}
	}
	if !changed {
		return types.Suggestion{}, false
	}

	before := draft.Summary
	draft.Summary = strings.Join(ranked, " ")

	cited := r.citedSkills(ranked[0], jd.RequiredSkills)
	return types.Suggestion{
		Section: types.SectionRef{Kind: types.SectionSummary, Index: -1},
		Kind:    types.ChangeSummaryRewrite,
		Before:  before,
		After:   draft.Summary,
		Reason:  fmt.Sprintf("Led with the sentence mentioning %s", strings.Join(cited, ", ")),
	}, true
}

// injectableSkills collects the canonical forms of posting skills the
// profile already holds somewhere; only these may ever be proposed for
// injection
func (r *Rewriter) injectableSkills(profile *types.UserProfile, jd *types.JobDescription) map[string]bool {
	out := make(map[string]bool)
	for _, section := range profile.AllSections() {
		for _, skill := range section.Analysis.MatchedSkills {
			out[r.norm.Canonical(skill)] = true
		}
	}
	for _, skill := range profile.Skills {
		if r.matchesAny(skill, jd.RequiredSkills) || r.matchesAny(skill, jd.PreferredSkills) {
			out[r.norm.Canonical(skill)] = true
		}
	}
	return out
}

func (r *Rewriter) matchesAny(skill string, candidates []string) bool {
	for _, candidate := range candidates {
		if r.norm.Match(skill, candidate) {
			return true
		}
	}
	return false
}

// matchCount counts the posting skills mentioned in one piece of text
func (r *Rewriter) matchCount(text string, jdSkills []string) int {
	count := 0
	for _, skill := range jdSkills {
		if r.norm.MentionedIn(text, skill) {
			count++
		}
	}
	return count
}

// citedSkills returns the canonical forms of the posting skills the text
// mentions, deduplicated in posting order
func (r *Rewriter) citedSkills(text string, jdSkills []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, skill := range jdSkills {
		if !r.norm.MentionedIn(text, skill) {
			continue
		}
		canonical := r.norm.Canonical(skill)
		if !seen[canonical] {
			seen[canonical] = true
			out = append(out, canonical)
		}
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
