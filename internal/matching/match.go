// Package matching compares a parsed résumé against an extracted job
// description. It annotates every classified section with the skills it
// mentions and a relevance score, and builds a posting-level summary of
// matched, missing, and extra skills. Matching is stateless and
// deterministic: identical inputs always yield identical output.
package matching

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/types"
)

// Relevance score weights. Required skills dominate; preferred skills are a
// bonus signal.
const (
	requiredWeight  = 0.7
	preferredWeight = 0.3

	highRelevance     = 0.3
	moderateRelevance = 0.1

	// maxSectionGaps caps the gap list per section so a sparse résumé
	// against a demanding posting does not drown the user
	maxSectionGaps = 5

	// maxExplainedSkills caps the skills named in a section explanation
	maxExplainedSkills = 4
)

// Matcher annotates profiles against a job description using canonical skill
// comparison. Safe for concurrent use.
type Matcher struct {
	norm *skills.Normalizer
}

// New builds a Matcher over the given normalizer
func New(norm *skills.Normalizer) *Matcher {
	return &Matcher{norm: norm}
}

// Annotate returns a deep copy of profile with every experience, education,
// and projects section's Analysis populated, plus the posting-level match
// summary. The input profile is never mutated.
func (m *Matcher) Annotate(profile *types.UserProfile, jd *types.JobDescription) (*types.UserProfile, types.MatchSummary) {
	annotated := profile.Clone()
	for _, section := range annotated.AllSections() {
		if section.Kind == types.SectionUnclassified {
			continue
		}
		section.Analysis = m.analyzeSection(section, jd)
	}
	return annotated, m.summarize(profile, jd)
}

// analyzeSection finds which posting skills a section mentions, scores its
// relevance, and lists required skills that could plausibly be added
func (m *Matcher) analyzeSection(section *types.CVSection, jd *types.JobDescription) types.SectionAnalysis {
	matchedReq := m.mentionedSkills(section, jd.RequiredSkills)
	matchedPref := m.mentionedSkills(section, jd.PreferredSkills)

	score := requiredWeight*ratio(len(matchedReq), len(jd.RequiredSkills)) +
		preferredWeight*ratio(len(matchedPref), len(jd.PreferredSkills))
	if score > 1 {
		score = 1
	}

	matched := make([]string, 0, len(matchedReq)+len(matchedPref))
	matched = append(matched, matchedReq...)
	matched = append(matched, matchedPref...)
	if len(matched) == 0 {
		matched = nil
	}

	return types.SectionAnalysis{
		MatchedSkills:  matched,
		RelevanceScore: score,
		Gaps:           m.sectionGaps(section, jd.RequiredSkills, matchedReq),
		Explanation:    sectionExplanation(score, matched),
	}
}

// mentionedSkills returns the posting skills the section mentions, in posting
// order so output is stable
func (m *Matcher) mentionedSkills(section *types.CVSection, jdSkills []string) []string {
	var out []string
	for _, skill := range jdSkills {
		if m.mentionedInSection(section, skill) {
			out = append(out, skill)
		}
	}
	return out
}

func (m *Matcher) mentionedInSection(section *types.CVSection, skill string) bool {
	if m.norm.MentionedIn(section.Title, skill) || m.norm.MentionedIn(section.Organization, skill) {
		return true
	}
	for _, point := range section.Points {
		if m.norm.MentionedIn(point, skill) {
			return true
		}
	}
	return false
}

// sectionGaps lists required skills the section does not mention but could
// plausibly hold, capped at maxSectionGaps
func (m *Matcher) sectionGaps(section *types.CVSection, required, matched []string) []string {
	have := make(map[string]bool, len(matched))
	for _, skill := range matched {
		have[m.norm.Canonical(skill)] = true
	}

	var gaps []string
	for _, skill := range required {
		if have[m.norm.Canonical(skill)] {
			continue
		}
		if skillCouldFit(skill, section) {
			gaps = append(gaps, skill)
		}
		if len(gaps) == maxSectionGaps {
			break
		}
	}
	return gaps
}

// summarize builds the posting-level match summary against the whole profile:
// the skills list plus every section's text
func (m *Matcher) summarize(profile *types.UserProfile, jd *types.JobDescription) types.MatchSummary {
	var matched, missing []string
	for _, skill := range jd.RequiredSkills {
		if m.inProfile(profile, skill) {
			matched = append(matched, skill)
		} else {
			missing = append(missing, skill)
		}
	}

	// Score counts required skills only; preferred are appended to the
	// matched list afterwards as a bonus signal
	score := 100
	if len(jd.RequiredSkills) > 0 {
		score = len(matched) * 100 / len(jd.RequiredSkills)
	}

	for _, skill := range jd.PreferredSkills {
		if m.inProfile(profile, skill) {
			matched = append(matched, skill)
		}
	}

	var extra []string
	for _, cvSkill := range profile.Skills {
		if !m.matchesAny(cvSkill, jd.RequiredSkills) && !m.matchesAny(cvSkill, jd.PreferredSkills) {
			extra = append(extra, cvSkill)
		}
	}

	return types.MatchSummary{
		MatchedSkills: matched,
		MissingSkills: missing,
		ExtraSkills:   extra,
		MatchScore:    score,
	}
}

// inProfile reports whether any part of the profile mentions the skill: the
// skills list first, then every section
func (m *Matcher) inProfile(profile *types.UserProfile, skill string) bool {
	if m.matchesAny(skill, profile.Skills) {
		return true
	}
	if m.norm.MentionedIn(profile.Summary, skill) {
		return true
	}
	for _, section := range profile.AllSections() {
		if m.mentionedInSection(section, skill) {
			return true
		}
	}
	return false
}

func (m *Matcher) matchesAny(skill string, candidates []string) bool {
	for _, candidate := range candidates {
		if m.norm.Match(skill, candidate) {
			return true
		}
	}
	return false
}

func ratio(n, d int) float64 {
	if d < 1 {
		d = 1
	}
	return float64(n) / float64(d)
}

func sectionExplanation(score float64, matched []string) string {
	var level string
	switch {
	case score >= highRelevance:
		level = "Highly relevant"
	case score >= moderateRelevance:
		level = "Moderately relevant"
	default:
		level = "Less directly relevant"
	}

	if len(matched) == 0 {
		return level + ". No direct skill matches found."
	}

	listed := matched
	suffix := ""
	if len(listed) > maxExplainedSkills {
		suffix = fmt.Sprintf(" (+%d more)", len(listed)-maxExplainedSkills)
		listed = listed[:maxExplainedSkills]
	}
	return fmt.Sprintf("%s. Mentions: %s%s.", level, strings.Join(listed, ", "), suffix)
}
