package types

import "fmt"

// ChangeKind classifies a suggestion by the operation that produced it
type ChangeKind string

// Suggestion change kinds
const (
	ChangeReorder        ChangeKind = "reorder"
	ChangeBulletRewrite  ChangeKind = "bullet_rewrite"
	ChangeSummaryRewrite ChangeKind = "summary_rewrite"
	ChangeSkillReorder   ChangeKind = "skill_reorder"
)

// SectionRef identifies a section within a profile by kind and index.
// Index is the position within that kind's slice; it is -1 for
// profile-level targets (the skills list, the summary).
type SectionRef struct {
	Kind  SectionKind `json:"kind"`
	Index int         `json:"index"`
}

// String renders the reference in a stable human-readable form
func (r SectionRef) String() string {
	if r.Index < 0 {
		return string(r.Kind)
	}
	return fmt.Sprintf("%s[%d]", r.Kind, r.Index)
}

// Section kinds used only as suggestion targets
const (
	SectionSkillsList SectionKind = "skills"
	SectionSummary    SectionKind = "summary"
)

// Suggestion is a proposed change to the profile. Suggestions never
// mutate the profile directly; acceptance belongs to the caller. A
// non-empty Question marks a change that needs user confirmation before
// it may be applied (skill injection).
type Suggestion struct {
	Section  SectionRef `json:"section"`
	Kind     ChangeKind `json:"kind"`
	Before   string     `json:"before"`
	After    string     `json:"after"`
	Reason   string     `json:"reason"`
	Diff     string     `json:"diff,omitempty"`
	Question string     `json:"question,omitempty"`
}

// Applied reports whether the suggestion was applied to the tailored
// draft. Suggestions carrying a confirmatory question are never applied.
func (s *Suggestion) Applied() bool {
	return s.Question == ""
}
