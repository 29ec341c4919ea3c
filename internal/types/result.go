package types

// SectionChange pairs a section reference with its changes-made text
type SectionChange struct {
	Section string `json:"section"`
	Text    string `json:"text"`
}

// Explanations explains the tailoring run: one global strategy string
// plus one changes-made string per affected section. All text is built
// from fixed templates slot-filled with matcher and rewriter output.
type Explanations struct {
	Strategy       string          `json:"strategy"`
	SectionChanges []SectionChange `json:"section_changes,omitempty"`
	KeyPoints      []string        `json:"key_points,omitempty"`
}

// TailoredCVResult is the final output of a tailoring run. Constructed
// once at the end of the run and treated as a value afterward. Notices
// carry plain-language descriptions of anything a stage could not
// determine; a failed stage adds a notice instead of aborting the run.
// Summary is nil when matching never ran, so a zero score is always a
// real 0% match.
type TailoredCVResult struct {
	Draft        *UserProfile  `json:"draft,omitempty"`
	Suggestions  []Suggestion  `json:"suggestions,omitempty"`
	Explanations Explanations  `json:"explanations"`
	Summary      *MatchSummary `json:"summary,omitempty"`
	Notices      []string      `json:"notices,omitempty"`
}
