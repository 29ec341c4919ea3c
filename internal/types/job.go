package types

// JobDescription represents a structured job posting extracted from raw
// text. Immutable once extracted; RawText is retained verbatim for audit.
type JobDescription struct {
	Title                string   `json:"title,omitempty"`
	Company              string   `json:"company,omitempty"`
	RawText              string   `json:"raw_text"`
	RequiredSkills       []string `json:"required_skills,omitempty"`
	PreferredSkills      []string `json:"preferred_skills,omitempty"`
	Responsibilities     []string `json:"responsibilities,omitempty"`
	Qualifications       []string `json:"qualifications,omitempty"`
	ImplicitExpectations []string `json:"implicit_expectations,omitempty"`
}

// MatchSummary is the posting-level result of matching a profile against
// a job description. MatchScore is an integer percentage and explicitly
// approximate: matched required skills over total required skills.
type MatchSummary struct {
	MatchedSkills []string `json:"matched_skills,omitempty"`
	MissingSkills []string `json:"missing_skills,omitempty"`
	ExtraSkills   []string `json:"extra_skills,omitempty"`
	MatchScore    int      `json:"match_score"`
}
