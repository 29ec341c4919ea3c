// Package types provides type definitions for structured data used throughout the cv-tailor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// SectionKind tags a CVSection with the part of the résumé it came from
type SectionKind string

// Recognized section kinds. Sections whose heading matches no known
// synonym are kept under SectionUnclassified so no content is lost.
const (
	SectionExperience   SectionKind = "experience"
	SectionEducation    SectionKind = "education"
	SectionProjects     SectionKind = "projects"
	SectionUnclassified SectionKind = "unclassified"
)

// ContactInfo holds identity fields extracted from the top of a résumé
type ContactInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Location string `json:"location,omitempty"`
}

// SectionAnalysis holds the matcher's annotation for a single section.
// It is empty after parsing and populated exactly once per tailoring run.
type SectionAnalysis struct {
	MatchedSkills  []string `json:"matched_skills,omitempty"`
	RelevanceScore float64  `json:"relevance_score"`
	Explanation    string   `json:"explanation,omitempty"`
	Gaps           []string `json:"gaps,omitempty"`
}

// CVSection represents one entry of a résumé section (a job, a degree,
// a project). Points are order-significant.
type CVSection struct {
	Kind         SectionKind     `json:"kind"`
	Title        string          `json:"title"`
	Organization string          `json:"organization,omitempty"`
	DateRange    string          `json:"date_range,omitempty"`
	Points       []string        `json:"points,omitempty"`
	Analysis     SectionAnalysis `json:"analysis"`
}

// UserProfile represents a structured résumé extracted from raw text.
// The parsed profile is never mutated after parsing; the rewriter works
// on a deep copy.
type UserProfile struct {
	Contact      ContactInfo `json:"contact"`
	Summary      string      `json:"summary,omitempty"`
	Experience   []CVSection `json:"experience,omitempty"`
	Education    []CVSection `json:"education,omitempty"`
	Projects     []CVSection `json:"projects,omitempty"`
	Unclassified []CVSection `json:"unclassified,omitempty"`
	Skills       []string    `json:"skills,omitempty"`
}

// Clone returns a deep copy of the profile. Downstream stages annotate
// and reorder the copy so the parsed original stays intact.
func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}
	out := &UserProfile{
		Contact: p.Contact,
		Summary: p.Summary,
		Skills:  append([]string(nil), p.Skills...),
	}
	out.Experience = cloneSections(p.Experience)
	out.Education = cloneSections(p.Education)
	out.Projects = cloneSections(p.Projects)
	out.Unclassified = cloneSections(p.Unclassified)
	return out
}

// AllSections returns pointers to every section in the profile in
// document order: experience, education, projects, then unclassified.
func (p *UserProfile) AllSections() []*CVSection {
	sections := make([]*CVSection, 0, len(p.Experience)+len(p.Education)+len(p.Projects)+len(p.Unclassified))
	for i := range p.Experience {
		sections = append(sections, &p.Experience[i])
	}
	for i := range p.Education {
		sections = append(sections, &p.Education[i])
	}
	for i := range p.Projects {
		sections = append(sections, &p.Projects[i])
	}
	for i := range p.Unclassified {
		sections = append(sections, &p.Unclassified[i])
	}
	return sections
}

func cloneSections(sections []CVSection) []CVSection {
	if sections == nil {
		return nil
	}
	out := make([]CVSection, len(sections))
	for i, s := range sections {
		out[i] = s
		out[i].Points = append([]string(nil), s.Points...)
		out[i].Analysis.MatchedSkills = append([]string(nil), s.Analysis.MatchedSkills...)
		out[i].Analysis.Gaps = append([]string(nil), s.Analysis.Gaps...)
	}
	return out
}
