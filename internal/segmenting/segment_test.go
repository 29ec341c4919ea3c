package segmenting

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

const sampleCV = `Jane Doe
jane@example.com | (555) 123-4567
San Francisco, CA
Backend engineer with six years of experience building services.

Experience
Software Engineer
Acme Corp | Jan 2020 - Present
- Built backend services using Python
- Worked on deployment pipelines

Data Analyst
Initech | 2017 - 2019
- Analyzed sales data with SQL

Education
B.S. Computer Science
State University | 2013 - 2017

Skills
Python, SQL, Docker

Hobbies:
- Chess
`

func newTestSegmenter() *Segmenter {
	return New(vocab.Default())
}

func TestParseFullResume(t *testing.T) {
	profile, issues, err := newTestSegmenter().Parse(sampleCV)
	require.NoError(t, err)
	require.NotNil(t, profile)

	assert.Equal(t, "Jane Doe", profile.Contact.Name)
	assert.Equal(t, "jane@example.com", profile.Contact.Email)
	assert.Equal(t, "(555) 123-4567", profile.Contact.Phone)
	assert.Equal(t, "San Francisco, CA", profile.Contact.Location)

	assert.Equal(t, "Backend engineer with six years of experience building services.", profile.Summary)

	require.Len(t, profile.Experience, 2)
	first := profile.Experience[0]
	assert.Equal(t, types.SectionExperience, first.Kind)
	assert.Equal(t, "Software Engineer", first.Title)
	assert.Equal(t, "Acme Corp", first.Organization)
	assert.Equal(t, "Jan 2020 - Present", first.DateRange)
	assert.Equal(t, []string{
		"Built backend services using Python",
		"Worked on deployment pipelines",
	}, first.Points)

	second := profile.Experience[1]
	assert.Equal(t, "Data Analyst", second.Title)
	assert.Equal(t, "Initech", second.Organization)
	assert.Equal(t, "2017 - 2019", second.DateRange)

	require.Len(t, profile.Education, 1)
	assert.Equal(t, "B.S. Computer Science", profile.Education[0].Title)
	assert.Equal(t, "State University", profile.Education[0].Organization)

	assert.Equal(t, []string{"Python", "SQL", "Docker"}, profile.Skills)

	// Unknown heading is retained, not dropped
	require.Len(t, profile.Unclassified, 1)
	assert.Equal(t, "Hobbies", profile.Unclassified[0].Title)
	assert.Equal(t, []string{"Chess"}, profile.Unclassified[0].Points)

	var unrecognized *UnrecognizedSectionError
	require.True(t, findIssue(issues, &unrecognized))
	assert.Equal(t, "Hobbies", unrecognized.Heading)

	// Analysis must stay empty after parsing
	for _, section := range profile.AllSections() {
		assert.Empty(t, section.Analysis.MatchedSkills)
		assert.Zero(t, section.Analysis.RelevanceScore)
	}
}

func TestParseEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   \n\t  "} {
		profile, issues, err := newTestSegmenter().Parse(input)
		assert.Nil(t, profile)
		assert.Empty(t, issues)

		var empty *EmptyInputError
		require.ErrorAs(t, err, &empty)
	}
}

func TestParseNoSkills(t *testing.T) {
	raw := "John Smith\n\nExperience\nBarista\nCoffee House | 2021 - 2023\n- Served customers\n"
	profile, issues, err := newTestSegmenter().Parse(raw)
	require.NoError(t, err)

	assert.Empty(t, profile.Skills)

	var noSkills *NoSkillsFoundError
	assert.True(t, findIssue(issues, &noSkills), "missing skills list should be reported")
}

func TestParseAmbiguousDateRange(t *testing.T) {
	raw := "John Smith\n\nExperience\nIntern\nGlobex | Class of 2016\n- Shadowed the data team on reporting work\n\nSkills\nSQL\n"
	profile, issues, err := newTestSegmenter().Parse(raw)
	require.NoError(t, err)

	require.Len(t, profile.Experience, 1)
	entry := profile.Experience[0]
	assert.Equal(t, "Intern", entry.Title)
	assert.Equal(t, "Globex", entry.Organization)
	assert.Empty(t, entry.DateRange)

	var ambiguous *AmbiguousDateRangeError
	require.True(t, findIssue(issues, &ambiguous))
	assert.Equal(t, "Intern", ambiguous.EntryTitle)
}

func TestParseSummaryHeading(t *testing.T) {
	raw := "Jane Doe\n\nSummary\nPlatform engineer focused on reliability.\n\nSkills\nGo, Terraform\n"
	profile, _, err := newTestSegmenter().Parse(raw)
	require.NoError(t, err)

	assert.Equal(t, "Platform engineer focused on reliability.", profile.Summary)
	assert.Equal(t, []string{"Go", "Terraform"}, profile.Skills)
}

func TestHeadingKindTolerance(t *testing.T) {
	s := newTestSegmenter()

	tests := []struct {
		line string
		kind string
		ok   bool
	}{
		{"Work Experience", "experience", true},
		{"EMPLOYMENT HISTORY:", "experience", true},
		{"Technical  Skills", "skills", true},
		{"Education:", "education", true},
		{"Dancing", "", false},
	}

	for _, tt := range tests {
		kind, ok := s.headingKind(tt.line)
		assert.Equal(t, tt.ok, ok, tt.line)
		assert.Equal(t, tt.kind, kind, tt.line)
	}
}

// findIssue is errors.As over a slice of non-fatal parse issues
func findIssue[T error](issues []error, target *T) bool {
	for _, issue := range issues {
		if e, ok := issue.(T); ok {
			*target = e
			return true
		}
	}
	return false
}
