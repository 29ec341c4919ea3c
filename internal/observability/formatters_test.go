package observability

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-tailor/internal/types"
)

func TestPrintProfile(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	profile := &types.UserProfile{
		Contact: types.ContactInfo{Name: "Jane Doe", Email: "jane@example.com"},
		Skills:  []string{"Python", "SQL", "Docker", "AWS", "Kubernetes", "Terraform"},
		Experience: []types.CVSection{
			{Kind: types.SectionExperience, Title: "Software Engineer"},
		},
	}

	p.PrintProfile(profile)
	output := buf.String()

	assert.Contains(t, output, "PARSED CV")
	assert.Contains(t, output, "Jane Doe")
	assert.Contains(t, output, "jane@example.com")
	assert.Contains(t, output, "1 experience")
	assert.Contains(t, output, "Python")
	assert.Contains(t, output, "... and 1 more")
}

func TestPrintProfile_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintProfile(nil)

	assert.Empty(t, buf.String())
}

func TestPrintJobDescription(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	jd := &types.JobDescription{
		Title:           "Senior Backend Engineer",
		Company:         "Acme Corp",
		RequiredSkills:  []string{"python", "sql"},
		PreferredSkills: []string{"kubernetes"},
	}

	p.PrintJobDescription(jd)
	output := buf.String()

	assert.Contains(t, output, "PARSED JOB POSTING")
	assert.Contains(t, output, "Acme Corp")
	assert.Contains(t, output, "Senior Backend Engineer")
	assert.Contains(t, output, "python")
	assert.Contains(t, output, "kubernetes")
}

func TestPrintMatchSummary(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchSummary(&types.MatchSummary{
		MatchScore:    50,
		MatchedSkills: []string{"python"},
		MissingSkills: []string{"aws"},
		ExtraSkills:   []string{"SQL"},
	})
	output := buf.String()

	assert.Contains(t, output, "MATCH SUMMARY")
	assert.Contains(t, output, "Match score: 50%")
	assert.Contains(t, output, "Matched: python")
	assert.Contains(t, output, "Missing: aws")
	assert.Contains(t, output, "Extra:   SQL")
}

func TestPrintMatchSummaryNil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintMatchSummary(nil)

	assert.Empty(t, buf.String())
}

func TestPrintSuggestions(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	suggestions := []types.Suggestion{
		{
			Section: types.SectionRef{Kind: types.SectionSkillsList, Index: -1},
			Kind:    types.ChangeSkillReorder,
			Reason:  "Moved skills the posting asks for (python) to the front",
		},
		{
			Section:  types.SectionRef{Kind: types.SectionExperience, Index: 0},
			Kind:     types.ChangeBulletRewrite,
			Reason:   "replaced 'worked on' with 'built'",
			Diff:     "Added: built; Removed: worked",
			Question: "Did this work actually involve Aws?",
		},
	}

	p.PrintSuggestions(suggestions)
	output := buf.String()

	assert.Contains(t, output, "SUGGESTED CHANGES")
	assert.Contains(t, output, "skill_reorder")
	assert.Contains(t, output, "experience[0]")
	assert.Contains(t, output, "~ Added: built; Removed: worked")
	assert.Contains(t, output, "? Did this work actually involve Aws?")
}

func TestPrintSuggestions_Empty(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintSuggestions(nil)

	assert.Empty(t, buf.String())
}

func TestPrintNotices(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintNotices([]string{"No skills section was found in your CV"})
	output := buf.String()

	assert.Contains(t, output, "NOTICES")
	assert.Contains(t, output, "No skills section was found in your CV")
}
