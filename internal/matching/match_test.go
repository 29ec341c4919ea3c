package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

func newTestMatcher() *Matcher {
	return New(skills.NewNormalizer(vocab.Default(), 0))
}

func testProfile() *types.UserProfile {
	return &types.UserProfile{
		Contact: types.ContactInfo{Name: "Jane Doe"},
		Summary: "Backend engineer with five years of experience.",
		Experience: []types.CVSection{
			{
				Kind:         types.SectionExperience,
				Title:        "Software Engineer",
				Organization: "Acme Corp",
				DateRange:    "2020 - Present",
				Points: []string{
					"Worked with Python and Docker daily",
					"Maintained internal billing tools",
				},
			},
		},
		Skills: []string{"Python", "SQL"},
	}
}

func TestAnnotatePopulatesSectionAnalysis(t *testing.T) {
	jd := &types.JobDescription{
		RequiredSkills:  []string{"python", "aws"},
		PreferredSkills: []string{"docker"},
	}

	annotated, _ := newTestMatcher().Annotate(testProfile(), jd)
	require.Len(t, annotated.Experience, 1)

	analysis := annotated.Experience[0].Analysis
	assert.Equal(t, []string{"python", "docker"}, analysis.MatchedSkills)
	assert.InDelta(t, 0.65, analysis.RelevanceScore, 1e-9)
	assert.Equal(t, "Highly relevant. Mentions: python, docker.", analysis.Explanation)
	assert.Equal(t, []string{"aws"}, analysis.Gaps, "unmatched skill fits a technical role")
}

func TestAnnotateLeavesInputUntouched(t *testing.T) {
	profile := testProfile()
	jd := &types.JobDescription{RequiredSkills: []string{"python"}}

	_, _ = newTestMatcher().Annotate(profile, jd)

	assert.Empty(t, profile.Experience[0].Analysis.MatchedSkills)
	assert.Zero(t, profile.Experience[0].Analysis.RelevanceScore)
	assert.Empty(t, profile.Experience[0].Analysis.Explanation)
}

func TestAnnotateSkipsUnclassifiedSections(t *testing.T) {
	profile := testProfile()
	profile.Unclassified = []types.CVSection{
		{Kind: types.SectionUnclassified, Title: "Hobbies", Points: []string{"Python-themed chess"}},
	}
	jd := &types.JobDescription{RequiredSkills: []string{"python"}}

	annotated, _ := newTestMatcher().Annotate(profile, jd)

	assert.Empty(t, annotated.Unclassified[0].Analysis.Explanation)
}

func TestSummaryMatchedMissingExtra(t *testing.T) {
	profile := &types.UserProfile{Skills: []string{"Python", "SQL"}}
	jd := &types.JobDescription{RequiredSkills: []string{"python", "aws"}}

	_, summary := newTestMatcher().Annotate(profile, jd)

	assert.Equal(t, []string{"python"}, summary.MatchedSkills)
	assert.Equal(t, []string{"aws"}, summary.MissingSkills)
	assert.Equal(t, []string{"SQL"}, summary.ExtraSkills)
	assert.Equal(t, 50, summary.MatchScore)
}

func TestSummaryCountsSectionMentions(t *testing.T) {
	// Docker appears only in a bullet, not the skills list; it still
	// counts toward the posting-level match
	jd := &types.JobDescription{RequiredSkills: []string{"docker"}}

	_, summary := newTestMatcher().Annotate(testProfile(), jd)

	assert.Equal(t, []string{"docker"}, summary.MatchedSkills)
	assert.Empty(t, summary.MissingSkills)
	assert.Equal(t, 100, summary.MatchScore)
}

func TestSummaryNoRequiredSkills(t *testing.T) {
	profile := &types.UserProfile{Skills: []string{"Python"}}
	jd := &types.JobDescription{}

	_, summary := newTestMatcher().Annotate(profile, jd)

	assert.Equal(t, 100, summary.MatchScore)
	assert.Empty(t, summary.MissingSkills)
}

func TestSummaryAliasMatch(t *testing.T) {
	profile := &types.UserProfile{Skills: []string{"React.js"}}
	jd := &types.JobDescription{RequiredSkills: []string{"ReactJS"}}

	_, summary := newTestMatcher().Annotate(profile, jd)

	assert.Equal(t, []string{"ReactJS"}, summary.MatchedSkills)
	assert.Equal(t, 100, summary.MatchScore)
}

func TestRelevanceScoreBounds(t *testing.T) {
	profile := testProfile()
	jd := &types.JobDescription{
		RequiredSkills:  []string{"python"},
		PreferredSkills: []string{"docker"},
	}

	annotated, summary := newTestMatcher().Annotate(profile, jd)

	score := annotated.Experience[0].Analysis.RelevanceScore
	assert.GreaterOrEqual(t, score, 0.0)
	assert.LessOrEqual(t, score, 1.0)
	assert.InDelta(t, 1.0, score, 1e-9, "full required and preferred coverage")
	assert.GreaterOrEqual(t, summary.MatchScore, 0)
	assert.LessOrEqual(t, summary.MatchScore, 100)
}

func TestSectionExplanationOverflow(t *testing.T) {
	got := sectionExplanation(0.5, []string{"python", "sql", "docker", "aws", "redis"})
	assert.Equal(t, "Highly relevant. Mentions: python, sql, docker, aws (+1 more).", got)

	got = sectionExplanation(0.05, nil)
	assert.Equal(t, "Less directly relevant. No direct skill matches found.", got)
}

func TestAnnotateDeterministic(t *testing.T) {
	jd := &types.JobDescription{
		RequiredSkills:  []string{"python", "aws"},
		PreferredSkills: []string{"docker"},
	}

	first, firstSummary := newTestMatcher().Annotate(testProfile(), jd)
	second, secondSummary := newTestMatcher().Annotate(testProfile(), jd)

	assert.Equal(t, first, second)
	assert.Equal(t, firstSummary, secondSummary)
}
