package rewriting

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

func newTestRewriter(opts Options) *Rewriter {
	tables := vocab.Default()
	return New(tables, skills.NewNormalizer(tables, 0), opts)
}

func defaultOptions() Options {
	return Options{BulletRewrite: true, InjectionPrompts: true}
}

func TestSkillReorderStablePartition(t *testing.T) {
	profile := &types.UserProfile{Skills: []string{"Excel", "AWS", "Python", "SQL"}}
	jd := &types.JobDescription{
		RequiredSkills:  []string{"python", "aws"},
		PreferredSkills: []string{"sql"},
	}

	draft, suggestions := newTestRewriter(defaultOptions()).Rewrite(profile, jd)

	assert.Equal(t, []string{"AWS", "Python", "SQL", "Excel"}, draft.Skills)
	require.Len(t, suggestions, 1)
	assert.Equal(t, types.ChangeSkillReorder, suggestions[0].Kind)
	assert.Equal(t, types.SectionSkillsList, suggestions[0].Section.Kind)
	assert.True(t, suggestions[0].Applied())
	assert.Contains(t, suggestions[0].Reason, "AWS")
}

func TestSkillReorderIdempotent(t *testing.T) {
	profile := &types.UserProfile{Skills: []string{"Excel", "Python"}}
	jd := &types.JobDescription{RequiredSkills: []string{"python"}}
	rewriter := newTestRewriter(defaultOptions())

	once, _ := rewriter.Rewrite(profile, jd)
	twice, suggestions := rewriter.Rewrite(once, jd)

	assert.Equal(t, once.Skills, twice.Skills)
	assert.Empty(t, suggestions, "already ordered list needs no change")
}

func TestSkillReorderAlreadyOrderedScenario(t *testing.T) {
	// Python is already first; the partition leaves the list untouched
	profile := &types.UserProfile{Skills: []string{"Python", "SQL"}}
	jd := &types.JobDescription{RequiredSkills: []string{"python", "aws"}}

	draft, suggestions := newTestRewriter(defaultOptions()).Rewrite(profile, jd)

	assert.Equal(t, []string{"Python", "SQL"}, draft.Skills)
	assert.Empty(t, suggestions)
}

func TestBulletReorderPreservesUnmatchedOrder(t *testing.T) {
	profile := &types.UserProfile{
		Experience: []types.CVSection{{
			Kind:  types.SectionExperience,
			Title: "Engineer",
			Points: []string{
				"Organized the team offsite",
				"Filed weekly status reports",
				"Shipped Python data pipelines",
			},
		}},
	}
	jd := &types.JobDescription{RequiredSkills: []string{"python"}}

	draft, suggestions := newTestRewriter(Options{}).Rewrite(profile, jd)

	assert.Equal(t, []string{
		"Shipped Python data pipelines",
		"Organized the team offsite",
		"Filed weekly status reports",
	}, draft.Experience[0].Points)

	require.Len(t, suggestions, 1)
	assert.Equal(t, types.ChangeReorder, suggestions[0].Kind)
	assert.Equal(t, "experience[0]", suggestions[0].Section.String())
	assert.Contains(t, suggestions[0].Reason, "python")
}

func TestWeakVerbSwap(t *testing.T) {
	profile := &types.UserProfile{
		Experience: []types.CVSection{{
			Kind:   types.SectionExperience,
			Title:  "Engineer",
			Points: []string{"Worked on backend services using Python"},
		}},
	}
	jd := &types.JobDescription{RequiredSkills: []string{"python"}}

	draft, suggestions := newTestRewriter(Options{BulletRewrite: true}).Rewrite(profile, jd)

	assert.Equal(t, "Built backend services using Python", draft.Experience[0].Points[0])
	require.Len(t, suggestions, 1)
	assert.Equal(t, types.ChangeBulletRewrite, suggestions[0].Kind)
	assert.Equal(t, "Worked on backend services using Python", suggestions[0].Before)
	assert.Contains(t, suggestions[0].Reason, "'worked on' with 'built'")
	assert.Contains(t, suggestions[0].Reason, "python")
	assert.True(t, suggestions[0].Applied())
}

func TestWeakVerbSwapDisabled(t *testing.T) {
	profile := &types.UserProfile{
		Experience: []types.CVSection{{
			Kind:   types.SectionExperience,
			Points: []string{"Worked on backend services"},
		}},
	}

	draft, suggestions := newTestRewriter(Options{}).Rewrite(profile, &types.JobDescription{})

	assert.Equal(t, "Worked on backend services", draft.Experience[0].Points[0])
	assert.Empty(t, suggestions)
}

func TestStrongVerbBulletLeftAlone(t *testing.T) {
	profile := &types.UserProfile{
		Experience: []types.CVSection{{
			Kind:   types.SectionExperience,
			Points: []string{"Built the service we worked on together"},
		}},
	}

	draft, suggestions := newTestRewriter(Options{BulletRewrite: true}).Rewrite(profile, &types.JobDescription{})

	assert.Equal(t, "Built the service we worked on together", draft.Experience[0].Points[0])
	assert.Empty(t, suggestions)
}

func TestVerbSwapWordBoundary(t *testing.T) {
	rewritten, changed := replaceFold("Candid feedback sessions", "did", "executed")
	assert.False(t, changed)
	assert.Equal(t, "Candid feedback sessions", rewritten)

	rewritten, changed = replaceFold("Did database migrations", "did", "executed")
	assert.True(t, changed)
	assert.Equal(t, "Executed database migrations", rewritten)
}

func TestSkillInjectionAsksQuestion(t *testing.T) {
	profile := &types.UserProfile{
		Experience: []types.CVSection{{
			Kind:   types.SectionExperience,
			Title:  "Engineer",
			Points: []string{"Managed cloud infrastructure"},
		}},
		Skills: []string{"AWS"},
	}
	jd := &types.JobDescription{RequiredSkills: []string{"aws"}}

	draft, suggestions := newTestRewriter(Options{InjectionPrompts: true}).Rewrite(profile, jd)

	var injection *types.Suggestion
	for i := range suggestions {
		if suggestions[i].Question != "" {
			injection = &suggestions[i]
		}
	}
	require.NotNil(t, injection, "expected a question-bearing suggestion")

	assert.Equal(t, "Managed cloud infrastructure", injection.Before)
	assert.Equal(t, "Managed Aws cloud infrastructure", injection.After)
	assert.Equal(t, "Did this work actually involve Aws?", injection.Question)
	assert.False(t, injection.Applied())

	// The draft never includes an unconfirmed skill
	assert.Equal(t, "Managed cloud infrastructure", draft.Experience[0].Points[0])
}

func TestSkillInjectionRequiresSkillElsewhere(t *testing.T) {
	// The posting wants AWS but the profile never mentions it, so no
	// injection may be proposed
	profile := &types.UserProfile{
		Experience: []types.CVSection{{
			Kind:   types.SectionExperience,
			Points: []string{"Managed cloud infrastructure"},
		}},
		Skills: []string{"Python"},
	}
	jd := &types.JobDescription{RequiredSkills: []string{"aws"}}

	_, suggestions := newTestRewriter(Options{InjectionPrompts: true}).Rewrite(profile, jd)

	for _, s := range suggestions {
		assert.Empty(t, s.Question)
	}
}

func TestSummaryReRanked(t *testing.T) {
	profile := &types.UserProfile{
		Summary: "I enjoy mentoring juniors. I build Python services at scale.",
	}
	jd := &types.JobDescription{RequiredSkills: []string{"python"}}

	draft, suggestions := newTestRewriter(Options{}).Rewrite(profile, jd)

	assert.Equal(t, "I build Python services at scale. I enjoy mentoring juniors.", draft.Summary)
	require.Len(t, suggestions, 1)
	assert.Equal(t, types.ChangeSummaryRewrite, suggestions[0].Kind)
	assert.Equal(t, "summary", suggestions[0].Section.String())
	assert.Contains(t, suggestions[0].Reason, "python")
}

func TestNoHallucination(t *testing.T) {
	profile := &types.UserProfile{
		Summary: "Engineer.",
		Experience: []types.CVSection{{
			Kind:   types.SectionExperience,
			Title:  "Engineer",
			Points: []string{"Worked on a database migration", "Maintained the build"},
		}},
		Skills: []string{"Python"},
	}
	jd := &types.JobDescription{RequiredSkills: []string{"postgresql", "kubernetes", "terraform"}}

	draft, _ := newTestRewriter(defaultOptions()).Rewrite(profile, jd)

	text := strings.ToLower(draft.Summary + " " + strings.Join(draft.Skills, " "))
	for _, section := range draft.AllSections() {
		text += " " + strings.ToLower(strings.Join(section.Points, " "))
	}
	assert.NotContains(t, text, "postgresql")
	assert.NotContains(t, text, "kubernetes")
	assert.NotContains(t, text, "terraform")
}

func TestRewriteLeavesInputUntouched(t *testing.T) {
	profile := &types.UserProfile{
		Experience: []types.CVSection{{
			Kind:   types.SectionExperience,
			Points: []string{"Worked on billing", "Shipped Python tools"},
		}},
		Skills: []string{"Excel", "Python"},
	}
	jd := &types.JobDescription{RequiredSkills: []string{"python"}}

	_, _ = newTestRewriter(defaultOptions()).Rewrite(profile, jd)

	assert.Equal(t, []string{"Excel", "Python"}, profile.Skills)
	assert.Equal(t, []string{"Worked on billing", "Shipped Python tools"}, profile.Experience[0].Points)
}

func TestRewriteDeterministic(t *testing.T) {
	profile := &types.UserProfile{
		Summary: "I enjoy mentoring. I build Python services.",
		Experience: []types.CVSection{{
			Kind:   types.SectionExperience,
			Title:  "Engineer",
			Points: []string{"Worked on billing", "Shipped Python tools"},
		}},
		Skills: []string{"Excel", "Python", "AWS"},
	}
	jd := &types.JobDescription{RequiredSkills: []string{"python", "aws"}}
	rewriter := newTestRewriter(defaultOptions())

	firstDraft, firstSuggestions := rewriter.Rewrite(profile, jd)
	secondDraft, secondSuggestions := rewriter.Rewrite(profile, jd)

	assert.Equal(t, firstDraft, secondDraft)
	assert.Equal(t, firstSuggestions, secondSuggestions)
}
