// Package pipeline orchestrates a tailoring run: segment the CV, extract the
// posting requirements, match, rewrite, and explain. A stage failure never
// aborts the run; the orchestrator records a notice and assembles a
// best-effort result from whatever the preceding stages produced.
package pipeline

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/cv-tailor/internal/explaining"
	"github.com/jonathan/cv-tailor/internal/matching"
	"github.com/jonathan/cv-tailor/internal/requirements"
	"github.com/jonathan/cv-tailor/internal/rewriting"
	"github.com/jonathan/cv-tailor/internal/segmenting"
	"github.com/jonathan/cv-tailor/internal/skills"
	"github.com/jonathan/cv-tailor/internal/types"
	"github.com/jonathan/cv-tailor/internal/vocab"
)

// State names one position in the run's one-way state machine. A run never
// re-enters an earlier state; retries are the caller's decision.
type State string

// Run states, in order
const (
	StateIdle      State = "idle"
	StateParsedCV  State = "parsed_cv"
	StateParsedJD  State = "parsed_jd"
	StateMatched   State = "matched"
	StateRewritten State = "rewritten"
	StateExplained State = "explained"
	StateAssembled State = "assembled"
)

// DefaultTopNStrategySkills is how many skills the strategy explanation
// names by default
const DefaultTopNStrategySkills = 3

// Options configures one tailoring run
type Options struct {
	// EnableBulletRewrite turns weak-verb substitution on
	EnableBulletRewrite bool
	// EnableSkillInjectionPrompts turns question-bearing skill injection
	// suggestions on
	EnableSkillInjectionPrompts bool
	// TopNStrategySkills is how many skills the strategy string names;
	// values below 1 fall back to the default
	TopNStrategySkills int
	// MinSubstringMatchLen is the shortest canonical form the whole-word
	// substring match rule accepts; values below 1 fall back to the
	// default
	MinSubstringMatchLen int
}

// DefaultOptions returns the standard run configuration
func DefaultOptions() Options {
	return Options{
		EnableBulletRewrite:         true,
		EnableSkillInjectionPrompts: true,
		TopNStrategySkills:          DefaultTopNStrategySkills,
		MinSubstringMatchLen:        skills.DefaultMinSubstringLen,
	}
}

func (o Options) withDefaults() Options {
	if o.TopNStrategySkills < 1 {
		o.TopNStrategySkills = DefaultTopNStrategySkills
	}
	if o.MinSubstringMatchLen < 1 {
		o.MinSubstringMatchLen = skills.DefaultMinSubstringLen
	}
	return o
}

// Pipeline runs tailoring over a shared read-only vocabulary. Each run owns
// its object graph exclusively, so one Pipeline serves concurrent runs
// without locking.
type Pipeline struct {
	tables *vocab.Tables
	log    *zap.Logger
}

// New builds a Pipeline over the given vocabulary tables. A nil logger
// disables logging.
func New(tables *vocab.Tables, log *zap.Logger) *Pipeline {
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{tables: tables, log: log}
}

// Tailor runs the full pipeline over raw CV and job-posting text. It fails
// only when both inputs are empty; any other stage failure is converted to
// a notice on the best-effort result.
func (p *Pipeline) Tailor(rawCV, rawJD string, opts Options) (*types.TailoredCVResult, error) {
	if strings.TrimSpace(rawCV) == "" && strings.TrimSpace(rawJD) == "" {
		return nil, &EmptyInputError{Message: "both the CV and the job description are empty"}
	}
	opts = opts.withDefaults()

	state := StateIdle
	result := &types.TailoredCVResult{}
	norm := skills.NewNormalizer(p.tables, opts.MinSubstringMatchLen)

	profile, cvIssues, cvErr := segmenting.New(p.tables).Parse(rawCV)
	if cvErr != nil {
		result.Notices = append(result.Notices, "Could not read your CV: "+cvErr.Error())
	} else {
		state = p.advance(state, StateParsedCV)
		for _, issue := range cvIssues {
			result.Notices = append(result.Notices, cvNotice(issue))
		}
	}

	jd, jdIssues, jdErr := requirements.New(p.tables).Parse(rawJD)
	if jdErr != nil {
		result.Notices = append(result.Notices, "Could not analyze the job description: "+jdErr.Error())
	} else {
		state = p.advance(state, StateParsedJD)
		for _, issue := range jdIssues {
			result.Notices = append(result.Notices, jdNotice(issue))
		}
	}

	if profile != nil && jd != nil {
		annotated, summary := matching.New(norm).Annotate(profile, jd)
		result.Summary = &summary
		state = p.advance(state, StateMatched)

		rewriter := rewriting.New(p.tables, norm, rewriting.Options{
			BulletRewrite:    opts.EnableBulletRewrite,
			InjectionPrompts: opts.EnableSkillInjectionPrompts,
		})
		draft, suggestions := rewriter.Rewrite(annotated, jd)
		explaining.DiffSuggestions(suggestions)
		result.Draft = draft
		result.Suggestions = suggestions
		state = p.advance(state, StateRewritten)

		result.Explanations = explaining.New(norm, opts.TopNStrategySkills).Explain(jd, summary, suggestions)
		state = p.advance(state, StateExplained)
	} else if profile != nil {
		// Nothing to tailor against; hand back the parsed CV untouched
		result.Draft = profile
	}

	p.advance(state, StateAssembled)
	return result, nil
}

// ReparseCV parses CV text on its own, so a caller can show the structured
// profile before committing to a full run
func (p *Pipeline) ReparseCV(rawCV string) (*types.UserProfile, []error, error) {
	return segmenting.New(p.tables).Parse(rawCV)
}

// ReparseJD parses job-posting text on its own
func (p *Pipeline) ReparseJD(rawJD string) (*types.JobDescription, []error, error) {
	return requirements.New(p.tables).Parse(rawJD)
}

func (p *Pipeline) advance(from, to State) State {
	p.log.Debug("pipeline stage complete",
		zap.String("from", string(from)),
		zap.String("to", string(to)))
	return to
}

// cvNotice turns a non-fatal CV parsing issue into plain language naming
// exactly what could not be determined
func cvNotice(issue error) string {
	var unrecognized *segmenting.UnrecognizedSectionError
	var noSkills *segmenting.NoSkillsFoundError
	var ambiguous *segmenting.AmbiguousDateRangeError
	switch {
	case errors.As(issue, &unrecognized):
		return fmt.Sprintf("Could not classify the '%s' section; its content was kept unchanged", unrecognized.Heading)
	case errors.As(issue, &noSkills):
		return "No skills section was found in your CV"
	case errors.As(issue, &ambiguous):
		return fmt.Sprintf("Could not determine the date range for '%s'; the entry was kept without one", ambiguous.EntryTitle)
	default:
		return "Could not fully read your CV: " + issue.Error()
	}
}

func jdNotice(issue error) string {
	var noSkills *requirements.NoSkillsFoundError
	if errors.As(issue, &noSkills) {
		return "The job posting didn't name any skills we recognize"
	}
	return "Could not fully analyze the job description: " + issue.Error()
}
