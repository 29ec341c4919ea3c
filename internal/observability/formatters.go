// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintProfile outputs a human-readable summary of the parsed CV.
func (p *Printer) PrintProfile(profile *types.UserProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder

	if profile.Contact.Name != "" {
		sb.WriteString(fmt.Sprintf("Name:     %s\n", profile.Contact.Name))
	}
	if profile.Contact.Email != "" {
		sb.WriteString(fmt.Sprintf("Email:    %s\n", profile.Contact.Email))
	}
	sb.WriteString(fmt.Sprintf("Sections: %d experience, %d education, %d projects",
		len(profile.Experience), len(profile.Education), len(profile.Projects)))
	if len(profile.Unclassified) > 0 {
		sb.WriteString(fmt.Sprintf(", %d unclassified", len(profile.Unclassified)))
	}
	sb.WriteString("\n")

	if len(profile.Skills) > 0 {
		sb.WriteString("\nSkills:\n")
		count := min(len(profile.Skills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", profile.Skills[i]))
		}
		if len(profile.Skills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(profile.Skills)-maxItemsToShow))
		}
	}

	p.printBox("PARSED CV", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintJobDescription outputs a human-readable summary of the parsed posting.
func (p *Printer) PrintJobDescription(jd *types.JobDescription) {
	if jd == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Company:  %s\n", jd.Company))
	sb.WriteString(fmt.Sprintf("Role:     %s\n", jd.Title))
	sb.WriteString("\n")

	if len(jd.RequiredSkills) > 0 {
		sb.WriteString("Required Skills:\n")
		count := min(len(jd.RequiredSkills), maxItemsToShow)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", jd.RequiredSkills[i]))
		}
		if len(jd.RequiredSkills) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jd.RequiredSkills)-maxItemsToShow))
		}
		sb.WriteString("\n")
	}

	if len(jd.PreferredSkills) > 0 {
		sb.WriteString("Preferred Skills:\n")
		count := min(len(jd.PreferredSkills), 3)
		for i := 0; i < count; i++ {
			sb.WriteString(fmt.Sprintf("  • %s\n", jd.PreferredSkills[i]))
		}
		if len(jd.PreferredSkills) > 3 {
			sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(jd.PreferredSkills)-3))
		}
	}

	p.printBox("PARSED JOB POSTING", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatchSummary outputs the posting-level match result. A nil summary
// means matching never ran and prints nothing.
func (p *Printer) PrintMatchSummary(summary *types.MatchSummary) {
	if summary == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Match score: %d%%\n", summary.MatchScore))

	if len(summary.MatchedSkills) > 0 {
		skills := strings.Join(summary.MatchedSkills, ", ")
		if len(skills) > 40 {
			skills = skills[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Matched: %s\n", skills))
	}
	if len(summary.MissingSkills) > 0 {
		skills := strings.Join(summary.MissingSkills, ", ")
		if len(skills) > 40 {
			skills = skills[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Missing: %s\n", skills))
	}
	if len(summary.ExtraSkills) > 0 {
		skills := strings.Join(summary.ExtraSkills, ", ")
		if len(skills) > 40 {
			skills = skills[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Extra:   %s\n", skills))
	}

	p.printBox("MATCH SUMMARY", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintSuggestions outputs the proposed changes with their reasons.
func (p *Printer) PrintSuggestions(suggestions []types.Suggestion) {
	if len(suggestions) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Proposed %d change(s):\n\n", len(suggestions)))

	count := min(len(suggestions), maxItemsToShow)
	for i := 0; i < count; i++ {
		s := suggestions[i]
		sb.WriteString(fmt.Sprintf("• [%s] %s\n", s.Section.String(), s.Kind))
		reason := s.Reason
		if len(reason) > 50 {
			reason = reason[:47] + "..."
		}
		sb.WriteString(fmt.Sprintf("  %s\n", reason))
		if s.Diff != "" {
			diff := s.Diff
			if len(diff) > 50 {
				diff = diff[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("  ~ %s\n", diff))
		}
		if s.Question != "" {
			sb.WriteString(fmt.Sprintf("  ? %s\n", s.Question))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(suggestions) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more changes", len(suggestions)-maxItemsToShow))
	}

	p.printBox("SUGGESTED CHANGES", sb.String())
}

// PrintNotices outputs the plain-language warnings collected during a run.
func (p *Printer) PrintNotices(notices []string) {
	if len(notices) == 0 {
		return
	}

	var sb strings.Builder
	for i, notice := range notices {
		sb.WriteString(fmt.Sprintf("• %s", notice))
		if i < len(notices)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("NOTICES", sb.String())
}
