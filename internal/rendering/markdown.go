// Package rendering turns a tailored result into exportable documents.
// Output is deterministic: the same result always renders to the same bytes.
package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// RenderMarkdown renders the tailored draft and its explanations as a
// Markdown document suitable for download or copy-paste.
func RenderMarkdown(res *types.TailoredCVResult) string {
	var b strings.Builder
	profile := res.Draft
	if profile == nil {
		profile = &types.UserProfile{}
	}

	if profile.Contact.Name != "" {
		fmt.Fprintf(&b, "# %s\n\n", profile.Contact.Name)
	}
	if contact := contactLine(profile.Contact); contact != "" {
		b.WriteString(contact + "\n\n")
	}

	if profile.Summary != "" {
		b.WriteString("## Summary\n\n")
		b.WriteString(profile.Summary + "\n\n")
	}

	if len(profile.Skills) > 0 {
		b.WriteString("## Skills\n\n")
		b.WriteString(strings.Join(profile.Skills, ", ") + "\n\n")
	}

	writeMarkdownSections(&b, "Work Experience", profile.Experience)
	writeMarkdownSections(&b, "Education", profile.Education)
	writeMarkdownSections(&b, "Projects", profile.Projects)
	writeMarkdownSections(&b, "Additional", profile.Unclassified)

	if res.Explanations.Strategy != "" {
		b.WriteString("## What We Changed\n\n")
		b.WriteString(res.Explanations.Strategy + "\n\n")
		for _, change := range res.Explanations.SectionChanges {
			fmt.Fprintf(&b, "- **%s**: %s\n", change.Section, change.Text)
		}
		if len(res.Explanations.SectionChanges) > 0 {
			b.WriteString("\n")
		}
	}

	if questions := openQuestions(res.Suggestions); len(questions) > 0 {
		b.WriteString("## Questions Before You Send\n\n")
		for _, q := range questions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
		b.WriteString("\n")
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

func writeMarkdownSections(b *strings.Builder, heading string, sections []types.CVSection) {
	if len(sections) == 0 {
		return
	}
	fmt.Fprintf(b, "## %s\n\n", heading)
	for _, section := range sections {
		fmt.Fprintf(b, "**%s**", section.Title)
		if section.Organization != "" {
			fmt.Fprintf(b, " | %s", section.Organization)
		}
		if section.DateRange != "" {
			fmt.Fprintf(b, " | %s", section.DateRange)
		}
		b.WriteString("\n\n")
		for _, point := range section.Points {
			fmt.Fprintf(b, "- %s\n", point)
		}
		if len(section.Points) > 0 {
			b.WriteString("\n")
		}
	}
}

func contactLine(contact types.ContactInfo) string {
	var parts []string
	for _, field := range []string{contact.Email, contact.Phone, contact.LinkedIn, contact.GitHub, contact.Location} {
		if field != "" {
			parts = append(parts, field)
		}
	}
	return strings.Join(parts, " | ")
}

// openQuestions collects the confirmation prompts from suggestions that
// were surfaced but not applied to the draft.
func openQuestions(suggestions []types.Suggestion) []string {
	var questions []string
	for _, s := range suggestions {
		if s.Question != "" {
			questions = append(questions, s.Question)
		}
	}
	return questions
}
