package rendering

import (
	"fmt"
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// RenderPlainText renders the tailored draft as plain text with
// upper-case headings, ready to paste into an application form.
func RenderPlainText(res *types.TailoredCVResult) string {
	profile := res.Draft
	if profile == nil {
		profile = &types.UserProfile{}
	}

	var lines []string
	if profile.Contact.Name != "" {
		lines = append(lines, strings.ToUpper(profile.Contact.Name))
	}
	if contact := contactLine(profile.Contact); contact != "" {
		lines = append(lines, contact)
	}
	if len(lines) > 0 {
		lines = append(lines, "")
	}

	if profile.Summary != "" {
		lines = append(lines, "SUMMARY", profile.Summary, "")
	}

	if len(profile.Skills) > 0 {
		lines = append(lines, "SKILLS", strings.Join(profile.Skills, ", "), "")
	}

	lines = appendTextSections(lines, "WORK EXPERIENCE", profile.Experience)
	lines = appendTextSections(lines, "EDUCATION", profile.Education)
	lines = appendTextSections(lines, "PROJECTS", profile.Projects)
	lines = appendTextSections(lines, "ADDITIONAL", profile.Unclassified)

	return strings.TrimRight(strings.Join(lines, "\n"), "\n") + "\n"
}

func appendTextSections(lines []string, heading string, sections []types.CVSection) []string {
	if len(sections) == 0 {
		return lines
	}
	lines = append(lines, heading, "")
	for _, section := range sections {
		title := section.Title
		if section.Organization != "" {
			title += " | " + section.Organization
		}
		if section.DateRange != "" {
			title += " | " + section.DateRange
		}
		lines = append(lines, title)
		for _, point := range section.Points {
			lines = append(lines, fmt.Sprintf("- %s", point))
		}
		lines = append(lines, "")
	}
	return lines
}
