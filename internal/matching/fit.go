package matching

import (
	"strings"

	"github.com/jonathan/cv-tailor/internal/types"
)

// Word lists backing the gap-fit heuristic. A gap is only surfaced for a
// section where the skill could plausibly belong, so a database skill is
// never suggested for a barista job.
var (
	techRoleWords = []string{
		"engineer", "developer", "programmer", "architect",
		"scientist", "analyst", "devops", "sre", "infrastructure",
		"software", "frontend", "backend", "fullstack", "full-stack",
		"data", "ml", "machine learning", "ai",
	}

	techSkillWords = []string{
		"python", "java", "react", "node", "sql", "aws", "docker",
		"kubernetes", "api", "database", "cloud", "linux", "git",
	}

	techDescriptionWords = []string{
		"code", "develop", "build", "implement", "deploy",
		"software", "application", "system", "platform",
		"database", "api", "service", "infrastructure",
	}

	softSkillWords = []string{
		"leadership", "management", "communication", "teamwork",
		"agile", "scrum", "project management",
	}
)

// skillCouldFit reports whether a skill could plausibly be mentioned in the
// section: technical skills fit technical roles or technical descriptions,
// soft skills fit most roles. Defaults to false when unsure.
func skillCouldFit(skill string, section *types.CVSection) bool {
	skillLower := strings.ToLower(skill)
	titleLower := strings.ToLower(section.Title)
	descriptionLower := strings.ToLower(strings.Join(section.Points, " "))

	isTechSkill := containsAny(skillLower, techSkillWords)

	if isTechSkill && containsAny(titleLower, techRoleWords) {
		return true
	}
	if isTechSkill && containsAny(descriptionLower, techDescriptionWords) {
		return true
	}
	return containsAny(skillLower, softSkillWords)
}

func containsAny(text string, words []string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
