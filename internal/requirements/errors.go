package requirements

import "fmt"

// EmptyInputError represents posting text that is empty or whitespace only
type EmptyInputError struct {
	Message string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty input: %s", e.Message)
}

// NoSkillsFoundError marks a posting from which no skills could be
// extracted. Non-fatal: an empty required-skills set is a valid result.
type NoSkillsFoundError struct{}

func (e *NoSkillsFoundError) Error() string {
	return "no skills found in job posting text"
}
