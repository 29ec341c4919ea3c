package segmenting

import "fmt"

// EmptyInputError represents résumé text that is empty or whitespace only
type EmptyInputError struct {
	Message string
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("empty input: %s", e.Message)
}

// UnrecognizedSectionError marks a heading that matched no known synonym.
// Non-fatal: the section content is retained as unclassified.
type UnrecognizedSectionError struct {
	Heading string
}

func (e *UnrecognizedSectionError) Error() string {
	return fmt.Sprintf("unrecognized section heading %q: content kept as unclassified", e.Heading)
}

// AmbiguousDateRangeError marks an entry whose date could not be pinned
// down. Non-fatal: the entry is created without a date range and the raw
// lines are preserved.
type AmbiguousDateRangeError struct {
	EntryTitle string
}

func (e *AmbiguousDateRangeError) Error() string {
	return fmt.Sprintf("ambiguous date range for entry %q: entry kept without a parsed date", e.EntryTitle)
}

// NoSkillsFoundError marks a résumé with no extractable skills list.
// Non-fatal: an empty skills list is a valid, if low-value, result.
type NoSkillsFoundError struct{}

func (e *NoSkillsFoundError) Error() string {
	return "no skills found in résumé text"
}
