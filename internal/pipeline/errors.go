package pipeline

// EmptyInputError is the only fatal error a tailoring run can return: both
// the CV text and the job description text were empty, so there is nothing
// to work with. A single empty input degrades to a partial result instead.
type EmptyInputError struct {
	Message string
}

func (e *EmptyInputError) Error() string {
	return e.Message
}
