package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCV = `Jane Doe

Experience

Software Engineer
Acme
- Worked on backend services using Python

Skills
Python, SQL
`

const testJob = `Backend Engineer

Requirements
- Python
- AWS
`

// The run command mutates shared flag state, so the scenarios execute in
// order within one test.
func TestRunCommand(t *testing.T) {
	dir := t.TempDir()
	cvPath := filepath.Join(dir, "cv.txt")
	jobPath := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(cvPath, []byte(testCV), 0644))
	require.NoError(t, os.WriteFile(jobPath, []byte(testJob), 0644))

	// Missing inputs
	rootCmd.SetArgs([]string{"run"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "CV is required")

	// Full run
	rootCmd.SetArgs([]string{"run", "--cv", cvPath, "--job", jobPath, "--output", "json"})
	assert.NoError(t, rootCmd.Execute())

	// Vocabulary override merged over the defaults
	vocabPath := filepath.Join(dir, "vocab.json")
	require.NoError(t, os.WriteFile(vocabPath, []byte(`{"known_skills": ["python", "aws", "cobol"]}`), 0644))
	rootCmd.SetArgs([]string{"run", "--cv", cvPath, "--job", jobPath, "--vocab", vocabPath})
	assert.NoError(t, rootCmd.Execute())

	// An override failing schema validation aborts the run
	badVocabPath := filepath.Join(dir, "bad_vocab.json")
	require.NoError(t, os.WriteFile(badVocabPath, []byte(`{"known_skills": "python"}`), 0644))
	rootCmd.SetArgs([]string{"run", "--cv", cvPath, "--job", jobPath, "--vocab", badVocabPath})
	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad_vocab.json")

	// Job file and URL are mutually exclusive
	rootCmd.SetArgs([]string{"run", "--cv", cvPath, "--job", jobPath, "--job-url", "https://example.com/job"})
	err = rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mutually exclusive")
}

func TestRunCommand_UnknownOutputFormat(t *testing.T) {
	dir := t.TempDir()
	cvPath := filepath.Join(dir, "cv.txt")
	jobPath := filepath.Join(dir, "job.txt")
	require.NoError(t, os.WriteFile(cvPath, []byte(testCV), 0644))
	require.NoError(t, os.WriteFile(jobPath, []byte(testJob), 0644))

	rootCmd.SetArgs([]string{"run", "--cv", cvPath, "--job", jobPath, "--job-url", "", "--vocab", "", "--output", "pdf"})
	err := rootCmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
}
