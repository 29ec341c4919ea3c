package skills

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/cv-tailor/internal/vocab"
)

func newTestNormalizer() *Normalizer {
	return NewNormalizer(vocab.Default(), DefaultMinSubstringLen)
}

func TestCanonical(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercases", "Python", "python"},
		{"trims whitespace", "  SQL  ", "sql"},
		{"strips trailing punctuation", "Docker,", "docker"},
		{"strips bullet marker", "• Redis", "redis"},
		{"keeps c++ intact", "C++", "c++"},
		{"keeps leading dot", ".NET", ".net"},
		{"strips version number", "Python 3.10", "python"},
		{"react.js alias", "React.js", "react"},
		{"reactjs alias", "ReactJS", "react"},
		{"golang alias", "Golang", "go"},
		{"k8s alias", "K8s", "kubernetes"},
		{"amazon web services alias", "Amazon Web Services", "aws"},
		{"suffix strip then alias", "Vue.js", "vue"},
		{"unknown token is own form", "Datadog", "datadog"},
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Canonical(tt.input))
		})
	}
}

func TestCanonicalList(t *testing.T) {
	n := newTestNormalizer()

	got := n.CanonicalList([]string{"React.js", "ReactJS", "Python 3", "", "python", "AWS"})
	assert.Equal(t, []string{"react", "python", "aws"}, got)
}

func TestMatch(t *testing.T) {
	n := newTestNormalizer()

	tests := []struct {
		name     string
		a, b     string
		expected bool
	}{
		{"alias variants match", "React.js", "ReactJS", true},
		{"case-insensitive equality", "Python", "python", true},
		{"substring guard blocks java vs javascript", "Java", "JavaScript", false},
		{"whole-word substring matches", "AWS", "AWS Lambda", true},
		{"whole-word substring is symmetric", "AWS Lambda", "aws", true},
		{"unrelated skills", "Python", "SQL", false},
		{"partial word never matches", "script", "typescript", false},
		{"empty never matches", "", "python", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, n.Match(tt.a, tt.b))
		})
	}
}

func TestMatchMinSubstringLen(t *testing.T) {
	// With a higher guard, three-letter forms no longer substring-match
	n := NewNormalizer(vocab.Default(), 4)

	assert.False(t, n.Match("AWS", "AWS Lambda"))
	assert.True(t, n.Match("AWS", "aws"), "equality is not subject to the guard")
}

func TestMentionedIn(t *testing.T) {
	n := newTestNormalizer()

	text := "Built backend services with Python and deployed to AWS Lambda."
	assert.True(t, n.MentionedIn(text, "python"))
	assert.True(t, n.MentionedIn(text, "AWS"))
	assert.False(t, n.MentionedIn(text, "Java"))
	assert.True(t, n.MentionedIn("Shipped ReactJS dashboards", "React"), "alias resolves per token")
}
