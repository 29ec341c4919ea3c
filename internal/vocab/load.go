package vocab

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xeipuuv/gojsonschema"
)

// overrideSchema validates a vocabulary override file before it is merged
// over the defaults. Every field is optional; present fields replace the
// corresponding default table wholesale.
const overrideSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "additionalProperties": false,
  "properties": {
    "skill_aliases": {
      "type": "object",
      "additionalProperties": {"type": "string", "minLength": 1}
    },
    "verb_swaps": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["weak", "strong"],
        "additionalProperties": false,
        "properties": {
          "weak": {"type": "string", "minLength": 1},
          "strong": {"type": "string", "minLength": 1}
        }
      }
    },
    "headings": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["kind", "synonyms"],
        "additionalProperties": false,
        "properties": {
          "kind": {"type": "string", "enum": ["experience", "education", "skills", "projects", "summary"]},
          "synonyms": {"type": "array", "items": {"type": "string", "minLength": 1}, "minItems": 1}
        }
      }
    },
    "required_inline": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "preferred_inline": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "known_skills": {"type": "array", "items": {"type": "string", "minLength": 1}},
    "expectations": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["phrase", "meaning"],
        "additionalProperties": false,
        "properties": {
          "phrase": {"type": "string", "minLength": 1},
          "meaning": {"type": "string", "minLength": 1}
        }
      }
    }
  }
}`

type override struct {
	SkillAliases    map[string]string `json:"skill_aliases"`
	VerbSwaps       []VerbSwap        `json:"verb_swaps"`
	Headings        []HeadingGroup    `json:"headings"`
	RequiredInline  []string          `json:"required_inline"`
	PreferredInline []string          `json:"preferred_inline"`
	KnownSkills     []string          `json:"known_skills"`
	Expectations    []Expectation     `json:"expectations"`
}

// Load returns the default tables with the override file at path merged in.
// An empty path returns the defaults unchanged.
func Load(path string) (*Tables, error) {
	tables := Default()
	if path == "" {
		return tables, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Message: "read override file", Cause: err}
	}

	if err := validateOverride(path, data); err != nil {
		return nil, err
	}

	var ov override
	if err := json.Unmarshal(data, &ov); err != nil {
		return nil, &LoadError{Path: path, Message: "decode override file", Cause: err}
	}

	tables.merge(&ov)
	return tables, nil
}

func validateOverride(path string, data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(overrideSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &LoadError{Path: path, Message: "validate override file", Cause: err}
	}
	if result.Valid() {
		return nil
	}

	verr := &ValidationError{Path: path}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		verr.Errors = append(verr.Errors, fmt.Sprintf("%s: %s", field, desc.Description()))
	}
	return verr
}

func (t *Tables) merge(ov *override) {
	if ov.SkillAliases != nil {
		t.SkillAliases = ov.SkillAliases
	}
	if ov.VerbSwaps != nil {
		t.VerbSwaps = ov.VerbSwaps
	}
	if ov.Headings != nil {
		t.Headings = ov.Headings
	}
	if ov.RequiredInline != nil {
		t.RequiredInline = ov.RequiredInline
	}
	if ov.PreferredInline != nil {
		t.PreferredInline = ov.PreferredInline
	}
	if ov.KnownSkills != nil {
		t.KnownSkills = ov.KnownSkills
	}
	if ov.Expectations != nil {
		t.Expectations = ov.Expectations
	}
}
