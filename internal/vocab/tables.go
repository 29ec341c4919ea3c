// Package vocab holds the read-only vocabulary tables shared by the tailoring
// components: skill aliases, verb substitutions, section heading synonyms,
// requirement marker phrases, and culture-signal expectations. Tables are
// loaded once at process start and passed by reference; no write path exists
// at runtime.
package vocab

// VerbSwap is a single weak-to-strong verb substitution. Swaps are kept in a
// slice, not a map, so application order is fixed.
type VerbSwap struct {
	Weak   string `json:"weak"`
	Strong string `json:"strong"`
}

// HeadingGroup maps a section kind to the heading phrases that introduce it.
// Phrases are lower-case; matching tolerates trailing punctuation.
type HeadingGroup struct {
	Kind     string   `json:"kind"`
	Synonyms []string `json:"synonyms"`
}

// Expectation maps a culture-signal phrase to a plain-language reading of it
type Expectation struct {
	Phrase  string `json:"phrase"`
	Meaning string `json:"meaning"`
}

// Tables is the full vocabulary set. All fields are treated as immutable
// after construction.
type Tables struct {
	// SkillAliases maps lower-cased variants to the canonical form
	SkillAliases map[string]string

	// SuffixStrips are trailing fragments removed during canonicalization
	SuffixStrips []string

	// VerbSwaps lists weak verbs and their conservative replacements,
	// applied in order
	VerbSwaps []VerbSwap

	// StrongVerbs are verbs left untouched by the rewriter
	StrongVerbs []string

	// Headings groups résumé section heading synonyms by section kind
	Headings []HeadingGroup

	// RequiredHeaders and PreferredHeaders introduce skill sections in a
	// job posting; SkipHeaders introduce sections with no skill content
	RequiredHeaders       []string
	PreferredHeaders      []string
	ResponsibilityHeaders []string
	SkipHeaders           []string

	// RequiredInline and PreferredInline are marker phrases that classify
	// a skill mentioned mid-sentence
	RequiredInline  []string
	PreferredInline []string

	// ActionVerbs mark a sentence or bullet as a responsibility
	ActionVerbs []string

	// KnownSkills is the curated skill lexicon scanned for in posting
	// text, in lookup order
	KnownSkills []string

	// Expectations are culture-signal phrases with their plain readings
	Expectations []Expectation
}

// Default returns the built-in vocabulary tables
func Default() *Tables {
	return &Tables{
		SkillAliases: map[string]string{
			"reactjs":               "react",
			"react.js":              "react",
			"react js":              "react",
			"vuejs":                 "vue",
			"vue.js":                "vue",
			"vue js":                "vue",
			"angularjs":             "angular",
			"angular.js":            "angular",
			"nodejs":                "node",
			"node.js":               "node",
			"node js":               "node",
			"expressjs":             "express",
			"express.js":            "express",
			"nextjs":                "next.js",
			"next js":               "next.js",
			"golang":                "go",
			"python3":               "python",
			"python 3":              "python",
			"py":                    "python",
			"js":                    "javascript",
			"ts":                    "typescript",
			"cpp":                   "c++",
			"c plus plus":           "c++",
			"csharp":                "c#",
			"c sharp":               "c#",
			"postgres":              "postgresql",
			"mongo":                 "mongodb",
			"mongo db":              "mongodb",
			"amazon web services":   "aws",
			"google cloud":          "gcp",
			"google cloud platform": "gcp",
			"microsoft azure":       "azure",
			"k8s":                   "kubernetes",
			"kube":                  "kubernetes",
			"ci/cd":                 "cicd",
			"ci cd":                 "cicd",
			"scikit-learn":          "sklearn",
			"scikit learn":          "sklearn",
			"tensor flow":           "tensorflow",
			"py torch":              "pytorch",
			"rest api":              "rest",
			"restful":               "rest",
			"restful api":           "rest",
		},
		SuffixStrips: []string{".js", ".py", ".ts", ".rs"},
		VerbSwaps: []VerbSwap{
			{Weak: "worked on", Strong: "built"},
			{Weak: "helped with", Strong: "contributed to"},
			{Weak: "was responsible for", Strong: "managed"},
			{Weak: "was in charge of", Strong: "led"},
			{Weak: "assisted with", Strong: "assisted in"},
			{Weak: "tried to", Strong: "worked to"},
			{Weak: "did", Strong: "executed"},
			{Weak: "made", Strong: "created"},
		},
		StrongVerbs: []string{
			"developed", "built", "created", "designed", "implemented",
			"led", "managed", "architected", "engineered", "deployed",
			"optimized", "improved", "increased", "reduced", "automated",
			"launched", "delivered", "established", "spearheaded", "drove",
		},
		Headings: []HeadingGroup{
			{Kind: "experience", Synonyms: []string{
				"work experience", "professional experience", "employment history",
				"work history", "experience",
			}},
			{Kind: "education", Synonyms: []string{
				"education", "academic background", "academic history",
			}},
			{Kind: "skills", Synonyms: []string{
				"technical skills", "skills", "core competencies",
				"technologies", "tools & technologies", "programming languages",
			}},
			{Kind: "projects", Synonyms: []string{
				"projects", "personal projects", "side projects", "portfolio",
				"open source",
			}},
			{Kind: "summary", Synonyms: []string{
				"summary", "professional summary", "about me", "about",
				"objective", "profile",
			}},
		},
		RequiredHeaders: []string{
			"required skills", "required qualifications", "required experience",
			"required", "requirements", "must have", "what you'll need",
			"what you need", "what we're looking for", "minimum qualifications",
			"basic qualifications", "qualifications", "who you are",
		},
		PreferredHeaders: []string{
			"preferred skills", "preferred qualifications", "preferred experience",
			"preferred", "nice to have", "bonus points", "bonus skills", "bonus",
			"a plus", "ideally", "additional skills", "additional qualifications",
			"desired skills", "desired qualifications", "extra credit",
		},
		ResponsibilityHeaders: []string{
			"responsibilities", "key responsibilities", "what you'll do",
			"what you will do", "what you'll be doing", "your role", "the role",
			"about the role", "about this role", "day to day",
		},
		SkipHeaders: []string{
			"benefits", "perks", "compensation", "salary", "about us",
			"about the company", "who we are", "our culture", "our values",
			"our mission", "how to apply", "equal opportunity", "diversity",
		},
		RequiredInline: []string{
			"must have", "required", "is a must",
		},
		PreferredInline: []string{
			"nice to have", "preferred", "bonus", "a plus", "ideally",
		},
		ActionVerbs: []string{
			"lead", "build", "own", "design", "develop", "create", "manage",
			"implement", "maintain", "drive", "deliver", "collaborate",
			"write", "ship", "review", "mentor", "operate", "support",
		},
		KnownSkills: []string{
			"python", "javascript", "typescript", "java", "c++", "c#", "go",
			"golang", "rust", "ruby", "php", "swift", "kotlin", "scala",
			"react", "reactjs", "react.js", "vue", "angular", "svelte",
			"next.js", "html", "css", "sass", "tailwind", "bootstrap",
			"node.js", "nodejs", "node", "express", "fastapi", "django",
			"flask", "spring", "rails", "graphql", "rest", "restful",
			"microservices",
			"sql", "postgresql", "postgres", "mysql", "mongodb", "redis",
			"elasticsearch", "dynamodb", "sqlite", "cassandra",
			"aws", "amazon web services", "azure", "gcp", "google cloud",
			"docker", "kubernetes", "k8s", "terraform", "jenkins",
			"github actions", "gitlab ci", "ansible",
			"pandas", "numpy", "scikit-learn", "sklearn", "tensorflow",
			"pytorch", "spark", "airflow", "dbt", "machine learning",
			"deep learning", "nlp",
			"git", "linux", "bash", "agile", "scrum", "kanban", "ci/cd",
			"tdd", "unit testing",
			"communication", "leadership", "teamwork", "problem solving",
			"project management",
		},
		Expectations: []Expectation{
			{Phrase: "fast-paced", Meaning: "Expect tight deadlines and quick pivots"},
			{Phrase: "fast paced", Meaning: "Expect tight deadlines and quick pivots"},
			{Phrase: "startup", Meaning: "Less structure, more ownership, possible long hours"},
			{Phrase: "self-starter", Meaning: "Minimal supervision, must be proactive"},
			{Phrase: "self starter", Meaning: "Minimal supervision, must be proactive"},
			{Phrase: "wear many hats", Meaning: "Broad responsibilities beyond job title"},
			{Phrase: "entrepreneurial", Meaning: "Expected to take initiative and ownership"},
			{Phrase: "dynamic environment", Meaning: "Frequent changes and ambiguity"},
			{Phrase: "move fast", Meaning: "Speed valued over perfection"},
			{Phrase: "hit the ground running", Meaning: "Minimal onboarding, immediate expectations"},
			{Phrase: "ambiguity", Meaning: "Unclear requirements, must figure things out"},
			{Phrase: "greenfield", Meaning: "New project, no existing codebase"},
			{Phrase: "legacy", Meaning: "Old codebase, technical debt expected"},
		},
	}
}
