package algorithms

import (
	"regexp"
	"sort"
	"strings"
)

// knownSkills is the dictionary matched against CV text. Multi-word
// entries are matched as phrases, single words on token boundaries.
var knownSkills = []string{
	"python", "java", "javascript", "typescript", "go", "golang", "c++", "c#",
	"php", "ruby", "rust", "kotlin", "swift", "scala", "sql", "nosql",
	"postgresql", "mysql", "mongodb", "redis", "elasticsearch",
	"html", "css", "react", "angular", "vue", "django", "flask", "spring",
	"node.js", "express", "laravel", "rails",
	"docker", "kubernetes", "terraform", "ansible", "jenkins", "git",
	"aws", "azure", "gcp", "linux", "ci/cd",
	"machine learning", "deep learning", "data analysis", "data science",
	"nlp", "computer vision", "tensorflow", "pytorch", "pandas", "numpy",
	"project management", "agile", "scrum", "kanban",
	"communication", "leadership", "teamwork", "problem solving",
	"negotiation", "time management", "critical thinking",
	"accounting", "marketing", "sales", "customer service", "hr",
	"recruitment", "copywriting", "seo", "ux", "ui", "figma", "photoshop",
}

var tokenSplitter = regexp.MustCompile(`[^a-z0-9+#./]+`)

// ExtractSkills finds known skills mentioned in free-form CV text.
// Matches are returned in dictionary order, deduplicated.
func ExtractSkills(text string) []string {
	if text == "" {
		return []string{}
	}

	lower := strings.ToLower(text)

	tokens := tokenSplitter.Split(lower, -1)
	tokenSet := make(map[string]bool, len(tokens))
	for _, tok := range tokens {
		if tok != "" {
			tokenSet[tok] = true
		}
	}

	var found []string
	for _, skill := range knownSkills {
		if strings.ContainsAny(skill, " /.") || strings.ContainsAny(skill, "+#") {
			// Phrase or symbol-bearing skill, substring match
			if strings.Contains(lower, skill) {
				found = append(found, skill)
			}
			continue
		}
		if tokenSet[skill] {
			found = append(found, skill)
		}
	}

	sort.Strings(found)
	return found
}
