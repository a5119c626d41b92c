// Package skills provides keyword-based classification of job description text into skill categories.
package skills

import (
	"regexp"

	"github.com/jonathan/prep-readiness/internal/types"
)

// Category is one entry of the skill registry
type Category struct {
	ID       types.CategoryID
	Label    string
	Keywords []string
}

// registry is initialized once; order drives every enumeration of categories
var registry = []Category{
	{
		ID:       types.CategoryCoreCS,
		Label:    "Core CS",
		Keywords: []string{"DSA", "OOP", "DBMS", "OS", "Networks"},
	},
	{
		ID:       types.CategoryLanguages,
		Label:    "Languages",
		Keywords: []string{"Java", "Python", "JavaScript", "TypeScript", "C", "C++", "C#", "Go"},
	},
	{
		ID:       types.CategoryWeb,
		Label:    "Web",
		Keywords: []string{"React", "Next.js", "Node.js", "Express", "REST", "GraphQL"},
	},
	{
		ID:       types.CategoryData,
		Label:    "Data",
		Keywords: []string{"SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis"},
	},
	{
		ID:       types.CategoryCloudDevOps,
		Label:    "Cloud/DevOps",
		Keywords: []string{"AWS", "Azure", "GCP", "Docker", "Kubernetes", "CI/CD", "Linux"},
	},
	{
		ID:       types.CategoryTesting,
		Label:    "Testing",
		Keywords: []string{"Selenium", "Cypress", "Playwright", "JUnit", "PyTest"},
	},
}

// keywordPatterns holds one compiled matcher per (category, keyword), indexed like registry
var keywordPatterns = compilePatterns(registry)

// wordChars are the characters that may not touch a keyword on either side
const wordChars = `0-9A-Za-z_`

func compilePatterns(categories []Category) [][]*regexp.Regexp {
	patterns := make([][]*regexp.Regexp, len(categories))
	for i, cat := range categories {
		patterns[i] = make([]*regexp.Regexp, len(cat.Keywords))
		for j, kw := range cat.Keywords {
			patterns[i][j] = keywordPattern(kw)
		}
	}
	return patterns
}

// keywordPattern matches kw case-insensitively when bounded by non-word characters or string edges.
// Literals such as "C++" or "CI/CD" are escaped first.
func keywordPattern(kw string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:^|[^` + wordChars + `])` + regexp.QuoteMeta(kw) + `(?:[^` + wordChars + `]|$)`)
}

// Categories returns a copy of the registry in registry order
func Categories() []Category {
	out := make([]Category, len(registry))
	for i, cat := range registry {
		kws := make([]string, len(cat.Keywords))
		copy(kws, cat.Keywords)
		out[i] = Category{ID: cat.ID, Label: cat.Label, Keywords: kws}
	}
	return out
}

// CategoryIDs returns the registry ids in registry order
func CategoryIDs() []types.CategoryID {
	ids := make([]types.CategoryID, len(registry))
	for i, cat := range registry {
		ids[i] = cat.ID
	}
	return ids
}

// Label returns the display label of a category, or the id itself when unknown
func Label(id types.CategoryID) string {
	for _, cat := range registry {
		if cat.ID == id {
			return cat.Label
		}
	}
	return string(id)
}
