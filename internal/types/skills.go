// Package types provides type definitions for structured data used throughout the prep-readiness system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CategoryID identifies a skill category in the registry
type CategoryID string

// Registry category identifiers, in registry order
const (
	CategoryCoreCS      CategoryID = "coreCS"
	CategoryLanguages   CategoryID = "languages"
	CategoryWeb         CategoryID = "web"
	CategoryData        CategoryID = "data"
	CategoryCloudDevOps CategoryID = "cloudDevOps"
	CategoryTesting     CategoryID = "testing"
)

// ExtractedSkills is the classifier output: matched keyword literals grouped by category
type ExtractedSkills struct {
	ByCategory  map[CategoryID][]string `json:"byCategory"`
	CategoryIDs []CategoryID            `json:"categoryIds"`
	HasAny      bool                    `json:"hasAny"`
}

// Has reports whether the category has at least one matched literal
func (e ExtractedSkills) Has(id CategoryID) bool {
	for _, present := range e.CategoryIDs {
		if present == id {
			return true
		}
	}
	return false
}

// List returns the matched literals for a category (nil when absent)
func (e ExtractedSkills) List(id CategoryID) []string {
	return e.ByCategory[id]
}

// Confidence is a user self-assessment for one skill
type Confidence string

// Confidence values
const (
	ConfidenceKnow     Confidence = "know"
	ConfidencePractice Confidence = "practice"
)

// Valid reports whether c is one of the known confidence values
func (c Confidence) Valid() bool {
	return c == ConfidenceKnow || c == ConfidencePractice
}
