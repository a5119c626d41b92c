// Package types provides type definitions for structured data used throughout the prep-readiness system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// ChecklistRound is one interview round of the preparation checklist
type ChecklistRound struct {
	Round int      `json:"round"`
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// DayPlan is one day-group of the preparation plan
type DayPlan struct {
	Day   int      `json:"day"`
	Title string   `json:"title"`
	Items []string `json:"items"`
}

// CompanySize is the inferred size bucket of a company
type CompanySize string

// Company size buckets
const (
	SizeStartup    CompanySize = "Startup"
	SizeMidSize    CompanySize = "Mid-size"
	SizeEnterprise CompanySize = "Enterprise"
)

// CompanyProfile is the heuristic company intel derived from the company name and JD text
type CompanyProfile struct {
	CompanyName        string      `json:"companyName"`
	Industry           string      `json:"industry"`
	SizeCategory       CompanySize `json:"sizeCategory"`
	SizeLabel          string      `json:"sizeLabel"` // e.g. "Enterprise (2000+)"
	TypicalHiringFocus string      `json:"typicalHiringFocus"`
}

// RoundMappingEntry describes one inferred interview round
type RoundMappingEntry struct {
	Round        int    `json:"round"`
	Name         string `json:"name"`
	Description  string `json:"description"`
	WhyItMatters string `json:"whyItMatters"`
}

// RoundMapping is the ordered list of inferred interview rounds
type RoundMapping struct {
	Rounds []RoundMappingEntry `json:"rounds"`
}
