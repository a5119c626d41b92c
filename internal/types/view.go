// Package types provides type definitions for structured data used throughout the prep-readiness system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// SkillsView re-expands stored skills into the registry key set for display
type SkillsView struct {
	ByCategory  map[CategoryID][]string `json:"byCategory"`
	CategoryIDs []CategoryID            `json:"categoryIds"`
	HasAny      bool                    `json:"hasAny"`
	OtherSkills []string                `json:"otherSkills,omitempty"`
}

// View is the read-only projection of a Record. It is recomputed on every read and never persisted.
type View struct {
	ID                 string                `json:"id"`
	CreatedAt          time.Time             `json:"createdAt"`
	UpdatedAt          time.Time             `json:"updatedAt"`
	Company            string                `json:"company"`
	Role               string                `json:"role"`
	JDText             string                `json:"jdText"`
	ExtractedSkills    SkillsView            `json:"extractedSkills"`
	Plan               []DayPlan             `json:"plan"`
	Checklist          []ChecklistRound      `json:"checklist"`
	Questions          []string              `json:"questions"`
	ReadinessScore     int                   `json:"readinessScore"`
	BaseScore          int                   `json:"baseScore"`
	SkillConfidenceMap map[string]Confidence `json:"skillConfidenceMap"`
	CompanyIntel       *CompanyProfile       `json:"companyIntel,omitempty"`
	RoundMapping       *RoundMapping         `json:"roundMapping,omitempty"`
	TopWeakSkills      []string              `json:"topWeakSkills"`
	// InferenceDerived is set when CompanyIntel or RoundMapping were re-derived for display only.
	InferenceDerived bool `json:"inferenceDerived,omitempty"`
}

// AllSkills returns categorized skills in registry order followed by the "other" bucket
func (v View) AllSkills() []string {
	var all []string
	for _, id := range v.ExtractedSkills.CategoryIDs {
		all = append(all, v.ExtractedSkills.ByCategory[id]...)
	}
	return append(all, v.ExtractedSkills.OtherSkills...)
}
