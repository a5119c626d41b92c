// Package types provides type definitions for structured data used throughout the prep-readiness system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "time"

// StoredSkills is the canonical, persisted skill grouping (fixed seven slots)
type StoredSkills struct {
	CoreCS    []string `json:"coreCS"`
	Languages []string `json:"languages"`
	Web       []string `json:"web"`
	Data      []string `json:"data"`
	Cloud     []string `json:"cloud"`
	Testing   []string `json:"testing"`
	Other     []string `json:"other"`
}

// RoundMappingItem is the persisted shape of one inferred round
type RoundMappingItem struct {
	RoundTitle   string   `json:"roundTitle"`
	FocusAreas   []string `json:"focusAreas"`
	WhyItMatters string   `json:"whyItMatters"`
}

// ChecklistRoundStored is the persisted shape of a checklist round
type ChecklistRoundStored struct {
	RoundTitle string   `json:"roundTitle"`
	Items      []string `json:"items"`
}

// PlanDayStored is the persisted shape of a plan day-group
type PlanDayStored struct {
	Day   int      `json:"day"`
	Focus string   `json:"focus"`
	Tasks []string `json:"tasks"`
}

// Record is the canonical persisted analysis entry.
// BaseScore is fixed at creation; FinalScore tracks SkillConfidenceMap.
type Record struct {
	ID                 string                 `json:"id"`
	CreatedAt          time.Time              `json:"createdAt"`
	Company            string                 `json:"company"`
	Role               string                 `json:"role"`
	JDText             string                 `json:"jdText"`
	ExtractedSkills    StoredSkills           `json:"extractedSkills"`
	RoundMapping       []RoundMappingItem     `json:"roundMapping"`
	Checklist          []ChecklistRoundStored `json:"checklist"`
	Plan7Days          []PlanDayStored        `json:"plan7Days"`
	Questions          []string               `json:"questions"`
	BaseScore          int                    `json:"baseScore"`
	SkillConfidenceMap map[string]Confidence  `json:"skillConfidenceMap"`
	FinalScore         int                    `json:"finalScore"`
	UpdatedAt          time.Time              `json:"updatedAt"`
	CompanyIntel       *CompanyProfile        `json:"companyIntel"`
}

// AllSkills returns every skill of the record in slot order, "other" last.
// Literals shared by two categories appear once per category.
func (s StoredSkills) AllSkills() []string {
	all := make([]string, 0, len(s.CoreCS)+len(s.Languages)+len(s.Web)+len(s.Data)+len(s.Cloud)+len(s.Testing)+len(s.Other))
	for _, group := range [][]string{s.CoreCS, s.Languages, s.Web, s.Data, s.Cloud, s.Testing, s.Other} {
		all = append(all, group...)
	}
	return all
}

// Clone returns a deep copy so callers never share slices or maps with the store
func (r Record) Clone() Record {
	out := r
	out.ExtractedSkills = StoredSkills{
		CoreCS:    cloneStrings(r.ExtractedSkills.CoreCS),
		Languages: cloneStrings(r.ExtractedSkills.Languages),
		Web:       cloneStrings(r.ExtractedSkills.Web),
		Data:      cloneStrings(r.ExtractedSkills.Data),
		Cloud:     cloneStrings(r.ExtractedSkills.Cloud),
		Testing:   cloneStrings(r.ExtractedSkills.Testing),
		Other:     cloneStrings(r.ExtractedSkills.Other),
	}
	out.RoundMapping = make([]RoundMappingItem, len(r.RoundMapping))
	for i, item := range r.RoundMapping {
		item.FocusAreas = cloneStrings(item.FocusAreas)
		out.RoundMapping[i] = item
	}
	out.Checklist = make([]ChecklistRoundStored, len(r.Checklist))
	for i, round := range r.Checklist {
		round.Items = cloneStrings(round.Items)
		out.Checklist[i] = round
	}
	out.Plan7Days = make([]PlanDayStored, len(r.Plan7Days))
	for i, day := range r.Plan7Days {
		day.Tasks = cloneStrings(day.Tasks)
		out.Plan7Days[i] = day
	}
	out.Questions = cloneStrings(r.Questions)
	out.SkillConfidenceMap = make(map[string]Confidence, len(r.SkillConfidenceMap))
	for k, v := range r.SkillConfidenceMap {
		out.SkillConfidenceMap[k] = v
	}
	if r.CompanyIntel != nil {
		intel := *r.CompanyIntel
		out.CompanyIntel = &intel
	}
	return out
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}
