package normalize

import (
	"slices"

	"github.com/jonathan/prep-readiness/internal/skills"
	"github.com/jonathan/prep-readiness/internal/types"
)

// StoredSkills maps classifier output onto the seven persisted slots.
// The "other" bucket gets the default skills only when nothing was classified.
func StoredSkills(extracted types.ExtractedSkills) types.StoredSkills {
	other := []string{}
	if !extracted.HasAny {
		other = slices.Clone(DefaultOtherSkills)
	}
	list := func(id types.CategoryID) []string {
		return append([]string{}, extracted.ByCategory[id]...)
	}
	return types.StoredSkills{
		CoreCS:    list(types.CategoryCoreCS),
		Languages: list(types.CategoryLanguages),
		Web:       list(types.CategoryWeb),
		Data:      list(types.CategoryData),
		Cloud:     list(types.CategoryCloudDevOps),
		Testing:   list(types.CategoryTesting),
		Other:     other,
	}
}

// ClassifiedSkills re-expands stored slots into the registry key set.
// The "other" bucket is not a registry category and is left out.
func ClassifiedSkills(stored types.StoredSkills) types.ExtractedSkills {
	byCategory := map[types.CategoryID][]string{
		types.CategoryCoreCS:      nonNil(stored.CoreCS),
		types.CategoryLanguages:   nonNil(stored.Languages),
		types.CategoryWeb:         nonNil(stored.Web),
		types.CategoryData:        nonNil(stored.Data),
		types.CategoryCloudDevOps: nonNil(stored.Cloud),
		types.CategoryTesting:     nonNil(stored.Testing),
	}
	ids := make([]types.CategoryID, 0, len(byCategory))
	for _, id := range skills.CategoryIDs() {
		if len(byCategory[id]) > 0 {
			ids = append(ids, id)
		}
	}
	return types.ExtractedSkills{ByCategory: byCategory, CategoryIDs: ids, HasAny: len(ids) > 0}
}

// StoredRoundMapping flattens a round mapping; the description becomes the single focus area
func StoredRoundMapping(mapping types.RoundMapping) []types.RoundMappingItem {
	out := make([]types.RoundMappingItem, 0, len(mapping.Rounds))
	for _, r := range mapping.Rounds {
		focus := []string{}
		if r.Description != "" {
			focus = append(focus, r.Description)
		}
		out = append(out, types.RoundMappingItem{
			RoundTitle:   r.Name,
			FocusAreas:   focus,
			WhyItMatters: r.WhyItMatters,
		})
	}
	return out
}

// StoredChecklist converts generator rounds to the persisted shape
func StoredChecklist(rounds []types.ChecklistRound) []types.ChecklistRoundStored {
	out := make([]types.ChecklistRoundStored, 0, len(rounds))
	for _, r := range rounds {
		out = append(out, types.ChecklistRoundStored{RoundTitle: r.Name, Items: nonNil(r.Items)})
	}
	return out
}

// StoredPlan converts generator day-groups to the persisted shape
func StoredPlan(plan []types.DayPlan) []types.PlanDayStored {
	out := make([]types.PlanDayStored, 0, len(plan))
	for _, d := range plan {
		out = append(out, types.PlanDayStored{Day: d.Day, Focus: d.Title, Tasks: nonNil(d.Items)})
	}
	return out
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	return slices.Clone(in)
}
