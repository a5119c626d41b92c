package normalize

import (
	"strings"

	"github.com/jonathan/prep-readiness/internal/scoring"
	"github.com/jonathan/prep-readiness/internal/types"
)

// View projects a canonical record for display. Nothing here is persisted.
func View(rec types.Record) types.View {
	classified := ClassifiedSkills(rec.ExtractedSkills)

	skillsView := types.SkillsView{
		ByCategory:  classified.ByCategory,
		CategoryIDs: classified.CategoryIDs,
		HasAny:      classified.HasAny || len(rec.ExtractedSkills.Other) > 0,
	}
	if len(rec.ExtractedSkills.Other) > 0 {
		skillsView.OtherSkills = nonNil(rec.ExtractedSkills.Other)
	}

	plan := make([]types.DayPlan, 0, len(rec.Plan7Days))
	for _, d := range rec.Plan7Days {
		plan = append(plan, types.DayPlan{Day: d.Day, Title: d.Focus, Items: nonNil(d.Tasks)})
	}

	checklist := make([]types.ChecklistRound, 0, len(rec.Checklist))
	for i, c := range rec.Checklist {
		checklist = append(checklist, types.ChecklistRound{Round: i + 1, Name: c.RoundTitle, Items: nonNil(c.Items)})
	}

	var mapping *types.RoundMapping
	if len(rec.RoundMapping) > 0 {
		mapping = &types.RoundMapping{Rounds: make([]types.RoundMappingEntry, 0, len(rec.RoundMapping))}
		for i, r := range rec.RoundMapping {
			mapping.Rounds = append(mapping.Rounds, types.RoundMappingEntry{
				Round:        i + 1,
				Name:         r.RoundTitle,
				Description:  strings.Join(r.FocusAreas, " + "),
				WhyItMatters: r.WhyItMatters,
			})
		}
	}

	var intel *types.CompanyProfile
	if rec.CompanyIntel != nil {
		p := *rec.CompanyIntel
		intel = &p
	}

	all := rec.ExtractedSkills.AllSkills()
	confidence := scoring.WithDefaults(rec.SkillConfidenceMap, all)

	return types.View{
		ID:                 rec.ID,
		CreatedAt:          rec.CreatedAt,
		UpdatedAt:          rec.UpdatedAt,
		Company:            rec.Company,
		Role:               rec.Role,
		JDText:             rec.JDText,
		ExtractedSkills:    skillsView,
		Plan:               plan,
		Checklist:          checklist,
		Questions:          nonNil(rec.Questions),
		ReadinessScore:     rec.FinalScore,
		BaseScore:          rec.BaseScore,
		SkillConfidenceMap: confidence,
		CompanyIntel:       intel,
		RoundMapping:       mapping,
		TopWeakSkills:      scoring.WeakSkills(confidence, all, scoring.TopWeakSkills),
	}
}
