package skills

import (
	"strings"

	"github.com/jonathan/prep-readiness/internal/types"
)

// FallbackDisplayName is shown when no category matched
const FallbackDisplayName = "General fresher stack"

// Classify detects registry keywords in text. It has no hidden state: identical
// text always yields identical output, and empty text yields an empty result.
func Classify(text string) types.ExtractedSkills {
	byCategory := make(map[types.CategoryID][]string, len(registry))
	categoryIDs := make([]types.CategoryID, 0, len(registry))

	for i, cat := range registry {
		found := make([]string, 0)
		seen := make(map[string]struct{})
		for j, kw := range cat.Keywords {
			if _, dup := seen[kw]; dup {
				continue
			}
			if keywordPatterns[i][j].MatchString(text) {
				found = append(found, kw)
				seen[kw] = struct{}{}
			}
		}
		byCategory[cat.ID] = found
		if len(found) > 0 {
			categoryIDs = append(categoryIDs, cat.ID)
		}
	}

	return types.ExtractedSkills{
		ByCategory:  byCategory,
		CategoryIDs: categoryIDs,
		HasAny:      len(categoryIDs) > 0,
	}
}

// DisplayName joins the matched skills in registry order
func DisplayName(extracted types.ExtractedSkills) string {
	if !extracted.HasAny {
		return FallbackDisplayName
	}
	var all []string
	for _, id := range extracted.CategoryIDs {
		all = append(all, extracted.ByCategory[id]...)
	}
	if len(all) == 0 {
		return FallbackDisplayName
	}
	return strings.Join(all, ", ")
}
