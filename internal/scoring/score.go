// Package scoring computes the static base readiness score and the live score driven by skill confidence.
package scoring

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/prep-readiness/internal/types"
)

// Score bounds
const (
	MinScore = 0
	MaxScore = 100
	// TopWeakSkills is how many weak skills the view surfaces
	TopWeakSkills = 3
)

const (
	baseStart       = 35
	perCategory     = 5
	categoryCap     = 30
	companyBonus    = 10
	roleBonus       = 10
	longJDBonus     = 10
	longJDThreshold = 800
	knowDelta       = 2
	practiceDelta   = -2
)

// Clamp bounds a score to [MinScore, MaxScore]
func Clamp(score int) int {
	return max(MinScore, min(MaxScore, score))
}

// Base computes the base score from the trimmed inputs and the number of present categories.
// It is computed once at record creation and never recomputed.
func Base(company, role, jdText string, presentCategories int) int {
	score := baseStart + min(presentCategories*perCategory, categoryCap)
	if strings.TrimSpace(company) != "" {
		score += companyBonus
	}
	if strings.TrimSpace(role) != "" {
		score += roleBonus
	}
	if utf8.RuneCountInString(strings.TrimSpace(jdText)) > longJDThreshold {
		score += longJDBonus
	}
	return Clamp(score)
}

// Live applies +2 per "know" and -2 per other skill to base, then clamps.
// Skills without an entry count as "practice". A literal listed twice counts twice.
func Live(base int, confidence map[string]types.Confidence, skills []string) int {
	delta := 0
	for _, skill := range skills {
		if confidence[skill] == types.ConfidenceKnow {
			delta += knowDelta
		} else {
			delta += practiceDelta
		}
	}
	return Clamp(base + delta)
}

// WithDefaults returns a copy of confidence where every skill lacking a valid value is set to "practice".
// Entries for skills outside the list are kept.
func WithDefaults(confidence map[string]types.Confidence, skills []string) map[string]types.Confidence {
	out := make(map[string]types.Confidence, len(confidence)+len(skills))
	for k, v := range confidence {
		out[k] = v
	}
	for _, skill := range skills {
		if !out[skill].Valid() {
			out[skill] = types.ConfidencePractice
		}
	}
	return out
}

// WeakSkills returns up to n skills still marked "practice", in skill order
func WeakSkills(confidence map[string]types.Confidence, skills []string, n int) []string {
	weak := make([]string, 0, n)
	seen := make(map[string]struct{})
	for _, skill := range skills {
		if len(weak) == n {
			break
		}
		if confidence[skill] == types.ConfidenceKnow {
			continue
		}
		if _, dup := seen[skill]; dup {
			continue
		}
		seen[skill] = struct{}{}
		weak = append(weak, skill)
	}
	return weak
}
