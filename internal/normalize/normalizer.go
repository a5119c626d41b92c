// Package normalize reconciles stored history items of any known shape into canonical records,
// and projects canonical records into read-optimized views.
package normalize

import (
	"bytes"
	"encoding/json"
	"math"
	"slices"
	"time"

	"github.com/jonathan/prep-readiness/internal/prep"
	"github.com/jonathan/prep-readiness/internal/scoring"
	"github.com/jonathan/prep-readiness/internal/types"
	"github.com/tidwall/gjson"
)

// DefaultOtherSkills fills the "other" bucket when an analysis found no category
var DefaultOtherSkills = []string{"Communication", "Problem solving", "Basic coding", "Projects"}

// Normalizer decodes stored items. Now supplies the fallback creation time for items without a parsable one.
type Normalizer struct {
	Now func() time.Time
}

// New returns a Normalizer using the wall clock
func New() *Normalizer {
	return &Normalizer{Now: time.Now}
}

// Batch decodes a whole history blob. Items that cannot be reconciled are skipped and counted.
// A blob that is not a JSON array counts as a single corrupted item; an empty blob is an empty history.
func (n *Normalizer) Batch(blob []byte) ([]types.Record, int) {
	if len(bytes.TrimSpace(blob)) == 0 {
		return []types.Record{}, 0
	}
	if !gjson.ValidBytes(blob) {
		return []types.Record{}, 1
	}
	parsed := gjson.ParseBytes(blob)
	if !parsed.IsArray() {
		return []types.Record{}, 1
	}

	records := make([]types.Record, 0)
	corrupted := 0
	parsed.ForEach(func(_, item gjson.Result) bool {
		rec, err := n.decode(item)
		if err != nil {
			corrupted++
			return true
		}
		records = append(records, rec)
		return true
	})
	return records, corrupted
}

// Record decodes a single stored item
func (n *Normalizer) Record(raw []byte) (types.Record, error) {
	if !gjson.ValidBytes(raw) {
		return types.Record{}, &CorruptRecordError{Message: "invalid JSON"}
	}
	return n.decode(gjson.ParseBytes(raw))
}

// decode requires a non-empty string id and a string jdText; every other field is reconciled or defaulted
func (n *Normalizer) decode(item gjson.Result) (types.Record, error) {
	if !item.IsObject() {
		return types.Record{}, &CorruptRecordError{Message: "item is not an object"}
	}
	id := item.Get("id")
	if id.Type != gjson.String || id.Str == "" {
		return types.Record{}, &CorruptRecordError{Message: "missing id"}
	}
	jd := item.Get("jdText")
	if jd.Type != gjson.String {
		return types.Record{}, &CorruptRecordError{Message: "missing jdText"}
	}

	createdAt, ok := timestamp(item.Get("createdAt"))
	if !ok {
		createdAt = n.now()
	}
	updatedAt, ok := timestamp(item.Get("updatedAt"))
	if !ok {
		updatedAt = createdAt
	}

	base := 0
	if v := item.Get("baseScore"); v.Type == gjson.Number {
		base = score(v)
	} else if v := item.Get("readinessScore"); v.Type == gjson.Number {
		base = score(v)
	}
	final := base
	if v := item.Get("finalScore"); v.Type == gjson.Number {
		final = score(v)
	}

	return types.Record{
		ID:                 id.Str,
		CreatedAt:          createdAt,
		Company:            str(item.Get("company")),
		Role:               str(item.Get("role")),
		JDText:             jd.Str,
		ExtractedSkills:    decodeSkills(item.Get("extractedSkills")),
		RoundMapping:       decodeRoundMapping(item.Get("roundMapping")),
		Checklist:          decodeChecklist(item.Get("checklist")),
		Plan7Days:          decodePlan(item),
		Questions:          decodeQuestions(item.Get("questions")),
		BaseScore:          base,
		SkillConfidenceMap: decodeConfidence(item.Get("skillConfidenceMap")),
		FinalScore:         final,
		UpdatedAt:          updatedAt,
		CompanyIntel:       decodeIntel(item.Get("companyIntel")),
	}, nil
}

func (n *Normalizer) now() time.Time {
	if n.Now == nil {
		return time.Now().UTC()
	}
	return n.Now().UTC()
}

// decodeSkills accepts the canonical seven-slot map, the legacy {byCategory, categoryIds} shape, or nothing
func decodeSkills(v gjson.Result) types.StoredSkills {
	if !v.IsObject() {
		return types.StoredSkills{
			CoreCS: []string{}, Languages: []string{}, Web: []string{}, Data: []string{},
			Cloud: []string{}, Testing: []string{}, Other: []string{},
		}
	}

	if byCat := v.Get("byCategory"); byCat.IsObject() {
		other := stringList(v.Get("other"))
		if !v.Get("other").IsArray() {
			if len(stringList(v.Get("categoryIds"))) == 0 {
				other = slices.Clone(DefaultOtherSkills)
			}
		}
		return types.StoredSkills{
			CoreCS:    stringList(byCat.Get("coreCS")),
			Languages: stringList(byCat.Get("languages")),
			Web:       stringList(byCat.Get("web")),
			Data:      stringList(byCat.Get("data")),
			Cloud:     stringList(byCat.Get("cloudDevOps")),
			Testing:   stringList(byCat.Get("testing")),
			Other:     other,
		}
	}

	other := stringList(v.Get("other"))
	if !v.Get("other").IsArray() {
		other = slices.Clone(DefaultOtherSkills)
	}
	return types.StoredSkills{
		CoreCS:    stringList(v.Get("coreCS")),
		Languages: stringList(v.Get("languages")),
		Web:       stringList(v.Get("web")),
		Data:      stringList(v.Get("data")),
		Cloud:     stringList(v.Get("cloud")),
		Testing:   stringList(v.Get("testing")),
		Other:     other,
	}
}

// decodeRoundMapping accepts the legacy {rounds:[{name, description, whyItMatters}]} wrapper or the canonical array
func decodeRoundMapping(v gjson.Result) []types.RoundMappingItem {
	out := make([]types.RoundMappingItem, 0)

	if rounds := v.Get("rounds"); v.IsObject() && rounds.IsArray() {
		for _, r := range rounds.Array() {
			focus := []string{}
			if d := str(r.Get("description")); d != "" {
				focus = append(focus, d)
			}
			out = append(out, types.RoundMappingItem{
				RoundTitle:   str(r.Get("name")),
				FocusAreas:   focus,
				WhyItMatters: str(r.Get("whyItMatters")),
			})
		}
		return out
	}

	if v.IsArray() {
		for _, r := range v.Array() {
			out = append(out, types.RoundMappingItem{
				RoundTitle:   str(r.Get("roundTitle")),
				FocusAreas:   stringList(r.Get("focusAreas")),
				WhyItMatters: str(r.Get("whyItMatters")),
			})
		}
	}
	return out
}

func decodeChecklist(v gjson.Result) []types.ChecklistRoundStored {
	out := make([]types.ChecklistRoundStored, 0)
	if !v.IsArray() {
		return out
	}
	for _, c := range v.Array() {
		title := c.Get("roundTitle")
		if title.Type != gjson.String {
			title = c.Get("name")
		}
		out = append(out, types.ChecklistRoundStored{
			RoundTitle: str(title),
			Items:      stringList(c.Get("items")),
		})
	}
	return out
}

// decodePlan reads "plan" before "plan7Days"; each entry may use title/items or focus/tasks.
// A missing day number falls back to the entry's position.
func decodePlan(item gjson.Result) []types.PlanDayStored {
	out := make([]types.PlanDayStored, 0)

	v := item.Get("plan")
	if !v.IsArray() {
		v = item.Get("plan7Days")
	}
	if !v.IsArray() {
		return out
	}

	for i, p := range v.Array() {
		day := i + 1
		if d := p.Get("day"); d.Type == gjson.Number {
			day = int(d.Int())
		}
		focus := p.Get("focus")
		if focus.Type != gjson.String {
			focus = p.Get("title")
		}
		tasks := p.Get("tasks")
		if !tasks.IsArray() {
			tasks = p.Get("items")
		}
		out = append(out, types.PlanDayStored{
			Day:   day,
			Focus: str(focus),
			Tasks: stringList(tasks),
		})
	}
	return out
}

// decodeQuestions drops duplicates and keeps at most prep.QuestionCount
func decodeQuestions(v gjson.Result) []string {
	out := make([]string, 0, prep.QuestionCount)
	for _, q := range stringList(v) {
		if len(out) == prep.QuestionCount {
			break
		}
		if !slices.Contains(out, q) {
			out = append(out, q)
		}
	}
	return out
}

// decodeConfidence keeps only entries whose value is a known confidence
func decodeConfidence(v gjson.Result) map[string]types.Confidence {
	out := make(map[string]types.Confidence)
	if !v.IsObject() {
		return out
	}
	v.ForEach(func(key, value gjson.Result) bool {
		if c := types.Confidence(value.Str); value.Type == gjson.String && c.Valid() {
			out[key.Str] = c
		}
		return true
	})
	return out
}

// decodeIntel drops a profile that does not decode; it can be re-derived by backfill
func decodeIntel(v gjson.Result) *types.CompanyProfile {
	if !v.IsObject() {
		return nil
	}
	var profile types.CompanyProfile
	if err := json.Unmarshal([]byte(v.Raw), &profile); err != nil {
		return nil
	}
	return &profile
}

func timestamp(v gjson.Result) (time.Time, bool) {
	if v.Type != gjson.String {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v.Str)
	if err != nil {
		return time.Time{}, false
	}
	return t.UTC(), true
}

func score(v gjson.Result) int {
	return scoring.Clamp(int(math.Round(v.Float())))
}

func str(v gjson.Result) string {
	if v.Type != gjson.String {
		return ""
	}
	return v.Str
}

// stringList returns the string elements of an array, never nil
func stringList(v gjson.Result) []string {
	out := make([]string, 0)
	if !v.IsArray() {
		return out
	}
	for _, e := range v.Array() {
		if e.Type == gjson.String {
			out = append(out, e.Str)
		}
	}
	return out
}
