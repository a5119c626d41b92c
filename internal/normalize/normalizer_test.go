package normalize

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/jonathan/prep-readiness/internal/skills"
	"github.com/jonathan/prep-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func testNormalizer() *Normalizer {
	return &Normalizer{Now: func() time.Time { return fixedNow }}
}

const canonicalItem = `{
  "id": "analysis-1",
  "createdAt": "2026-01-10T09:30:00Z",
  "company": "Amazon",
  "role": "SDE",
  "jdText": "React and DSA",
  "extractedSkills": {"coreCS": ["DSA"], "languages": [], "web": ["React"], "data": [], "cloud": [], "testing": [], "other": []},
  "roundMapping": [{"roundTitle": "Round 1: Online Test", "focusAreas": ["DSA + Aptitude"], "whyItMatters": "Filters."}],
  "checklist": [{"roundTitle": "Round 1: Aptitude / Basics", "items": ["a", "b"]}],
  "plan7Days": [{"day": 1, "focus": "Day 1–2: Basics + Core CS", "tasks": ["x"]}],
  "questions": ["q1", "q2"],
  "baseScore": 55,
  "skillConfidenceMap": {"DSA": "know"},
  "finalScore": 53,
  "updatedAt": "2026-01-11T10:00:00Z",
  "companyIntel": {"companyName": "Amazon", "industry": "Technology Services", "sizeCategory": "Enterprise", "sizeLabel": "Enterprise (2000+)", "typicalHiringFocus": "Structured"}
}`

// legacyItem uses the categorized skills shape, the wrapped round mapping, "plan" with title/items and readinessScore
const legacyItem = `{
  "id": "analysis-legacy",
  "createdAt": "2025-11-02T08:00:00.123Z",
  "company": "Acme",
  "jdText": "Python and SQL",
  "extractedSkills": {"byCategory": {"languages": ["Python"], "data": ["SQL"], "cloudDevOps": []}, "categoryIds": ["languages", "data"], "hasAny": true},
  "roundMapping": {"rounds": [{"round": 1, "name": "Round 1: Technical screening", "description": "Core skills + problem-solving", "whyItMatters": "Quick."}, {"round": 2, "name": "Round 2: Deep dive", "description": "", "whyItMatters": "Depth."}]},
  "checklist": [{"round": 1, "name": "Round 1: Aptitude / Basics", "items": ["a"]}],
  "plan": [{"day": 1, "title": "Day 1–2", "items": ["t1"]}, {"title": "Day 3–4", "items": ["t2"]}],
  "questions": ["q1", "q1", "q2"],
  "readinessScore": 60.4
}`

func TestRecord_Canonical(t *testing.T) {
	rec, err := testNormalizer().Record([]byte(canonicalItem))
	require.NoError(t, err)

	assert.Equal(t, "analysis-1", rec.ID)
	assert.Equal(t, time.Date(2026, 1, 10, 9, 30, 0, 0, time.UTC), rec.CreatedAt)
	assert.Equal(t, time.Date(2026, 1, 11, 10, 0, 0, 0, time.UTC), rec.UpdatedAt)
	assert.Equal(t, []string{"DSA"}, rec.ExtractedSkills.CoreCS)
	assert.Equal(t, []string{"React"}, rec.ExtractedSkills.Web)
	assert.Empty(t, rec.ExtractedSkills.Other)
	assert.Equal(t, 55, rec.BaseScore)
	assert.Equal(t, 53, rec.FinalScore)
	assert.Equal(t, map[string]types.Confidence{"DSA": types.ConfidenceKnow}, rec.SkillConfidenceMap)
	require.NotNil(t, rec.CompanyIntel)
	assert.Equal(t, types.SizeEnterprise, rec.CompanyIntel.SizeCategory)
	require.Len(t, rec.RoundMapping, 1)
	assert.Equal(t, []string{"DSA + Aptitude"}, rec.RoundMapping[0].FocusAreas)
}

func TestRecord_LegacyShape(t *testing.T) {
	rec, err := testNormalizer().Record([]byte(legacyItem))
	require.NoError(t, err)

	assert.Equal(t, "", rec.Role)
	assert.Equal(t, []string{"Python"}, rec.ExtractedSkills.Languages)
	assert.Equal(t, []string{"SQL"}, rec.ExtractedSkills.Data)
	assert.Equal(t, []string{}, rec.ExtractedSkills.Cloud)
	assert.Equal(t, []string{}, rec.ExtractedSkills.Other, "categories present means no default other skills")

	require.Len(t, rec.RoundMapping, 2)
	assert.Equal(t, "Round 1: Technical screening", rec.RoundMapping[0].RoundTitle)
	assert.Equal(t, []string{"Core skills + problem-solving"}, rec.RoundMapping[0].FocusAreas)
	assert.Equal(t, []string{}, rec.RoundMapping[1].FocusAreas)

	require.Len(t, rec.Checklist, 1)
	assert.Equal(t, "Round 1: Aptitude / Basics", rec.Checklist[0].RoundTitle)

	require.Len(t, rec.Plan7Days, 2)
	assert.Equal(t, types.PlanDayStored{Day: 1, Focus: "Day 1–2", Tasks: []string{"t1"}}, rec.Plan7Days[0])
	assert.Equal(t, 2, rec.Plan7Days[1].Day, "missing day falls back to position")

	assert.Equal(t, []string{"q1", "q2"}, rec.Questions)
	assert.Equal(t, 60, rec.BaseScore)
	assert.Equal(t, 60, rec.FinalScore, "final score defaults to base")
	assert.Equal(t, rec.CreatedAt, rec.UpdatedAt)
	assert.Empty(t, rec.SkillConfidenceMap)
	assert.Nil(t, rec.CompanyIntel)
}

func TestRecord_SkillShapes(t *testing.T) {
	tests := []struct {
		name     string
		skills   string
		expected types.StoredSkills
	}{
		{
			name:   "Categorized without categories gets default other",
			skills: `{"byCategory": {}, "categoryIds": []}`,
			expected: types.StoredSkills{
				CoreCS: []string{}, Languages: []string{}, Web: []string{}, Data: []string{}, Cloud: []string{}, Testing: []string{},
				Other: DefaultOtherSkills,
			},
		},
		{
			name:   "Categorized keeps explicit other",
			skills: `{"byCategory": {"web": ["React"]}, "categoryIds": [], "other": ["Git"]}`,
			expected: types.StoredSkills{
				CoreCS: []string{}, Languages: []string{}, Web: []string{"React"}, Data: []string{}, Cloud: []string{}, Testing: []string{},
				Other: []string{"Git"},
			},
		},
		{
			name:   "Flat map without other gets default other",
			skills: `{"coreCS": ["OOP"], "cloud": ["AWS", 7]}`,
			expected: types.StoredSkills{
				CoreCS: []string{"OOP"}, Languages: []string{}, Web: []string{}, Data: []string{}, Cloud: []string{"AWS"}, Testing: []string{},
				Other: DefaultOtherSkills,
			},
		},
		{
			name:   "Absent skills are all empty",
			skills: `null`,
			expected: types.StoredSkills{
				CoreCS: []string{}, Languages: []string{}, Web: []string{}, Data: []string{}, Cloud: []string{}, Testing: []string{},
				Other: []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := `{"id": "x", "jdText": "", "extractedSkills": ` + tt.skills + `}`
			rec, err := testNormalizer().Record([]byte(raw))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, rec.ExtractedSkills)
		})
	}
}

func TestRecord_Rejects(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"Missing id", `{"jdText": "text"}`},
		{"Empty id", `{"id": "", "jdText": "text"}`},
		{"Numeric id", `{"id": 12, "jdText": "text"}`},
		{"Missing jdText", `{"id": "a"}`},
		{"Non-string jdText", `{"id": "a", "jdText": ["text"]}`},
		{"Not an object", `["a"]`},
		{"Invalid JSON", `{"id": `},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := testNormalizer().Record([]byte(tt.raw))
			require.Error(t, err)

			var corrupt *CorruptRecordError
			assert.True(t, errors.As(err, &corrupt))
		})
	}
}

func TestRecord_Defaults(t *testing.T) {
	raw := `{"id": "a", "jdText": "", "createdAt": "yesterday", "baseScore": 140, "finalScore": -3,
		"skillConfidenceMap": {"DSA": "know", "React": "maybe", "SQL": 1}, "companyIntel": {"sizeCategory": 5}}`
	rec, err := testNormalizer().Record([]byte(raw))
	require.NoError(t, err)

	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.Equal(t, fixedNow, rec.UpdatedAt)
	assert.Equal(t, 100, rec.BaseScore)
	assert.Equal(t, 0, rec.FinalScore)
	assert.Equal(t, map[string]types.Confidence{"DSA": types.ConfidenceKnow}, rec.SkillConfidenceMap)
	assert.Nil(t, rec.CompanyIntel)
	assert.NotNil(t, rec.Questions)
	assert.NotNil(t, rec.RoundMapping)
}

func TestRecord_Idempotent(t *testing.T) {
	for name, raw := range map[string]string{
		"canonical": canonicalItem,
		"legacy":    legacyItem,
		"minimal":   `{"id": "m", "jdText": ""}`,
		"flat":      `{"id": "f", "jdText": "x", "extractedSkills": {"web": ["React"]}, "plan7Days": [{"focus": "d", "tasks": []}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			n := testNormalizer()
			once, err := n.Record([]byte(raw))
			require.NoError(t, err)

			encoded, err := json.Marshal(once)
			require.NoError(t, err)

			twice, err := n.Record(encoded)
			require.NoError(t, err)
			assert.Equal(t, once, twice)
		})
	}
}

func TestBatch(t *testing.T) {
	t.Run("One good and one id-less item", func(t *testing.T) {
		blob := `[` + canonicalItem + `, {"jdText": "no id here"}]`
		records, corrupted := testNormalizer().Batch([]byte(blob))

		require.Len(t, records, 1)
		assert.Equal(t, "analysis-1", records[0].ID)
		assert.Equal(t, 1, corrupted)
	})

	t.Run("Mixed garbage", func(t *testing.T) {
		blob := `[` + legacyItem + `, 42, null, "str", {"id": "ok", "jdText": ""}]`
		records, corrupted := testNormalizer().Batch([]byte(blob))

		assert.Len(t, records, 2)
		assert.Equal(t, 3, corrupted)
	})

	t.Run("Not an array", func(t *testing.T) {
		records, corrupted := testNormalizer().Batch([]byte(`{"id": "a"}`))
		assert.Empty(t, records)
		assert.Equal(t, 1, corrupted)
	})

	t.Run("Invalid JSON", func(t *testing.T) {
		records, corrupted := testNormalizer().Batch([]byte(`[{"id":`))
		assert.Empty(t, records)
		assert.Equal(t, 1, corrupted)
	})

	t.Run("Empty blob", func(t *testing.T) {
		records, corrupted := testNormalizer().Batch(nil)
		assert.Empty(t, records)
		assert.Equal(t, 0, corrupted)
	})
}

func TestStoredSkills(t *testing.T) {
	stored := StoredSkills(skills.Classify("React, Docker"))
	assert.Equal(t, []string{"React"}, stored.Web)
	assert.Equal(t, []string{"Docker"}, stored.Cloud)
	assert.Equal(t, []string{}, stored.Other)

	empty := StoredSkills(skills.Classify(""))
	assert.Equal(t, DefaultOtherSkills, empty.Other)
	assert.Equal(t, []string{}, empty.CoreCS)
}

func TestClassifiedSkills_RoundTrip(t *testing.T) {
	extracted := skills.Classify("DSA, Java, React, SQL, AWS, Selenium")
	assert.Equal(t, extracted, ClassifiedSkills(StoredSkills(extracted)))
}
