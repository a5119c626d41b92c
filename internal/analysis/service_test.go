package analysis

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/jonathan/prep-readiness/internal/storage"
	"github.com/jonathan/prep-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var created = time.Date(2026, 4, 2, 10, 0, 0, 0, time.UTC)

func newTestService(t *testing.T, slot storage.Slot) (*Service, *storage.Store) {
	t.Helper()
	clock := func() time.Time { return created }
	store := storage.NewStore(slot,
		storage.WithLogger(zaptest.NewLogger(t)),
		storage.WithClock(func() time.Time { return created.Add(time.Minute) }),
	)
	n := 0
	svc := NewService(store,
		WithLogger(zaptest.NewLogger(t)),
		WithClock(clock),
		WithIDGenerator(func() string {
			n++
			return fmt.Sprintf("analysis-%d", n)
		}),
	)
	return svc, store
}

func amazonRequest() types.AnalyzeRequest {
	return types.AnalyzeRequest{Company: "  Amazon ", Role: "SDE", JDText: "Looking for React developers with strong DSA."}
}

func TestAnalyze_AmazonReactDSA(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemorySlot())

	result, err := svc.Analyze(amazonRequest())
	require.NoError(t, err)

	assert.Equal(t, []types.CategoryID{types.CategoryCoreCS, types.CategoryWeb}, result.ExtractedSkills.CategoryIDs)
	assert.Equal(t, []string{"DSA"}, result.ExtractedSkills.ByCategory[types.CategoryCoreCS])
	assert.Equal(t, []string{"React"}, result.ExtractedSkills.ByCategory[types.CategoryWeb])
	assert.Len(t, result.Checklist, 4)
	assert.Len(t, result.Plan, 5)
	assert.Len(t, result.Questions, 9)
	assert.Equal(t, 65, result.ReadinessScore)
}

func TestAnalyze_RejectsEmptyJD(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemorySlot())

	for _, jd := range []string{"", "   ", "\n\t"} {
		_, err := svc.Analyze(types.AnalyzeRequest{Company: "Acme", JDText: jd})
		var ve *ValidationError
		require.True(t, errors.As(err, &ve), "jd %q", jd)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "jdText", ve.Field)
	}
}

func TestAnalyze_AcceptsVeryLongInput(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemorySlot())

	result, err := svc.Analyze(types.AnalyzeRequest{
		Company: strings.Repeat("x", 500),
		JDText:  strings.Repeat("React DSA ", 12000),
	})
	require.NoError(t, err)
	assert.Equal(t, []types.CategoryID{types.CategoryCoreCS, types.CategoryWeb}, result.ExtractedSkills.CategoryIDs)
	// 35 + 2 categories + company + long JD
	assert.Equal(t, 75, result.ReadinessScore)
}

func TestAnalyzeAndPersist(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, storage.NewMemorySlot())

	out, err := svc.AnalyzeAndPersist(ctx, amazonRequest())
	require.NoError(t, err)

	v := out.Analysis
	assert.Equal(t, "analysis-1", v.ID)
	assert.Equal(t, "Amazon", v.Company)
	assert.Equal(t, created, v.CreatedAt)
	assert.Equal(t, created, v.UpdatedAt)
	assert.Equal(t, 65, v.BaseScore)
	assert.Equal(t, 65, v.ReadinessScore)
	require.NotNil(t, v.CompanyIntel)
	assert.Equal(t, types.SizeEnterprise, v.CompanyIntel.SizeCategory)
	require.NotNil(t, v.RoundMapping)
	require.Len(t, v.RoundMapping.Rounds, 4)
	assert.Equal(t, "Round 1: Online Test", v.RoundMapping.Rounds[0].Name)
	assert.Equal(t, "DSA + Aptitude", v.RoundMapping.Rounds[0].Description)
	assert.False(t, v.InferenceDerived)
	assert.Equal(t, []string{"DSA", "React"}, v.TopWeakSkills)
	assert.Equal(t, []string{WarningShortJD}, out.Warnings)

	rec, err := store.Get(ctx, "analysis-1")
	require.NoError(t, err)
	assert.Empty(t, rec.SkillConfidenceMap)
	assert.Equal(t, rec.BaseScore, rec.FinalScore)
}

func TestAnalyzeAndPersist_NoCompanyMeansNoProfile(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemorySlot())

	out, err := svc.AnalyzeAndPersist(context.Background(), types.AnalyzeRequest{JDText: "Nothing technical here"})
	require.NoError(t, err)
	assert.Nil(t, out.Analysis.CompanyIntel)
	require.NotNil(t, out.Analysis.RoundMapping)
	assert.Equal(t, "Round 1: Aptitude / Basics", out.Analysis.RoundMapping.Rounds[0].Name)
	assert.Equal(t, []string{"Communication", "Problem solving", "Basic coding", "Projects"}, out.Analysis.ExtractedSkills.OtherSkills)
}

func TestAnalyzeAndPersist_LongJDHasNoWarning(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemorySlot())

	jd := strings.Repeat("Python and SQL for data pipelines. ", 10)
	out, err := svc.AnalyzeAndPersist(context.Background(), types.AnalyzeRequest{JDText: jd})
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
}

func TestAnalyzeAndPersist_WriteFailureIsWarning(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, &storage.MemorySlot{MaxBytes: 8})

	out, err := svc.AnalyzeAndPersist(ctx, amazonRequest())
	require.NoError(t, err)
	assert.Contains(t, out.Warnings, WarningNotPersisted)

	v, err := svc.Get(ctx, out.Analysis.ID)
	require.NoError(t, err, "the analysis stays available for the session")
	assert.Equal(t, "Amazon", v.Company)
}

func TestSetSkillConfidence(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, storage.NewMemorySlot())
	out, err := svc.AnalyzeAndPersist(ctx, amazonRequest())
	require.NoError(t, err)
	id := out.Analysis.ID

	updated, err := svc.SetSkillConfidence(ctx, id, "DSA", types.ConfidenceKnow)
	require.NoError(t, err)
	assert.Equal(t, 65, updated.Analysis.ReadinessScore, "+2 for DSA, -2 for React")
	assert.Equal(t, 65, updated.Analysis.BaseScore)
	assert.Equal(t, types.ConfidenceKnow, updated.Analysis.SkillConfidenceMap["DSA"])
	assert.Equal(t, types.ConfidencePractice, updated.Analysis.SkillConfidenceMap["React"])
	assert.Equal(t, []string{"React"}, updated.Analysis.TopWeakSkills)
	assert.Equal(t, created.Add(time.Minute), updated.Analysis.UpdatedAt)

	updated, err = svc.SetSkillConfidence(ctx, id, "React", types.ConfidenceKnow)
	require.NoError(t, err)
	assert.Equal(t, 69, updated.Analysis.ReadinessScore)
	assert.Empty(t, updated.Analysis.TopWeakSkills)

	latest, err := svc.Latest(ctx)
	require.NoError(t, err)
	assert.Equal(t, 69, latest.ReadinessScore)
}

func TestSetSkillConfidence_Rejects(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, storage.NewMemorySlot())
	out, err := svc.AnalyzeAndPersist(ctx, amazonRequest())
	require.NoError(t, err)

	_, err = svc.SetSkillConfidence(ctx, out.Analysis.ID, "DSA", types.Confidence("maybe"))
	var ve *ValidationError
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "confidence", ve.Field)

	_, err = svc.SetSkillConfidence(ctx, out.Analysis.ID, "Kotlin", types.ConfidenceKnow)
	require.True(t, errors.As(err, &ve))
	assert.Equal(t, "skill", ve.Field)

	_, err = svc.SetSkillConfidence(ctx, "analysis-missing", "DSA", types.ConfidenceKnow)
	assert.True(t, storage.IsNotFound(err))
}

const legacyHistory = `[
	{"id": "analysis-old", "company": "Acme Fintech", "role": "Backend", "jdText": "Python, SQL and Docker",
	 "createdAt": "2025-10-01T00:00:00Z",
	 "extractedSkills": {"byCategory": {"languages": ["Python"], "data": ["SQL"], "cloudDevOps": ["Docker"]}, "categoryIds": ["languages", "data", "cloudDevOps"], "hasAny": true},
	 "readinessScore": 60},
	{"jdText": "orphan without id"}
]`

func TestHistory_DerivesMissingInference(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	require.NoError(t, slot.Put(ctx, storage.HistoryKey, []byte(legacyHistory)))
	svc, _ := newTestService(t, slot)

	page, err := svc.History(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Corrupted)
	require.Len(t, page.Items, 1)

	v := page.Items[0]
	assert.True(t, v.InferenceDerived)
	require.NotNil(t, v.CompanyIntel)
	assert.Equal(t, "Financial Services", v.CompanyIntel.Industry)
	assert.Equal(t, types.SizeStartup, v.CompanyIntel.SizeCategory)
	require.NotNil(t, v.RoundMapping)
	assert.Equal(t, "Round 1: Technical screening", v.RoundMapping.Rounds[0].Name)
	assert.Equal(t, 60, v.ReadinessScore)
}

func TestBackfillInference(t *testing.T) {
	ctx := context.Background()
	slot := storage.NewMemorySlot()
	require.NoError(t, slot.Put(ctx, storage.HistoryKey, []byte(legacyHistory)))
	svc, store := newTestService(t, slot)

	out, err := svc.BackfillInference(ctx, "analysis-old")
	require.NoError(t, err)
	assert.False(t, out.Analysis.InferenceDerived)
	require.NotNil(t, out.Analysis.CompanyIntel)

	rec, err := store.Get(ctx, "analysis-old")
	require.NoError(t, err)
	require.NotNil(t, rec.CompanyIntel)
	require.Len(t, rec.RoundMapping, 3)
	assert.Equal(t, []string{"Core skills + problem-solving"}, rec.RoundMapping[0].FocusAreas)

	again, err := svc.BackfillInference(ctx, "analysis-old")
	require.NoError(t, err)
	assert.Equal(t, out.Analysis, again.Analysis, "backfill is idempotent")

	_, err = svc.BackfillInference(ctx, "analysis-missing")
	assert.True(t, storage.IsNotFound(err))
}

func TestLatest_EmptyHistory(t *testing.T) {
	svc, _ := newTestService(t, storage.NewMemorySlot())

	_, err := svc.Latest(context.Background())
	assert.True(t, storage.IsNotFound(err))
}
