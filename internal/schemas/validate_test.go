package schemas

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jonathan/prep-readiness/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const personSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["name"],
	"properties": {
		"name": {"type": "string"}
	}
}`

func validRecord() types.Record {
	created := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	return types.Record{
		ID:        "analysis-1",
		CreatedAt: created,
		UpdatedAt: created,
		Company:   "Amazon",
		JDText:    "React and DSA",
		ExtractedSkills: types.StoredSkills{
			CoreCS: []string{"DSA"}, Languages: []string{}, Web: []string{"React"},
			Data: []string{}, Cloud: []string{}, Testing: []string{}, Other: []string{},
		},
		RoundMapping:       []types.RoundMappingItem{{RoundTitle: "Round 1", FocusAreas: []string{"DSA"}, WhyItMatters: "x"}},
		Checklist:          []types.ChecklistRoundStored{{RoundTitle: "Round 1", Items: []string{"a"}}},
		Plan7Days:          []types.PlanDayStored{{Day: 1, Focus: "Day 1–2", Tasks: []string{"t"}}},
		Questions:          []string{"q1", "q2"},
		BaseScore:          55,
		SkillConfidenceMap: map[string]types.Confidence{"DSA": types.ConfidenceKnow},
		FinalScore:         53,
		CompanyIntel: &types.CompanyProfile{
			CompanyName: "Amazon", Industry: "Technology Services", SizeCategory: types.SizeEnterprise,
			SizeLabel: "Enterprise (2000+)", TypicalHiringFocus: "Structured",
		},
	}
}

func marshal(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return data
}

func TestValidateRecord(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(r *types.Record)
		wantField string
	}{
		{name: "valid record", mutate: func(r *types.Record) {}},
		{name: "nil company intel", mutate: func(r *types.Record) { r.CompanyIntel = nil }},
		{name: "empty id", mutate: func(r *types.Record) { r.ID = "" }, wantField: "id"},
		{name: "score above range", mutate: func(r *types.Record) { r.FinalScore = 101 }, wantField: "finalScore"},
		{name: "unknown confidence", mutate: func(r *types.Record) { r.SkillConfidenceMap["React"] = "maybe" }, wantField: "skillConfidenceMap.React"},
		{name: "too many questions", mutate: func(r *types.Record) {
			r.Questions = []string{"1", "2", "3", "4", "5", "6", "7", "8", "9", "10", "11"}
		}, wantField: "questions"},
		{name: "duplicate questions", mutate: func(r *types.Record) { r.Questions = []string{"q", "q"} }, wantField: "questions"},
		{name: "null skill slot", mutate: func(r *types.Record) { r.ExtractedSkills.Other = nil }, wantField: "extractedSkills.other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := validRecord()
			tt.mutate(&rec)

			err := ValidateRecord(marshal(t, rec))
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")

			fields := make([]string, 0, len(validationErr.Errors))
			for _, fe := range validationErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Contains(t, fields, tt.wantField)
		})
	}
}

func TestValidateRecord_MissingFields(t *testing.T) {
	err := ValidateRecord([]byte(`{"id": "a", "jdText": "x"}`))
	require.Error(t, err)

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	assert.Greater(t, len(validationErr.Errors), 5)
}

func TestValidateHistory(t *testing.T) {
	good := validRecord()
	bad := validRecord()
	bad.BaseScore = -1

	assert.NoError(t, ValidateHistory(marshal(t, []types.Record{good})))
	assert.NoError(t, ValidateHistory([]byte(`[]`)))

	err := ValidateHistory(marshal(t, []types.Record{good, bad}))
	require.Error(t, err)
	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 1)
	assert.Equal(t, "[1].baseScore", validationErr.Errors[0].Field)

	err = ValidateHistory([]byte(`{"not": "a list"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JSON array")
}

func TestCanonicalRecordSchema_IsCopy(t *testing.T) {
	doc := CanonicalRecordSchema()
	require.NotEmpty(t, doc)
	doc[0] = 'X'
	assert.Equal(t, byte('{'), CanonicalRecordSchema()[0])
}

func TestValidateJSON_Files(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(personSchema), 0644))

	validPath := filepath.Join(tmpDir, "valid.json")
	require.NoError(t, os.WriteFile(validPath, []byte(`{"name": "test"}`), 0644))

	invalidPath := filepath.Join(tmpDir, "invalid.json")
	require.NoError(t, os.WriteFile(invalidPath, []byte(`{"name": 7}`), 0644))

	assert.NoError(t, ValidateJSON(schemaPath, validPath))

	err := ValidateJSON(schemaPath, invalidPath)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSON_NonExistentFiles(t *testing.T) {
	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "schema.json")
	require.NoError(t, os.WriteFile(schemaPath, []byte(personSchema), 0644))

	err := ValidateJSON(filepath.Join(tmpDir, "nonexistent_schema.json"), schemaPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")

	err = ValidateJSON(schemaPath, filepath.Join(tmpDir, "nonexistent_json.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidateJSONString(t *testing.T) {
	assert.NoError(t, ValidateJSONString(personSchema, `{"name": "test"}`))

	err := ValidateJSONString(personSchema, `{"age": 30}`)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.Greater(t, len(validationErr.Errors), 0)
}

func TestValidateJSONString_CanonicalRecord(t *testing.T) {
	schema := string(CanonicalRecordSchema())

	assert.NoError(t, ValidateJSONString(schema, string(marshal(t, validRecord()))))

	err := ValidateJSONString(schema, `{"id": "x"}`)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))

	err = ValidateJSONString(schema, `{not json`)
	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "(inline)", loadErr.Path)
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{
		Errors: []FieldError{
			{Field: "name", Message: "is required"},
			{Field: "age", Message: "must be a number"},
		},
	}

	errorMsg := err.Error()
	assert.Contains(t, errorMsg, "validation failed")
	assert.Contains(t, errorMsg, "name")
	assert.Contains(t, errorMsg, "age")
}
