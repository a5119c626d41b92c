package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/prep-readiness/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateCommand_StoredHistory(t *testing.T) {
	dir := useFileStorage(t)

	out, err := runCLI(t, "validate")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid")

	id := analyzeAmazon(t).Analysis.ID
	_, err = runCLI(t, "confidence", id, "React", "know")
	require.NoError(t, err)

	out, err = runCLI(t, "validate")
	require.NoError(t, err, out)
	assert.Contains(t, out, "Valid")

	require.NoError(t, os.WriteFile(filepath.Join(dir, storage.HistoryKey+".json"), []byte(`[{"id": "x"}]`), 0644))
	out, err = runCLI(t, "validate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "[0]")
}

func TestValidateCommand_File(t *testing.T) {
	useFileStorage(t)
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`[{"company": "Acme"}]`), 0644))
	out, err := runCLI(t, "validate", "--file", bad)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Contains(t, out, "[0]")

	_, err = runCLI(t, "validate", "--file", filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read history file")
}

func TestValidateCommand_SchemaAndIn(t *testing.T) {
	useFileStorage(t)
	dir := t.TempDir()

	schema := filepath.Join(dir, "schema.json")
	require.NoError(t, os.WriteFile(schema, []byte(`{"type": "object", "required": ["name"]}`), 0644))
	good := filepath.Join(dir, "good.json")
	require.NoError(t, os.WriteFile(good, []byte(`{"name": "prep"}`), 0644))

	out, err := runCLI(t, "validate", "--schema", schema, "--in", good)
	require.NoError(t, err)
	assert.Contains(t, out, "Valid")

	_, err = runCLI(t, "validate", "--schema", schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--schema and --in must be used together")
}

func TestValidateCommand_Record(t *testing.T) {
	useFileStorage(t)

	_, err := runCLI(t, "validate", "--record", `{"id": "analysis-1"}`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")

	_, err = runCLI(t, "validate", "--record", `{not json`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load schema (inline)")

	record := map[string]any{
		"id":                 "analysis-1",
		"createdAt":          "2026-01-01T00:00:00Z",
		"updatedAt":          "2026-01-01T00:00:00Z",
		"company":            "",
		"role":               "",
		"jdText":             "Python",
		"extractedSkills":    map[string][]string{"coreCS": {}, "languages": {"Python"}, "web": {}, "data": {}, "cloud": {}, "testing": {}, "other": {}},
		"roundMapping":       []any{},
		"checklist":          []any{},
		"plan7Days":          []any{},
		"questions":          []string{"q1"},
		"baseScore":          40,
		"skillConfidenceMap": map[string]string{},
		"finalScore":         38,
		"companyIntel":       nil,
	}
	doc, err := json.Marshal(record)
	require.NoError(t, err)

	resetFlags(rootCmd)
	var buf strings.Builder
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetIn(strings.NewReader(string(doc)))
	rootCmd.SetArgs([]string{"validate", "--record", "-"})
	require.NoError(t, rootCmd.Execute(), buf.String())
	assert.Contains(t, buf.String(), "Valid")
}
