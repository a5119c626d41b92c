// Package progress tracks the build checklist: step completion, the manual test checklist
// and the proof links required for a final submission.
package progress

// Slot keys
const (
	StepsKey      = "prp_step_completion"
	TestsKey      = "prp-test-checklist"
	SubmissionKey = "prp_final_submission"
)

// StepID identifies one build step
type StepID string

// StepIDs lists every step in display order
var StepIDs = []StepID{"step1", "step2", "step3", "step4", "step5", "step6", "step7", "step8"}

// StepLabels names each step
var StepLabels = map[StepID]string{
	"step1": "Landing & Get Started",
	"step2": "JD Analyze & Skill Extraction",
	"step3": "Round Mapping & Company Intel",
	"step4": "7-Day Plan & Round Checklist",
	"step5": "Readiness Score & Skill Toggles",
	"step6": "History & Persistence",
	"step7": "Test Checklist Passed",
	"step8": "Proof Links (Lovable, GitHub, Deployed)",
}

// TestID identifies one manual test
type TestID string

// TestItem describes a manual test and how to perform it
type TestItem struct {
	ID    TestID `json:"id"`
	Label string `json:"label"`
	Hint  string `json:"hint"`
}

// TestItems lists every manual test in display order
var TestItems = []TestItem{
	{ID: "jd-required", Label: "JD required validation works",
		Hint: "Go to Analyze JD, leave JD empty, click Analyze. You should see an error and submit should not proceed."},
	{ID: "short-jd-warning", Label: "Short JD warning shows for <200 chars",
		Hint: "Paste fewer than 200 characters in the JD field. The amber warning message should appear below the textarea."},
	{ID: "skills-extraction", Label: "Skills extraction groups correctly",
		Hint: "Analyze a JD containing e.g. React, DSA, Java. On Results, Key skills extracted should show tags grouped by category (Web, Core CS, Languages)."},
	{ID: "round-mapping", Label: "Round mapping changes based on company + skills",
		Hint: "Analyze with company 'Amazon' and DSA in JD → Enterprise 4-round flow. Analyze with company 'StartupCo' and React in JD → 3-round practical flow."},
	{ID: "score-deterministic", Label: "Score calculation is deterministic",
		Hint: "Same JD + company + role should yield the same base score. Re-analyze and confirm score matches."},
	{ID: "skill-toggles-live", Label: "Skill toggles update score live",
		Hint: "On Results, toggle a skill to 'I know' — the readiness score should increase by 2 immediately. Toggle to 'Practice' — decrease by 2."},
	{ID: "persist-after-refresh", Label: "Changes persist after refresh",
		Hint: "Toggle some skills on a result, refresh the page, reopen the same result. Toggles and score should be unchanged."},
	{ID: "history-saves-loads", Label: "History saves and loads correctly",
		Hint: "Run an analysis, go to History. Entry should appear with date, company, role, score. Click it → opens Results for that entry."},
	{ID: "export-buttons", Label: "Export buttons copy the correct content",
		Hint: "On Results, click 'Copy 7-day plan' then paste elsewhere — should be plain text with day titles and bullets. Same for checklist and questions. Download as TXT should download a file with all sections."},
	{ID: "no-console-errors", Label: "No console errors on core pages",
		Hint: "Open DevTools Console. Visit /, /dashboard, /dashboard/analyze, run analysis, /results, /dashboard/history. There should be no red errors."},
}

// TestIDs lists every test id in display order
func TestIDs() []TestID {
	ids := make([]TestID, len(TestItems))
	for i, item := range TestItems {
		ids[i] = item.ID
	}
	return ids
}

func knownStep(id StepID) bool {
	_, ok := StepLabels[id]
	return ok
}

func knownTest(id TestID) bool {
	for _, item := range TestItems {
		if item.ID == id {
			return true
		}
	}
	return false
}
