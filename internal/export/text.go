package export

import (
	"fmt"
	"strings"
	"sync"
	"text/template"

	"github.com/jonathan/prep-readiness/internal/skills"
	"github.com/jonathan/prep-readiness/internal/types"
)

// FilenamePrefix starts every exported report file name
const FilenamePrefix = "placement-prep-"

// DefaultTitle is used when an analysis has neither company nor role
const DefaultTitle = "JD Analysis"

// NoSkillsText replaces the skills section when nothing was classified
const NoSkillsText = "General fresher stack"

const reportTemplate = `# {{.Title}}

## Key skills extracted
{{.Skills}}

## Round-wise preparation checklist
{{checklist .Checklist}}

## 7-day plan
{{plan .Plan}}

## 10 likely interview questions
{{questions .Questions}}`

// reportData is passed to the report template
type reportData struct {
	Title     string
	Skills    string
	Checklist []types.ChecklistRound
	Plan      []types.DayPlan
	Questions []string
}

var (
	reportOnce sync.Once
	reportTmpl *template.Template
	reportErr  error
)

func parsedReport() (*template.Template, error) {
	reportOnce.Do(func() {
		reportTmpl, reportErr = template.New("report").Funcs(template.FuncMap{
			"checklist": Checklist,
			"plan":      Plan,
			"questions": Questions,
		}).Parse(reportTemplate)
	})
	return reportTmpl, reportErr
}

// Plan renders day-groups as a title line followed by bulleted items, groups separated by a blank line
func Plan(plan []types.DayPlan) string {
	blocks := make([]string, 0, len(plan))
	for _, day := range plan {
		blocks = append(blocks, bulleted(day.Title, day.Items))
	}
	return strings.Join(blocks, "\n\n")
}

// Checklist renders rounds the same way as Plan
func Checklist(rounds []types.ChecklistRound) string {
	blocks := make([]string, 0, len(rounds))
	for _, round := range rounds {
		blocks = append(blocks, bulleted(round.Name, round.Items))
	}
	return strings.Join(blocks, "\n\n")
}

// Questions renders a numbered list
func Questions(questions []string) string {
	lines := make([]string, 0, len(questions))
	for i, q := range questions {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, q))
	}
	return strings.Join(lines, "\n")
}

func bulleted(title string, items []string) string {
	lines := make([]string, 0, len(items)+1)
	lines = append(lines, title)
	for _, item := range items {
		lines = append(lines, "  • "+item)
	}
	return strings.Join(lines, "\n")
}

// Title joins the non-empty company and role with " - "
func Title(v types.View) string {
	parts := make([]string, 0, 2)
	for _, p := range []string{v.Company, v.Role} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return DefaultTitle
	}
	return strings.Join(parts, " - ")
}

// Skills renders one "Label: a, b" line per present category
func Skills(s types.SkillsView) string {
	if len(s.CategoryIDs) == 0 {
		return NoSkillsText
	}
	lines := make([]string, 0, len(s.CategoryIDs))
	for _, id := range s.CategoryIDs {
		lines = append(lines, fmt.Sprintf("%s: %s", skills.Label(id), strings.Join(s.ByCategory[id], ", ")))
	}
	return strings.Join(lines, "\n")
}

// Report renders the full downloadable report of an analysis
func Report(v types.View) (string, error) {
	tmpl, err := parsedReport()
	if err != nil {
		return "", &RenderError{Message: "failed to parse report template", Cause: err}
	}

	data := reportData{
		Title:     Title(v),
		Skills:    Skills(v.ExtractedSkills),
		Checklist: v.Checklist,
		Plan:      v.Plan,
		Questions: v.Questions,
	}
	var out strings.Builder
	if err := tmpl.Execute(&out, data); err != nil {
		return "", &RenderError{Message: "failed to execute report template", Cause: err}
	}
	return out.String(), nil
}

// Filename returns the download name for an analysis, built from the first 12 characters of its id
func Filename(id string) string {
	runes := []rune(id)
	if len(runes) > 12 {
		runes = runes[:12]
	}
	return FilenamePrefix + string(runes) + ".txt"
}
