package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/prep-readiness/internal/metrics"
	"github.com/jonathan/prep-readiness/internal/storage"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"
)

// Steps is the stored step completion map
type Steps struct {
	Completed map[StepID]bool `json:"completed"`
}

// Tests is the stored manual test checklist
type Tests struct {
	Checked map[TestID]bool `json:"checked"`
}

// Submission holds the three proof links
type Submission struct {
	LovableURL  string `json:"lovableUrl"`
	GithubURL   string `json:"githubUrl"`
	DeployedURL string `json:"deployedUrl"`
}

// SubmissionUpdate sets only the non-nil links. Empty strings clear a link.
type SubmissionUpdate struct {
	LovableURL  *string `json:"lovableUrl,omitempty"`
	GithubURL   *string `json:"githubUrl,omitempty"`
	DeployedURL *string `json:"deployedUrl,omitempty"`
}

// Status summarizes how far the build has progressed
type Status struct {
	StepsCompleted int  `json:"stepsCompleted"`
	StepsTotal     int  `json:"stepsTotal"`
	TestsPassed    int  `json:"testsPassed"`
	TestsTotal     int  `json:"testsTotal"`
	LinksValid     bool `json:"linksValid"`
	Shipped        bool `json:"shipped"`
}

type linkCheck struct {
	URL string `validate:"required,http_url"`
}

var validate = validator.New()

// ValidURL reports whether value, trimmed, is an absolute http or https URL
func ValidURL(value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return false
	}
	return validate.Struct(linkCheck{URL: value}) == nil
}

// Tracker persists progress flags, each group in its own slot.
// Loads are tolerant: unknown ids are ignored and malformed blobs read as defaults.
type Tracker struct {
	slot   storage.Slot
	logger *zap.Logger
}

// NewTracker creates a Tracker over slot
func NewTracker(slot storage.Slot, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{slot: slot, logger: logger}
}

func (t *Tracker) read(ctx context.Context, key string) (gjson.Result, error) {
	blob, err := t.slot.Get(ctx, key)
	if err != nil {
		return gjson.Result{}, &storage.ReadError{Key: key, Cause: err}
	}
	if !gjson.ValidBytes(blob) {
		return gjson.Result{}, nil
	}
	return gjson.ParseBytes(blob), nil
}

// write stores v under key. A failure returns *storage.WriteError; the caller's state is still returned.
func (t *Tracker) write(ctx context.Context, key string, v any) error {
	blob, err := json.Marshal(v)
	if err != nil {
		return &storage.WriteError{Key: key, Cause: err}
	}
	if err := t.slot.Put(ctx, key, blob); err != nil {
		metrics.SlotWriteFailures.WithLabelValues(key).Inc()
		t.logger.Warn("progress write failed", zap.String("slot", key), zap.Error(err))
		return &storage.WriteError{Key: key, Cause: err}
	}
	return nil
}

func defaultSteps() Steps {
	s := Steps{Completed: make(map[StepID]bool, len(StepIDs))}
	for _, id := range StepIDs {
		s.Completed[id] = false
	}
	return s
}

func defaultTests() Tests {
	s := Tests{Checked: make(map[TestID]bool, len(TestItems))}
	for _, item := range TestItems {
		s.Checked[item.ID] = false
	}
	return s
}

// Steps loads the step completion map
func (t *Tracker) Steps(ctx context.Context) (Steps, error) {
	doc, err := t.read(ctx, StepsKey)
	if err != nil {
		return Steps{}, err
	}
	state := defaultSteps()
	completed := doc.Get("completed")
	if !completed.IsObject() {
		return state, nil
	}
	for _, id := range StepIDs {
		if v := completed.Get(string(id)); v.IsBool() {
			state.Completed[id] = v.Bool()
		}
	}
	return state, nil
}

// SetStep marks one step complete or incomplete
func (t *Tracker) SetStep(ctx context.Context, id StepID, done bool) (Steps, error) {
	if !knownStep(id) {
		return Steps{}, &UnknownIDError{Kind: "step", ID: string(id)}
	}
	state, err := t.Steps(ctx)
	if err != nil {
		return Steps{}, err
	}
	state.Completed[id] = done
	return state, t.write(ctx, StepsKey, state)
}

// Tests loads the manual test checklist
func (t *Tracker) Tests(ctx context.Context) (Tests, error) {
	doc, err := t.read(ctx, TestsKey)
	if err != nil {
		return Tests{}, err
	}
	state := defaultTests()
	checked := doc.Get("checked")
	if !checked.IsObject() {
		return state, nil
	}
	for _, item := range TestItems {
		if v := checked.Get(string(item.ID)); v.IsBool() {
			state.Checked[item.ID] = v.Bool()
		}
	}
	return state, nil
}

// SetTest marks one manual test passed or not
func (t *Tracker) SetTest(ctx context.Context, id TestID, passed bool) (Tests, error) {
	if !knownTest(id) {
		return Tests{}, &UnknownIDError{Kind: "test", ID: string(id)}
	}
	state, err := t.Tests(ctx)
	if err != nil {
		return Tests{}, err
	}
	state.Checked[id] = passed
	return state, t.write(ctx, TestsKey, state)
}

// ResetTests clears every test
func (t *Tracker) ResetTests(ctx context.Context) (Tests, error) {
	state := defaultTests()
	return state, t.write(ctx, TestsKey, state)
}

// Submission loads the proof links; non-string fields read as empty
func (t *Tracker) Submission(ctx context.Context) (Submission, error) {
	doc, err := t.read(ctx, SubmissionKey)
	if err != nil {
		return Submission{}, err
	}
	field := func(name string) string {
		if v := doc.Get(name); v.Type == gjson.String {
			return v.Str
		}
		return ""
	}
	return Submission{
		LovableURL:  field("lovableUrl"),
		GithubURL:   field("githubUrl"),
		DeployedURL: field("deployedUrl"),
	}, nil
}

// UpdateSubmission merges the given links into the stored submission.
// Non-empty links must be absolute http(s) URLs.
func (t *Tracker) UpdateSubmission(ctx context.Context, update SubmissionUpdate) (Submission, error) {
	fields := []struct {
		name  string
		value *string
	}{
		{"lovableUrl", update.LovableURL},
		{"githubUrl", update.GithubURL},
		{"deployedUrl", update.DeployedURL},
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		v := strings.TrimSpace(*f.value)
		if v != "" && !ValidURL(v) {
			return Submission{}, &InvalidLinkError{Field: f.name, Value: v}
		}
	}

	sub, err := t.Submission(ctx)
	if err != nil {
		return Submission{}, err
	}
	if update.LovableURL != nil {
		sub.LovableURL = strings.TrimSpace(*update.LovableURL)
	}
	if update.GithubURL != nil {
		sub.GithubURL = strings.TrimSpace(*update.GithubURL)
	}
	if update.DeployedURL != nil {
		sub.DeployedURL = strings.TrimSpace(*update.DeployedURL)
	}
	return sub, t.write(ctx, SubmissionKey, sub)
}

// LinksValid reports whether all three links are valid http(s) URLs
func (s Submission) LinksValid() bool {
	return ValidURL(s.LovableURL) && ValidURL(s.GithubURL) && ValidURL(s.DeployedURL)
}

// Status computes progress counts and whether the build is shipped:
// every step complete, every test passed and every link valid.
func (t *Tracker) Status(ctx context.Context) (Status, error) {
	steps, err := t.Steps(ctx)
	if err != nil {
		return Status{}, err
	}
	tests, err := t.Tests(ctx)
	if err != nil {
		return Status{}, err
	}
	sub, err := t.Submission(ctx)
	if err != nil {
		return Status{}, err
	}

	st := Status{StepsTotal: len(StepIDs), TestsTotal: len(TestItems), LinksValid: sub.LinksValid()}
	for _, id := range StepIDs {
		if steps.Completed[id] {
			st.StepsCompleted++
		}
	}
	for _, item := range TestItems {
		if tests.Checked[item.ID] {
			st.TestsPassed++
		}
	}
	st.Shipped = st.StepsCompleted == st.StepsTotal && st.TestsPassed == st.TestsTotal && st.LinksValid
	return st, nil
}

// SubmissionText formats the final submission for copying
func (t *Tracker) SubmissionText(ctx context.Context) (string, error) {
	sub, err := t.Submission(ctx)
	if err != nil {
		return "", err
	}
	return FormatSubmission(sub), nil
}

// FormatSubmission renders the submission block; unset links show as "(not set)"
func FormatSubmission(sub Submission) string {
	orNotSet := func(v string) string {
		if v == "" {
			return "(not set)"
		}
		return v
	}
	return fmt.Sprintf(`------------------------------------------
Placement Readiness Platform — Final Submission

Lovable Project: %s
GitHub Repository: %s
Live Deployment: %s

Core Capabilities:
- JD skill extraction (deterministic)
- Round mapping engine
- 7-day prep plan
- Interactive readiness scoring
- History persistence
------------------------------------------`, orNotSet(sub.LovableURL), orNotSet(sub.GithubURL), orNotSet(sub.DeployedURL))
}
