// Package analysis orchestrates JD analysis: classification, guidance generation, scoring,
// company inference and persistence of the resulting canonical record.
package analysis

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/jonathan/prep-readiness/internal/intel"
	"github.com/jonathan/prep-readiness/internal/metrics"
	"github.com/jonathan/prep-readiness/internal/normalize"
	"github.com/jonathan/prep-readiness/internal/prep"
	"github.com/jonathan/prep-readiness/internal/scoring"
	"github.com/jonathan/prep-readiness/internal/skills"
	"github.com/jonathan/prep-readiness/internal/storage"
	"github.com/jonathan/prep-readiness/internal/types"
	"go.uber.org/zap"
)

// ShortJDThreshold is the trimmed JD length below which results carry an advisory warning
const ShortJDThreshold = 200

// Warning texts surfaced alongside results
const (
	WarningShortJD      = "This JD is too short to analyze deeply. Paste full JD for better output."
	WarningNotPersisted = "Could not save to history; this analysis is kept for the current session only."
)

// Result is the output of a single analysis before anything is persisted
type Result struct {
	ExtractedSkills types.ExtractedSkills  `json:"extractedSkills"`
	Checklist       []types.ChecklistRound `json:"checklist"`
	Plan            []types.DayPlan        `json:"plan"`
	Questions       []string               `json:"questions"`
	ReadinessScore  int                    `json:"readinessScore"`
}

// Outcome is a view plus any non-fatal warnings from producing it
type Outcome struct {
	Analysis types.View `json:"analysis"`
	Warnings []string   `json:"warnings,omitempty"`
}

// HistoryPage lists every usable record and the number of stored items that were skipped
type HistoryPage struct {
	Items     []types.View `json:"items"`
	Corrupted int          `json:"corrupted"`
}

// Service runs analyses against a history store
type Service struct {
	store  *storage.Store
	logger *zap.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service
type Option func(*Service)

// WithLogger sets the service logger
func WithLogger(logger *zap.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the creation timestamp source
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithIDGenerator overrides record id generation
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) { s.newID = newID }
}

// NewService creates a Service over store
func NewService(store *storage.Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  NewRecordID,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NewRecordID returns a fresh analysis id
func NewRecordID() string {
	return "analysis-" + uuid.NewString()
}

// Analyze classifies the JD and generates guidance and the base score. Nothing is persisted.
func (s *Service) Analyze(req types.AnalyzeRequest) (*Result, error) {
	req = trimRequest(req)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	extracted := skills.Classify(req.JDText)
	return &Result{
		ExtractedSkills: extracted,
		Checklist:       prep.Checklist(extracted),
		Plan:            prep.Plan(extracted),
		Questions:       prep.Questions(extracted),
		ReadinessScore:  scoring.Base(req.Company, req.Role, req.JDText, len(extracted.CategoryIDs)),
	}, nil
}

// AnalyzeAndPersist analyzes the JD, infers the company profile and round mapping,
// and prepends the canonical record to history. A failed write is reported as a warning.
func (s *Service) AnalyzeAndPersist(ctx context.Context, req types.AnalyzeRequest) (*Outcome, error) {
	result, err := s.Analyze(req)
	if err != nil {
		return nil, err
	}
	req = trimRequest(req)

	profile := intel.InferProfile(req.Company, req.JDText)
	mapping := intel.MapRounds(result.ExtractedSkills, profile)

	created := s.now().UTC()
	rec := types.Record{
		ID:                 s.newID(),
		CreatedAt:          created,
		UpdatedAt:          created,
		Company:            req.Company,
		Role:               req.Role,
		JDText:             req.JDText,
		ExtractedSkills:    normalize.StoredSkills(result.ExtractedSkills),
		RoundMapping:       normalize.StoredRoundMapping(mapping),
		Checklist:          normalize.StoredChecklist(result.Checklist),
		Plan7Days:          normalize.StoredPlan(result.Plan),
		Questions:          slices.Clone(result.Questions),
		BaseScore:          result.ReadinessScore,
		SkillConfidenceMap: map[string]types.Confidence{},
		FinalScore:         result.ReadinessScore,
		CompanyIntel:       profile,
	}

	var warnings []string
	if utf8.RuneCountInString(strings.TrimSpace(req.JDText)) < ShortJDThreshold {
		warnings = append(warnings, WarningShortJD)
	}
	if err := s.store.Create(ctx, rec); err != nil {
		if !storage.IsWriteFailure(err) {
			return nil, err
		}
		warnings = append(warnings, WarningNotPersisted)
	}

	metrics.AnalysesCreated.Inc()
	s.logger.Info("analysis created",
		zap.String("id", rec.ID),
		zap.String("company", rec.Company),
		zap.Int("categories", len(result.ExtractedSkills.CategoryIDs)),
		zap.Int("base_score", rec.BaseScore),
	)
	return &Outcome{Analysis: s.view(rec), Warnings: warnings}, nil
}

// History returns every record, newest update first
func (s *Service) History(ctx context.Context) (*HistoryPage, error) {
	records, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	page := &HistoryPage{Items: make([]types.View, 0, len(records)), Corrupted: s.store.Corrupted()}
	for _, rec := range records {
		page.Items = append(page.Items, s.view(rec))
	}
	return page, nil
}

// Get returns the view of one record
func (s *Service) Get(ctx context.Context, id string) (types.View, error) {
	rec, err := s.store.Get(ctx, id)
	if err != nil {
		return types.View{}, err
	}
	return s.view(rec), nil
}

// Latest returns the view of the most recently updated record
func (s *Service) Latest(ctx context.Context) (types.View, error) {
	rec, err := s.store.Latest(ctx)
	if err != nil {
		return types.View{}, err
	}
	return s.view(rec), nil
}

// SetSkillConfidence records a self-assessment for one of the record's skills and recomputes the live score
func (s *Service) SetSkillConfidence(ctx context.Context, id, skill string, value types.Confidence) (*Outcome, error) {
	if !value.Valid() {
		return nil, &ValidationError{Field: "confidence", Message: fmt.Sprintf("must be %q or %q", types.ConfidenceKnow, types.ConfidencePractice)}
	}
	cr := types.ConfidenceRequest{Skill: skill, Confidence: value}
	if err := cr.Validate(); err != nil {
		return nil, &ValidationError{Field: "skill", Message: "skill is required", Cause: err}
	}

	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	all := current.ExtractedSkills.AllSkills()
	if !slices.Contains(all, skill) {
		return nil, &ValidationError{Field: "skill", Message: fmt.Sprintf("%q is not a skill of analysis %s", skill, id)}
	}

	rec, err := s.store.Update(ctx, id, func(r *types.Record) {
		next := maps.Clone(r.SkillConfidenceMap)
		if next == nil {
			next = map[string]types.Confidence{}
		}
		next[skill] = value
		r.SkillConfidenceMap = next
		r.FinalScore = scoring.Live(r.BaseScore, next, r.ExtractedSkills.AllSkills())
	})
	var warnings []string
	if err != nil {
		if !storage.IsWriteFailure(err) {
			return nil, err
		}
		warnings = append(warnings, WarningNotPersisted)
	}

	metrics.ConfidenceUpdates.WithLabelValues(string(value)).Inc()
	s.logger.Debug("skill confidence updated",
		zap.String("id", id),
		zap.String("skill", skill),
		zap.String("confidence", string(value)),
		zap.Int("final_score", rec.FinalScore),
	)
	return &Outcome{Analysis: s.view(rec), Warnings: warnings}, nil
}

// BackfillInference persists a company profile and round mapping for records created before inference existed.
// Records that already have both are returned unchanged without a write.
func (s *Service) BackfillInference(ctx context.Context, id string) (*Outcome, error) {
	current, err := s.store.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	profile, mapping, changed := derive(current)
	if !changed {
		return &Outcome{Analysis: s.view(current)}, nil
	}

	rec, err := s.store.Update(ctx, id, func(r *types.Record) {
		r.CompanyIntel = profile
		r.RoundMapping = mapping
	})
	var warnings []string
	if err != nil {
		if !storage.IsWriteFailure(err) {
			return nil, err
		}
		warnings = append(warnings, WarningNotPersisted)
	}
	s.logger.Info("inference backfilled", zap.String("id", id))
	return &Outcome{Analysis: s.view(rec), Warnings: warnings}, nil
}

// view projects rec and fills in inference output the record predates, without persisting it
func (s *Service) view(rec types.Record) types.View {
	profile, mapping, changed := derive(rec)
	if !changed {
		return normalize.View(rec)
	}
	rec.CompanyIntel = profile
	rec.RoundMapping = mapping
	v := normalize.View(rec)
	v.InferenceDerived = true
	return v
}

// derive returns the profile and mapping rec should carry, and whether either differs from what it has.
// A profile is only inferred for a non-empty company; the mapping is always re-derivable.
func derive(rec types.Record) (*types.CompanyProfile, []types.RoundMappingItem, bool) {
	profile := rec.CompanyIntel
	mapping := rec.RoundMapping
	changed := false

	if profile == nil && strings.TrimSpace(rec.Company) != "" {
		profile = intel.InferProfile(rec.Company, rec.JDText)
		changed = true
	}
	if len(mapping) == 0 {
		mapping = normalize.StoredRoundMapping(intel.MapRounds(normalize.ClassifiedSkills(rec.ExtractedSkills), profile))
		changed = true
	}
	return profile, mapping, changed
}

func trimRequest(req types.AnalyzeRequest) types.AnalyzeRequest {
	req.Company = strings.TrimSpace(req.Company)
	req.Role = strings.TrimSpace(req.Role)
	return req
}

func validateRequest(req types.AnalyzeRequest) error {
	if strings.TrimSpace(req.JDText) == "" {
		metrics.AnalysesRejected.WithLabelValues("empty_jd").Inc()
		return &ValidationError{Field: "jdText", Message: "job description is required"}
	}
	if err := req.Validate(); err != nil {
		metrics.AnalysesRejected.WithLabelValues("invalid_request").Inc()
		return &ValidationError{Message: err.Error(), Cause: err}
	}
	return nil
}
