// Package types provides type definitions for structured data used throughout the prep-readiness system.
package types

import (
	"github.com/go-playground/validator/v10"
)

// AnalyzeRequest is the input to a JD analysis. Fields are expected to be trimmed before validation.
type AnalyzeRequest struct {
	Company string `json:"company"`
	Role    string `json:"role"`
	JDText  string `json:"jdText" validate:"required"`
}

// ConfidenceRequest sets the self-assessed confidence of one skill
type ConfidenceRequest struct {
	Skill      string     `json:"skill" validate:"required"`
	Confidence Confidence `json:"confidence" validate:"required,oneof=know practice"`
}

// Validate validates the AnalyzeRequest using the validator.
func (r *AnalyzeRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the ConfidenceRequest using the validator.
func (r *ConfidenceRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
