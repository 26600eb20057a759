package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// Level is the academic stage a student is applying from.
type Level string

const (
	LevelClass10 Level = "class10"
	LevelPUC     Level = "puc"
)

// Valid reports whether the level is supported.
func (l Level) Valid() bool {
	return l == LevelClass10 || l == LevelPUC
}

// Stream is the PUC specialisation.
type Stream string

const (
	StreamScience  Stream = "science"
	StreamCommerce Stream = "commerce"
	StreamArts     Stream = "arts"
)

// Valid reports whether the stream is one of the supported values. The empty
// stream is not valid on its own; callers treat it as "unspecified".
func (s Stream) Valid() bool {
	switch s {
	case StreamScience, StreamCommerce, StreamArts:
		return true
	}
	return false
}

// Normalize lowercases and trims the stream.
func (s Stream) Normalize() Stream {
	return Stream(strings.ToLower(strings.TrimSpace(string(s))))
}

// StudentProfile is the immutable academic profile submitted for a check.
type StudentProfile struct {
	Level      Level   `json:"level"`
	Board      string  `json:"board"`
	Percentage float64 `json:"percentage"`
	Stream     Stream  `json:"stream,omitempty"`
}

// Validate enforces the profile invariants the evaluator relies on.
func (p StudentProfile) Validate() error {
	if !p.Level.Valid() {
		return fmt.Errorf("unsupported level %q", p.Level)
	}
	if math.IsNaN(p.Percentage) || p.Percentage < 0 || p.Percentage > 100 {
		return fmt.Errorf("percentage %v outside [0,100]", p.Percentage)
	}
	if p.Stream != "" && !p.Stream.Normalize().Valid() {
		return fmt.Errorf("unsupported stream %q", p.Stream)
	}
	return nil
}

// EligibilityStatus classifies a student's standing against a college cutoff.
type EligibilityStatus string

const (
	StatusEligible    EligibilityStatus = "ELIGIBLE"
	StatusBorderline  EligibilityStatus = "BORDERLINE"
	StatusNotEligible EligibilityStatus = "NOT_ELIGIBLE"
)

// Badge is the listing icon the client renders for a status.
func (s EligibilityStatus) Badge() string {
	switch s {
	case StatusEligible:
		return "✅"
	case StatusBorderline:
		return "⚠️"
	case StatusNotEligible:
		return "❌"
	}
	return ""
}

// Label is a human readable status used in exports.
func (s EligibilityStatus) Label() string {
	switch s {
	case StatusEligible:
		return "Eligible"
	case StatusBorderline:
		return "Borderline"
	case StatusNotEligible:
		return "Not eligible"
	}
	return string(s)
}

// EligibilityReason records which rule decided a result.
type EligibilityReason string

const (
	ReasonNoCutoff       EligibilityReason = "NO_CUTOFF"
	ReasonMeetsCutoff    EligibilityReason = "MEETS_CUTOFF"
	ReasonBorderlineBand EligibilityReason = "WITHIN_BORDERLINE_BAND"
	ReasonBelowCutoff    EligibilityReason = "BELOW_CUTOFF"
	ReasonStreamMismatch EligibilityReason = "STREAM_MISMATCH"
)

// EligibilityResult is the derived classification for one college. It is
// recomputed per evaluation and never persisted.
type EligibilityResult struct {
	CollegeID        string            `json:"college_id"`
	CollegeName      string            `json:"college_name"`
	Status           EligibilityStatus `json:"status"`
	Reason           EligibilityReason `json:"reason"`
	CutoffPercentage *float64          `json:"cutoff_percentage,omitempty"`
	RequiredStream   Stream            `json:"required_stream,omitempty"`
	Delta            *float64          `json:"delta,omitempty"`
}

// EligibilitySummary counts results per status.
type EligibilitySummary struct {
	Total       int `json:"total"`
	Eligible    int `json:"eligible"`
	Borderline  int `json:"borderline"`
	NotEligible int `json:"not_eligible"`
}

// Add counts one more result.
func (s *EligibilitySummary) Add(status EligibilityStatus) {
	s.Total++
	switch status {
	case StatusEligible:
		s.Eligible++
	case StatusBorderline:
		s.Borderline++
	case StatusNotEligible:
		s.NotEligible++
	}
}

// EligibilityReport is the response for an eligibility check.
type EligibilityReport struct {
	Profile         StudentProfile      `json:"profile"`
	NormalizedBoard string              `json:"normalized_board"`
	Results         []EligibilityResult `json:"results"`
	Summary         EligibilitySummary  `json:"summary"`
	EvaluatedAt     time.Time           `json:"evaluated_at"`
}
