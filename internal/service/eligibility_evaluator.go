package service

import (
	"math"

	"github.com/noah-isme/career-guide-api/internal/models"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
)

// DefaultBorderlineBand is how many percentage points below a cutoff still count as borderline.
const DefaultBorderlineBand = 5.0

// EligibilityEvaluator classifies a student profile against college cutoffs.
// It holds no mutable state and is safe for concurrent use.
type EligibilityEvaluator struct {
	band float64
}

// NewEligibilityEvaluator builds an evaluator with the given borderline band.
func NewEligibilityEvaluator(band float64) *EligibilityEvaluator {
	if band <= 0 {
		band = DefaultBorderlineBand
	}
	return &EligibilityEvaluator{band: band}
}

// Evaluate returns exactly one result per college, in catalog order. It
// rejects profiles that violate their invariants instead of guessing.
func (e *EligibilityEvaluator) Evaluate(profile models.StudentProfile, colleges []models.College) ([]models.EligibilityResult, error) {
	if err := profile.Validate(); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInvalidProfile.Code, appErrors.ErrInvalidProfile.Status, err.Error())
	}
	profile.Stream = profile.Stream.Normalize()

	results := make([]models.EligibilityResult, 0, len(colleges))
	for _, college := range colleges {
		results = append(results, e.classify(profile, college))
	}
	return results, nil
}

func (e *EligibilityEvaluator) classify(profile models.StudentProfile, college models.College) models.EligibilityResult {
	result := models.EligibilityResult{CollegeID: college.ID, CollegeName: college.Name}

	cutoff, stream, ok := college.CutoffFor(profile.Level)
	if !ok {
		result.Status = models.StatusEligible
		result.Reason = models.ReasonNoCutoff
		return result
	}
	result.CutoffPercentage = &cutoff

	// A stream-qualified PUC cutoff overrides marks; an unspecified student stream never matches.
	if profile.Level == models.LevelPUC {
		if required := stream.Normalize(); required != "" {
			result.RequiredStream = required
			if profile.Stream != required {
				result.Status = models.StatusNotEligible
				result.Reason = models.ReasonStreamMismatch
				return result
			}
		}
	}

	// Percentages carry two decimals; compare at that precision so band edges hold.
	delta := math.Round((profile.Percentage-cutoff)*100) / 100
	result.Delta = &delta
	switch {
	case delta >= 0:
		result.Status = models.StatusEligible
		result.Reason = models.ReasonMeetsCutoff
	case delta >= -e.band:
		result.Status = models.StatusBorderline
		result.Reason = models.ReasonBorderlineBand
	default:
		result.Status = models.StatusNotEligible
		result.Reason = models.ReasonBelowCutoff
	}
	return result
}
