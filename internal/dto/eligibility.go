package dto

import (
	"time"

	"github.com/noah-isme/career-guide-api/internal/models"
)

// EligibilityResultView is a result annotated with its listing badge.
type EligibilityResultView struct {
	models.EligibilityResult
	Badge string `json:"badge"`
}

// EligibilityCheckResponse is the payload of POST /eligibility/check.
type EligibilityCheckResponse struct {
	Profile         models.StudentProfile     `json:"profile"`
	NormalizedBoard string                    `json:"normalized_board"`
	Results         []EligibilityResultView   `json:"results"`
	Summary         models.EligibilitySummary `json:"summary"`
	EvaluatedAt     time.Time                 `json:"evaluated_at"`
}

// NewEligibilityCheckResponse decorates a report for the client.
func NewEligibilityCheckResponse(report *models.EligibilityReport) EligibilityCheckResponse {
	views := make([]EligibilityResultView, 0, len(report.Results))
	for _, result := range report.Results {
		views = append(views, EligibilityResultView{EligibilityResult: result, Badge: result.Status.Badge()})
	}
	return EligibilityCheckResponse{
		Profile:         report.Profile,
		NormalizedBoard: report.NormalizedBoard,
		Results:         views,
		Summary:         report.Summary,
		EvaluatedAt:     report.EvaluatedAt,
	}
}
