package service

import (
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/career-guide-api/internal/models"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
)

func class10College(id string, cutoff float64) models.College {
	return models.College{ID: id, Name: "College " + id, Class10Cutoff: &models.Class10Cutoff{Percentage: cutoff, Board: "cbse"}}
}

func pucCollege(id string, cutoff float64, stream models.Stream) models.College {
	return models.College{ID: id, Name: "College " + id, PucCutoff: &models.PucCutoff{Percentage: cutoff, Stream: stream}}
}

func evaluateOne(t *testing.T, profile models.StudentProfile, college models.College) models.EligibilityResult {
	t.Helper()
	results, err := NewEligibilityEvaluator(DefaultBorderlineBand).Evaluate(profile, []models.College{college})
	require.NoError(t, err)
	require.Len(t, results, 1)
	return results[0]
}

func TestEvaluatorExamples(t *testing.T) {
	class10 := func(pct float64) models.StudentProfile {
		return models.StudentProfile{Level: models.LevelClass10, Board: "cbse", Percentage: pct}
	}

	eligible := evaluateOne(t, class10(78), class10College("a", 75))
	assert.Equal(t, models.StatusEligible, eligible.Status)
	assert.Equal(t, models.ReasonMeetsCutoff, eligible.Reason)
	assert.InDelta(t, 3.0, *eligible.Delta, 1e-9)

	borderline := evaluateOne(t, class10(70), class10College("b", 73))
	assert.Equal(t, models.StatusBorderline, borderline.Status)
	assert.InDelta(t, -3.0, *borderline.Delta, 1e-9)

	notEligible := evaluateOne(t, class10(60), class10College("c", 73))
	assert.Equal(t, models.StatusNotEligible, notEligible.Status)
	assert.Equal(t, models.ReasonBelowCutoff, notEligible.Reason)
	assert.InDelta(t, -13.0, *notEligible.Delta, 1e-9)
}

func TestEvaluatorBandBoundaries(t *testing.T) {
	profile := func(pct float64) models.StudentProfile {
		return models.StudentProfile{Level: models.LevelClass10, Board: "icse", Percentage: pct}
	}
	assert.Equal(t, models.StatusEligible, evaluateOne(t, profile(73), class10College("x", 73)).Status)
	assert.Equal(t, models.StatusBorderline, evaluateOne(t, profile(72.99), class10College("x", 73)).Status)
	assert.Equal(t, models.StatusBorderline, evaluateOne(t, profile(68), class10College("x", 73)).Status)
	assert.Equal(t, models.StatusNotEligible, evaluateOne(t, profile(67.99), class10College("x", 73)).Status)
}

func TestEvaluatorBandEdgeWithTwoDecimalCutoffs(t *testing.T) {
	edge := evaluateOne(t, models.StudentProfile{Level: models.LevelClass10, Board: "cbse", Percentage: 3.30}, class10College("x", 8.30))
	assert.Equal(t, models.StatusBorderline, edge.Status)
	require.NotNil(t, edge.Delta)
	assert.Equal(t, -5.0, *edge.Delta)

	for cents := 500; cents <= 10000; cents++ {
		cutoff := float64(cents) / 100
		pct := float64(cents-500) / 100
		result := evaluateOne(t, models.StudentProfile{Level: models.LevelClass10, Board: "cbse", Percentage: pct}, class10College("x", cutoff))
		if !assert.Equal(t, models.StatusBorderline, result.Status, "pct=%v cutoff=%v", pct, cutoff) {
			return
		}
	}

	exact := evaluateOne(t, models.StudentProfile{Level: models.LevelClass10, Board: "cbse", Percentage: 70.10}, class10College("x", 70.1))
	assert.Equal(t, models.StatusEligible, exact.Status)
	assert.Equal(t, 0.0, *exact.Delta)
}

func TestEvaluatorNoCutoffForLevelIsEligible(t *testing.T) {
	pucOnly := pucCollege("p", 95, models.StreamScience)
	result := evaluateOne(t, models.StudentProfile{Level: models.LevelClass10, Board: "state", Percentage: 10}, pucOnly)
	assert.Equal(t, models.StatusEligible, result.Status)
	assert.Equal(t, models.ReasonNoCutoff, result.Reason)
	assert.Nil(t, result.CutoffPercentage)
	assert.Nil(t, result.Delta)

	class10Only := class10College("c", 99)
	result = evaluateOne(t, models.StudentProfile{Level: models.LevelPUC, Board: "state", Percentage: 1, Stream: models.StreamArts}, class10Only)
	assert.Equal(t, models.StatusEligible, result.Status)

	bare := models.College{ID: "none", Name: "No data"}
	result = evaluateOne(t, models.StudentProfile{Level: models.LevelPUC, Board: "state", Percentage: 0}, bare)
	assert.Equal(t, models.StatusEligible, result.Status)
}

func TestEvaluatorStreamMismatchOverridesMarks(t *testing.T) {
	college := pucCollege("s", 40, models.StreamScience)

	result := evaluateOne(t, models.StudentProfile{Level: models.LevelPUC, Board: "cbse", Percentage: 99, Stream: models.StreamCommerce}, college)
	assert.Equal(t, models.StatusNotEligible, result.Status)
	assert.Equal(t, models.ReasonStreamMismatch, result.Reason)
	assert.Equal(t, models.StreamScience, result.RequiredStream)
	assert.Nil(t, result.Delta)

	missing := evaluateOne(t, models.StudentProfile{Level: models.LevelPUC, Board: "cbse", Percentage: 99}, college)
	assert.Equal(t, models.StatusNotEligible, missing.Status)
	assert.Equal(t, models.ReasonStreamMismatch, missing.Reason)
}

func TestEvaluatorStreamComparisonIgnoresCase(t *testing.T) {
	college := pucCollege("s", 70, "Science")
	result := evaluateOne(t, models.StudentProfile{Level: models.LevelPUC, Board: "cbse", Percentage: 71, Stream: "SCIENCE"}, college)
	assert.Equal(t, models.StatusEligible, result.Status)
}

func TestEvaluatorOpenStreamCutoffUsesMarks(t *testing.T) {
	college := pucCollege("o", 70, "")
	result := evaluateOne(t, models.StudentProfile{Level: models.LevelPUC, Board: "cbse", Percentage: 66}, college)
	assert.Equal(t, models.StatusBorderline, result.Status)
}

func TestEvaluatorClass10IgnoresStream(t *testing.T) {
	college := models.College{ID: "m", Class10Cutoff: &models.Class10Cutoff{Percentage: 50}, PucCutoff: &models.PucCutoff{Percentage: 50, Stream: models.StreamScience}}
	result := evaluateOne(t, models.StudentProfile{Level: models.LevelClass10, Board: "cbse", Percentage: 55, Stream: models.StreamArts}, college)
	assert.Equal(t, models.StatusEligible, result.Status)
}

func TestEvaluatorOneResultPerCollegeInOrder(t *testing.T) {
	colleges := make([]models.College, 0, 20)
	for i := 0; i < 20; i++ {
		colleges = append(colleges, class10College(fmt.Sprintf("c-%02d", i), float64(50+i*2)))
	}
	profile := models.StudentProfile{Level: models.LevelClass10, Board: "cbse", Percentage: 70}

	results, err := NewEligibilityEvaluator(0).Evaluate(profile, colleges)
	require.NoError(t, err)
	require.Len(t, results, len(colleges))
	for i, result := range results {
		assert.Equal(t, colleges[i].ID, result.CollegeID)
		delta := 70 - colleges[i].Class10Cutoff.Percentage
		switch {
		case delta >= 0:
			assert.Equal(t, models.StatusEligible, result.Status)
		case delta >= -5:
			assert.Equal(t, models.StatusBorderline, result.Status)
		default:
			assert.Equal(t, models.StatusNotEligible, result.Status)
		}
	}
}

func TestEvaluatorIsIdempotentAndConcurrencySafe(t *testing.T) {
	evaluator := NewEligibilityEvaluator(DefaultBorderlineBand)
	colleges := []models.College{class10College("a", 75), class10College("b", 73), pucCollege("c", 60, models.StreamArts)}
	profile := models.StudentProfile{Level: models.LevelClass10, Board: "cbse", Percentage: 71}

	first, err := evaluator.Evaluate(profile, colleges)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			again, err := evaluator.Evaluate(profile, colleges)
			assert.NoError(t, err)
			assert.Equal(t, first, again)
		}()
	}
	wg.Wait()
}

func TestEvaluatorEmptyCatalog(t *testing.T) {
	results, err := NewEligibilityEvaluator(0).Evaluate(models.StudentProfile{Level: models.LevelClass10, Percentage: 50}, nil)
	require.NoError(t, err)
	assert.Empty(t, results)
	assert.NotNil(t, results)
}

func TestEvaluatorRejectsInvalidProfile(t *testing.T) {
	_, err := NewEligibilityEvaluator(0).Evaluate(models.StudentProfile{Level: models.LevelClass10, Percentage: 120}, []models.College{class10College("a", 50)})
	require.Error(t, err)

	var appErr *appErrors.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, appErrors.ErrInvalidProfile.Code, appErr.Code)
	assert.Equal(t, http.StatusBadRequest, appErr.Status)
}

func TestEvaluatorCustomBand(t *testing.T) {
	evaluator := NewEligibilityEvaluator(10)
	results, err := evaluator.Evaluate(models.StudentProfile{Level: models.LevelClass10, Percentage: 65}, []models.College{class10College("a", 73)})
	require.NoError(t, err)
	assert.Equal(t, models.StatusBorderline, results[0].Status)
}
