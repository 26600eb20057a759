package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/career-guide-api/internal/middleware"
	"github.com/noah-isme/career-guide-api/internal/models"
	"github.com/noah-isme/career-guide-api/internal/service"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
)

type eligibilityServiceMock struct {
	report       *models.EligibilityReport
	cacheHit     bool
	err          error
	file         *service.ExportFile
	lastRequest  service.CheckRequest
	lastFormat   string
	checkCalled  bool
	exportCalled bool
}

func (m *eligibilityServiceMock) Check(ctx context.Context, req service.CheckRequest) (*models.EligibilityReport, bool, error) {
	m.checkCalled = true
	m.lastRequest = req
	return m.report, m.cacheHit, m.err
}

func (m *eligibilityServiceMock) Export(ctx context.Context, req service.CheckRequest, format string) (*service.ExportFile, error) {
	m.exportCalled = true
	m.lastRequest = req
	m.lastFormat = format
	return m.file, m.err
}

func sampleReport() *models.EligibilityReport {
	cutoff, delta := 75.0, 3.0
	return &models.EligibilityReport{
		Profile:         models.StudentProfile{Level: models.LevelClass10, Board: "CBSE", Percentage: 78},
		NormalizedBoard: "cbse",
		Results: []models.EligibilityResult{
			{CollegeID: "a", CollegeName: "A", Status: models.StatusEligible, Reason: models.ReasonMeetsCutoff, CutoffPercentage: &cutoff, Delta: &delta},
			{CollegeID: "b", CollegeName: "B", Status: models.StatusBorderline, Reason: models.ReasonBorderlineBand},
			{CollegeID: "c", CollegeName: "C", Status: models.StatusNotEligible, Reason: models.ReasonStreamMismatch},
		},
		Summary:     models.EligibilitySummary{Total: 3, Eligible: 1, Borderline: 1, NotEligible: 1},
		EvaluatedAt: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
}

func jsonRequest(method, target, body string) *http.Request {
	req, _ := http.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestEligibilityHandlerCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eligibilityServiceMock{report: sampleReport(), cacheHit: true}
	handler := NewEligibilityHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/eligibility/check", `{"level":"class10","board":"CBSE","percentage":78,"college_ids":["a"]}`)
	c.Set(middleware.ContextUserKey, &models.JWTClaims{Email: "student@example.com"})

	handler.Check(c)
	require.Equal(t, http.StatusOK, w.Code)
	require.True(t, mockSvc.checkCalled)
	require.NotNil(t, mockSvc.lastRequest.Percentage)
	assert.InDelta(t, 78.0, *mockSvc.lastRequest.Percentage, 1e-9)
	assert.Equal(t, []string{"a"}, mockSvc.lastRequest.CollegeIDs)

	var body struct {
		Data struct {
			NormalizedBoard string `json:"normalized_board"`
			Results         []struct {
				CollegeID string   `json:"college_id"`
				Status    string   `json:"status"`
				Badge     string   `json:"badge"`
				Delta     *float64 `json:"delta"`
			} `json:"results"`
		} `json:"data"`
		Meta map[string]interface{} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "cbse", body.Data.NormalizedBoard)
	require.Len(t, body.Data.Results, 3)
	assert.Equal(t, "✅", body.Data.Results[0].Badge)
	assert.Equal(t, "⚠️", body.Data.Results[1].Badge)
	assert.Equal(t, "❌", body.Data.Results[2].Badge)
	assert.Equal(t, "ELIGIBLE", body.Data.Results[0].Status)
	require.NotNil(t, body.Data.Results[0].Delta)
	assert.Nil(t, body.Data.Results[2].Delta)
	assert.Equal(t, true, body.Meta["cache_hit"])
	assert.Contains(t, body.Meta, "processing_time_ms")
}

func TestEligibilityHandlerCheckMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eligibilityServiceMock{}
	handler := NewEligibilityHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/eligibility/check", `{"level":"class10"`)

	handler.Check(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, mockSvc.checkCalled)
}

func TestEligibilityHandlerCheckServiceError(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eligibilityServiceMock{err: appErrors.Clone(appErrors.ErrValidation, "percentage must be between 0 and 100")}
	handler := NewEligibilityHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/eligibility/check", `{"level":"class10","board":"cbse","percentage":140}`)

	handler.Check(c)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "percentage must be between 0 and 100")
}

func TestEligibilityHandlerExport(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eligibilityServiceMock{file: &service.ExportFile{Filename: "eligibility.csv", ContentType: "text/csv; charset=utf-8", Payload: []byte("College,Status\n")}}
	handler := NewEligibilityHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/eligibility/export?format=csv", `{"level":"puc","board":"state","percentage":60,"stream":"arts"}`)

	handler.Export(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "csv", mockSvc.lastFormat)
	assert.Equal(t, `attachment; filename="eligibility.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "College,Status\n", w.Body.String())
}

func TestEligibilityHandlerExportDefaultsToCSV(t *testing.T) {
	gin.SetMode(gin.TestMode)
	mockSvc := &eligibilityServiceMock{err: appErrors.ErrUnsupportedFormat}
	handler := NewEligibilityHandler(mockSvc, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = jsonRequest(http.MethodPost, "/eligibility/export", `{"level":"puc","board":"state","percentage":60}`)

	handler.Export(c)
	assert.Equal(t, service.ExportFormatCSV, mockSvc.lastFormat)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
