package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/career-guide-api/internal/models"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
	"github.com/noah-isme/career-guide-api/pkg/export"
)

type catalogProvider interface {
	All(ctx context.Context) ([]models.College, bool, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
	ContentType() string
	Extension() string
}

// Export formats.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

// CheckRequest is the student profile submitted for an eligibility check.
type CheckRequest struct {
	Level      string   `json:"level" validate:"required,oneof=class10 puc"`
	Board      string   `json:"board" validate:"required,max=100"`
	Percentage *float64 `json:"percentage" validate:"required,gte=0,lte=100"`
	Stream     string   `json:"stream" validate:"omitempty,oneof=science commerce arts"`
	CollegeIDs []string `json:"college_ids" validate:"omitempty,max=500,dive,required"`
}

func (r *CheckRequest) normalize() {
	r.Level = strings.ToLower(strings.TrimSpace(r.Level))
	r.Board = strings.TrimSpace(r.Board)
	r.Stream = string(models.Stream(r.Stream).Normalize())
}

// ExportFile is a rendered report ready to be sent as an attachment.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// EligibilityService validates profiles, loads the catalog and runs the evaluator.
type EligibilityService struct {
	catalog   catalogProvider
	evaluator *EligibilityEvaluator
	boards    *BoardNormalizer
	metrics   *MetricsService
	renderers map[string]datasetRenderer
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// EligibilityServiceParams groups constructor dependencies.
type EligibilityServiceParams struct {
	Catalog        catalogProvider
	BorderlineBand float64
	Metrics        *MetricsService
	Validator      *validator.Validate
	Logger         *zap.Logger
}

// NewEligibilityService constructs the service with CSV and PDF exporters.
func NewEligibilityService(params EligibilityServiceParams) *EligibilityService {
	validate := params.Validator
	if validate == nil {
		validate = NewValidator()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EligibilityService{
		catalog:   params.Catalog,
		evaluator: NewEligibilityEvaluator(params.BorderlineBand),
		boards:    NewBoardNormalizer(),
		metrics:   params.Metrics,
		renderers: map[string]datasetRenderer{
			ExportFormatCSV: export.NewCSVExporter(),
			ExportFormatPDF: export.NewPDFExporter(),
		},
		validator: validate,
		logger:    logger,
		now:       time.Now,
	}
}

// Check evaluates the profile against the catalog, or the requested subset of
// it, and reports whether the catalog was served from cache.
func (s *EligibilityService) Check(ctx context.Context, req CheckRequest) (*models.EligibilityReport, bool, error) {
	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, false, validationError(err, "invalid eligibility request")
	}

	profile := models.StudentProfile{
		Level:      models.Level(req.Level),
		Board:      req.Board,
		Percentage: *req.Percentage,
		Stream:     models.Stream(req.Stream),
	}

	colleges, cacheHit, err := s.catalog.All(ctx)
	if err != nil {
		return nil, false, err
	}
	colleges, err = selectColleges(colleges, req.CollegeIDs)
	if err != nil {
		return nil, false, err
	}

	start := time.Now()
	results, err := s.evaluator.Evaluate(profile, colleges)
	if err != nil {
		return nil, false, err
	}
	elapsed := time.Since(start)

	board, matched := s.boards.Normalize(profile.Board)
	report := &models.EligibilityReport{
		Profile:         profile,
		NormalizedBoard: board,
		Results:         results,
		EvaluatedAt:     s.now().UTC(),
	}
	for _, result := range results {
		report.Summary.Add(result.Status)
	}

	s.metrics.RecordEligibility(profile.Level, report.Summary, elapsed)
	s.logger.Info("eligibility evaluated",
		zap.String("level", string(profile.Level)),
		zap.String("board", board),
		zap.Bool("board_recognised", matched),
		zap.Int("colleges", report.Summary.Total),
		zap.Int("eligible", report.Summary.Eligible),
		zap.Int("borderline", report.Summary.Borderline),
		zap.Bool("cache_hit", cacheHit),
	)
	return report, cacheHit, nil
}

// Export runs a check and renders the report in the requested format.
func (s *EligibilityService) Export(ctx context.Context, req CheckRequest, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		format = ExportFormatCSV
	}
	renderer, ok := s.renderers[format]
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}

	report, _, err := s.Check(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := renderer.Render(reportDataset(report))
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render eligibility report")
	}
	filename := fmt.Sprintf("eligibility-%s-%s.%s", report.Profile.Level, report.EvaluatedAt.Format("20060102-150405"), renderer.Extension())
	return &ExportFile{Filename: filename, ContentType: renderer.ContentType(), Payload: payload}, nil
}

// selectColleges keeps catalog order and fails on ids the catalog does not know.
func selectColleges(colleges []models.College, ids []string) ([]models.College, error) {
	if len(ids) == 0 {
		return colleges, nil
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[strings.TrimSpace(id)] = false
	}
	selected := make([]models.College, 0, len(wanted))
	for _, college := range colleges {
		if _, ok := wanted[college.ID]; ok {
			wanted[college.ID] = true
			selected = append(selected, college)
		}
	}
	missing := make([]string, 0)
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if found, ok := wanted[id]; ok && !found {
			missing = append(missing, id)
			delete(wanted, id)
		}
	}
	if len(missing) > 0 {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "unknown college ids: "+strings.Join(missing, ", "))
	}
	return selected, nil
}

func reportDataset(report *models.EligibilityReport) export.Dataset {
	rows := make([][]string, 0, len(report.Results))
	for _, result := range report.Results {
		rows = append(rows, []string{
			result.CollegeName,
			result.Status.Label(),
			string(result.Reason),
			formatOptional(result.CutoffPercentage),
			formatOptional(result.Delta),
			string(result.RequiredStream),
		})
	}
	profile := report.Profile
	profileLine := fmt.Sprintf("Profile: %s, board %s, %.2f%%", profile.Level, report.NormalizedBoard, profile.Percentage)
	if profile.Stream != "" {
		profileLine += ", stream " + string(profile.Stream)
	}
	return export.Dataset{
		Title:   "College Eligibility Report",
		Headers: []string{"College", "Status", "Reason", "Cutoff %", "Margin", "Required Stream"},
		Rows:    rows,
		Notes: []string{
			profileLine,
			fmt.Sprintf("Eligible: %d  Borderline: %d  Not eligible: %d", report.Summary.Eligible, report.Summary.Borderline, report.Summary.NotEligible),
			"Generated at " + report.EvaluatedAt.Format(time.RFC3339),
		},
	}
}

func formatOptional(v *float64) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%.2f", *v)
}
