package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/career-guide-api/internal/dto"
	"github.com/noah-isme/career-guide-api/internal/middleware"
	"github.com/noah-isme/career-guide-api/internal/models"
	"github.com/noah-isme/career-guide-api/internal/service"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
	"github.com/noah-isme/career-guide-api/pkg/response"
)

type eligibilityService interface {
	Check(ctx context.Context, req service.CheckRequest) (*models.EligibilityReport, bool, error)
	Export(ctx context.Context, req service.CheckRequest, format string) (*service.ExportFile, error)
}

// EligibilityHandler exposes eligibility checks over HTTP.
type EligibilityHandler struct {
	service eligibilityService
	logger  *zap.Logger
}

// NewEligibilityHandler constructs the handler.
func NewEligibilityHandler(svc eligibilityService, logger *zap.Logger) *EligibilityHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EligibilityHandler{service: svc, logger: logger}
}

// Check godoc
// @Summary Check college eligibility
// @Description Classifies every catalog college, or the requested subset, as ELIGIBLE, BORDERLINE or NOT_ELIGIBLE for the given profile.
// @Tags Eligibility
// @Accept json
// @Produce json
// @Param payload body service.CheckRequest true "Student profile"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /eligibility/check [post]
func (h *EligibilityHandler) Check(c *gin.Context) {
	var req service.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	report, cacheHit, err := h.service.Check(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if claims := middleware.CurrentClaims(c); claims != nil {
		h.logger.Debug("eligibility check by authenticated user", zap.String("user_id", claims.UserID()))
	}

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, dto.NewEligibilityCheckResponse(report), nil, middleware.Meta(c))
}

// Export godoc
// @Summary Export eligibility report
// @Tags Eligibility
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param format query string false "csv or pdf" default(csv)
// @Param payload body service.CheckRequest true "Student profile"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Router /eligibility/export [post]
func (h *EligibilityHandler) Export(c *gin.Context) {
	var req service.CheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	file, err := h.service.Export(c.Request.Context(), req, c.DefaultQuery("format", service.ExportFormatCSV))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
