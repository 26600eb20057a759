package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/career-guide-api/internal/models"
	"github.com/noah-isme/career-guide-api/internal/service"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
	"github.com/noah-isme/career-guide-api/pkg/response"
)

type collegeService interface {
	List(ctx context.Context, filter models.CollegeFilter) ([]models.College, *models.Pagination, error)
	Get(ctx context.Context, id string) (*models.College, error)
	Create(ctx context.Context, req service.CollegeRequest) (*models.College, error)
	Update(ctx context.Context, id string, req service.CollegeRequest) (*models.College, error)
	Delete(ctx context.Context, id string) error
}

// CollegeHandler handles college catalog endpoints.
type CollegeHandler struct {
	service collegeService
}

// NewCollegeHandler constructs a college handler.
func NewCollegeHandler(svc collegeService) *CollegeHandler {
	return &CollegeHandler{service: svc}
}

// List godoc
// @Summary List colleges
// @Tags Colleges
// @Produce json
// @Param search query string false "Search by name"
// @Param location query string false "Filter by location"
// @Param course query string false "Filter by course"
// @Param type query string false "GOVERNMENT, PRIVATE or AIDED"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Param sort query string false "name, annual_fee, location or created_at"
// @Param order query string false "asc or desc"
// @Success 200 {object} response.Envelope
// @Router /colleges [get]
func (h *CollegeHandler) List(c *gin.Context) {
	var filter models.CollegeFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Location = strings.TrimSpace(c.Query("location"))
	filter.Course = strings.TrimSpace(c.Query("course"))
	filter.Type = models.CollegeType(strings.ToUpper(strings.TrimSpace(c.Query("type"))))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	colleges, pagination, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, colleges, pagination)
}

// Get godoc
// @Summary Get college by id
// @Tags Colleges
// @Produce json
// @Param id path string true "College ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /colleges/{id} [get]
func (h *CollegeHandler) Get(c *gin.Context) {
	college, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}

// Create godoc
// @Summary Create college
// @Tags Colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body service.CollegeRequest true "College payload"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /colleges [post]
func (h *CollegeHandler) Create(c *gin.Context) {
	var req service.CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	college, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, college)
}

// Update godoc
// @Summary Update college
// @Tags Colleges
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "College ID"
// @Param payload body service.CollegeRequest true "College payload"
// @Success 200 {object} response.Envelope
// @Router /colleges/{id} [put]
func (h *CollegeHandler) Update(c *gin.Context) {
	var req service.CollegeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	college, err := h.service.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, college, nil)
}

// Delete godoc
// @Summary Delete college
// @Tags Colleges
// @Produce json
// @Security BearerAuth
// @Param id path string true "College ID"
// @Success 204
// @Router /colleges/{id} [delete]
func (h *CollegeHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
