package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/career-guide-api/internal/models"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
)

// CollegeRepository is the catalog source contract shared by the SQL and static repositories.
type CollegeRepository interface {
	List(ctx context.Context, filter models.CollegeFilter) ([]models.College, int, error)
	All(ctx context.Context) ([]models.College, error)
	FindByID(ctx context.Context, id string) (*models.College, error)
	ExistsByName(ctx context.Context, name string, excludeID string) (bool, error)
	Create(ctx context.Context, college *models.College) error
	Update(ctx context.Context, college *models.College) error
	Delete(ctx context.Context, id string) error
}

type readOnlySource interface {
	ReadOnly() bool
}

// Class10CutoffRequest is the class 10 cutoff supplied by admins.
type Class10CutoffRequest struct {
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	Board      string  `json:"board" validate:"max=64"`
}

// PucCutoffRequest is the PUC cutoff supplied by admins. An empty stream accepts every stream.
type PucCutoffRequest struct {
	Percentage float64 `json:"percentage" validate:"gte=0,lte=100"`
	Stream     string  `json:"stream" validate:"omitempty,oneof=science commerce arts"`
	Subjects   string  `json:"subjects" validate:"max=255"`
}

// CollegeRequest captures fields for creating or replacing a college.
type CollegeRequest struct {
	Name          string                `json:"name" validate:"required,max=200"`
	Location      string                `json:"location" validate:"max=120"`
	Type          models.CollegeType    `json:"type" validate:"required,oneof=GOVERNMENT PRIVATE AIDED"`
	AnnualFee     float64               `json:"annual_fee" validate:"gte=0"`
	HostelFee     *float64              `json:"hostel_fee" validate:"omitempty,gte=0"`
	Courses       []string              `json:"courses" validate:"dive,required,max=120"`
	Website       string                `json:"website" validate:"omitempty,url"`
	Class10Cutoff *Class10CutoffRequest `json:"class10_cutoff"`
	PucCutoff     *PucCutoffRequest     `json:"puc_cutoff"`
}

func (r *CollegeRequest) normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Location = strings.TrimSpace(r.Location)
	r.Type = models.CollegeType(strings.ToUpper(strings.TrimSpace(string(r.Type))))
	r.Website = strings.TrimSpace(r.Website)
	courses := make([]string, 0, len(r.Courses))
	for _, course := range r.Courses {
		// commas are the persisted separator
		if trimmed := strings.TrimSpace(strings.ReplaceAll(course, ",", " ")); trimmed != "" {
			courses = append(courses, trimmed)
		}
	}
	r.Courses = courses
	if r.Class10Cutoff != nil {
		r.Class10Cutoff.Board = strings.ToLower(strings.TrimSpace(r.Class10Cutoff.Board))
	}
	if r.PucCutoff != nil {
		r.PucCutoff.Stream = string(models.Stream(r.PucCutoff.Stream).Normalize())
		r.PucCutoff.Subjects = strings.TrimSpace(r.PucCutoff.Subjects)
	}
}

func (r CollegeRequest) apply(college *models.College) {
	college.Name = r.Name
	college.Location = r.Location
	college.Type = r.Type
	college.AnnualFee = r.AnnualFee
	college.HostelFee = r.HostelFee
	college.Courses = r.Courses
	college.Website = r.Website
	college.Class10Cutoff = nil
	if r.Class10Cutoff != nil {
		college.Class10Cutoff = &models.Class10Cutoff{Percentage: r.Class10Cutoff.Percentage, Board: r.Class10Cutoff.Board}
	}
	college.PucCutoff = nil
	if r.PucCutoff != nil {
		college.PucCutoff = &models.PucCutoff{
			Percentage: r.PucCutoff.Percentage,
			Stream:     models.Stream(r.PucCutoff.Stream),
			Subjects:   r.PucCutoff.Subjects,
		}
	}
}

// CollegeService owns the college catalog read path and admin maintenance.
type CollegeService struct {
	repo      CollegeRepository
	cache     *CatalogCache
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCollegeService creates a new college service. cache may be nil.
func NewCollegeService(repo CollegeRepository, cache *CatalogCache, validate *validator.Validate, logger *zap.Logger) *CollegeService {
	if validate == nil {
		validate = NewValidator()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CollegeService{repo: repo, cache: cache, validator: validate, logger: logger}
}

// ReadOnly reports whether the backing catalog refuses writes.
func (s *CollegeService) ReadOnly() bool {
	source, ok := s.repo.(readOnlySource)
	return ok && source.ReadOnly()
}

// List returns paginated colleges.
func (s *CollegeService) List(ctx context.Context, filter models.CollegeFilter) ([]models.College, *models.Pagination, error) {
	colleges, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list colleges")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	return colleges, &models.Pagination{Page: page, PageSize: size, TotalCount: total}, nil
}

// All returns the full catalog in evaluation order and whether it came from cache.
func (s *CollegeService) All(ctx context.Context) ([]models.College, bool, error) {
	cached, hit, err := s.cache.Load(ctx)
	if err != nil {
		s.logger.Warn("catalog cache unavailable, reading source", zap.Error(err))
	} else if hit {
		return cached, true, nil
	}

	colleges, err := s.repo.All(ctx)
	if err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load college catalog")
	}
	if err := s.cache.Store(ctx, colleges); err != nil {
		s.logger.Warn("catalog cache write failed", zap.Error(err))
	}
	return colleges, false, nil
}

// Get returns a college by identifier.
func (s *CollegeService) Get(ctx context.Context, id string) (*models.College, error) {
	college, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load college")
	}
	return college, nil
}

// Create adds a college ensuring name uniqueness.
func (s *CollegeService) Create(ctx context.Context, req CollegeRequest) (*models.College, error) {
	if s.ReadOnly() {
		return nil, appErrors.ErrReadOnlyCatalog
	}
	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid college payload")
	}

	if err := s.ensureUniqueName(ctx, req.Name, ""); err != nil {
		return nil, err
	}

	college := &models.College{}
	req.apply(college)
	if err := s.repo.Create(ctx, college); err != nil {
		return nil, s.writeError(err, "failed to create college")
	}
	s.invalidate(ctx)
	s.logger.Info("college created", zap.String("college_id", college.ID), zap.String("name", college.Name))
	return college, nil
}

// Update replaces an existing college's fields.
func (s *CollegeService) Update(ctx context.Context, id string, req CollegeRequest) (*models.College, error) {
	if s.ReadOnly() {
		return nil, appErrors.ErrReadOnlyCatalog
	}
	req.normalize()
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "invalid college payload")
	}

	college, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.ensureUniqueName(ctx, req.Name, id); err != nil {
		return nil, err
	}

	req.apply(college)
	if err := s.repo.Update(ctx, college); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return nil, s.writeError(err, "failed to update college")
	}
	s.invalidate(ctx)
	return college, nil
}

// Delete removes a college from the catalog.
func (s *CollegeService) Delete(ctx context.Context, id string) error {
	if s.ReadOnly() {
		return appErrors.ErrReadOnlyCatalog
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "college not found")
		}
		return s.writeError(err, "failed to delete college")
	}
	s.invalidate(ctx)
	s.logger.Info("college deleted", zap.String("college_id", id))
	return nil
}

func (s *CollegeService) ensureUniqueName(ctx context.Context, name, excludeID string) error {
	exists, err := s.repo.ExistsByName(ctx, name, excludeID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check college name")
	}
	if exists {
		return appErrors.Clone(appErrors.ErrConflict, "college name already exists")
	}
	return nil
}

func (s *CollegeService) writeError(err error, message string) error {
	var appErr *appErrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, message)
}

func (s *CollegeService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("catalog cache invalidation failed", zap.Error(err))
	}
}
