package repository

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/noah-isme/career-guide-api/internal/models"
	appErrors "github.com/noah-isme/career-guide-api/pkg/errors"
)

// StaticCollegeRepository serves a seed catalog from memory. It is immutable
// after construction and safe for concurrent reads.
type StaticCollegeRepository struct {
	colleges []models.College
	byID     map[string]int
}

// NewStaticCollegeRepository snapshots the provided colleges in their given order.
func NewStaticCollegeRepository(colleges []models.College) *StaticCollegeRepository {
	snapshot := make([]models.College, len(colleges))
	copy(snapshot, colleges)
	byID := make(map[string]int, len(snapshot))
	for i, college := range snapshot {
		byID[college.ID] = i
	}
	return &StaticCollegeRepository{colleges: snapshot, byID: byID}
}

// List filters, sorts and paginates the in-memory catalog with the same rules as the SQL repository.
func (r *StaticCollegeRepository) List(_ context.Context, filter models.CollegeFilter) ([]models.College, int, error) {
	search := strings.ToLower(strings.TrimSpace(filter.Search))
	location := strings.ToLower(strings.TrimSpace(filter.Location))

	matched := make([]models.College, 0, len(r.colleges))
	for _, college := range r.colleges {
		if search != "" && !strings.Contains(strings.ToLower(college.Name), search) {
			continue
		}
		if location != "" && !strings.Contains(strings.ToLower(college.Location), location) {
			continue
		}
		if filter.Type != "" && college.Type != filter.Type {
			continue
		}
		if !college.OffersCourse(filter.Course) {
			continue
		}
		matched = append(matched, college)
	}

	column, order := collegeSort(filter.SortBy, filter.SortOrder)
	sort.SliceStable(matched, func(i, j int) bool {
		if order == "DESC" {
			return lessBy(column, matched[j], matched[i])
		}
		return lessBy(column, matched[i], matched[j])
	})

	total := len(matched)
	page, size := normalizePage(filter.Page, filter.PageSize)
	start := (page - 1) * size
	if start >= total {
		return []models.College{}, total, nil
	}
	end := start + size
	if end > total {
		end = total
	}
	return matched[start:end], total, nil
}

func lessBy(column string, a, b models.College) bool {
	switch column {
	case "annual_fee":
		return a.AnnualFee < b.AnnualFee
	case "location":
		return strings.ToLower(a.Location) < strings.ToLower(b.Location)
	case "created_at":
		return a.CreatedAt.Before(b.CreatedAt)
	default:
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	}
}

// All returns a copy of the catalog in seed order.
func (r *StaticCollegeRepository) All(_ context.Context) ([]models.College, error) {
	out := make([]models.College, len(r.colleges))
	copy(out, r.colleges)
	return out, nil
}

// FindByID returns sql.ErrNoRows when the ID is unknown so callers can treat both sources alike.
func (r *StaticCollegeRepository) FindByID(_ context.Context, id string) (*models.College, error) {
	idx, ok := r.byID[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	college := r.colleges[idx]
	return &college, nil
}

// ExistsByName checks for a case-insensitive name match, optionally excluding an ID.
func (r *StaticCollegeRepository) ExistsByName(_ context.Context, name string, excludeID string) (bool, error) {
	for _, college := range r.colleges {
		if college.ID != excludeID && strings.EqualFold(college.Name, name) {
			return true, nil
		}
	}
	return false, nil
}

// ReadOnly marks this source as refusing writes.
func (r *StaticCollegeRepository) ReadOnly() bool { return true }

// Create is refused on the static catalog.
func (r *StaticCollegeRepository) Create(context.Context, *models.College) error {
	return appErrors.ErrReadOnlyCatalog
}

// Update is refused on the static catalog.
func (r *StaticCollegeRepository) Update(context.Context, *models.College) error {
	return appErrors.ErrReadOnlyCatalog
}

// Delete is refused on the static catalog.
func (r *StaticCollegeRepository) Delete(context.Context, string) error {
	return appErrors.ErrReadOnlyCatalog
}
