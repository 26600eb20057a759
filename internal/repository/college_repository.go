package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/career-guide-api/internal/models"
)

const collegeColumns = `id, name, location, type, annual_fee, hostel_fee, courses, website,
        class10_cutoff_percentage, class10_cutoff_board, puc_cutoff_percentage, puc_cutoff_stream, puc_cutoff_subjects,
        created_at, updated_at`

// queryObserver receives per-query timings; MetricsService satisfies it.
type queryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

// CollegeRepository manages persistence for the college catalog.
type CollegeRepository struct {
	db      *sqlx.DB
	metrics queryObserver
}

// NewCollegeRepository constructs a CollegeRepository.
func NewCollegeRepository(db *sqlx.DB, metrics queryObserver) *CollegeRepository {
	return &CollegeRepository{db: db, metrics: metrics}
}

func (r *CollegeRepository) observe(label string, start time.Time) {
	if r.metrics != nil {
		r.metrics.ObserveDBQuery(label, time.Since(start))
	}
}

// List returns colleges matching the provided filters.
func (r *CollegeRepository) List(ctx context.Context, filter models.CollegeFilter) ([]models.College, int, error) {
	defer r.observe("colleges_list", time.Now())

	args := []interface{}{}
	conditions := []string{"1=1"}

	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(name) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if filter.Location != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(location) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Location)+"%")
	}
	if filter.Course != "" {
		conditions = append(conditions, fmt.Sprintf("LOWER(courses) LIKE $%d", len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Course)+"%")
	}
	if filter.Type != "" {
		conditions = append(conditions, fmt.Sprintf("type = $%d", len(args)+1))
		args = append(args, string(filter.Type))
	}

	where := strings.Join(conditions, " AND ")
	column, order := collegeSort(filter.SortBy, filter.SortOrder)
	page, size := normalizePage(filter.Page, filter.PageSize)
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT %s
        FROM colleges WHERE %s ORDER BY %s %s LIMIT %d OFFSET %d`, collegeColumns, where, column, order, size, offset)

	var rows []models.CollegeRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list colleges: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, fmt.Sprintf("SELECT COUNT(*) FROM colleges WHERE %s", where), args...); err != nil {
		return nil, 0, fmt.Errorf("count colleges: %w", err)
	}
	return toColleges(rows), total, nil
}

// All returns the full catalog in a stable order for evaluation.
func (r *CollegeRepository) All(ctx context.Context) ([]models.College, error) {
	defer r.observe("colleges_all", time.Now())

	query := fmt.Sprintf(`SELECT %s
        FROM colleges ORDER BY name ASC, id ASC`, collegeColumns)
	var rows []models.CollegeRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	return toColleges(rows), nil
}

// FindByID fetches a college by ID. It returns sql.ErrNoRows when absent.
func (r *CollegeRepository) FindByID(ctx context.Context, id string) (*models.College, error) {
	if !isCollegeID(id) {
		return nil, sql.ErrNoRows
	}
	defer r.observe("colleges_find", time.Now())

	query := fmt.Sprintf(`SELECT %s
        FROM colleges WHERE id = $1`, collegeColumns)
	var row models.CollegeRow
	if err := r.db.GetContext(ctx, &row, query, id); err != nil {
		return nil, err
	}
	college := row.ToCollege()
	return &college, nil
}

// ExistsByName checks whether a college name is taken, optionally excluding an ID.
func (r *CollegeRepository) ExistsByName(ctx context.Context, name string, excludeID string) (bool, error) {
	query := "SELECT 1 FROM colleges WHERE LOWER(name) = LOWER($1)"
	args := []interface{}{name}
	if excludeID != "" {
		query += " AND id <> $2"
		args = append(args, excludeID)
	}
	var exists int
	if err := r.db.GetContext(ctx, &exists, query+" LIMIT 1", args...); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check college name: %w", err)
	}
	return true, nil
}

// Create inserts a new college.
func (r *CollegeRepository) Create(ctx context.Context, college *models.College) error {
	defer r.observe("colleges_create", time.Now())

	if college.ID == "" {
		college.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if college.CreatedAt.IsZero() {
		college.CreatedAt = now
	}
	college.UpdatedAt = now
	const query = `INSERT INTO colleges (id, name, location, type, annual_fee, hostel_fee, courses, website,
        class10_cutoff_percentage, class10_cutoff_board, puc_cutoff_percentage, puc_cutoff_stream, puc_cutoff_subjects, created_at, updated_at)
        VALUES (:id, :name, :location, :type, :annual_fee, :hostel_fee, :courses, :website,
        :class10_cutoff_percentage, :class10_cutoff_board, :puc_cutoff_percentage, :puc_cutoff_stream, :puc_cutoff_subjects, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, models.NewCollegeRow(*college)); err != nil {
		return fmt.Errorf("create college: %w", err)
	}
	return nil
}

// Update modifies an existing college. It returns sql.ErrNoRows when nothing was updated.
func (r *CollegeRepository) Update(ctx context.Context, college *models.College) error {
	if !isCollegeID(college.ID) {
		return sql.ErrNoRows
	}
	defer r.observe("colleges_update", time.Now())

	college.UpdatedAt = time.Now().UTC()
	const query = `UPDATE colleges SET name = :name, location = :location, type = :type, annual_fee = :annual_fee, hostel_fee = :hostel_fee,
        courses = :courses, website = :website, class10_cutoff_percentage = :class10_cutoff_percentage, class10_cutoff_board = :class10_cutoff_board,
        puc_cutoff_percentage = :puc_cutoff_percentage, puc_cutoff_stream = :puc_cutoff_stream, puc_cutoff_subjects = :puc_cutoff_subjects,
        updated_at = :updated_at WHERE id = :id`
	res, err := r.db.NamedExecContext(ctx, query, models.NewCollegeRow(*college))
	if err != nil {
		return fmt.Errorf("update college: %w", err)
	}
	return requireAffected(res)
}

// Delete removes a college. It returns sql.ErrNoRows when the ID is unknown.
func (r *CollegeRepository) Delete(ctx context.Context, id string) error {
	if !isCollegeID(id) {
		return sql.ErrNoRows
	}
	defer r.observe("colleges_delete", time.Now())

	res, err := r.db.ExecContext(ctx, `DELETE FROM colleges WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete college: %w", err)
	}
	return requireAffected(res)
}

// isCollegeID reports whether id can match the uuid primary key; anything else
// is treated as absent rather than sent to Postgres.
func isCollegeID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func requireAffected(res sql.Result) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func collegeSort(sortBy, sortOrder string) (string, string) {
	allowedSorts := map[string]string{
		"name":       "name",
		"annual_fee": "annual_fee",
		"location":   "location",
		"created_at": "created_at",
	}
	column, ok := allowedSorts[sortBy]
	if !ok {
		column = "name"
	}
	order := strings.ToUpper(sortOrder)
	if order != "ASC" && order != "DESC" {
		order = "ASC"
	}
	return column, order
}

func normalizePage(page, size int) (int, int) {
	if page < 1 {
		page = 1
	}
	if size <= 0 || size > 100 {
		size = 20
	}
	return page, size
}

func toColleges(rows []models.CollegeRow) []models.College {
	colleges := make([]models.College, 0, len(rows))
	for _, row := range rows {
		colleges = append(colleges, row.ToCollege())
	}
	return colleges
}
