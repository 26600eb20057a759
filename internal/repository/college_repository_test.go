package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/career-guide-api/internal/models"
)

var collegeRowColumns = []string{"id", "name", "location", "type", "annual_fee", "hostel_fee", "courses", "website",
	"class10_cutoff_percentage", "class10_cutoff_board", "puc_cutoff_percentage", "puc_cutoff_stream", "puc_cutoff_subjects",
	"created_at", "updated_at"}

const (
	knownCollegeID   = "6f1c2a8e-3b7d-4c1e-9a52-0d4e8b7f3c21"
	missingCollegeID = "00000000-0000-4000-8000-000000000000"
)

type recordingObserver struct {
	labels []string
}

func (o *recordingObserver) ObserveDBQuery(label string, _ time.Duration) {
	o.labels = append(o.labels, label)
}

func newCollegeMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func TestCollegeRepositoryList(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	observer := &recordingObserver{}
	repo := NewCollegeRepository(db, observer)

	now := time.Now()
	rows := sqlmock.NewRows(collegeRowColumns).
		AddRow("c-1", "RV College of Engineering", "Bengaluru", "PRIVATE", 250000.0, nil, "CSE,ECE", "https://rvce.edu.in",
			nil, nil, 90.0, "science", "PCM", now, now)
	mock.ExpectQuery(regexp.QuoteMeta("FROM colleges WHERE 1=1 AND LOWER(name) LIKE $1 AND type = $2 ORDER BY annual_fee DESC LIMIT 10 OFFSET 10")).
		WithArgs("%engineering%", "PRIVATE").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM colleges WHERE 1=1 AND LOWER(name) LIKE $1 AND type = $2")).
		WithArgs("%engineering%", "PRIVATE").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(11))

	colleges, total, err := repo.List(context.Background(), models.CollegeFilter{
		Search: "Engineering", Type: models.CollegeTypePrivate, Page: 2, PageSize: 10, SortBy: "annual_fee", SortOrder: "desc",
	})
	require.NoError(t, err)
	require.Len(t, colleges, 1)
	assert.Equal(t, 11, total)
	assert.Nil(t, colleges[0].Class10Cutoff)
	require.NotNil(t, colleges[0].PucCutoff)
	assert.Equal(t, models.StreamScience, colleges[0].PucCutoff.Stream)
	assert.Equal(t, []string{"CSE", "ECE"}, colleges[0].Courses)
	assert.Equal(t, []string{"colleges_list"}, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryListDefaults(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM colleges WHERE 1=1 ORDER BY name ASC LIMIT 20 OFFSET 0")).
		WillReturnRows(sqlmock.NewRows(collegeRowColumns))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM colleges WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	colleges, total, err := repo.List(context.Background(), models.CollegeFilter{SortBy: "drop table", PageSize: 500})
	require.NoError(t, err)
	assert.Empty(t, colleges)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryAll(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db, nil)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("FROM colleges ORDER BY name ASC, id ASC")).
		WillReturnRows(sqlmock.NewRows(collegeRowColumns).
			AddRow("c-1", "A", "Mysuru", "GOVERNMENT", 20000.0, 15000.0, "BA", "", 60.0, "state", nil, nil, nil, now, now).
			AddRow("c-2", "B", "Mysuru", "AIDED", 30000.0, nil, "", "", nil, nil, nil, nil, nil, now, now))

	colleges, err := repo.All(context.Background())
	require.NoError(t, err)
	require.Len(t, colleges, 2)
	require.NotNil(t, colleges[0].Class10Cutoff)
	assert.Equal(t, "state", colleges[0].Class10Cutoff.Board)
	require.NotNil(t, colleges[0].HostelFee)
	assert.Nil(t, colleges[1].Class10Cutoff)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("FROM colleges WHERE id = $1")).
		WithArgs(missingCollegeID).
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), missingCollegeID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryExistsByName(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db, nil)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM colleges WHERE LOWER(name) = LOWER($1) AND id <> $2 LIMIT 1")).
		WithArgs("RVCE", "c-1").
		WillReturnError(sql.ErrNoRows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT 1 FROM colleges WHERE LOWER(name) = LOWER($1) LIMIT 1")).
		WithArgs("RVCE").
		WillReturnRows(sqlmock.NewRows([]string{"?column?"}).AddRow(1))

	exists, err := repo.ExistsByName(context.Background(), "RVCE", "c-1")
	require.NoError(t, err)
	assert.False(t, exists)

	exists, err = repo.ExistsByName(context.Background(), "RVCE", "")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db, nil)

	mock.ExpectExec("INSERT INTO colleges").
		WithArgs(sqlmock.AnyArg(), "St. Joseph's College", "Bengaluru", "AIDED", 45000.0, nil, "B.Com,BBA", "",
			75.0, nil, nil, nil, nil, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	college := &models.College{
		Name:          "St. Joseph's College",
		Location:      "Bengaluru",
		Type:          models.CollegeTypeAided,
		AnnualFee:     45000,
		Courses:       []string{"B.Com", "BBA"},
		Class10Cutoff: &models.Class10Cutoff{Percentage: 75},
	}
	require.NoError(t, repo.Create(context.Background(), college))
	assert.NotEmpty(t, college.ID)
	assert.False(t, college.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryUpdateMissing(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db, nil)

	mock.ExpectExec("UPDATE colleges SET").WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &models.College{ID: missingCollegeID, Name: "Ghost"})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	repo := NewCollegeRepository(db, nil)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM colleges WHERE id = $1")).
		WithArgs(knownCollegeID).
		WillReturnResult(sqlmock.NewResult(0, 1))

	require.NoError(t, repo.Delete(context.Background(), knownCollegeID))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCollegeRepositoryMalformedIDIsNotFound(t *testing.T) {
	db, mock, cleanup := newCollegeMock(t)
	defer cleanup()
	observer := &recordingObserver{}
	repo := NewCollegeRepository(db, observer)
	ctx := context.Background()

	_, err := repo.FindByID(ctx, "not-a-uuid")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.ErrorIs(t, repo.Update(ctx, &models.College{ID: "not-a-uuid", Name: "X"}), sql.ErrNoRows)
	assert.ErrorIs(t, repo.Delete(ctx, "c-1"), sql.ErrNoRows)

	assert.Empty(t, observer.labels)
	assert.NoError(t, mock.ExpectationsWereMet())
}
