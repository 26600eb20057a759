package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCollegeRowPreservesOptionalCutoffs(t *testing.T) {
	college := College{
		ID:            "c-1",
		Name:          "Presidency College",
		Courses:       []string{"B.Sc", "B.Com"},
		Class10Cutoff: &Class10Cutoff{Percentage: 75},
		PucCutoff:     &PucCutoff{Percentage: 82.5, Stream: StreamScience, Subjects: "PCM"},
	}

	row := NewCollegeRow(college)
	assert.Nil(t, row.Class10CutoffBoard)
	assert.Equal(t, "B.Sc,B.Com", row.Courses)

	back := row.ToCollege()
	assert.Equal(t, college.Class10Cutoff, back.Class10Cutoff)
	assert.Equal(t, college.PucCutoff, back.PucCutoff)
	assert.Equal(t, college.Courses, back.Courses)
}

func TestCollegeRowWithoutCutoffs(t *testing.T) {
	back := CollegeRow{ID: "c-2", Name: "Open Institute", Courses: " "}.ToCollege()
	assert.Nil(t, back.Class10Cutoff)
	assert.Nil(t, back.PucCutoff)
	assert.Empty(t, back.Courses)
}

func TestCutoffFor(t *testing.T) {
	college := College{PucCutoff: &PucCutoff{Percentage: 60, Stream: StreamCommerce}}

	_, _, ok := college.CutoffFor(LevelClass10)
	assert.False(t, ok)

	pct, stream, ok := college.CutoffFor(LevelPUC)
	assert.True(t, ok)
	assert.Equal(t, 60.0, pct)
	assert.Equal(t, StreamCommerce, stream)
}

func TestOffersCourse(t *testing.T) {
	college := College{Courses: []string{"Computer Science Engineering", "MBA"}}
	assert.True(t, college.OffersCourse("computer"))
	assert.True(t, college.OffersCourse(""))
	assert.False(t, college.OffersCourse("law"))
}
