package models

import (
	"strings"
	"time"
)

// CollegeType distinguishes funding models shown in listings.
type CollegeType string

const (
	CollegeTypeGovernment CollegeType = "GOVERNMENT"
	CollegeTypePrivate    CollegeType = "PRIVATE"
	CollegeTypeAided      CollegeType = "AIDED"
)

// Class10Cutoff is the admission threshold for students coming out of class 10.
type Class10Cutoff struct {
	Percentage float64 `json:"percentage"`
	Board      string  `json:"board,omitempty"`
}

// PucCutoff is the admission threshold for pre-university (class 12) students.
// An empty Stream accepts every stream.
type PucCutoff struct {
	Percentage float64 `json:"percentage"`
	Stream     Stream  `json:"stream,omitempty"`
	Subjects   string  `json:"subjects,omitempty"`
}

// College is a catalog entry a student can be evaluated against.
type College struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Location      string         `json:"location"`
	Type          CollegeType    `json:"type"`
	AnnualFee     float64        `json:"annual_fee"`
	HostelFee     *float64       `json:"hostel_fee,omitempty"`
	Courses       []string       `json:"courses"`
	Website       string         `json:"website,omitempty"`
	Class10Cutoff *Class10Cutoff `json:"class10_cutoff,omitempty"`
	PucCutoff     *PucCutoff     `json:"puc_cutoff,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// CutoffFor returns the cutoff percentage and PUC stream that apply to the
// given level. ok is false when the college publishes no cutoff for it.
func (c College) CutoffFor(level Level) (percentage float64, stream Stream, ok bool) {
	switch level {
	case LevelClass10:
		if c.Class10Cutoff != nil {
			return c.Class10Cutoff.Percentage, "", true
		}
	case LevelPUC:
		if c.PucCutoff != nil {
			return c.PucCutoff.Percentage, c.PucCutoff.Stream, true
		}
	}
	return 0, "", false
}

// OffersCourse reports whether any course name contains the query, case-insensitively.
func (c College) OffersCourse(query string) bool {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return true
	}
	for _, course := range c.Courses {
		if strings.Contains(strings.ToLower(course), query) {
			return true
		}
	}
	return false
}

// CollegeRow is the flat persisted shape of a College.
type CollegeRow struct {
	ID                      string    `db:"id"`
	Name                    string    `db:"name"`
	Location                string    `db:"location"`
	Type                    string    `db:"type"`
	AnnualFee               float64   `db:"annual_fee"`
	HostelFee               *float64  `db:"hostel_fee"`
	Courses                 string    `db:"courses"`
	Website                 string    `db:"website"`
	Class10CutoffPercentage *float64  `db:"class10_cutoff_percentage"`
	Class10CutoffBoard      *string   `db:"class10_cutoff_board"`
	PucCutoffPercentage     *float64  `db:"puc_cutoff_percentage"`
	PucCutoffStream         *string   `db:"puc_cutoff_stream"`
	PucCutoffSubjects       *string   `db:"puc_cutoff_subjects"`
	CreatedAt               time.Time `db:"created_at"`
	UpdatedAt               time.Time `db:"updated_at"`
}

// ToCollege expands the flat row into the domain shape.
func (r CollegeRow) ToCollege() College {
	college := College{
		ID:        r.ID,
		Name:      r.Name,
		Location:  r.Location,
		Type:      CollegeType(r.Type),
		AnnualFee: r.AnnualFee,
		HostelFee: r.HostelFee,
		Courses:   splitCourses(r.Courses),
		Website:   r.Website,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if r.Class10CutoffPercentage != nil {
		college.Class10Cutoff = &Class10Cutoff{Percentage: *r.Class10CutoffPercentage, Board: deref(r.Class10CutoffBoard)}
	}
	if r.PucCutoffPercentage != nil {
		college.PucCutoff = &PucCutoff{
			Percentage: *r.PucCutoffPercentage,
			Stream:     Stream(deref(r.PucCutoffStream)),
			Subjects:   deref(r.PucCutoffSubjects),
		}
	}
	return college
}

// NewCollegeRow flattens a College for persistence.
func NewCollegeRow(c College) CollegeRow {
	row := CollegeRow{
		ID:        c.ID,
		Name:      c.Name,
		Location:  c.Location,
		Type:      string(c.Type),
		AnnualFee: c.AnnualFee,
		HostelFee: c.HostelFee,
		Courses:   strings.Join(c.Courses, ","),
		Website:   c.Website,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
	if c.Class10Cutoff != nil {
		pct := c.Class10Cutoff.Percentage
		row.Class10CutoffPercentage = &pct
		row.Class10CutoffBoard = optional(c.Class10Cutoff.Board)
	}
	if c.PucCutoff != nil {
		pct := c.PucCutoff.Percentage
		row.PucCutoffPercentage = &pct
		row.PucCutoffStream = optional(string(c.PucCutoff.Stream))
		row.PucCutoffSubjects = optional(c.PucCutoff.Subjects)
	}
	return row
}

// Pagination is returned alongside list responses.
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalCount int `json:"total_count"`
}

// CollegeFilter captures catalog listing criteria.
type CollegeFilter struct {
	Search    string
	Location  string
	Course    string
	Type      CollegeType
	Page      int
	PageSize  int
	SortBy    string
	SortOrder string
}

func splitCourses(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	courses := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			courses = append(courses, trimmed)
		}
	}
	return courses
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
