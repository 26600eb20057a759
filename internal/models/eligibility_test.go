package models

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStudentProfileValidate(t *testing.T) {
	cases := []struct {
		name    string
		profile StudentProfile
		wantErr bool
	}{
		{"class10", StudentProfile{Level: LevelClass10, Board: "cbse", Percentage: 78}, false},
		{"puc without stream", StudentProfile{Level: LevelPUC, Board: "state", Percentage: 64}, false},
		{"puc mixed case stream", StudentProfile{Level: LevelPUC, Percentage: 64, Stream: "Science"}, false},
		{"unknown level", StudentProfile{Level: "class12", Percentage: 50}, true},
		{"negative", StudentProfile{Level: LevelClass10, Percentage: -1}, true},
		{"over 100", StudentProfile{Level: LevelClass10, Percentage: 100.5}, true},
		{"nan", StudentProfile{Level: LevelClass10, Percentage: math.NaN()}, true},
		{"unknown stream", StudentProfile{Level: LevelPUC, Percentage: 70, Stream: "vocational"}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.profile.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestStatusBadges(t *testing.T) {
	assert.Equal(t, "✅", StatusEligible.Badge())
	assert.Equal(t, "⚠️", StatusBorderline.Badge())
	assert.Equal(t, "❌", StatusNotEligible.Badge())
}

func TestSummaryAdd(t *testing.T) {
	var s EligibilitySummary
	s.Add(StatusEligible)
	s.Add(StatusBorderline)
	s.Add(StatusNotEligible)
	s.Add(StatusNotEligible)
	assert.Equal(t, EligibilitySummary{Total: 4, Eligible: 1, Borderline: 1, NotEligible: 2}, s)
}
