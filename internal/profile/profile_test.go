package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSkills(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"Go, SQL ,Kubernetes", []string{"Go", "SQL", "Kubernetes"}},
		{" , ,", []string{}},
		{"", []string{}},
		{"Python", []string{"Python"}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseSkills(tt.in), "ParseSkills(%q)", tt.in)
	}
}

func TestParse(t *testing.T) {
	p, err := Parse("  Backend Developer ", "Go, PostgreSQL", 4)
	require.NoError(t, err)
	assert.Equal(t, "Backend Developer", p.Role)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, p.Skills)
	assert.Equal(t, 4, p.ExperienceYears)
	assert.Equal(t, "Go, PostgreSQL", p.SkillList())
}

func TestValidation(t *testing.T) {
	tests := []struct {
		name   string
		role   string
		skills string
		exp    int
	}{
		{"missing role", "  ", "Go", 1},
		{"missing skills", "SRE", " , ", 1},
		{"negative experience", "SRE", "Go", -1},
		{"too much experience", "SRE", "Go", MaxExperienceYears + 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.role, tt.skills, tt.exp)
			assert.ErrorIs(t, err, ErrInvalidProfile)
		})
	}
}

func TestValidate_BlankSkillInLiteral(t *testing.T) {
	p := Profile{Role: "QA", Skills: []string{"Selenium", " "}}
	assert.ErrorIs(t, p.Validate(), ErrInvalidProfile)
}
