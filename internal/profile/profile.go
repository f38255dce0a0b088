// Package profile holds the candidate profile a practice session is
// tailored to.
package profile

import (
	"errors"
	"fmt"
	"strings"
)

// MaxExperienceYears is the largest accepted experience value.
const MaxExperienceYears = 50

// ErrInvalidProfile is wrapped by every validation failure.
var ErrInvalidProfile = errors.New("invalid profile")

// Profile describes the candidate. It is immutable for one practice session.
type Profile struct {
	Role            string
	Skills          []string
	ExperienceYears int
}

// New trims and validates the inputs and returns a Profile.
func New(role string, skills []string, experienceYears int) (Profile, error) {
	p := Profile{
		Role:            strings.TrimSpace(role),
		Skills:          cleanSkills(skills),
		ExperienceYears: experienceYears,
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Parse builds a Profile from the comma-separated skills form used by the
// profile screen and the HTTP API.
func Parse(role, skillsCSV string, experienceYears int) (Profile, error) {
	return New(role, ParseSkills(skillsCSV), experienceYears)
}

// ParseSkills splits a comma-separated list, trimming entries and dropping
// empty ones.
func ParseSkills(csv string) []string {
	return cleanSkills(strings.Split(csv, ","))
}

// Validate reports the first problem with the profile.
func (p Profile) Validate() error {
	if strings.TrimSpace(p.Role) == "" {
		return fmt.Errorf("%w: role is required", ErrInvalidProfile)
	}
	if len(p.Skills) == 0 {
		return fmt.Errorf("%w: at least one skill is required", ErrInvalidProfile)
	}
	for _, s := range p.Skills {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%w: skills must not be blank", ErrInvalidProfile)
		}
	}
	if p.ExperienceYears < 0 || p.ExperienceYears > MaxExperienceYears {
		return fmt.Errorf("%w: experience must be between 0 and %d years, got %d",
			ErrInvalidProfile, MaxExperienceYears, p.ExperienceYears)
	}
	return nil
}

// SkillList returns the skills joined for display and prompts.
func (p Profile) SkillList() string {
	return strings.Join(p.Skills, ", ")
}

func cleanSkills(skills []string) []string {
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
