package questiongen

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizprep/internal/profile"
)

// formatContract is the strict output format the parser understands.
const formatContract = `STRICT FORMAT:
Q1. Question text
A) Option 1
B) Option 2
C) Option 3
D) Option 4
Answer: B

Q2. Question text
...`

// BuildQuestionPrompt returns the prompt asking for count multiple-choice
// questions tailored to p.
func BuildQuestionPrompt(p profile.Profile, count int) (string, error) {
	if count < MinCount || count > MaxCount {
		return "", fmt.Errorf("question count must be between %d and %d, got %d", MinCount, MaxCount, count)
	}
	if err := p.Validate(); err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an expert interview coach. Generate %d multiple-choice questions\n", count)
	fmt.Fprintf(&b, "for a candidate applying for the role: %s.\n", p.Role)
	fmt.Fprintf(&b, "Candidate's skills: %s.\n", p.SkillList())
	fmt.Fprintf(&b, "Experience: %d years.\n\n", p.ExperienceYears)
	fmt.Fprintf(&b, "Each question must have exactly four options labeled A) to D) and end with an\n")
	fmt.Fprintf(&b, "\"Answer: <letter>\" line. Do not add any text before Q1.\n\n")
	b.WriteString(formatContract)
	b.WriteString("\n")
	return b.String(), nil
}
