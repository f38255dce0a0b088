package feedback

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizprep/internal/profile"
)

// BuildFeedbackPrompt asks the model to evaluate a finished round. The
// results summary is embedded as given.
func BuildFeedbackPrompt(p profile.Profile, resultsSummary string) string {
	var b strings.Builder
	b.WriteString("The candidate just completed an interview practice.\n")
	fmt.Fprintf(&b, "Role: %s\n", p.Role)
	fmt.Fprintf(&b, "Skills: %s\n", p.SkillList())
	fmt.Fprintf(&b, "Experience: %d years\n\n", p.ExperienceYears)
	b.WriteString("Results:\n")
	b.WriteString(resultsSummary)
	b.WriteString("\n\nPlease provide:\n")
	b.WriteString("1. A brief evaluation of the candidate's performance\n")
	b.WriteString("2. Strengths\n")
	b.WriteString("3. Weaknesses\n")
	b.WriteString("4. Suggestions for improvement\n")
	return b.String()
}
