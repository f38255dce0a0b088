package api

import (
	"time"

	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/questiongen"
	"github.com/abhisek/quizprep/internal/quiz"
)

type profileView struct {
	Role            string   `json:"role"`
	Skills          []string `json:"skills"`
	ExperienceYears int      `json:"experience_years"`
}

type optionView struct {
	Label string `json:"label"`
	Text  string `json:"text"`
}

type questionView struct {
	Index    int          `json:"index"`
	Text     string       `json:"text"`
	Options  []optionView `json:"options"`
	Selected string       `json:"selected,omitempty"`
}

type skippedView struct {
	Position int    `json:"position"`
	Reason   string `json:"reason"`
	Excerpt  string `json:"excerpt"`
}

type resultItemView struct {
	Index        int    `json:"index"`
	Question     string `json:"question"`
	Selected     string `json:"selected"`
	CorrectLabel string `json:"correct_label,omitempty"`
	Correct      bool   `json:"correct"`
}

type resultsView struct {
	Correct int              `json:"correct"`
	Wrong   int              `json:"wrong"`
	Total   int              `json:"total"`
	Items   []resultItemView `json:"items"`
	Summary []string         `json:"summary"`
	Totals  string           `json:"totals"`
}

type sessionView struct {
	ID        string         `json:"id"`
	Profile   profileView    `json:"profile"`
	Phase     string         `json:"phase"`
	StartedAt time.Time      `json:"started_at"`
	Questions []questionView `json:"questions"`
	Skipped   []skippedView  `json:"skipped,omitempty"`
	Results   *resultsView   `json:"results,omitempty"`
	Feedback  string         `json:"feedback,omitempty"`
}

type questionsResponse struct {
	Questions []questionView `json:"questions"`
	Skipped   []skippedView  `json:"skipped"`
}

func newSessionView(s *practice.Session) sessionView {
	v := sessionView{
		ID: s.ID,
		Profile: profileView{
			Role:            s.Profile.Role,
			Skills:          s.Profile.Skills,
			ExperienceYears: s.Profile.ExperienceYears,
		},
		Phase:     s.Quiz.Phase().String(),
		StartedAt: s.StartedAt,
		Questions: newQuestionViews(s.Quiz),
		Skipped:   newSkippedViews(s.Skipped()),
		Feedback:  s.Feedback,
	}
	if r := s.Quiz.Results(); r != nil {
		rv := newResultsView(r)
		v.Results = &rv
	}
	return v
}

// newQuestionViews renders the loaded questions without their answers.
func newQuestionViews(q *quiz.Quiz) []questionView {
	qs := q.Questions()
	out := make([]questionView, len(qs))
	for i, qu := range qs {
		opts := make([]optionView, len(qu.Options))
		for j, o := range qu.Options {
			opts[j] = optionView{Label: o.Label, Text: o.Text}
		}
		out[i] = questionView{Index: qu.Index, Text: qu.Text, Options: opts}
		if sel, ok := q.Selection(qu.Index); ok {
			out[i].Selected = sel.Label
		}
	}
	return out
}

func newSkippedViews(skipped []questiongen.SkippedSegment) []skippedView {
	out := make([]skippedView, len(skipped))
	for i, s := range skipped {
		out[i] = skippedView{Position: s.Position, Reason: s.Reason, Excerpt: s.Excerpt}
	}
	return out
}

func newResultsView(r *quiz.Results) resultsView {
	items := make([]resultItemView, len(r.Items))
	for i, it := range r.Items {
		items[i] = resultItemView{
			Index:        it.Index,
			Question:     it.QuestionText,
			Selected:     it.Selected.Label,
			CorrectLabel: it.CorrectLabel,
			Correct:      it.IsCorrect,
		}
	}
	return resultsView{
		Correct: r.Correct,
		Wrong:   r.Wrong,
		Total:   r.Total,
		Items:   items,
		Summary: r.Lines(),
		Totals:  r.TotalsLine(),
	}
}
