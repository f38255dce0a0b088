package questiongen

import (
	"fmt"
	"strings"
)

// Labels are the option labels a question may carry, in display order.
var Labels = []string{"A", "B", "C", "D"}

// Question is one multiple-choice question parsed from a model response.
type Question struct {
	// Index is the 1-based presentation position.
	Index int

	// Text is the question prompt shown to the candidate.
	Text string

	// Options holds up to four options with unique labels, in response order.
	// Labels need not be contiguous.
	Options []Option

	// CorrectLabel is the text that followed "Answer:" in the response,
	// usually a bare letter. Empty when the response omitted the marker.
	CorrectLabel string
}

// Option is a single labeled choice.
type Option struct {
	Label string // one of A, B, C, D
	Text  string
}

// String renders the option the way it appeared in the response, e.g. "B) 4".
func (o Option) String() string {
	return fmt.Sprintf("%s) %s", o.Label, o.Text)
}

// HasAnswer reports whether the response supplied an answer for the question.
func (q Question) HasAnswer() bool {
	return q.AnswerLetter() != ""
}

// AnswerLetter returns the option label the correct answer refers to: the
// first letter of CorrectLabel after any markdown or bracket noise, if it is
// one of A-D. Returns "" when absent or unrecognizable.
func (q Question) AnswerLetter() string {
	s := strings.TrimLeft(q.CorrectLabel, " \t*_([")
	if s == "" {
		return ""
	}
	letter := strings.ToUpper(s[:1])
	for _, l := range Labels {
		if l == letter {
			// "B", "B)", "B. 4" and "B) 4" all name option B; "Both" does not.
			if len(s) == 1 || !isLetter(s[1]) {
				return letter
			}
		}
	}
	return ""
}

// Option returns the option with the given label.
func (q Question) Option(label string) (Option, bool) {
	for _, o := range q.Options {
		if o.Label == label {
			return o, true
		}
	}
	return Option{}, false
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

// SkippedSegment records a response segment that produced no question.
type SkippedSegment struct {
	// Position is the 1-based position of the segment in the response.
	Position int

	// Reason says why the segment was dropped.
	Reason string

	// Excerpt is the start of the segment text, for diagnostics.
	Excerpt string
}

// ParseResult is the outcome of parsing one model response.
type ParseResult struct {
	Questions []Question
	Skipped   []SkippedSegment
}

// Empty reports whether no usable question was parsed.
func (r *ParseResult) Empty() bool {
	return r == nil || len(r.Questions) == 0
}
