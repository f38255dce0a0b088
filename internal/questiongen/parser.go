package questiongen

import (
	"regexp"
	"strings"
)

var (
	// questionMarker matches a question start at the beginning of a line:
	// "Q1.", "Q 2.", "3." with optional markdown bold around it.
	questionMarker = regexp.MustCompile(`(?m)^[ \t]*(?:\*\*)?(?:Q[ \t]*\d+|\d+)\.(?:\*\*)?`)

	// optionLine matches "A) text" through "D) text".
	optionLine = regexp.MustCompile(`^([A-D])\)[ \t]*(.*)$`)
)

const answerMarker = "Answer:"

// Parse converts a raw question-generation response into questions.
//
// Text before the first question marker is discarded; without any marker
// the whole response is treated as one segment. At most expectedCount
// segments are considered (all of them when expectedCount <= 0). Segments
// that yield no option lines are dropped and reported in Skipped. Surviving
// questions are indexed 1..N in response order. Parse never fails.
func Parse(raw string, expectedCount int) ParseResult {
	var result ParseResult

	position := 0
	for _, seg := range splitSegments(raw) {
		if strings.TrimSpace(seg) == "" {
			continue
		}
		if expectedCount > 0 && position == expectedCount {
			break
		}
		position++

		q, reason := parseSegment(seg)
		if reason != "" {
			result.Skipped = append(result.Skipped, SkippedSegment{
				Position: position,
				Reason:   reason,
				Excerpt:  excerpt(seg, 60),
			})
			continue
		}
		q.Index = len(result.Questions) + 1
		result.Questions = append(result.Questions, q)
	}

	return result
}

// splitSegments returns the text following each question marker, up to the
// next marker.
func splitSegments(raw string) []string {
	locs := questionMarker.FindAllStringIndex(raw, -1)
	if len(locs) == 0 {
		return []string{raw}
	}

	segments := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, raw[loc[1]:end])
	}
	return segments
}

// parseSegment extracts one question. A non-empty reason means the segment
// must be skipped.
func parseSegment(seg string) (Question, string) {
	body, answer, hasAnswer := strings.Cut(seg, answerMarker)

	var q Question
	if hasAnswer {
		q.CorrectLabel = firstLine(answer)
	}

	seen := make(map[string]bool, len(Labels))
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if q.Text == "" {
			q.Text = strings.Trim(line, "* ")
			continue
		}
		m := optionLine.FindStringSubmatch(line)
		if m == nil || seen[m[1]] {
			continue
		}
		seen[m[1]] = true
		q.Options = append(q.Options, Option{Label: m[1], Text: strings.TrimSpace(m[2])})
	}

	switch {
	case q.Text == "":
		return Question{}, "no question text"
	case len(q.Options) == 0:
		return Question{}, "no option lines"
	}
	return q, ""
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.Trim(strings.TrimSpace(s), " \t*_")
}

func excerpt(s string, max int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max]) + "..."
}
