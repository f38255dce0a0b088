package profile

import (
	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/questiongen"
)

// questionsReadyMsg is sent when question generation returns.
type questionsReadyMsg struct {
	Session *practice.Session
	Result  *questiongen.ParseResult
	Err     error
}
