package quiz

import (
	"errors"
	"fmt"
)

var (
	// ErrNotLoaded is returned when no question set is loaded.
	ErrNotLoaded = errors.New("no questions loaded")

	// ErrFinalized is returned when selecting after the round was scored.
	ErrFinalized = errors.New("quiz already finalized")

	// ErrUnknownQuestion is returned for an index that is not loaded.
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrUnknownOption is returned for a label the question does not offer.
	ErrUnknownOption = errors.New("unknown option")
)

// IncompleteAnswersError is returned by Finalize when some questions have
// no selection. The quiz stays in progress.
type IncompleteAnswersError struct {
	Unanswered []int // 1-based question indices
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("please answer all questions before finishing; unanswered: %v", e.Unanswered)
}
