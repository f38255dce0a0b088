package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/abhisek/quizprep/internal/app"
	"github.com/abhisek/quizprep/internal/feedback"
	"github.com/abhisek/quizprep/internal/llm"
	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/questiongen"
	"github.com/abhisek/quizprep/internal/store"
	"github.com/spf13/cobra"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	svc, modelID, err := newPracticeService(cmd.Context(), st.EventRepo())
	if err != nil {
		return err
	}

	skipWelcome, _ := cmd.Flags().GetBool("skip-welcome")
	return app.Run(app.Options{
		Service:     svc,
		ModelID:     modelID,
		SkipWelcome: skipWelcome,
		Rounds:      st.EventRepo(),
	})
}

// newPracticeService wires the provider, generator and feedback requestor.
// A missing credential is not fatal: the provider then fails every call
// with a ServiceError that the UI shows to the user.
func newPracticeService(ctx context.Context, repo store.EventRepo) (*practice.Service, string, error) {
	var recorder llm.EventRecorder
	var rounds practice.RoundRecorder
	if repo != nil {
		recorder = repo
		rounds = repo
	}

	provider, err := llm.NewProviderFromEnv(ctx, recorder)
	if err != nil {
		if !errors.Is(err, llm.ErrNoCredential) {
			return nil, "", fmt.Errorf("LLM provider: %w", err)
		}
		fmt.Fprintln(os.Stderr, "LLM provider not configured:", err)
		fmt.Fprintln(os.Stderr, "Question generation and feedback will fail until an API key is set.")
	}

	svc := practice.NewService(
		questiongen.New(provider, questiongen.DefaultConfig()),
		feedback.NewService(provider, feedback.DefaultConfig()),
		rounds,
	)
	return svc, provider.ModelID(), nil
}
