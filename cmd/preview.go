package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/abhisek/quizprep/internal/practice"
	"github.com/abhisek/quizprep/internal/profile"
	"github.com/abhisek/quizprep/internal/questiongen"
	"github.com/abhisek/quizprep/internal/quiz"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Answer generated questions in plain text mode (no database)",
	Long: `Generate a question set for a profile and answer it line by line.

This is a stateless tool: no database and no recorded events. Useful for
evaluating question quality for a role or checking provider configuration.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("role", "", "Target job role (required)")
	previewCmd.Flags().String("skills", "", "Comma-separated skills (required)")
	previewCmd.Flags().Int("experience", 0, "Years of experience")
	previewCmd.Flags().Int("count", questiongen.DefaultCount, "Number of questions to generate (1-10)")
	previewCmd.Flags().Bool("feedback", false, "Request AI feedback after scoring")
	previewCmd.Flags().Bool("raw", false, "Print skipped segments from the model response")
	_ = previewCmd.MarkFlagRequired("role")
	_ = previewCmd.MarkFlagRequired("skills")
}

func runPreview(cmd *cobra.Command, args []string) error {
	role, _ := cmd.Flags().GetString("role")
	skills, _ := cmd.Flags().GetString("skills")
	experience, _ := cmd.Flags().GetInt("experience")
	count, _ := cmd.Flags().GetInt("count")
	wantFeedback, _ := cmd.Flags().GetBool("feedback")
	showSkipped, _ := cmd.Flags().GetBool("raw")

	p, err := profile.Parse(role, skills, experience)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	svc, modelID, err := newPracticeService(ctx, nil)
	if err != nil {
		return err
	}
	sess := practice.NewSession(p)

	fmt.Printf("Role: %s, %d years (%s) [%s]\n", p.Role, p.ExperienceYears, p.SkillList(), modelID)
	fmt.Println("Generating Questions...")

	res, err := svc.Generate(ctx, sess, count)
	if showSkipped && res != nil {
		for _, sk := range res.Skipped {
			fmt.Printf("skipped segment %d: %s: %q\n", sk.Position, sk.Reason, sk.Excerpt)
		}
	}
	if err != nil {
		if errors.Is(err, practice.ErrEmptyParseResult) {
			return fmt.Errorf("%w; try again", err)
		}
		return err
	}

	scanner := bufio.NewScanner(os.Stdin)
	for _, q := range sess.Quiz.Questions() {
		fmt.Printf("\nQ%d. %s\n", q.Index, q.Text)
		for _, o := range q.Options {
			fmt.Printf("   %s\n", o)
		}
		for {
			fmt.Print("Your answer: ")
			if !scanner.Scan() {
				return fmt.Errorf("input closed before all questions were answered")
			}
			label := strings.ToUpper(strings.TrimSpace(scanner.Text()))
			if err := sess.Quiz.Select(q.Index, label); err != nil {
				if errors.Is(err, quiz.ErrUnknownOption) {
					fmt.Println("Pick one of the listed option letters.")
					continue
				}
				return err
			}
			break
		}
	}

	results, err := svc.Finish(ctx, sess)
	if err != nil {
		return err
	}

	fmt.Println()
	fmt.Println(results.Summary())
	fmt.Println(results.TotalsLine())

	if !wantFeedback {
		return nil
	}
	fmt.Println("\nGenerating feedback...")
	text, err := svc.Feedback(ctx, sess)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(text)
	return nil
}
