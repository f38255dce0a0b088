package cmd

import (
	"fmt"
	"strings"

	"github.com/abhisek/quizprep/internal/store"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show practice round history",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		ctx := cmd.Context()
		totals, err := s.EventRepo().RoundTotals(ctx)
		if err != nil {
			return fmt.Errorf("query totals: %w", err)
		}
		if totals.Rounds == 0 {
			fmt.Println("No rounds finished yet.")
			return nil
		}

		rounds, err := s.EventRepo().QueryRoundEvents(ctx, store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query rounds: %w", err)
		}

		fmt.Printf("%-19s  %-24s  %-4s  %7s  %5s  %5s\n",
			"Finished", "Role", "Exp", "Correct", "Wrong", "Total")
		fmt.Println(strings.Repeat("─", 76))
		for _, r := range rounds {
			fmt.Printf("%-19s  %-24s  %-4d  %7d  %5d  %5d\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(r.Role, 24),
				r.ExperienceYears,
				r.Correct,
				r.Wrong,
				r.QuestionCount,
			)
		}
		fmt.Println(strings.Repeat("─", 76))
		fmt.Printf("Rounds: %d   Correct: %d   Wrong: %d   Accuracy: %.0f%%\n",
			totals.Rounds, totals.Correct, totals.Wrong, totals.Accuracy()*100)
		return nil
	},
}

func init() {
	statsCmd.Flags().IntP("limit", "n", 20, "Number of rounds to show")
}
