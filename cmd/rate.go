package cmd

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/recollect-cli/recollect/internal/scheduler"
)

var rateCmd = &cobra.Command{
	Use:   "rate <id> <rating>",
	Short: "Record a recall rating (1-5) for an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rating, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("rating must be an integer 1-5: %q", args[1])
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		settings, err := loadSettings(cmd)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		repo := st.Repo()
		items, err := repo.AllItems(cmd.Context())
		if err != nil {
			return err
		}
		item, err := findItem(items, args[0])
		if err != nil {
			return err
		}

		sched := scheduler.New(repo, settings.MasteryConfig())
		res, err := sched.ProcessRating(cmd.Context(), item.ID, rating, time.Now())
		if err != nil {
			return err
		}

		switch {
		case res.Promoted:
			fmt.Printf("%q is now mastered.\n", res.Item.Title)
		case res.Rebounded:
			fmt.Printf("%q dropped back to learning.\n", res.Item.Title)
		}
		fmt.Printf("Next review in %.1f day(s), on %s.\n",
			res.IntervalDays, res.NextReviewAt.Local().Format("2006-01-02"))
		return nil
	},
}
