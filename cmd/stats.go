package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/recollect-cli/recollect/internal/knowledge"
	"github.com/recollect-cli/recollect/internal/scheduler"
	"github.com/recollect-cli/recollect/internal/session"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show collection statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		settings, err := loadSettings(cmd)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		ctx := cmd.Context()
		repo := st.Repo()
		items, err := repo.AllItems(ctx)
		if err != nil {
			return err
		}

		var learning, mastered, reviews int
		for _, item := range items {
			reviews += item.ReviewCount
			if item.Status == knowledge.StatusMastered {
				mastered++
			} else {
				learning++
			}
		}

		sched := scheduler.New(repo, settings.MasteryConfig())
		tasks, err := sched.TodayReviewTasks(ctx, time.Now())
		if err != nil {
			return err
		}
		var overdue int
		for _, task := range tasks {
			if task.Priority == scheduler.PriorityOverdue {
				overdue++
			}
		}

		agg := session.NewAggregator(repo)
		preview, err := agg.Preview(ctx, time.Now())
		if err != nil {
			return err
		}

		fmt.Printf("Items:         %d\n", len(items))
		fmt.Printf("  learning:    %d\n", learning)
		fmt.Printf("  mastered:    %d\n", mastered)
		fmt.Printf("Reviews done:  %d\n", reviews)
		fmt.Printf("Due today:     %d (%d overdue)\n", len(tasks), overdue)
		fmt.Printf("Coming up:     %d tomorrow, %d within a week\n", preview.Tomorrow, preview.NextWeek)
		return nil
	},
}
