package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/recollect-cli/recollect/internal/scheduler"
)

var tasksDate string

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Show today's review tasks",
	RunE: func(cmd *cobra.Command, args []string) error {
		now := time.Now()
		if tasksDate != "" {
			d, err := time.ParseInLocation("2006-01-02", tasksDate, time.Local)
			if err != nil {
				return fmt.Errorf("invalid --date %q: expected YYYY-MM-DD", tasksDate)
			}
			now = d
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

		sched := scheduler.New(st.Repo(), settings.MasteryConfig())
		tasks, err := sched.TodayReviewTasks(cmd.Context(), now)
		if err != nil {
			return err
		}
		if len(tasks) == 0 {
			fmt.Println("All caught up: nothing due today.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tPRIORITY\tDUE")
		for _, task := range tasks {
			due := task.DueAt.Local().Format("2006-01-02")
			priority := task.Priority.String()
			if task.Priority == scheduler.PriorityOverdue {
				priority = fmt.Sprintf("%s (%dd)", priority, task.DaysOverdue)
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
				shortID(task.Item.ID), task.Item.Title, priority, due)
		}
		return w.Flush()
	},
}

func init() {
	tasksCmd.Flags().StringVar(&tasksDate, "date", "", "evaluate due tasks as of this date (YYYY-MM-DD)")
}
