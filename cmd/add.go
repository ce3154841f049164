package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/recollect-cli/recollect/internal/knowledge"
	"github.com/recollect-cli/recollect/internal/srs"
)

var addCmd = &cobra.Command{
	Use:   "add <title>",
	Short: "Add a knowledge item",
	Args:  cobra.ExactArgs(1),
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

		content, _ := cmd.Flags().GetString("content")
		coeff, _ := cmd.Flags().GetFloat64("coefficient")
		if coeff == 0 {
			coeff = settings.FrequencyCoefficient
		}
		if coeff < srs.MinFrequencyCoefficient || coeff > srs.MaxFrequencyCoefficient {
			return srs.ErrInvalidFrequencyCoefficient
		}

		now := time.Now()
		item := &knowledge.Item{
			Title:                args[0],
			Content:              content,
			FrequencyCoefficient: coeff,
			Status:               knowledge.StatusLearning,
			CreatedAt:            now,
			NextReviewAt:         &now,
		}
		if err := st.Repo().CreateItem(cmd.Context(), item); err != nil {
			return err
		}

		fmt.Printf("Added %q (%s)\n", item.Title, item.ID)
		return nil
	},
}

func init() {
	addCmd.Flags().StringP("content", "c", "", "Item content (the thing to remember)")
	addCmd.Flags().Float64P("coefficient", "f", 0, "Frequency coefficient 0.5-1.5 (default from settings)")
}
