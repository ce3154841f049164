package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/recollect-cli/recollect/internal/deck"
)

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import items from a JSON deck",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read deck: %w", err)
		}

		d, err := deck.Parse(data)
		if err != nil {
			return err
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

		n, err := deck.Import(cmd.Context(), st.Repo(), d, settings.FrequencyCoefficient, time.Now())
		if err != nil {
			return fmt.Errorf("imported %d item(s) before failing: %w", n, err)
		}

		fmt.Printf("Imported %d item(s) from %s\n", n, args[0])
		return nil
	},
}
