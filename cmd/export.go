package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/recollect-cli/recollect/internal/deck"
)

var exportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export all items as a JSON deck",
	Long:  "Export writes every item's title, content, and coefficient to a deck file, or to stdout when no file is given. Scheduling state is not exported.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		items, err := st.Repo().AllItems(cmd.Context())
		if err != nil {
			return err
		}

		data, err := deck.Export(items, time.Now())
		if err != nil {
			return err
		}

		if len(args) == 0 {
			_, err = os.Stdout.Write(data)
			return err
		}

		if err := os.WriteFile(args[0], data, 0644); err != nil {
			return fmt.Errorf("write deck: %w", err)
		}
		fmt.Printf("Exported %d item(s) to %s\n", len(items), args[0])
		return nil
	},
}
