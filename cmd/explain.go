package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recollect-cli/recollect/internal/assist"
)

var explainCmd = &cobra.Command{
	Use:   "explain <id>",
	Short: "Generate a memory hook for an item",
	Long:  "Explain asks the configured LLM for a mnemonic or framing that makes the item easier to recall. Requires an API key (see RECOLLECT_LLM_PROVIDER).",
	Args:  cobra.ExactArgs(1),
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
		item, err := findItem(items, args[0])
		if err != nil {
			return err
		}

		provider, err := assist.NewProviderFromEnv(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider not configured: %w", err)
		}

		hook, err := assist.MemoryHook(cmd.Context(), provider, item.Title, item.Content)
		if err != nil {
			return err
		}

		fmt.Println(item.Title)
		fmt.Println()
		fmt.Println(hook)
		return nil
	},
}
