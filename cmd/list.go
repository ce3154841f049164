package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/recollect-cli/recollect/internal/knowledge"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all knowledge items",
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
		if len(items) == 0 {
			fmt.Println("No items yet. Add one with: recollect add")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tREVIEWS\tNEXT REVIEW")
		for _, item := range items {
			next := "-"
			if item.NextReviewAt != nil {
				next = item.NextReviewAt.Local().Format("2006-01-02")
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
				shortID(item.ID), item.Title, item.Status, item.ReviewCount, next)
		}
		return w.Flush()
	},
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// findItem resolves a full or prefix id to a single item.
func findItem(items []*knowledge.Item, id string) (*knowledge.Item, error) {
	var match *knowledge.Item
	for _, item := range items {
		if item.ID == id {
			return item, nil
		}
		if len(id) >= 4 && len(item.ID) >= len(id) && item.ID[:len(id)] == id {
			if match != nil {
				return nil, fmt.Errorf("id prefix %q is ambiguous", id)
			}
			match = item
		}
	}
	if match == nil {
		return nil, fmt.Errorf("no item with id %q", id)
	}
	return match, nil
}
