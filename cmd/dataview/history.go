package main

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"dataview/domain/analysis"
)

func historyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List past analyses for the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents()
			if err != nil {
				return err
			}

			entries := c.history.Refresh(cmd.Context(), c.store.Current())
			if len(entries) == 0 {
				fmt.Println("No history (log in and upload a dataset first)")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tFILE\tROWS\tCOLS\tCREATED")
			for _, e := range entries {
				fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\n",
					e.ID, e.Filename, e.Rows, e.Cols, e.CreatedAt.Format("2006-01-02 15:04"))
			}
			return w.Flush()
		},
	}
}

func showCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Fetch a past analysis by id and print its derived views",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents()
			if err != nil {
				return err
			}

			// a history entry carries no columns or preview, so the full
			// record is always refetched by id before rendering
			entries := c.history.Refresh(cmd.Context(), c.store.Current())
			selected := entryByID(entries, args[0])

			result, err := c.history.Select(cmd.Context(), selected, c.store.Current())
			if err != nil {
				return err
			}
			c.pipeline.SetActive(result)

			name := selected.Filename
			if name == "" {
				name = selected.ID
			}
			fmt.Printf("%s: %d rows x %d cols\n\n", name, result.Rows, result.Cols)
			printResult(result)
			return nil
		},
	}
}

func entryByID(entries []analysis.HistoryEntry, id string) analysis.HistoryEntry {
	for _, e := range entries {
		if e.ID == id {
			return e
		}
	}
	return analysis.HistoryEntry{ID: id}
}
