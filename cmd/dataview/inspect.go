package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"dataview/adapters/localdata"
)

func inspectCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "inspect <file.csv|file.xlsx>",
		Short: "Preview a local file's first rows without uploading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			preview, err := localdata.NewReader(args[0]).ReadPreview(limit)
			if err != nil {
				return err
			}

			fmt.Printf("%s (%d columns)\n\n", filepath.Base(args[0]), len(preview.Headers))
			printLocalPreview(preview.Headers, preview.Rows)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "rows", 10, "Max data rows to show")

	return cmd
}
