package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"dataview/ports"
)

func uploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <file.csv|file.xlsx>",
		Short: "Upload a dataset for analysis and print the derived views",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents()
			if err != nil {
				return err
			}

			path := args[0]
			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			// fail fast on extension/size before touching the network
			if err := c.pipeline.Validate(path, info.Size()); err != nil {
				return err
			}

			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			result, err := c.pipeline.Upload(cmd.Context(), ports.UploadFile{
				Name:    filepath.Base(path),
				Size:    info.Size(),
				Content: f,
			}, c.store.Current())
			if err != nil {
				return err
			}

			fmt.Printf("Analyzed %s: %d rows x %d cols\n\n", filepath.Base(path), result.Rows, result.Cols)
			printResult(result)

			if result.CleanedFile != "" {
				fmt.Printf("\nCleaned file: %s\n", c.client.ResolveArtifact(result.CleanedFile))
			}
			if result.ReportPDF != "" {
				fmt.Printf("Report:       %s\n", c.client.ResolveArtifact(result.ReportPDF))
			}
			return nil
		},
	}
}
