package main

import (
	"github.com/spf13/cobra"

	"dataview/ui"
)

func serveCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the local view server (JSON chart/table views)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents()
			if err != nil {
				return err
			}

			// warm the history cache for the restored session
			c.history.Refresh(cmd.Context(), c.store.Current())

			if port == "" {
				port = c.cfg.UI.Port
			}
			viewApp := ui.NewApp(c.store, c.pipeline, c.history, c.client, nil)
			return viewApp.Start(ui.Config{Port: port})
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Listen port (default from config)")

	return cmd
}
