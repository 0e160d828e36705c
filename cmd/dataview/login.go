package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email> <password>",
		Short: "Log in to the analysis service and persist the session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents()
			if err != nil {
				return err
			}

			sess, err := c.store.Login(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}

			entries := c.history.Refresh(cmd.Context(), sess)
			fmt.Printf("Logged in as %s (%d past analyses)\n", sess.User.Email, len(entries))
			return nil
		},
	}
}
