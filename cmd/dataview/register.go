package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func registerCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "register <email> <password>",
		Short: "Create an account and persist the resulting session",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents()
			if err != nil {
				return err
			}

			sess, err := c.store.Register(cmd.Context(), args[0], args[1], name)
			if err != nil {
				return err
			}

			c.history.Refresh(cmd.Context(), sess)
			fmt.Printf("Registered %s\n", sess.User.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name for the new account")

	return cmd
}
