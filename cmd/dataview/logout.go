package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents()
			if err != nil {
				return err
			}

			c.store.Logout()
			fmt.Println("Logged out")
			return nil
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the current session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newComponents()
			if err != nil {
				return err
			}

			sess := c.store.Current()
			if !sess.Authenticated() {
				fmt.Println("Not logged in (anonymous mode)")
				return nil
			}
			if sess.User.Name != "" {
				fmt.Printf("%s <%s>\n", sess.User.Name, sess.User.Email)
				return nil
			}
			fmt.Println(sess.User.Email)
			return nil
		},
	}
}
