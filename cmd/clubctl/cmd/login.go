package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <email> <password>",
	Short: "Log in and save the session token",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		session, err := c.Login(args[0], args[1])
		if err != nil {
			return err
		}

		if err := saveToken(session.Token); err != nil {
			return err
		}

		clubs, err := c.ListClubs()
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", args[0])
		for _, club := range clubs {
			fmt.Fprintf(cmd.OutOrStdout(), "  %-36s %-8s %s\n", club.ClubID, club.Role, club.ClubName)
		}

		return nil
	},
}

var selectCmd = &cobra.Command{
	Use:   "select <club-id>",
	Short: "Select the club later commands act in",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		session, err := c.SelectClub(args[0])
		if err != nil {
			return err
		}

		if err := saveToken(session.Token); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Selected club %s\n", session.SelectedClubID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(selectCmd)
}
