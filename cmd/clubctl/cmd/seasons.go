package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var seasonsCmd = &cobra.Command{
	Use:   "seasons",
	Short: "List seasons",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		seasons, err := c.ListSeasons()
		if err != nil {
			return err
		}

		for _, s := range seasons {
			fmt.Fprintf(cmd.OutOrStdout(), "%-36s %s\n", s.ID, s.Name)
		}

		return nil
	},
}

var seasonsCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a season (club admins)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		season, err := c.CreateSeason(args[0])
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created season %s (%s)\n", season.Name, season.ID)
		return nil
	},
}

var medalsCmd = &cobra.Command{
	Use:   "medals",
	Short: "List the medal catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newClient()
		if err != nil {
			return err
		}

		medals, err := c.ListMedals()
		if err != nil {
			return err
		}

		for _, m := range medals {
			fmt.Fprintf(cmd.OutOrStdout(), "%2d  %s\n", m.Position, m.Display)
		}

		return nil
	},
}

func init() {
	seasonsCmd.AddCommand(seasonsCreateCmd)
	rootCmd.AddCommand(seasonsCmd)
	rootCmd.AddCommand(medalsCmd)
}
