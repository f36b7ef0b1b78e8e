package cmd

import (
	"github.com/apex/log"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and seed the gender and medal catalogs",
	RunE: func(cmd *cobra.Command, args []string) error {
		db := clubdb.MustConnectToDB()

		if err := clubdb.Migrate(db); err != nil {
			return err
		}

		if err := clubdb.SeedCatalogs(db); err != nil {
			return err
		}

		log.Infof("Database migrated")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
