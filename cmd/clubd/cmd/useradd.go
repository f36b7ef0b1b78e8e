package cmd

import (
	"fmt"
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubauth"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/clubmodel"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubdb/stor"
	"github.com/spf13/cobra"
)

var userAddCmd = &cobra.Command{
	Use:   "useradd <email> <password>",
	Short: "Add a user who can log in to the API",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		admin, _ := cmd.Flags().GetBool("admin")

		userStor := stor.NewGormUserStor(clubdb.MustConnectToDB())
		user, err := addUser(userStor, args[0], args[1], name, admin)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Created user %s (%s)\n", user.Email, user.ID)
		return nil
	},
}

func addUser(userStor stor.UserStor, email, password, name string, admin bool) (*clubmodel.User, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("an email and a password of at least 8 characters are required")
	}

	hash, err := clubauth.HashPassword(password)
	if err != nil {
		return nil, err
	}

	if name == "" {
		name = email
	}

	return userStor.CreateUser(&clubmodel.User{Email: email, Name: name, Password: hash, IsAdmin: admin})
}

func init() {
	userAddCmd.Flags().String("name", "", "display name (defaults to the email)")
	userAddCmd.Flags().Bool("admin", false, "make the user a system administrator")
	rootCmd.AddCommand(userAddCmd)
}
