/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/daetalos/track-record-enterprise-sub001/pkg/clubclient"
	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const tokenFileName = ".clubctl-token"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clubctl",
	Short: "Command line client for the club records server",
	Long: `clubctl talks to a clubd server. Log in once; the session token is kept in
~/.clubctl-token and used by the other commands.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func tokenPath() (string, error) {
	home, err := homedir.Dir()
	if err != nil {
		return "", errors.Wrap(err, "unable to find home directory")
	}

	return filepath.Join(home, tokenFileName), nil
}

func saveToken(token string) error {
	path, err := tokenPath()
	if err != nil {
		return err
	}

	return os.WriteFile(path, []byte(token+"\n"), 0600)
}

// newClient returns a client for the configured server carrying the saved
// token, if any.
func newClient() (*clubclient.Client, error) {
	c := clubclient.NewClient(viper.GetString("server"))

	path, err := tokenPath()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		return c, nil
	case err != nil:
		return nil, errors.Wrapf(err, "unable to read token file %s", path)
	}

	c.SetToken(strings.TrimSpace(string(b)))
	return c, nil
}

func init() {
	viper.SetEnvPrefix("CLUBCTL")
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "clubd server URL")
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
}
