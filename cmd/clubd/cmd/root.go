/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"os"
	"strings"

	"github.com/apex/log"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/clog"
	"github.com/daetalos/track-record-enterprise-sub001/pkg/config"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const defaultEnvFile = "~/.clubd.env"

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "clubd",
	Short: "Athletics club records server",
	Long: `clubd serves the club records API: clubs and their members, seasons and
disciplines, athletes, and the performances recorded against them. Run without a
subcommand it starts the server.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadEnvFile(); err != nil {
			return err
		}

		return clog.Global().Setup(viper.GetString("log-level"), viper.GetString("log-output"))
	},
	Run: func(cmd *cobra.Command, args []string) {
		if err := runServe(cmd.Context()); err != nil {
			log.Fatalf("clubd: %s", err)
		}
	},
}

// loadEnvFile loads the dotenv file, if there is one. A missing default file
// is fine; a missing file the user named is not.
func loadEnvFile() error {
	path := viper.GetString("env-file")
	explicit := path != defaultEnvFile

	expanded, err := homedir.Expand(path)
	if err != nil {
		return err
	}

	if _, err := os.Stat(expanded); err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return err
	}

	config.SetConfig(config.NewDotenvConfig(expanded))
	return config.Load()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	viper.SetEnvPrefix("CLUBD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	rootCmd.PersistentFlags().String("env-file", defaultEnvFile, "dotenv file with the server settings")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-output", clog.Stdout, "log output: stdout, stderr or a file path")
	rootCmd.Flags().Int("port", 0, "port to listen on (default CLUBD_PORT or 8080)")

	for _, name := range []string{"env-file", "log-level", "log-output"} {
		_ = viper.BindPFlag(name, rootCmd.PersistentFlags().Lookup(name))
	}
	_ = viper.BindPFlag("port", rootCmd.Flags().Lookup("port"))
}
