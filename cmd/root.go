// Package cmd is for command line interactions with the dasp application
package cmd

import (
	"log"

	"github.com/RBVI/dasp3/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// RootCmd represents the base command when called without any subcommands.
var RootCmd = &cobra.Command{
	Use: "dasp",
	Short: `Search a protein sequence database with active site profiles.
Each profile fragment is an alignment that is scored as a PSSM`,
	Version: "3.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the RootCmd.
func Execute() {
	if err := RootCmd.Execute(); err != nil {
		log.Fatalf("%v", err)
	}
}

// set flags
func init() {
	cobra.OnInitialize(readSettings)
	config.SetDefaults(viper.GetViper())

	// settings is an optional YAML file that overrides the defaults
	RootCmd.PersistentFlags().StringP("settings", "s", "", "settings file <YAML>")
	RootCmd.PersistentFlags().BoolP("verbose", "v", false, "log progress to stderr")
	RootCmd.PersistentFlags().BoolP("include-x", "x", false, "score X as a 21st residue")

	viper.BindPFlag("settings", RootCmd.PersistentFlags().Lookup("settings"))
	viper.BindPFlag("verbose", RootCmd.PersistentFlags().Lookup("verbose"))
	viper.BindPFlag("include-x", RootCmd.PersistentFlags().Lookup("include-x"))
}

// readSettings merges the settings file, if one was given, into viper.
func readSettings() {
	if settings := viper.GetString("settings"); settings != "" {
		if err := config.ReadSettings(viper.GetViper(), settings); err != nil {
			log.Fatal(err)
		}
	}
}
