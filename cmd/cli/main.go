package main

import (
	"github.com/go-atrium/atrium/pkg/version"
	"github.com/spf13/cobra"
)

/**
 * @file: main.go
 * @description: cli program
 */

var rootCmd = &cobra.Command{
	Use:   "atrium-cli",
	Short: "atrium cli is a command line tool",
	Long:  "atrium cli is a command line tool",
	Run: func(cmd *cobra.Command, args []string) {
		err := cmd.Help()
		if err != nil {
			return
		}
	},
}

func init() {
	rootCmd.AddCommand(version.VersionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		panic(err)
	}
}
