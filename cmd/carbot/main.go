package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "carbot",
		Short: "Relay Discord channel messages to a LINE group",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to carbot.toml")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Connect to the Discord gateway and start relaying",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(configPath)
		},
	})

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
