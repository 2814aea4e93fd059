// Package cmd implements the command-line interface for the UK business
// directory service.
package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/ukdirectory/cmd/search"
	"github.com/jonesrussell/ukdirectory/cmd/serve"
)

var version = "1.0.0"

var rootCmd = &cobra.Command{
	Use:   "ukdirectory",
	Short: "UK business directory search service",
	Long: `ukdirectory aggregates business listings from UK directories
(Yell, FreeIndex, Thomson Local, Yelp UK, Google Maps) behind a single
search API.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.ExecuteContext(context.Background())
}

func init() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ukdirectory version %s\n", version)
		},
	})

	rootCmd.AddCommand(serve.Command())
	rootCmd.AddCommand(search.Command())
}
