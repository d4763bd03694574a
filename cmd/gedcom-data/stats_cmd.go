package main

import (
	"github.com/spf13/cobra"

	"github.com/kindred-app/kindred/pkg/gedcom"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats <file.ged>",
		Short: "Print record counts and the document's date range",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseFile(args[0])
			if err != nil {
				return err
			}
			return writeJSON(gedcom.ExtractStatistics(doc))
		},
	}
}
