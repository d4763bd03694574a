package main

import (
	"github.com/spf13/cobra"

	"github.com/kindred-app/kindred/pkg/gedcom"
)

type checkReport struct {
	File              string                    `json:"file"`
	Version           string                    `json:"version"`
	ParseIssues       []gedcom.Issue            `json:"parseIssues"`
	ConsistencyIssues []gedcom.ConsistencyIssue `json:"consistencyIssues"`
}

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <file.ged>",
		Short: "Report parse warnings and family link inconsistencies",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := parseFile(args[0])
			if err != nil {
				return err
			}

			report := checkReport{
				File:              args[0],
				Version:           doc.Version,
				ParseIssues:       doc.Issues,
				ConsistencyIssues: gedcom.CheckRelationshipConsistency(doc),
			}
			if report.ParseIssues == nil {
				report.ParseIssues = []gedcom.Issue{}
			}
			if report.ConsistencyIssues == nil {
				report.ConsistencyIssues = []gedcom.ConsistencyIssue{}
			}
			return writeJSON(report)
		},
	}
}
