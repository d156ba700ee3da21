package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/staffdir/internal/core"
	"github.com/JonMunkholm/staffdir/internal/report"
)

func inspectCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect",
		Short: "Summarize the data file and how it would paginate",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := g.service(cmd)
			if err != nil {
				return err
			}
			deco, err := report.DecorationFromConfig(g.cfg.Report)
			if err != nil {
				return err
			}
			renderer, err := report.NewRenderer(report.DefaultLayout(), deco)
			if err != nil {
				return err
			}

			stats := svc.Stats()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "source:        %s\n", stats.Source)
			fmt.Fprintf(out, "records:       %d\n", stats.Records)
			fmt.Fprintf(out, "columns:       %s\n", strings.Join(stats.Columns, ", "))
			fmt.Fprintf(out, "filterable:    %s\n", strings.Join(core.FilterColumns, ", "))
			fmt.Fprintf(out, "rows per page: %d\n", renderer.Layout().RowsPerPage())
			fmt.Fprintf(out, "export pages:  %d\n", renderer.PageCount(stats.Records))
			return nil
		},
	}
}
