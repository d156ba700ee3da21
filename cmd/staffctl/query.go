package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/JonMunkholm/staffdir/internal/core"
)

func queryCmd(g *globals) *cobra.Command {
	var (
		page  int
		limit int
	)

	cmd := &cobra.Command{
		Use:   "query",
		Short: "Print one page of filtered records as JSON",
		Long: `Print one page of filtered records as JSON, in the same shape as
GET /api/data.

Examples:
  staffctl query --station kota
  staffctl query --desig clerk --page 2 --limit 50`,
		Args: cobra.NoArgs,
	}
	filters := filterFlags(cmd)
	cmd.Flags().IntVarP(&page, "page", "p", core.DefaultPage, "page number")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "page size (default $API_DEFAULT_LIMIT)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		svc, err := g.service(cmd)
		if err != nil {
			return err
		}
		if limit == 0 {
			limit = svc.DefaultLimit()
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(svc.Query(criteriaFrom(filters), page, limit))
	}

	return cmd
}
