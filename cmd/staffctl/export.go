package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/staffdir/internal/report"
)

func exportCmd(g *globals) *cobra.Command {
	var (
		output   string
		validate bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render filtered records to a PDF file",
		Long: `Render filtered records to a PDF file with the same layout as
GET /api/export/pdf.

Examples:
  staffctl export -o kota.pdf --station kota
  staffctl export -o all.pdf --validate`,
		Args: cobra.NoArgs,
	}
	filters := filterFlags(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file")
	cmd.Flags().BoolVar(&validate, "validate", false, "check the written file with pdfcpu")
	_ = cmd.MarkFlagRequired("output")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
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

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create output: %w", err)
		}

		view := svc.View(criteriaFrom(filters))
		stats, err := renderer.Render(cmd.Context(), f, view)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return errors.Join(err, os.Remove(output))
		}
		slog.Info("export written", "file", output, "rows", stats.Rows, "pages", stats.Pages, "bytes", stats.Bytes)

		if validate {
			api.DisableConfigDir()
			if err := api.ValidateFile(output, model.NewDefaultConfiguration()); err != nil {
				return fmt.Errorf("validate %s: %w", output, err)
			}
			pages, err := api.PageCountFile(output)
			if err != nil {
				return fmt.Errorf("count pages %s: %w", output, err)
			}
			if pages != stats.Pages {
				return fmt.Errorf("validate %s: %d pages, want %d", output, pages, stats.Pages)
			}
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s: %d rows, %d pages, %d bytes\n", output, stats.Rows, stats.Pages, stats.Bytes)
		return nil
	}

	return cmd
}
