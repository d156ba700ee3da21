// Command staffctl queries and exports the personnel dataset without running
// the HTTP server.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/staffdir/internal/config"
	"github.com/JonMunkholm/staffdir/internal/core"
	"github.com/JonMunkholm/staffdir/internal/ingest"
	"github.com/JonMunkholm/staffdir/internal/logging"
)

var Version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// globals are the persistent flags plus the configuration they resolve to.
type globals struct {
	data     string
	sheet    string
	logLevel string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "staffctl",
		Short:         "Query and export the personnel dataset",
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return g.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&g.data, "data", "", "data file (default $DATA_FILE)")
	root.PersistentFlags().StringVar(&g.sheet, "sheet", "", "workbook sheet (default first sheet)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(queryCmd(g))
	root.AddCommand(exportCmd(g))
	root.AddCommand(inspectCmd(g))

	return root
}

// setup loads .env and the environment, then applies flag overrides.
func (g *globals) setup(cmd *cobra.Command) error {
	// Unlike the server, existing env vars win over .env here.
	_ = godotenv.Load()

	slog.SetDefault(slog.New(logging.NewHandler(cmd.ErrOrStderr(), g.logLevel, "text")))

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if g.data != "" {
		cfg.Data.File = g.data
	}
	if g.sheet != "" {
		cfg.Data.Sheet = g.sheet
	}
	g.cfg = cfg
	return nil
}

// service loads the data file strictly; unlike the server, a bad file is an error.
func (g *globals) service(cmd *cobra.Command) (*core.Service, error) {
	store, err := ingest.Load(cmd.Context(), ingest.Source{Path: g.cfg.Data.File, Sheet: g.cfg.Data.Sheet})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", core.FormatUserError(err), err)
	}
	slog.Debug("dataset loaded", "source", store.Source(), "records", store.Len())
	return core.NewService(store, g.cfg)
}

// filterFlags binds one flag per filterable column, e.g. --pf-no for PF_NO.
func filterFlags(cmd *cobra.Command) map[string]*string {
	values := make(map[string]*string, len(core.FilterColumns))
	for _, col := range core.FilterColumns {
		values[col] = cmd.Flags().String(flagName(col), "", "substring filter on "+col)
	}
	return values
}

func flagName(col string) string {
	return strings.ReplaceAll(strings.ToLower(col), "_", "-")
}

func criteriaFrom(values map[string]*string) core.Criteria {
	raw := make(map[string]string, len(values))
	for col, v := range values {
		raw[col] = *v
	}
	return core.NewCriteria(raw)
}
