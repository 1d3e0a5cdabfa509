package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/oncallsla/internal/config"
	"github.com/hamed0406/oncallsla/internal/domain"
	"github.com/hamed0406/oncallsla/internal/repo/storage"
)

var (
	cfgFile string
	since   time.Duration
	asJSON  bool
)

var rootCmd = &cobra.Command{
	Use:          "slareport",
	Short:        "Summarize recorded SLA indicators",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		store, err := storage.Open(ctx, cfg, zap.NewNop())
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		to := time.Now().UTC()
		rows, err := store.Summary(ctx, to.Add(-since), to)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), rows)
		}
		return writeTable(cmd.OutOrStdout(), rows)
	},
}

func init() {
	rootCmd.Flags().StringVarP(&cfgFile, "config", "c", "", "config file (env vars still apply)")
	rootCmd.Flags().DurationVar(&since, "since", 24*time.Hour, "report window ending now")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
}

type reportRow struct {
	domain.IndicatorSummary
	Compliance float64 `json:"compliance"`
}

func writeJSON(w io.Writer, rows []domain.IndicatorSummary) error {
	out := make([]reportRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, reportRow{IndicatorSummary: r, Compliance: r.Compliance()})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func writeTable(w io.Writer, rows []domain.IndicatorSummary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "INDICATOR\tTOTAL\tBAD\tCOMPLIANCE")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f%%\n", r.Name, r.Total, r.Bad, r.Compliance()*100)
	}
	return tw.Flush()
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
