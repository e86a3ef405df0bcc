package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tearsheet/internal/analytics"
	"github.com/wonny/tearsheet/internal/strategyset"
	"github.com/wonny/tearsheet/internal/timeseries"
	"github.com/wonny/tearsheet/pkg/config"
	"github.com/wonny/tearsheet/pkg/logger"
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report [strategy]",
	Short: "Print a metrics report to stdout",
	Long: `Prints the summary-statistics table for a strategy (or, without an
argument, for the merged portfolio) over an optional date range.

Example:
  go run ./cmd/tearsheet report Trend
  go run ./cmd/tearsheet report Trend --products ES,NQ --range YTD
  go run ./cmd/tearsheet report --compare`,
	Args: cobra.MaximumNArgs(1),
	RunE: runReport,
}

var (
	reportProducts string
	reportRange    string
	reportCompare  bool
)

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportProducts, "products", "", "comma-separated product (or strategy) subset")
	reportCmd.Flags().StringVar(&reportRange, "range", "All", "date range: 1M, 3M, YTD, 1Y, All")
	reportCmd.Flags().BoolVar(&reportCompare, "compare", false, "print the per-column comparison table")
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	snap, err := strategyset.Load(cfg, log)
	if err != nil {
		return fmt.Errorf("load strategies: %w", err)
	}

	table, names, capitals, title, err := reportScope(snap, args)
	if err != nil {
		return err
	}

	key := analytics.RangeKey(reportRange)
	table = analytics.FilterRange(table, key)

	PrintHeader(fmt.Sprintf("%s  [%s]", title, key))

	if reportCompare {
		specs := make([]analytics.ColumnSpec, 0, len(names)+1)
		for _, name := range names {
			specs = append(specs, analytics.ColumnSpec{
				Label:          name,
				Names:          []string{name},
				InitialCapital: capitals.For(name),
			})
		}
		specs = append(specs, analytics.ColumnSpec{
			Label:          analytics.AggregateLabel,
			Names:          names,
			InitialCapital: capitals.Combined,
		})
		PrintComparison(analytics.BuildComparison(table, specs, snap.DefaultCapital(), cfg.RiskFreeRate))
	} else {
		sp := analytics.ComputeSeriesFunded(table, names, capitals.Combined)
		PrintMetricsReport(analytics.ComputeMetrics(sp, cfg.RiskFreeRate))
	}

	fmt.Println()
	return nil
}

// reportScope resolves the command arguments to a table, column selection
// and funding baselines, mirroring the API's strategy/portfolio split.
func reportScope(snap *strategyset.Snapshot, args []string) (table *timeseries.Table, names []string, caps analytics.Capitals, title string, err error) {
	selection := analytics.All()
	if reportProducts != "" {
		parts := strings.Split(reportProducts, ",")
		picked := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				picked = append(picked, p)
			}
		}
		selection = analytics.Pick(picked...)
	}

	if len(args) == 0 {
		names = selection.Resolve(snap.Names())
		byName := make(map[string]float64, len(names))
		for _, name := range names {
			byName[name] = snap.CapitalFor(name, nil)
		}
		return snap.Portfolio(names), names, analytics.Capitals{
			ByName:   byName,
			Combined: snap.CombinedCapital(names),
		}, "Portfolio", nil
	}

	strategy := args[0]
	t, ok := snap.Strategy(strategy)
	if !ok {
		return nil, nil, analytics.Capitals{}, "", fmt.Errorf("unknown strategy %q (have: %s)", strategy, strings.Join(snap.Names(), ", "))
	}

	names = selection.Resolve(t.Columns())
	return t, names, analytics.Capitals{
		ByName:   snap.CapitalByProduct(strategy),
		Combined: snap.CapitalFor(strategy, names),
	}, strategy, nil
}
