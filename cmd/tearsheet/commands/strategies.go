package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/wonny/tearsheet/internal/strategyset"
	"github.com/wonny/tearsheet/pkg/config"
	"github.com/wonny/tearsheet/pkg/logger"
)

// strategiesCmd represents the strategies command
var strategiesCmd = &cobra.Command{
	Use:   "strategies",
	Short: "List loaded strategies and their products",
	RunE:  runStrategies,
}

func init() {
	rootCmd.AddCommand(strategiesCmd)
}

func runStrategies(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := logger.New(cfg)
	snap, err := strategyset.Load(cfg, log)
	if err != nil {
		return fmt.Errorf("load strategies: %w", err)
	}

	names := snap.Names()
	PrintHeader(fmt.Sprintf("Strategies (%d loaded)", len(names)))

	if len(names) == 0 {
		fmt.Println("  (none)")
		fmt.Println()
		return nil
	}

	for _, name := range names {
		tbl, _ := snap.Strategy(name)
		fmt.Printf("  %-20s  %d rows  products: %s\n",
			name, tbl.Len(), strings.Join(snap.Products(name), ", "))
	}
	fmt.Println()
	return nil
}
