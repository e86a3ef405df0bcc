package commands

import (
	"fmt"
	"strings"

	"github.com/wonny/tearsheet/internal/analytics"
)

// Common formatting utilities so every command prints the same way.

const separatorWidth = 59

// PrintSeparator prints a visual separator
func PrintSeparator() {
	fmt.Println(strings.Repeat("-", separatorWidth))
}

// PrintDoubleSeparator prints a double-line separator
func PrintDoubleSeparator() {
	fmt.Println(strings.Repeat("=", separatorWidth))
}

// PrintHeader prints a section header between double separators
func PrintHeader(title string) {
	fmt.Println()
	PrintDoubleSeparator()
	fmt.Printf("  %s\n", title)
	PrintDoubleSeparator()
}

// PrintMetricsReport prints a single-column metrics table
func PrintMetricsReport(report analytics.Report) {
	nameWidth := 0
	for _, row := range report {
		if len(row.Name) > nameWidth {
			nameWidth = len(row.Name)
		}
	}

	for _, row := range report {
		fmt.Printf("  %-*s  %s\n", nameWidth, row.Name, row.Value)
	}
}

// PrintComparison prints a multi-column metrics table with a header row
func PrintComparison(cmp analytics.Comparison) {
	nameWidth := len("Metric")
	for _, row := range cmp.Rows {
		if len(row.Metric) > nameWidth {
			nameWidth = len(row.Metric)
		}
	}

	colWidths := make([]int, len(cmp.Columns))
	for i, col := range cmp.Columns {
		colWidths[i] = len(col)
	}
	for _, row := range cmp.Rows {
		for i, v := range row.Values {
			if len(v) > colWidths[i] {
				colWidths[i] = len(v)
			}
		}
	}

	fmt.Printf("  %-*s", nameWidth, "Metric")
	for i, col := range cmp.Columns {
		fmt.Printf("  %*s", colWidths[i], col)
	}
	fmt.Println()
	PrintSeparator()

	for _, row := range cmp.Rows {
		fmt.Printf("  %-*s", nameWidth, row.Metric)
		for i, v := range row.Values {
			fmt.Printf("  %*s", colWidths[i], v)
		}
		fmt.Println()
	}
}
