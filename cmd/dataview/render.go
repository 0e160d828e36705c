package main

import (
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"

	"dataview/domain/analysis"
)

// printResult renders the derived views of a result as terminal tables.
func printResult(result *analysis.Result) {
	table := analysis.ColumnTable(result.Columns, "")
	if len(table) > 0 {
		fmt.Println("Columns:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  COLUMN\tTYPE\tKIND\tMISSING\tMEAN\tMIN\tMAX")
		for _, row := range table {
			fmt.Fprintf(w, "  %s\t%s\t%s\t%d\t%s\t%s\t%s\n",
				row.Column, row.Dtype, row.Kind, row.Missing, row.Mean, row.Min, row.Max)
		}
		w.Flush()
	}

	if dist := analysis.TypeDistribution(result.Columns); len(dist) > 0 {
		fmt.Println("\nColumn types:")
		for _, kc := range dist {
			fmt.Printf("  %-8s %d\n", kc.Kind, kc.Count)
		}
	}

	if stats := analysis.NumericStats(result.Columns); len(stats) > 0 {
		fmt.Println("\nNumeric summary:")
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "  COLUMN\tMEAN\tMIN\tMAX")
		for _, s := range stats {
			fmt.Fprintf(w, "  %s\t%.2f\t%.2f\t%.2f\n", s.Column, s.Mean, s.Min, s.Max)
		}
		w.Flush()
	}

	printPreview(analysis.Preview(result.Preview))
}

func printPreview(preview analysis.PreviewTable) {
	if len(preview.Columns) == 0 {
		return
	}

	fmt.Println("\nPreview:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	header := "  "
	for i, col := range preview.Columns {
		if i > 0 {
			header += "\t"
		}
		header += col
	}
	fmt.Fprintln(w, header)
	for _, row := range preview.Rows {
		line := "  "
		for i, cell := range row {
			if i > 0 {
				line += "\t"
			}
			line += cell
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
}

func printLocalPreview(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	line := ""
	for i, h := range headers {
		if i > 0 {
			line += "\t"
		}
		line += h
	}
	fmt.Fprintln(w, line)
	for _, row := range rows {
		line = ""
		for i, cell := range row {
			if i > 0 {
				line += "\t"
			}
			line += cell
		}
		fmt.Fprintln(w, line)
	}
	w.Flush()
	fmt.Println(strconv.Itoa(len(rows)) + " rows shown")
}
