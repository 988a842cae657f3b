package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gocarina/gocsv"
	"github.com/schollz/progressbar/v3"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/veldworks/veldbooks/internal/engine"
)

// statementRow is one line of a statement CSV export. Amount stays a string
// on input so bank formats like "R 1,250.00" survive until parsing.
type statementRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
}

// allocationRow is a statement row with the engine's allocation appended.
type allocationRow struct {
	Date        string `csv:"Date"`
	Description string `csv:"Description"`
	Amount      string `csv:"Amount"`
	Category    string `csv:"Category"`
	Label       string `csv:"Label"`
	Confidence  string `csv:"Confidence"`
	MatchType   string `csv:"MatchType"`
}

func batchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Allocate a statement CSV file",
		Long: `Classify every line of a bank statement CSV (Date, Description, Amount
columns) and write the allocations alongside the original columns.

Examples:
  veldbooks batch --input statement.csv --output allocated.csv
  veldbooks batch -i statement.csv -o allocated.csv --tenant acme`,
		RunE: runBatch,
	}

	cmd.Flags().StringP("input", "i", "", "statement CSV to read (required)")
	cmd.Flags().StringP("output", "o", "", "allocation CSV to write (required)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("output")
	tenantFlags(cmd)

	return cmd
}

func runBatch(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	inputPath, _ := cmd.Flags().GetString("input")
	outputPath, _ := cmd.Flags().GetString("output")

	in, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open statement file: %w", err)
	}
	defer func() { _ = in.Close() }()

	var rows []statementRow
	if err := gocsv.UnmarshalFile(in, &rows); err != nil {
		return fmt.Errorf("failed to parse statement file: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("statement file %s has no rows", inputPath)
	}

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	tenant, err := resolveTenant(ctx, cmd, store)
	if err != nil {
		return err
	}

	e := engine.New(store, cat)
	bar := progressbar.Default(int64(len(rows)), "allocating")

	allocated := make([]allocationRow, 0, len(rows))
	matched := 0
	for _, row := range rows {
		if err := ctx.Err(); err != nil {
			return err
		}

		amount := 0.0
		if cleaned := cleanAmount(row.Amount); cleaned != "" {
			if d, parseErr := decimal.NewFromString(cleaned); parseErr == nil {
				amount = d.InexactFloat64()
			} else {
				slog.Warn("unparseable amount, classifying without it",
					"description", row.Description, "amount", row.Amount)
			}
		}

		result, classifyErr := e.Classify(ctx, row.Description, amount, tenant)
		if classifyErr != nil {
			return fmt.Errorf("failed to classify %q: %w", row.Description, classifyErr)
		}
		if result.Matched() {
			matched++
		}

		out := allocationRow{
			Date:        row.Date,
			Description: row.Description,
			Amount:      row.Amount,
			Category:    result.Category,
			Label:       result.CategoryLabel,
			MatchType:   string(result.MatchType),
		}
		if result.Matched() {
			out.Confidence = fmt.Sprintf("%.2f", result.Confidence)
		}
		allocated = append(allocated, out)
		_ = bar.Add(1)
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = outFile.Close() }()

	if err := gocsv.MarshalFile(&allocated, outFile); err != nil {
		return fmt.Errorf("failed to write allocations: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "\n%s\n", categoryStyle.Render(
		fmt.Sprintf("Allocated %d of %d lines to %s", matched, len(rows), outputPath)))
	if matched < len(rows) {
		fmt.Fprintln(cmd.OutOrStdout(), subtleStyle.Render(
			fmt.Sprintf("%d lines need manual review", len(rows)-matched)))
	}

	return nil
}
