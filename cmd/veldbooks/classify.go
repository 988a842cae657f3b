package main

import (
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/veldworks/veldbooks/internal/engine"
	"github.com/veldworks/veldbooks/internal/model"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify <description>",
		Short: "Allocate a single statement line to a category",
		Long: `Run one bank statement description through the allocation pipeline and
print the suggested category with its confidence and provenance.

Examples:
  veldbooks classify "ESKOM PREPAID 07128845"
  veldbooks classify "N1 ULTRA CITY MIDRAND" --amount 650.00
  veldbooks classify "Engen Fuel Station" --tenant acme --amount R450`,
		Args: cobra.ExactArgs(1),
		RunE: runClassify,
	}

	cmd.Flags().StringP("amount", "a", "0", "transaction amount, e.g. 650.00")
	tenantFlags(cmd)

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	description := args[0]

	amount, err := parseAmount(cmd)
	if err != nil {
		return err
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

	result, err := engine.New(store, cat).Classify(ctx, description, amount, tenant)
	if err != nil {
		return fmt.Errorf("classification failed: %w", err)
	}

	printResult(cmd, description, result)
	return nil
}

// parseAmount reads the --amount flag, tolerating a leading currency symbol
// and thousands separators as they appear on statements.
func parseAmount(cmd *cobra.Command) (float64, error) {
	raw, _ := cmd.Flags().GetString("amount")
	cleaned := cleanAmount(raw)
	if cleaned == "" {
		return 0, nil
	}

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return 0, fmt.Errorf("invalid amount %q: %w", raw, err)
	}
	return d.InexactFloat64(), nil
}

func cleanAmount(raw string) string {
	out := make([]rune, 0, len(raw))
	for _, r := range raw {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-':
			out = append(out, r)
		}
	}
	return string(out)
}

func printResult(cmd *cobra.Command, description string, result model.ClassificationResult) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, titleStyle.Render(description))

	if !result.Matched() {
		fmt.Fprintln(out, warningStyle.Render("No allocation found; manual review needed."))
		return
	}

	fmt.Fprintf(out, "%s %s\n",
		categoryStyle.Render(result.Category),
		subtleStyle.Render(result.CategoryLabel))
	fmt.Fprintf(out, "confidence %s  via %s\n",
		confidenceStyle(result.Confidence).Render(fmt.Sprintf("%.2f", result.Confidence)),
		subtleStyle.Render(string(result.MatchType)))

	for _, alt := range result.Alternatives {
		fmt.Fprintf(out, "  also possible: %s (%.2f)\n", alt.Category, alt.Confidence)
	}
}
