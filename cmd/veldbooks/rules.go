package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/veldworks/veldbooks/internal/model"
	"github.com/veldworks/veldbooks/internal/service"
)

func rulesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List learned allocation rules",
		Long: `Show the learned rules visible to a scope, strongest first.

Examples:
  veldbooks rules                      # global rules
  veldbooks rules --tenant acme        # acme's rules plus global ones
  veldbooks rules --category FUEL`,
		RunE: runRules,
	}

	cmd.Flags().StringP("tenant", "t", "", "include this tenant's private rules")
	cmd.Flags().StringP("category", "c", "", "only rules for this category code")
	cmd.Flags().IntP("limit", "n", 50, "maximum rules to show")

	return cmd
}

func runRules(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	tenantID, _ := cmd.Flags().GetString("tenant")
	category, _ := cmd.Flags().GetString("category")
	limit, _ := cmd.Flags().GetInt("limit")

	store, err := initStorage(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := store.Close(); closeErr != nil {
			slog.Error("Failed to close database", "error", closeErr)
		}
	}()

	scopes := []string{model.ScopeGlobal}
	if tenantID != "" {
		scopes = append(scopes, model.TenantScope(tenantID))
	}

	rules, err := store.FindRules(ctx, service.RuleFilter{
		Scopes:   scopes,
		Category: category,
		Limit:    limit,
	})
	if err != nil {
		return fmt.Errorf("failed to list rules: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(rules) == 0 {
		fmt.Fprintln(out, subtleStyle.Render("No learned rules yet."))
		return nil
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Learned rules (%d)", len(rules))))
	for _, rule := range rules {
		fmt.Fprintf(out, "%s  %s\n",
			confidenceStyle(rule.Confidence).Render(fmt.Sprintf("%.2f", rule.Confidence)),
			rule.NormalizedPattern)
		fmt.Fprintf(out, "      %s %s\n",
			categoryStyle.Render(rule.Category),
			subtleStyle.Render(fmt.Sprintf("%s, seen %dx", rule.Scope, rule.ObservationCount)))
	}

	return nil
}
