package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"github.com/veldworks/veldbooks/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Show and manage allocation categories",
		Long: `List the shared category catalog, or a tenant's private categories.

Examples:
  veldbooks categories
  veldbooks categories --tenant acme
  veldbooks categories add SPONSORSHIPS "Club Sponsorships" --tenant acme --keywords "cricket club,rugby club"`,
		RunE: runCategoriesList,
	}

	cmd.Flags().StringP("tenant", "t", "", "show this tenant's private categories instead of the catalog")
	cmd.AddCommand(categoriesAddCmd())

	return cmd
}

func runCategoriesList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	tenantID, _ := cmd.Flags().GetString("tenant")
	out := cmd.OutOrStdout()

	if tenantID != "" {
		store, err := initStorage(ctx)
		if err != nil {
			return err
		}
		defer func() {
			if closeErr := store.Close(); closeErr != nil {
				slog.Error("Failed to close database", "error", closeErr)
			}
		}()

		categories, err := store.GetTenantCategories(ctx, tenantID)
		if err != nil {
			return fmt.Errorf("failed to list tenant categories: %w", err)
		}
		if len(categories) == 0 {
			fmt.Fprintln(out, subtleStyle.Render("No private categories for this tenant."))
			return nil
		}

		fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Private categories for %s", tenantID)))
		for _, cat := range categories {
			fmt.Fprintf(out, "%s  %s\n", categoryStyle.Render(cat.Code), cat.Label)
			if len(cat.Keywords) > 0 {
				fmt.Fprintf(out, "      %s\n", subtleStyle.Render(strings.Join(cat.Keywords, ", ")))
			}
		}
		return nil
	}

	cat, err := loadCatalog()
	if err != nil {
		return err
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("Category catalog (%d)", len(cat.Categories()))))
	for _, c := range cat.Categories() {
		fmt.Fprintf(out, "%s  %s %s\n",
			categoryStyle.Render(c.Code), c.Label,
			subtleStyle.Render(fmt.Sprintf("(%d keywords)", len(c.Keywords))))
	}

	return nil
}

func categoriesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <code> <label>",
		Short: "Add or update a tenant's private category",
		Args:  cobra.ExactArgs(2),
		RunE:  runCategoriesAdd,
	}

	cmd.Flags().StringP("tenant", "t", "", "tenant identifier (required)")
	cmd.Flags().String("keywords", "", "comma-separated keyword phrases")
	_ = cmd.MarkFlagRequired("tenant")

	return cmd
}

func runCategoriesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	tenantID, _ := cmd.Flags().GetString("tenant")
	rawKeywords, _ := cmd.Flags().GetString("keywords")

	var keywords []string
	for _, kw := range strings.Split(rawKeywords, ",") {
		if kw = strings.ToLower(strings.TrimSpace(kw)); kw != "" {
			keywords = append(keywords, kw)
		}
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

	category := &model.TenantCategory{
		TenantID: tenantID,
		Code:     args[0],
		Label:    args[1],
		Keywords: keywords,
	}
	if err := store.SaveTenantCategory(ctx, category); err != nil {
		return fmt.Errorf("failed to save category: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), categoryStyle.Render(
		fmt.Sprintf("Saved %s for tenant %s", category.Code, tenantID)))
	return nil
}
