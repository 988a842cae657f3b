package main

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/veldworks/veldbooks/internal/common"
	"github.com/veldworks/veldbooks/internal/engine"
)

func learnCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "learn <description> <category>",
		Short: "Teach the engine a confirmed allocation",
		Long: `Record a user-confirmed category for a statement description. Repeated
confirmations strengthen the rule; a different category for the same
description weakens the old rule and starts a new one.

Examples:
  veldbooks learn "ESKOM PREPAID 07128845" ELECTRICITY
  veldbooks learn "Engen Fuel Station" TRAVEL --tenant acme --feedback "rep vehicle"`,
		Args: cobra.ExactArgs(2),
		RunE: runLearn,
	}

	cmd.Flags().String("feedback", "", "optional note recorded with the correction")
	tenantFlags(cmd)

	return cmd
}

func runLearn(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	description, category := args[0], args[1]
	feedback, _ := cmd.Flags().GetString("feedback")

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
	result, err := e.Learn(ctx, description, category, tenant, feedback)
	if err != nil {
		if errors.Is(err, common.ErrInvalidInput) {
			return common.NewUserError("nothing to learn from this description", err)
		}
		return fmt.Errorf("learn failed: %w", err)
	}
	// Let the anonymized industry contribution settle before the process
	// exits.
	e.Flush()

	out := cmd.OutOrStdout()
	switch {
	case result.ConflictResolved:
		fmt.Fprintln(out, warningStyle.Render("Changed allocation; the previous rule was weakened."))
	case result.IsNew:
		fmt.Fprintln(out, categoryStyle.Render("Learned a new rule."))
	default:
		fmt.Fprintln(out, categoryStyle.Render("Reinforced the existing rule."))
	}
	fmt.Fprintf(out, "rule %s\n", subtleStyle.Render(result.RuleID))

	return nil
}
