package main

import (
	"fmt"
	"log/slog"
	"sort"

	"github.com/spf13/cobra"

	"github.com/veldworks/veldbooks/internal/model"
)

func auditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show recent learning and contribution events",
		Long: `List the newest audit trail entries: rule corrections and anonymized
industry contributions.

Examples:
  veldbooks audit
  veldbooks audit --kind industry_contribution --limit 10`,
		RunE: runAudit,
	}

	cmd.Flags().String("kind", model.EventRuleLearned,
		fmt.Sprintf("event kind: %s or %s", model.EventRuleLearned, model.EventIndustryContribution))
	cmd.Flags().IntP("limit", "n", 20, "maximum events to show")

	return cmd
}

func runAudit(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	kind, _ := cmd.Flags().GetString("kind")
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

	events, err := store.ListEvents(ctx, kind, limit)
	if err != nil {
		return fmt.Errorf("failed to list audit events: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(events) == 0 {
		fmt.Fprintln(out, subtleStyle.Render("No audit events of this kind."))
		return nil
	}

	fmt.Fprintln(out, titleStyle.Render(fmt.Sprintf("%s events (%d)", kind, len(events))))
	for _, event := range events {
		fmt.Fprintf(out, "%s %s\n",
			subtleStyle.Render(event.CreatedAt.Format("2006-01-02 15:04:05")),
			categoryStyle.Render(fmt.Sprintf("#%d", event.ID)))

		keys := make([]string, 0, len(event.Payload))
		for k := range event.Payload {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "      %s: %v\n", k, event.Payload[k])
		}
	}

	return nil
}
