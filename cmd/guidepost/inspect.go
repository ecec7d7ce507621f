package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/guidepost/guidepost/nav"
)

func newInspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <snapshot.json>",
		Short: "Show the navigation context for an exported session snapshot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			snap, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}
			n, err := newNavigator(ctx, snap)
			if err != nil {
				return err
			}
			defer n.Cleanup(ctx)

			c, err := n.Context(ctx, snap.SessionID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Session "+c.SessionID))
			fmt.Fprintf(out, "  %s %.1f%%\n", headerStyle.Render("Completion:"), c.CompletionPercent)
			fmt.Fprintf(out, "  %s %s\n", headerStyle.Render("Current:"), c.CurrentAddress)

			fmt.Fprintln(out, headerStyle.Render("Available"))
			for _, p := range c.AvailablePaths {
				printPath(cmd, p, okStyle)
			}
			if len(c.BlockedPaths) > 0 {
				fmt.Fprintln(out, headerStyle.Render("Blocked"))
				for _, p := range c.BlockedPaths {
					printPath(cmd, p, blockedStyle)
				}
			}

			if len(c.RecommendedNextSteps) > 0 {
				steps := make([]string, len(c.RecommendedNextSteps))
				for i, s := range c.RecommendedNextSteps {
					steps[i] = s.String()
				}
				fmt.Fprintf(out, "  %s %s\n", headerStyle.Render("Next:"), strings.Join(steps, ", "))
			}
			for _, issue := range c.CriticalIssues {
				fmt.Fprintf(out, "  %s %s\n", warnStyle.Render("!"), issue)
			}

			fmt.Fprintln(out, headerStyle.Render("Breadcrumbs"))
			for _, b := range n.Breadcrumbs(snap) {
				mark := " "
				if b.Completed {
					mark = okStyle.Render("x")
				}
				fmt.Fprintf(out, "  [%s] %-22s %s\n", mark, b.Label, mutedStyle.Render(b.Address))
			}
			return nil
		},
	}
}

func printPath(cmd *cobra.Command, p nav.Path, style lipgloss.Style) {
	out := cmd.OutOrStdout()
	extra := ""
	if p.Completed {
		extra = mutedStyle.Render(" (done)")
	}
	fmt.Fprintf(out, "  %s %-22s %s%s\n", style.Render("•"), p.Label, mutedStyle.Render(p.Address), extra)
	for _, w := range p.Warnings {
		fmt.Fprintf(out, "      %s\n", warnStyle.Render(w))
	}
}
