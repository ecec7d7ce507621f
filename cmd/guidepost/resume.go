package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guidepost/guidepost/resume"
	"github.com/guidepost/guidepost/route"
)

func newResumeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "resume <snapshot.json>",
		Short: "Recommend where a session should pick back up",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := loadSnapshot(args[0])
			if err != nil {
				return err
			}

			routes := route.New()
			advisor := resume.NewAdvisor(routes)
			rec := advisor.SuggestResumePoint(snap)

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Resume "+snap.SessionID))
			fmt.Fprintf(out, "  %s %s\n", headerStyle.Render("Step:"), okStyle.Render(routes.Title(rec.Step)))
			fmt.Fprintf(out, "  %s %s\n", headerStyle.Render("Reason:"), rec.Reason)
			fmt.Fprintf(out, "  %s %s  %s %.0f%% (%s)\n",
				headerStyle.Render("Estimate:"), rec.EstimatedDuration,
				headerStyle.Render("Confidence:"), rec.Confidence*100, rec.Priority)

			if len(rec.RequiredData) > 0 {
				fmt.Fprintln(out, headerStyle.Render("Needs"))
				for _, d := range rec.RequiredData {
					fmt.Fprintf(out, "  - %s\n", d)
				}
			}
			for _, w := range rec.Warnings {
				fmt.Fprintf(out, "  %s %s\n", warnStyle.Render("!"), w)
			}
			if len(rec.Alternatives) > 0 {
				fmt.Fprintln(out, headerStyle.Render("Alternatives"))
				for _, s := range rec.Alternatives {
					fmt.Fprintf(out, "  - %s\n", routes.Title(s))
				}
			}

			if actions := advisor.NextActions(snap); len(actions) > 0 {
				fmt.Fprintln(out, headerStyle.Render("Next actions"))
				for _, a := range actions {
					fmt.Fprintf(out, "  - %s\n", a)
				}
			}
			if skippable := advisor.SkippableSteps(snap); len(skippable) > 0 {
				fmt.Fprintln(out, headerStyle.Render("Skippable"))
				for _, s := range skippable {
					fmt.Fprintf(out, "  - %s\n", mutedStyle.Render(routes.Title(s)))
				}
			}
			return nil
		},
	}
}
