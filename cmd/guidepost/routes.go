package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guidepost/guidepost/route"
)

func newRoutesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "routes",
		Short: "Print the workflow route table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, titleStyle.Render("Workflow routes"))
			for _, def := range route.New().Routes() {
				kind := "required"
				if def.Step.Optional() {
					kind = warnStyle.Render("optional")
				}
				if !def.Step.Required() && !def.Step.Optional() {
					kind = mutedStyle.Render("terminal")
				}
				fmt.Fprintf(out, "  %-22s %-22s %-10s %s\n",
					headerStyle.Render(def.Title),
					def.Path,
					kind,
					mutedStyle.Render(def.Description),
				)
			}
			return nil
		},
	}
}
