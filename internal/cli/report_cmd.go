package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/lucasnoah/disktriage/internal/report"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Inspect and validate previously emitted reports",
}

var reportShowCmd = &cobra.Command{
	Use:   "show <report.json>",
	Short: "Print a console summary of a saved report",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rep, err := report.Load(args[0])
		if err != nil {
			return fmt.Errorf("load report: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Image:    %s\n", rep.ImageAnalyzed)
		fmt.Fprintf(out, "Case:     %s\n", rep.CaseID)
		fmt.Fprintf(out, "Analyzed: %s\n", rep.AnalysisDate)
		fmt.Fprintln(out)

		names := make([]string, 0, len(rep.Artifacts))
		for name := range rep.Artifacts {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			art := rep.Artifacts[name]
			if art.Succeeded() {
				fmt.Fprintf(out, "[ok]   %-16s %s\n", name, art.Detail())
			} else {
				fmt.Fprintf(out, "[fail] %-16s %s\n", name, art.ErrorText())
			}
		}

		for _, warn := range rep.Warnings {
			fmt.Fprintf(out, "[warn] %s\n", warn)
		}
		return nil
	},
}

var reportValidateCmd = &cobra.Command{
	Use:   "validate <report.json>",
	Short: "Validate a report file against the report schema",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("read report: %w", err)
		}

		flaws, err := report.ValidateSchema(cmd.Context(), data)
		if err != nil {
			return err
		}
		if len(flaws) > 0 {
			for _, flaw := range flaws {
				fmt.Fprintf(cmd.OutOrStdout(), "[fail] %s\n", flaw)
			}
			return fmt.Errorf("%d schema violations", len(flaws))
		}
		fmt.Fprintln(cmd.OutOrStdout(), "[ok] report is valid")
		return nil
	},
}

func init() {
	reportCmd.AddCommand(reportShowCmd)
	reportCmd.AddCommand(reportValidateCmd)
}
