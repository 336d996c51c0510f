package cli

import (
	"github.com/spf13/cobra"
)

var version = "dev"

func SetVersion(v string) {
	version = v
}

var rootCmd = &cobra.Command{
	Use:   "disktriage",
	Short: "disktriage — automated disk-image triage with Sleuth Kit",
	Long: `disktriage orchestrates Sleuth Kit tools (mmls, fsstat, fls, istat, icat)
against a forensic disk image, parses their output into structured artifacts,
and emits JSON, CSV, and HTML reports into a timestamped output set.

A failed analysis module never aborts a run; its failure is recorded in the
report and the remaining modules still execute.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(inspectCmd)
	rootCmd.AddCommand(recoverCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(archiveCmd)
	rootCmd.AddCommand(configCmd)
}
