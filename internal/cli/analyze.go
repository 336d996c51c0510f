package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lucasnoah/disktriage/internal/analyze"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Run analysis modules against a disk image",
	Long: `Run the selected analysis module, or the full fixed sequence
(partitions, filesystem, files, deleted, timeline), against a disk image.

Each module's parsed artifact lands in the JSON report and its raw or CSV
companion file lands in the output directory, all prefixed with the run
timestamp. The HTML report defaults to on for the full module only;
--html and --no-html override that in either direction.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		image := args[0]
		module, _ := cmd.Flags().GetString("module")
		outDir, _ := cmd.Flags().GetString("output")
		htmlOn, _ := cmd.Flags().GetBool("html")
		htmlOff, _ := cmd.Flags().GetBool("no-html")
		caseID, _ := cmd.Flags().GetString("case")
		cfgPath, _ := cmd.Flags().GetString("config")

		if _, err := os.Stat(image); err != nil {
			return fmt.Errorf("image file %q not found", image)
		}

		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}
		if outDir == "" {
			outDir = cfg.OutputDir
		}
		if caseID == "" {
			caseID = uuid.New().String()
		}

		now := time.Now()
		a := newAnalyzer(cfg, image, outDir, caseID, now, cmd.OutOrStdout())

		fmt.Fprintf(cmd.OutOrStdout(), "Analyzing %s (case %s)\n", image, caseID)
		if err := a.Run(module); err != nil {
			return err
		}

		generateHTML := htmlOn || (module == analyze.ModuleFull && !htmlOff)
		_, _, err = a.Emit(generateHTML, time.Now())
		return err
	},
}

func init() {
	analyzeCmd.Flags().StringP("module", "m", analyze.ModuleFull,
		"Analysis module to run (full, filesystem, files, deleted, timeline, partitions)")
	analyzeCmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	analyzeCmd.Flags().Bool("html", false, "Generate the HTML report for any module")
	analyzeCmd.Flags().Bool("no-html", false, "Skip HTML report generation")
	analyzeCmd.Flags().String("case", "", "Case identifier (default: generated UUID)")
	analyzeCmd.Flags().String("config", "", "Config file path")
}
