package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lucasnoah/disktriage/internal/archive"
)

var archiveCmd = &cobra.Command{
	Use:   "archive <file>...",
	Short: "Upload report artifacts to the evidence store",
	Long: `Upload one or more report files to the configured S3-compatible evidence
store, keyed as <case-id>/<filename>. Per-file upload failures are reported
and do not stop the remaining uploads.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		caseID, _ := cmd.Flags().GetString("case")
		cfgPath, _ := cmd.Flags().GetString("config")
		if caseID == "" {
			return fmt.Errorf("--case is required")
		}

		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}

		store, err := archive.New(cmd.Context(), cfg.Archive)
		if err != nil {
			return err
		}

		var firstErr error
		for _, path := range args {
			key, err := store.Upload(cmd.Context(), caseID, path)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "[fail] %s: %v\n", path, err)
				if firstErr == nil {
					firstErr = err
				}
				continue
			}
			fmt.Fprintf(cmd.OutOrStdout(), "[ok] %s -> %s\n", path, key)
		}
		return firstErr
	},
}

func init() {
	archiveCmd.Flags().String("case", "", "Case identifier for the object key prefix")
	archiveCmd.Flags().String("config", "", "Config file path")
}
