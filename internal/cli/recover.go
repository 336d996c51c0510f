package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var recoverCmd = &cobra.Command{
	Use:   "recover <image> <inode> <output-name>",
	Short: "Recover a file body by inode into the recovered/ subdirectory",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, inode, name := args[0], args[1], args[2]
		outDir, _ := cmd.Flags().GetString("output")
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

		a := newAnalyzer(cfg, image, outDir, uuid.New().String(), time.Now(), cmd.OutOrStdout())
		path, err := a.Recover(inode, name)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), path)
		return nil
	},
}

func init() {
	recoverCmd.Flags().StringP("output", "o", "", "Output directory (default from config)")
	recoverCmd.Flags().String("config", "", "Config file path")
}
