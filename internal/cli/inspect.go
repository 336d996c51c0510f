package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <image> <inode>",
	Short: "Print detailed istat metadata for a single inode",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		image, inode := args[0], args[1]
		cfgPath, _ := cmd.Flags().GetString("config")

		if _, err := os.Stat(image); err != nil {
			return fmt.Errorf("image file %q not found", image)
		}

		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}

		a := newAnalyzer(cfg, image, cfg.OutputDir, uuid.New().String(), time.Now(), cmd.ErrOrStderr())
		out, err := a.Inspect(inode)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	inspectCmd.Flags().String("config", "", "Config file path")
}
