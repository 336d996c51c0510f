package cli

import (
	"github.com/spf13/cobra"

	"github.com/lucasnoah/disktriage/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the local report browser",
	Long: `Start a read-only browser UI on localhost listing the analysis runs found
in the output directory and serving their HTML, JSON, and companion artifacts.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		port, _ := cmd.Flags().GetInt("port")
		cfgPath, _ := cmd.Flags().GetString("config")

		cfg, err := loadConfig(cfgPath)
		if err != nil {
			return err
		}
		if dir == "" {
			dir = cfg.OutputDir
		}
		if port == 0 {
			port = cfg.Serve.Port
		}

		return web.NewServer(dir, port).Start()
	},
}

func init() {
	serveCmd.Flags().StringP("dir", "d", "", "Output directory to browse (default from config)")
	serveCmd.Flags().IntP("port", "p", 0, "Port to listen on (default from config)")
	serveCmd.Flags().String("config", "", "Config file path")
}
