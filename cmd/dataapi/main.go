package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/sagarc03/dataapi/config"
)

var version = "dev"

var rootCmd = &cobra.Command{
	Version: version,
	Use:     "dataapi",
	Short:   "Serve a stored JSON document over HTTP",
	Long: `dataapi exposes a single JSON document kept in an object store
(Amazon S3 or a local directory) as a REST endpoint. The document is read
from the store on every request.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var configFiles []string
		if path, _ := cmd.Flags().GetString("config"); path != "" {
			configFiles = []string{path}
		}

		cfg, err := config.Load(configFiles, cmd.Flags())
		if err != nil {
			return err
		}

		setupLogging(cfg)
		cmd.SetContext(config.WithContext(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config.yaml)")
	rootCmd.PersistentFlags().String("env-file", config.DefaultEnvFile, "local override file, read only when AWS_REGION is unset")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn, error (env: DATAAPI_LOG_LEVEL)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
