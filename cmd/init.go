package cmd

import (
	"log"

	"github.com/msh-project/msh/core/config"
	"github.com/spf13/cobra"
)

var initConfigDir string

// initConfig writes the default configuration into dir.
func initConfig(cmd *cobra.Command, dir string) error {
	logger := log.New(cmd.ErrOrStderr(), "", 0)

	_, err := config.Initialize(dir, logger)
	return err
}

func init() {
	rootCmd.Flags().StringVar(&initConfigDir, "init-config", "", "write the default config.yaml to `DIR` and exit")
}
