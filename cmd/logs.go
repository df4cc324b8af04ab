package cmd

import (
	"errors"
	"fmt"

	"github.com/msh-project/msh/core/logger"
	"github.com/spf13/cobra"
	"sigs.k8s.io/yaml"
)

var showReport bool

// printReport summarizes the configured event log.
func printReport(cmd *cobra.Command) error {
	config, err := loadConfig()
	if err != nil {
		return err
	}
	if config.EventLog == "" {
		return errors.New("no event_log configured")
	}

	fd, err := config.ReadEventLog()
	if err != nil {
		return err
	}
	defer fd.Close()

	var report logger.Report
	if err := logger.ReadJSONLinesLog(fd, report.Update); err != nil {
		return err
	}

	out, err := yaml.Marshal(report)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(out))

	return nil
}

func init() {
	rootCmd.Flags().BoolVar(&showReport, "report", false, "print a report of the configured event log and exit")
}
