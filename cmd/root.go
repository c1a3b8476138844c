package cmd

import (
	"fmt"
	"os"

	"feature-diff/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = &cobra.Command{
	Use:   "feature-diff",
	Short: "Feature dataset difference tool",
	Long: `Feature Diff compares two keyed feature datasets and records which
features were added, deleted or edited between them. Datasets can live in a
SQL database, on disk or in S3-compatible storage.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits with status 1 on failure.
// Errors are reported through a console logger so that a failed compare
// reads the same as the progress lines before it.
func Execute() {
	err := RootCmd.Execute()
	if err == nil {
		return
	}

	l, logErr := logger.New(&logger.Config{Level: "debug", Format: "console"})
	if logErr != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	l.Error("Command failed", zap.Error(err))
	_ = l.Sync()
	os.Exit(1)
}
