package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var extractCmd = &cobra.Command{
	Use:   "extract <file|s3://bucket/key>",
	Short: "Extract candidate details from a resume document",
	Args:  cobra.ExactArgs(1),
	Run: func(_ *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger()

		config, err := getConfig()
		if err != nil {
			logger.Fatal("getting a config", zap.Error(err))
		}

		profile := readProfile(ctx, config, args[0], logger)
		if profile.IsEmpty() {
			logger.Info("no candidate details found", zap.String("resume", args[0]))
		}

		if err := printJSON(profile); err != nil {
			logger.Fatal("printing the profile", zap.Error(err))
		}
	},
}

func init() {
	rootCmd.AddCommand(extractCmd)
}
