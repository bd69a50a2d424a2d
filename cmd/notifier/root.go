package main

import (
	"github.com/spf13/cobra"

	"aws-slack-notifier/internal/app"
	"aws-slack-notifier/internal/di"
)

var configPath string

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "notifier",
		Short:         "Post CloudFormation and CloudWatch SNS notifications to Slack",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLambda()
		},
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to config.json (default: next to the binary, or $NOTIFIER_CONFIG)")

	root.AddCommand(newLambdaCmd(), newServeCmd(), newReplayCmd())
	return root
}

// initializeApp loads configuration; a failure here aborts the process.
func initializeApp() (*app.App, error) {
	return di.InitializeApp(configPath)
}

func newLambdaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lambda",
		Short: "Run as an AWS Lambda handler for SNS events (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLambda()
		},
	}
}

func runLambda() error {
	application, err := initializeApp()
	if err != nil {
		return err
	}
	application.RunLambda()
	return nil
}
