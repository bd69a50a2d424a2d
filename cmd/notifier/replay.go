package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newReplayCmd() *cobra.Command {
	var (
		raw     bool
		subject string
	)
	cmd := &cobra.Command{
		Use:   "replay <file>",
		Short: "Process one SNS event from a file and exit",
		Long: "Process one SNS event from a file. By default the file holds a Lambda SNS event " +
			"({\"Records\":[{\"Sns\":{...}}]}); with --raw it holds a bare SNS message body. " +
			"Exits non-zero when the event would be retried.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			application, err := initializeApp()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			if raw {
				data, err := os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("read message: %w", err)
				}
				return application.ReplayMessage(ctx, subject, string(data))
			}

			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("open event: %w", err)
			}
			defer f.Close()
			return application.Replay(ctx, f)
		},
	}
	cmd.Flags().BoolVar(&raw, "raw", false, "treat the file as a bare SNS message body")
	cmd.Flags().StringVar(&subject, "subject", "", "SNS subject used with --raw")
	return cmd
}
