package cli

import (
	"github.com/spf13/cobra"

	"github.com/cassmon/cassmon/internal/format"
)

func newStorageStatsCommand(opts *globalOptions) *cobra.Command {
	var exceptions, load, totalHints, hintsInProgress bool

	cmd := &cobra.Command{
		Use:   "storagestats",
		Short: "Print storage counters of the node",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, closeSession, err := connectProbe(cmd, opts)
			if err != nil {
				return err
			}
			defer closeSession()
			ctx := cmd.Context()

			if exceptions {
				value, err := p.StorageMetric(ctx, "Exceptions")
				if err != nil {
					return err
				}
				cmd.Printf("Exceptions: %d\n", value)
			}

			if load {
				value, err := p.StorageMetric(ctx, "Load")
				if err != nil {
					return err
				}
				cmd.Printf("Load: %s\n", format.Bytes(value))
			}

			if totalHints {
				value, err := p.StorageMetric(ctx, "TotalHints")
				if err != nil {
					return err
				}
				cmd.Printf("Total Hints: %d\n", value)
			}

			if hintsInProgress {
				value, err := p.StorageMetric(ctx, "TotalHintsInProgress")
				if err != nil {
					return err
				}
				cmd.Printf("Hints In Progress: %d\n", value)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&exceptions, "exceptions", "e", false, "internal exceptions since start")
	cmd.Flags().BoolVarP(&load, "load", "l", false, "live data size on disk")
	cmd.Flags().BoolVar(&totalHints, "totalhints", false, "total hints since start")
	cmd.Flags().BoolVar(&hintsInProgress, "hintsinprogress", false, "hints currently in progress")

	return cmd
}
