package cli

import (
	"github.com/spf13/cobra"
)

func newCompactionStatsCommand(opts *globalOptions) *cobra.Command {
	var bytesCompacted, completedTasks, pendingTasks, totalCompleted bool

	cmd := &cobra.Command{
		Use:   "compactionstats",
		Short: "Print information about compactions on the node",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, closeSession, err := connectProbe(cmd, opts)
			if err != nil {
				return err
			}
			defer closeSession()
			ctx := cmd.Context()

			if bytesCompacted {
				value, err := p.CompactionMetric(ctx, "BytesCompacted")
				if err != nil {
					return err
				}
				cmd.Printf("Bytes Compacted: %v\n", value)
			}

			if completedTasks {
				value, err := p.CompactionMetric(ctx, "CompletedTasks")
				if err != nil {
					return err
				}
				cmd.Printf("Completed Tasks: %v\n", value)
			}

			if pendingTasks {
				value, err := p.CompactionMetric(ctx, "PendingTasks")
				if err != nil {
					return err
				}
				cmd.Printf("Pending Tasks: %v\n", value)
			}

			if totalCompleted {
				value, err := p.CompactionMetric(ctx, "TotalCompactionsCompleted")
				if err != nil {
					return err
				}
				cmd.Printf("Total Compactions Completed: %v\n", value)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&bytesCompacted, "bytescompacted", "b", false, "bytes compacted")
	cmd.Flags().BoolVarP(&completedTasks, "completedtasks", "c", false, "completed compaction tasks")
	cmd.Flags().BoolVar(&pendingTasks, "pendingtasks", false, "pending compaction tasks")
	cmd.Flags().BoolVar(&totalCompleted, "totalcompactionscompleted", false, "total compactions completed")

	return cmd
}
