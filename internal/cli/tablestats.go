package cli

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/cassmon/cassmon/internal/format"
	"github.com/cassmon/cassmon/internal/probe"
)

func newTableStatsCommand(opts *globalOptions) *cobra.Command {
	var keyspace, table string
	var diskUsed, readLatency, sstableCount bool

	cmd := &cobra.Command{
		Use:   "tablestats",
		Short: "Print information about a table on the node",
		RunE: func(cmd *cobra.Command, args []string) error {
			if keyspace == "" || table == "" {
				return &usageError{err: fmt.Errorf("tablestats requires --keyspace and --table")}
			}

			p, _, closeSession, err := connectProbe(cmd, opts)
			if err != nil {
				return err
			}
			defer closeSession()
			ctx := cmd.Context()

			if diskUsed {
				value, err := p.TableMetric(ctx, keyspace, table, "LiveDiskSpaceUsed")
				if err != nil {
					return err
				}
				cmd.Printf("Disk Usage: %s\n", format.Bytes(value.(int64)))
			}

			if readLatency {
				value, err := p.TableMetric(ctx, keyspace, table, "ReadLatency")
				if err != nil {
					return err
				}
				reading := value.(probe.TimerReading)
				// Count over 1000 when events were recorded, NaN otherwise.
				latency := math.NaN()
				if reading.Count > 0 {
					latency = float64(reading.Count) / 1000
				}
				cmd.Printf("Read Latency: %v ms\n", latency)
			}

			if sstableCount {
				value, err := p.TableMetric(ctx, keyspace, table, "LiveSSTableCount")
				if err != nil {
					return err
				}
				cmd.Printf("SSTable Count: %v\n", value)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&keyspace, "keyspace", "k", "", "keyspace the table belongs to")
	cmd.Flags().StringVarP(&table, "table", "t", "", "table for which stats are displayed")
	cmd.Flags().BoolVarP(&diskUsed, "diskused", "d", false, "live disk space used")
	cmd.Flags().BoolVarP(&readLatency, "readlatency", "r", false, "read latency")
	cmd.Flags().BoolVarP(&sstableCount, "sstablecount", "s", false, "live sstable count")

	return cmd
}
