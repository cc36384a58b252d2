package cli

import (
	"context"
	"math"

	"github.com/spf13/cobra"

	"github.com/cassmon/cassmon/internal/format"
	"github.com/cassmon/cassmon/internal/probe"
)

func newOSCommand(opts *globalOptions) *cobra.Command {
	var cpuLoad, sysLoad, processors, arch, sysAvgLoad bool
	var osVersion, osName, processCPUTime, memory, fileDescriptor bool

	cmd := &cobra.Command{
		Use:   "os",
		Short: "Print operating system metrics of the node's host",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, closeSession, err := connectProbe(cmd, opts)
			if err != nil {
				return err
			}
			defer closeSession()
			ctx := cmd.Context()

			if cpuLoad {
				value, err := p.OperatingSystemMetric(ctx, "ProcessCpuLoad")
				if err != nil {
					return err
				}
				cmd.Printf("CPU Load: %v\n", value)
			}

			if sysLoad {
				value, err := p.OperatingSystemMetric(ctx, "SystemCpuLoad")
				if err != nil {
					return err
				}
				cmd.Printf("System Load: %v\n", value)
			}

			if processors {
				value, err := p.OperatingSystemMetric(ctx, "AvailableProcessors")
				if err != nil {
					return err
				}
				cmd.Printf("Processors: %v\n", value)
			}

			if arch {
				value, err := p.OperatingSystemMetric(ctx, "Arch")
				if err != nil {
					return err
				}
				cmd.Printf("OS Architecture: %v\n", value)
			}

			if sysAvgLoad {
				value, err := p.OperatingSystemMetric(ctx, "SystemLoadAverage")
				if err != nil {
					return err
				}
				cmd.Printf("System Avg. Load: %v\n", value)
			}

			if osVersion {
				value, err := p.OperatingSystemMetric(ctx, "Version")
				if err != nil {
					return err
				}
				cmd.Printf("OS Version: %v\n", value)
			}

			if osName {
				value, err := p.OperatingSystemMetric(ctx, "Name")
				if err != nil {
					return err
				}
				cmd.Printf("OS Name: %v\n", value)
			}

			if processCPUTime {
				ns, err := readOSInt64(ctx, p, "ProcessCpuTime")
				if err != nil {
					return err
				}
				// Nanoseconds to milliseconds; a non-positive reading means
				// the attribute is unavailable on this platform.
				ms := int64(math.MinInt64)
				if ns > 0 {
					ms = ns / 1_000_000
				}
				cmd.Printf("Process CPU Time: %d ms\n", ms)
			}

			if memory {
				freePhys, err := readOSInt64(ctx, p, "FreePhysicalMemorySize")
				if err != nil {
					return err
				}
				totalPhys, err := readOSInt64(ctx, p, "TotalPhysicalMemorySize")
				if err != nil {
					return err
				}
				cmd.Printf("System Memory (Free/Total): %s/%s\n", format.Bytes(freePhys), format.Bytes(totalPhys))

				freeSwap, err := readOSInt64(ctx, p, "FreeSwapSpaceSize")
				if err != nil {
					return err
				}
				totalSwap, err := readOSInt64(ctx, p, "TotalSwapSpaceSize")
				if err != nil {
					return err
				}
				cmd.Printf("Swap Memory (Free/Total): %s/%s\n", format.Bytes(freeSwap), format.Bytes(totalSwap))
			}

			if fileDescriptor {
				open, err := readOSInt64(ctx, p, "OpenFileDescriptorCount")
				if err != nil {
					return err
				}
				max, err := readOSInt64(ctx, p, "MaxFileDescriptorCount")
				if err != nil {
					return err
				}
				cmd.Printf("File Descriptors (Open/Max): %d/%d\n", open, max)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&cpuLoad, "cpuload", "c", false, "process cpu load")
	cmd.Flags().BoolVarP(&sysLoad, "sysload", "s", false, "system cpu load")
	cmd.Flags().BoolVar(&processors, "processors", false, "number of available processors")
	cmd.Flags().BoolVarP(&arch, "arch", "a", false, "operating system architecture")
	cmd.Flags().BoolVarP(&sysAvgLoad, "sysavgload", "l", false, "system load average")
	cmd.Flags().BoolVar(&osVersion, "osversion", false, "operating system version")
	cmd.Flags().BoolVarP(&osName, "name", "n", false, "operating system name")
	cmd.Flags().BoolVarP(&processCPUTime, "processcputime", "t", false, "process cpu time")
	cmd.Flags().BoolVarP(&memory, "memory", "m", false, "free/total physical and swap memory")
	cmd.Flags().BoolVarP(&fileDescriptor, "filedescriptor", "f", false, "open/max file descriptors")

	return cmd
}

func readOSInt64(ctx context.Context, p *probe.Probe, attribute string) (int64, error) {
	value, err := p.OperatingSystemMetric(ctx, attribute)
	if err != nil {
		return 0, err
	}
	if f, ok := value.(float64); ok {
		return int64(f), nil
	}
	return 0, nil
}
