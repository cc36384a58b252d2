package cli

import (
	"github.com/spf13/cobra"
)

func newClientsCommand(opts *globalOptions) *cobra.Command {
	var nativeClients, thriftClients, allClients bool

	cmd := &cobra.Command{
		Use:   "clients",
		Short: "Print the number of clients connected to the node",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, _, closeSession, err := connectProbe(cmd, opts)
			if err != nil {
				return err
			}
			defer closeSession()
			ctx := cmd.Context()

			if nativeClients || allClients {
				value, err := p.ConnectedClients(ctx, "connectedNativeClients")
				if err != nil {
					return err
				}
				cmd.Printf("Native Clients: %v\n", value)
			}

			if thriftClients || allClients {
				value, err := p.ConnectedClients(ctx, "connectedThriftClients")
				if err != nil {
					return err
				}
				cmd.Printf("Thrift Clients: %v\n", value)
			}

			return nil
		},
	}

	cmd.Flags().BoolVarP(&nativeClients, "native", "n", false, "native client connections")
	cmd.Flags().BoolVarP(&thriftClients, "thrift", "t", false, "thrift client connections")
	cmd.Flags().BoolVarP(&allClients, "all", "a", false, "all client connections")

	return cmd
}
