// Package cli implements the cassmon command tree.
package cli

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/cassmon/cassmon/internal/bridge"
	"github.com/cassmon/cassmon/internal/config"
	"github.com/cassmon/cassmon/internal/probe"
)

// globalOptions are the connection flags shared by every subcommand.
type globalOptions struct {
	host       string
	port       int
	username   string
	password   string
	configPath string
	useTLS     bool
	insecure   bool
	timeout    time.Duration
}

// NewRootCommand builds the cassmon command tree
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}

	root := &cobra.Command{
		Use:           "cassmon",
		Short:         "Get metrics of a Cassandra process remotely",
		Long:          "cassmon connects to a running Cassandra node's HTTP management agent and prints selected operational metrics.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&opts.host, "host", "H", "", "node hostname or ip address")
	pf.IntVarP(&opts.port, "port", "p", 0, "remote management agent port number")
	pf.StringVarP(&opts.username, "username", "u", "", "remote management agent username")
	pf.StringVar(&opts.password, "password", "", "remote management agent password")
	pf.StringVar(&opts.configPath, "config", "", "path to a cassmon config file")
	pf.BoolVar(&opts.useTLS, "tls", false, "connect to the agent over HTTPS")
	pf.BoolVar(&opts.insecure, "insecure", false, "skip TLS certificate verification")
	pf.DurationVar(&opts.timeout, "timeout", 0, "connection timeout")

	root.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return &usageError{err: err}
	})

	root.AddCommand(
		newClientsCommand(opts),
		newTableStatsCommand(opts),
		newCompactionStatsCommand(opts),
		newStorageStatsCommand(opts),
		newOSCommand(opts),
		newServeCommand(opts),
	)

	return root
}

// Execute runs the command tree and returns the process exit status:
// 0 success, 1 usage or connection failure, 2 runtime failure.
func Execute(args []string, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetErr(stderr)

	err := root.Execute()
	if err == nil {
		return 0
	}

	var cerr *connectError
	var uerr *usageError
	switch {
	case errors.As(err, &cerr):
		fmt.Fprintf(stderr, "cassmon: failed to connect to '%s' - %v\n", cerr.target, cerr.err)
		return 1
	case errors.As(err, &uerr):
		fmt.Fprintf(stderr, "cassmon: %v\n", uerr.err)
		fmt.Fprintln(stderr, "See 'cassmon help' or 'cassmon help <command>'.")
		return 1
	default:
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}
}

// resolve builds the effective configuration: config file (or defaults),
// then CASSMON_* environment overrides, then flags.
func (o *globalOptions) resolve(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	if o.configPath != "" {
		loaded, err := config.Load(o.configPath)
		if err != nil {
			return nil, &usageError{err: err}
		}
		cfg = loaded
	} else {
		cfg = config.Default()
		config.ApplyEnvOverrides(cfg)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Connection.Host = o.host
	}
	if flags.Changed("port") {
		cfg.Connection.Port = o.port
	}
	if flags.Changed("username") {
		cfg.Connection.Username = o.username
	}
	if flags.Changed("password") {
		cfg.Connection.Password = o.password
	}
	if flags.Changed("tls") {
		cfg.Connection.UseTLS = o.useTLS
	}
	if flags.Changed("insecure") {
		cfg.Connection.InsecureSkipVerify = o.insecure
	}
	if flags.Changed("timeout") {
		cfg.Connection.TimeoutMS = int(o.timeout / time.Millisecond)
	}

	if err := cfg.Validate(); err != nil {
		return nil, &usageError{err: err}
	}

	setupLogging(cfg.Logging.Level)
	return cfg, nil
}

// connectProbe resolves configuration and opens the management session.
func connectProbe(cmd *cobra.Command, opts *globalOptions) (*probe.Probe, *config.Config, func(), error) {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return nil, nil, nil, err
	}

	conn := cfg.Connection
	client, err := bridge.NewClient(cmd.Context(), conn.Host, conn.Port,
		bridge.Credentials{Username: conn.Username, Password: conn.Password},
		bridge.Options{
			UseTLS:             conn.UseTLS,
			InsecureSkipVerify: conn.InsecureSkipVerify,
			Timeout:            conn.GetTimeout(),
		})
	if err != nil {
		target := net.JoinHostPort(conn.Host, strconv.Itoa(conn.Port))
		return nil, nil, nil, &connectError{target: target, err: err}
	}

	return probe.New(client, slog.Default()), cfg, client.Close, nil
}

// setupLogging configures the default logger. Logs go to stderr; stdout
// is reserved for metric output.
func setupLogging(level string) {
	var l slog.Level
	switch level {
	case "debug":
		l = slog.LevelDebug
	case "warn":
		l = slog.LevelWarn
	case "error":
		l = slog.LevelError
	default:
		l = slog.LevelInfo
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: l})))
}
