package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/cassmon/cassmon/internal/poller"
	"github.com/cassmon/cassmon/internal/server"
	"github.com/cassmon/cassmon/internal/store"
)

func newServeCommand(opts *globalOptions) *cobra.Command {
	var listen string
	var interval time.Duration
	var categories []string
	var keyspace, table string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Scrape the node periodically and serve the latest metrics over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			p, cfg, closeSession, err := connectProbe(cmd, opts)
			if err != nil {
				return err
			}
			defer closeSession()

			flags := cmd.Flags()
			if flags.Changed("listen") {
				cfg.Agent.Listen = listen
			}
			if flags.Changed("interval") {
				cfg.Agent.ScrapeIntervalMS = int(interval / time.Millisecond)
			}
			if flags.Changed("categories") {
				cfg.Agent.Categories = categories
			}
			if flags.Changed("keyspace") {
				cfg.Agent.Keyspace = keyspace
			}
			if flags.Changed("table") {
				cfg.Agent.Table = table
			}
			if err := cfg.Validate(); err != nil {
				return &usageError{err: err}
			}

			logger := slog.Default()
			target := net.JoinHostPort(cfg.Connection.Host, strconv.Itoa(cfg.Connection.Port))

			snapshots := store.NewSnapshotStore(cfg.Agent.HistoryLimit)
			scraper := poller.New(p, snapshots, target,
				cfg.Agent.Categories, cfg.Agent.Keyspace, cfg.Agent.Table,
				cfg.Agent.GetScrapeInterval(), logger)
			srv := server.NewServer(cfg.Agent.Listen, snapshots, logger)

			sigCtx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			serverErrChan := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErrChan <- err
				}
			}()

			pollerErrChan := make(chan error, 1)
			go func() {
				if err := scraper.Run(sigCtx); err != nil && !errors.Is(err, context.Canceled) {
					pollerErrChan <- err
				}
			}()

			logger.Info("agent mode started", "target", target, "listen", cfg.Agent.Listen)

			select {
			case <-sigCtx.Done():
				logger.Info("shutdown signal received")
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer shutdownCancel()

				if err := srv.Shutdown(shutdownCtx); err != nil {
					return err
				}
				return scraper.Stop(shutdownCtx)
			case err := <-serverErrChan:
				return err
			case err := <-pollerErrChan:
				return err
			}
		},
	}

	cmd.Flags().StringVar(&listen, "listen", "", "address for the agent API to listen on")
	cmd.Flags().DurationVar(&interval, "interval", 0, "scrape interval")
	cmd.Flags().StringSliceVar(&categories, "categories", nil, "metric categories to scrape (clients, table, compaction, storage, os)")
	cmd.Flags().StringVarP(&keyspace, "keyspace", "k", "", "keyspace for the table category")
	cmd.Flags().StringVarP(&table, "table", "t", "", "table for the table category")

	return cmd
}
