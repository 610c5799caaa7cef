package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newRunCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [scenario-file]",
		Short: "Replay a scenario and print the resulting pool report as JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), v.GetString(flagLogLevel), v.GetString(flagLogFormat))
			if err != nil {
				return fmt.Errorf("invalid %s: %w", flagLogLevel, err)
			}

			scenario, err := LoadScenario(args[0])
			if err != nil {
				return err
			}

			reg := prometheus.NewRegistry()
			runner, err := NewRunner(logger, reg)
			if err != nil {
				return err
			}

			report, runErr := runner.Run(scenario)
			if report != nil {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(report); err != nil {
					return err
				}
			}
			if runErr != nil {
				return runErr
			}

			if v.GetBool(flagPrintMetrics) {
				if err := writeMetrics(cmd.ErrOrStderr(), reg); err != nil {
					return err
				}
			}

			if addr := v.GetString(flagMetricsAddr); addr != "" {
				ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
				defer stop()
				logger.Info("serving run metrics until interrupted", "addr", addr)
				return serveMetrics(ctx, addr, reg)
			}
			return nil
		},
	}

	cmd.Flags().String(flagMetricsAddr, "", "after the run, serve its metrics on this address until interrupted")
	cmd.Flags().Bool(flagPrintMetrics, false, "print the run's metrics to stderr")
	return cmd
}

// serveMetrics exposes reg on /metrics until ctx is done.
func serveMetrics(ctx context.Context, addr string, reg *prometheus.Registry) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	}
}
