package cmd

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

const metricsShutdownTimeout = 5 * time.Second

func newWatchCmd(app *app) *cobra.Command {
	var (
		interval     time.Duration
		metricsAddr  string
		maxRefreshes int
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Reload client data on an interval and redraw the home screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if interval <= 0 {
				return fmt.Errorf("interval must be positive, got %s", interval)
			}

			p, err := app.newPortal(cmd, portalOptions{spinner: true})
			if err != nil {
				return err
			}

			refreshes, err := newRefreshCounter(p.registry)
			if err != nil {
				return err
			}

			if metricsAddr != "" {
				_, stop, err := serveMetrics(cmd, p.registry, metricsAddr)
				if err != nil {
					return err
				}
				defer stop()
			}

			if _, err := startSession(cmd, app, p); err != nil {
				return err
			}
			if err := p.board.Flush(cmd.OutOrStdout()); err != nil {
				return err
			}

			ctx := cmd.Context()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()

			for done := 0; maxRefreshes <= 0 || done < maxRefreshes; done++ {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
				}

				if _, err := p.store.Load(ctx, p.session.ClientID()); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					refreshes.WithLabelValues("error").Inc()
					if !domain.IsRetryable(err) {
						return err
					}
					p.logger.Warn().Err(err).Msg("refresh failed, keeping last data")
					_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "refresh failed: %v\n", err)
					continue
				}
				refreshes.WithLabelValues("ok").Inc()

				if err := p.dashboard.RenderAll(); err != nil {
					return err
				}
				if err := p.board.Flush(cmd.OutOrStdout()); err != nil {
					return err
				}
			}

			return nil
		},
	}

	cmd.Flags().DurationVar(&interval, "interval", app.config.Watch.Interval, "time between reloads")
	cmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "serve Prometheus metrics on this address (e.g. 127.0.0.1:9310)")
	cmd.Flags().IntVar(&maxRefreshes, "max-refreshes", 0, "stop after this many reloads (0 runs until interrupted)")

	return cmd
}

// newRefreshCounter registers portal_watch_refreshes_total{outcome}.
func newRefreshCounter(registry prometheus.Registerer) (*prometheus.CounterVec, error) {
	refreshes := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "portal",
		Subsystem: "watch",
		Name:      "refreshes_total",
		Help:      "Periodic reloads by outcome.",
	}, []string{"outcome"})
	if err := registry.Register(refreshes); err != nil {
		return nil, fmt.Errorf("register watch metrics: %w", err)
	}
	return refreshes, nil
}

func newMetricsHandler(registry *prometheus.Registry) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	return mux
}

// serveMetrics serves /metrics on addr until the returned stop func is called. It returns the
// bound address, which differs from addr when addr asks for port 0.
func serveMetrics(cmd *cobra.Command, registry *prometheus.Registry, addr string) (string, func(), error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return "", nil, fmt.Errorf("listen for metrics: %w", err)
	}

	server := &http.Server{
		Handler:           newMetricsHandler(registry),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "metrics server: %v\n", err)
		}
	}()

	bound := listener.Addr().String()
	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "metrics on http://%s/metrics\n", bound)

	return bound, func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		_ = server.Shutdown(ctx)
	}, nil
}
