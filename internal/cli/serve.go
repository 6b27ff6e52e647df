package cli

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/config"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/httpapi"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/notify"
	"github.com/Ashish-kumar-upadhyay/emoplyee-task-mang/internal/otel"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	var (
		addr       string
		dev        bool
		apiKey     string
		dbDriver   string
		dbURL      string
		rtdbURL    string
		enableOtel bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Taskboard HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			home := config.MustHomeFrom(ctx)

			cfg, err := config.Load(home)
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.Addr
			}
			if addr == "" {
				addr = ":8417"
			}
			if apiKey == "" {
				apiKey = cfg.APIKey
			}
			if apiKey == "" {
				apiKey = os.Getenv("TASKBOARD_API_KEY")
			}
			if dbDriver == "" {
				dbDriver = cfg.Store.Driver
			}
			if dbURL == "" {
				dbURL = cfg.Store.DSN
			}
			if rtdbURL == "" {
				rtdbURL = cfg.Store.URL
			}

			reg := notify.NewRegistry()
			if cfg.EmailJS.ServiceID != "" {
				reg.Register(notify.EmailJS{
					ServiceID:  cfg.EmailJS.ServiceID,
					TemplateID: cfg.EmailJS.TemplateID,
					PublicKey:  cfg.EmailJS.PublicKey,
				})
			}
			if cfg.Slack.WebhookURL != "" {
				reg.Register(notify.SlackWebhook{WebhookURL: cfg.Slack.WebhookURL, Channel: cfg.Slack.Channel})
			}

			opts := httpapi.ServerOptions{
				Home:          home,
				Addr:          addr,
				Dev:           dev,
				APIKey:        apiKey,
				DBDriver:      dbDriver,
				DBURL:         dbURL,
				RTDBURL:       rtdbURL,
				AdminPassword: cfg.AdminPassword,
				Notifiers:     reg,
				UseOtelHTTP:   enableOtel,
			}
			if enableOtel {
				metricsHandler, err := otel.InitMeterProvider(ctx, "taskboard")
				if err != nil {
					slog.Warn("otel init failed, falling back to plain /metrics", "error", err)
				} else {
					opts.MetricsHandler = metricsHandler
					if err := otel.InitMetrics(ctx); err != nil {
						slog.Warn("otel instruments init failed", "error", err)
					}
				}
			}

			app, err := httpapi.NewApp(opts)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Taskboard listening on %s (store: %s)\n", addr, driverName(dbDriver))

			errCh := make(chan error, 1)
			go func() {
				errCh <- app.Server.ListenAndServe()
			}()
			select {
			case <-ctx.Done():
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				return app.Server.Shutdown(shutdownCtx)
			case err := <-errCh:
				if err == http.ErrServerClosed {
					return nil
				}
				return err
			}
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (default :8417, or config addr)")
	cmd.Flags().BoolVar(&dev, "dev", false, "Enable dev mode (CORS for the dashboard dev server)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Require X-API-Key on requests (or set TASKBOARD_API_KEY)")
	cmd.Flags().StringVar(&dbDriver, "db-driver", "", "Store driver: sqlite, postgres, or rtdb")
	cmd.Flags().StringVar(&dbURL, "db-url", "", "DB connection string (for postgres; or set DATABASE_URL)")
	cmd.Flags().StringVar(&rtdbURL, "rtdb-url", "", "Hosted database base URL (for rtdb driver)")
	cmd.Flags().BoolVar(&enableOtel, "otel", true, "Enable OpenTelemetry metrics (Prometheus exporter, HTTP/SSE/task instrumentation)")

	return cmd
}

func driverName(driver string) string {
	if driver == "" {
		return "sqlite"
	}
	return driver
}
