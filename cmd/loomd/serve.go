package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/loomui/loom/pkg/host"
)

func serveCmd() *cobra.Command {
	var (
		addr    string
		rootTag string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a document host",
		Long: `Run a document host serving the loom WebSocket endpoint,
Prometheus metrics, and a health probe.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			h := host.New(
				host.WithRootTag(rootTag),
				host.WithLogger(logger),
			)

			server := &http.Server{
				Addr:              addr,
				Handler:           h.Router(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			logger.Info("document host listening", "addr", addr)
			return server.ListenAndServe()
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8932", "Listen address")
	cmd.Flags().StringVar(&rootTag, "root-tag", "body", "Document root element tag")

	return cmd
}
