package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/abhisek/quizprep/internal/api"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the practice API over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		origins, _ := cmd.Flags().GetStringSlice("cors-origin")
		timeout, _ := cmd.Flags().GetDuration("request-timeout")
		accessLog, _ := cmd.Flags().GetBool("access-log")

		logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		svc, modelID, err := newPracticeService(ctx, st.EventRepo())
		if err != nil {
			return err
		}

		handler := api.NewHandler(svc, api.NewRegistry(), logger)
		router := api.NewRouter(handler, api.RouterOptions{
			AllowedOrigins: origins,
			RequestTimeout: timeout,
			AccessLog:      accessLog,
		})

		logger.Info("starting server", "addr", addr, "model", modelID)
		return api.Serve(ctx, api.NewServer(addr, router), 10*time.Second, logger)
	},
}

func init() {
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().StringSlice("cors-origin", nil, "Allowed CORS origin (repeatable; default http://localhost:3000)")
	serveCmd.Flags().Duration("request-timeout", 2*time.Minute, "Per-request deadline, including the model call")
	serveCmd.Flags().Bool("access-log", true, "Log every request")
}
