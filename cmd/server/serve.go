package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mentorship-dashboard/internal/handler"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the dashboard API server",
	RunE: func(cmd *cobra.Command, args []string) error {
		logger.Info("Starting Mentorship Dashboard...")

		a, err := newApp(cmd.Context(), cfg, logger)
		if err != nil {
			return err
		}
		defer a.Close()

		apiHandler := handler.NewHandler(a.dashboard, a.batch, logger)

		gin.SetMode(gin.ReleaseMode)
		router := gin.Default()
		router.Use(handler.CORS())
		apiHandler.RegisterRoutes(router)

		serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
		srv := &http.Server{
			Addr:    serverAddr,
			Handler: router,
		}

		serverErr := make(chan error, 1)
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				serverErr <- err
			}
		}()

		modelName := "unknown"
		if m, ok := a.annotator.ModelInfo()["model"].(string); ok {
			modelName = m
		}
		logger.Info("Dashboard is running",
			zap.String("address", serverAddr),
			zap.String("model", modelName))

		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case <-quit:
		case err := <-serverErr:
			return fmt.Errorf("server failed: %w", err)
		}

		logger.Info("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("server forced to shutdown: %w", err)
		}

		logger.Info("Server exited")
		return nil
	},
}
