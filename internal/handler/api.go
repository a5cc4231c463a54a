package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"mentorship-dashboard/internal/dashboard"
	"mentorship-dashboard/internal/models"
	"mentorship-dashboard/internal/repository"
	"mentorship-dashboard/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler handles HTTP requests
type Handler struct {
	dashboard *service.DashboardService
	batch     *service.BatchProcessor
	logger    *zap.Logger
}

// NewHandler creates a new API handler
func NewHandler(dashboardService *service.DashboardService, batch *service.BatchProcessor, logger *zap.Logger) *Handler {
	return &Handler{
		dashboard: dashboardService,
		batch:     batch,
		logger:    logger,
	}
}

// RegisterRoutes registers all API routes
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	api := r.Group("/api")
	{
		// Dashboard
		api.GET("/dashboard-data", h.GetDashboardData)
		api.GET("/filter-options", h.GetFilterOptions)

		// Batch annotation
		api.POST("/process-all-sheets", h.ProcessAllSheets)
		api.GET("/process-all-sheets/runs", h.ListRuns)
		api.GET("/process-all-sheets/runs/:id", h.GetRun)
	}

	// Health check
	r.GET("/health", h.HealthCheck)
}

// CORS allows the dashboard frontend to call the API from another origin.
func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// GetDashboardData returns KPIs, charts and recent activity for the filters
func (h *Handler) GetDashboardData(c *gin.Context) {
	var filters models.DashboardFilters
	if err := c.ShouldBindQuery(&filters); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filters", "details": err.Error()})
		return
	}

	data, err := h.dashboard.GetDashboardData(c.Request.Context(), filters)
	if err != nil {
		if errors.Is(err, dashboard.ErrInvalidFilter) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid filters", "details": err.Error()})
			return
		}
		h.logger.Error("Failed to build dashboard", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch dashboard data",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, data)
}

// GetFilterOptions returns the program and rating choices
func (h *Handler) GetFilterOptions(c *gin.Context) {
	options, err := h.dashboard.GetFilterOptions(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get filter options", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to fetch filter options",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, options)
}

// ProcessAllSheets runs the batch annotation loop and waits for it to finish
func (h *Handler) ProcessAllSheets(c *gin.Context) {
	// A client disconnect must not abort a run halfway.
	ctx := context.WithoutCancel(c.Request.Context())

	run, err := h.batch.Run(ctx)
	if err != nil {
		if errors.Is(err, service.ErrBatchInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": "Processamento em lote já está em andamento."})
			return
		}
		h.logger.Error("Batch processing failed", zap.Error(err))
		resp := gin.H{"error": "Falha no processamento em lote.", "details": err.Error()}
		if run != nil {
			resp["runId"] = run.ID
		}
		c.JSON(http.StatusInternalServerError, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Processamento concluído!",
		"processedRows": run.ProcessedCount,
		"runId":         run.ID,
	})
}

// ListRuns returns the latest batch runs
func (h *Handler) ListRuns(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit"})
		return
	}

	runs, err := h.batch.ListRuns(limit)
	if err != nil {
		h.logger.Error("Failed to list runs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list runs"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"runs":  runs,
		"total": len(runs),
	})
}

// GetRun returns one batch run
func (h *Handler) GetRun(c *gin.Context) {
	run, err := h.batch.GetRun(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrRunNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "run not found"})
			return
		}
		h.logger.Error("Failed to get run", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to get run"})
		return
	}

	c.JSON(http.StatusOK, run)
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "mentorship-dashboard",
		"version": "1.0.0",
	})
}
