package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/restocked/stocklog/internal/repository"
)

// LogHandler serves the persisted procurement logs.
type LogHandler struct {
	repo   repository.LogRepository
	logger *zap.Logger
}

// NewLogHandler constructs the HTTP handler adapter.
func NewLogHandler(repo repository.LogRepository, logger *zap.Logger) *LogHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogHandler{repo: repo, logger: logger}
}

// List returns all logs, newest first.
func (h *LogHandler) List(c *gin.Context) {
	logs, err := h.repo.GetLogs(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list logs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load logs"})
		return
	}
	c.JSON(http.StatusOK, logs)
}

// Get returns one log by id.
func (h *LogHandler) Get(c *gin.Context) {
	log, err := h.repo.GetLog(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to fetch log", zap.String("log_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load log"})
		return
	}
	c.JSON(http.StatusOK, log)
}

// Delete removes one log by id.
func (h *LogHandler) Delete(c *gin.Context) {
	err := h.repo.DeleteLog(c.Request.Context(), c.Param("id"))
	if errors.Is(err, repository.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "log not found"})
		return
	}
	if err != nil {
		h.logger.Error("failed to delete log", zap.String("log_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete log"})
		return
	}
	c.Status(http.StatusNoContent)
}
