package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/restocked/stocklog/internal/domain/models"
	"github.com/restocked/stocklog/internal/entry"
	"github.com/restocked/stocklog/internal/service/procurement"
)

// EntryHandler exposes the entry wizard over HTTP. Each endpoint maps to one
// wizard operation and returns the fresh session snapshot.
type EntryHandler struct {
	svc    *procurement.Service
	logger *zap.Logger
}

// NewEntryHandler constructs the HTTP handler adapter.
func NewEntryHandler(svc *procurement.Service, logger *zap.Logger) *EntryHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EntryHandler{svc: svc, logger: logger}
}

// Create opens a new wizard session.
func (h *EntryHandler) Create(c *gin.Context) {
	snapshot := h.svc.CreateSession()
	c.JSON(http.StatusCreated, snapshot)
}

// Get returns the current session snapshot.
func (h *EntryHandler) Get(c *gin.Context) {
	snapshot, err := h.svc.GetSession(c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// Begin advances from the welcome screen to category selection.
func (h *EntryHandler) Begin(c *gin.Context) {
	snapshot, err := h.svc.Begin(c.Param("id"))
	h.respond(c, snapshot, err)
}

// SelectCategory seeds the worksheet for the chosen category.
func (h *EntryHandler) SelectCategory(c *gin.Context) {
	var req models.SelectCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid category payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snapshot, err := h.svc.SelectCategory(c.Param("id"), req.Category)
	h.respond(c, snapshot, err)
}

// BackToCategory abandons worksheet edits and returns to category selection.
func (h *EntryHandler) BackToCategory(c *gin.Context) {
	snapshot, err := h.svc.BackToCategory(c.Param("id"))
	h.respond(c, snapshot, err)
}

// UpdateInfo edits supplier and/or notes.
func (h *EntryHandler) UpdateInfo(c *gin.Context) {
	var req models.WorksheetInfoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid info payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snapshot, err := h.svc.UpdateInfo(c.Param("id"), req.Supplier, req.Notes)
	h.respond(c, snapshot, err)
}

// AddItem appends a blank worksheet row.
func (h *EntryHandler) AddItem(c *gin.Context) {
	snapshot, err := h.svc.AddItem(c.Param("id"))
	h.respond(c, snapshot, err)
}

// UpdateItem edits one field of one row.
func (h *EntryHandler) UpdateItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid item payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	snapshot, err := h.svc.UpdateItem(c.Param("id"), index, req.Field, req.Value)
	h.respond(c, snapshot, err)
}

// RemoveItem deletes one row, except the last remaining one.
func (h *EntryHandler) RemoveItem(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item index"})
		return
	}
	snapshot, err := h.svc.RemoveItem(c.Param("id"), index)
	h.respond(c, snapshot, err)
}

// Recognize accepts a receipt photo and starts the asynchronous recognition
// call. Responds 202; the outcome shows up in subsequent snapshots.
func (h *EntryHandler) Recognize(c *gin.Context) {
	var req models.RecognizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid recognize payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snapshot, err := h.svc.Recognize(c.Request.Context(), c.Param("id"), req.Hint, req.Image)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, snapshot)
}

// Review advances to the summary screen.
func (h *EntryHandler) Review(c *gin.Context) {
	snapshot, err := h.svc.Review(c.Param("id"))
	h.respond(c, snapshot, err)
}

// BackToWorksheet returns from the summary to the worksheet.
func (h *EntryHandler) BackToWorksheet(c *gin.Context) {
	snapshot, err := h.svc.BackToWorksheet(c.Param("id"))
	h.respond(c, snapshot, err)
}

// Confirm assembles and persists the final log, ending the session.
func (h *EntryHandler) Confirm(c *gin.Context) {
	log, err := h.svc.Confirm(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, log)
}

func (h *EntryHandler) respond(c *gin.Context, snapshot entry.Snapshot, err error) {
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

func (h *EntryHandler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, procurement.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, procurement.ErrRecognitionUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	case entry.IsValidation(err):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case errors.Is(err, entry.ErrInvalidTransition):
		// A correctly wired client never requests these; treat as a defect.
		h.logger.Error("invalid wizard transition requested", zap.String("session_id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		h.logger.Error("entry operation failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
