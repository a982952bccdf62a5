package rest

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apierrors "github.com/feral-file/media-monitor/internal/api/shared/errors"
	"github.com/feral-file/media-monitor/internal/domain"
	"github.com/feral-file/media-monitor/internal/logger"
	"github.com/feral-file/media-monitor/internal/store"
)

const SERVICE_NAME = "media-monitor-api"

// Handler defines the interface for REST API handlers
type Handler interface {
	// HealthCheck returns the health status with item totals
	// GET /health
	HealthCheck(c *gin.Context)

	// ListItems retrieves media items with optional filters
	// GET /api/v1/items?since=<rfc3339|date>&topics=<t1>,<t2>&platform=<platform>&publisher=<name>&limit=<limit>
	ListItems(c *gin.Context)

	// GetItem retrieves a single media item by its id
	// GET /api/v1/items/:id
	GetItem(c *gin.Context)

	// GetIngestState retrieves the checkpoint of a source
	// GET /api/v1/states/:source
	GetIngestState(c *gin.Context)
}

// handler implements the Handler interface
type handler struct {
	store store.Store
}

// NewHandler creates a new REST API handler reading from the store
func NewHandler(st store.Store) Handler {
	return &handler{store: st}
}

// HealthCheck reports the item totals; a store failure answers 503
func (h *handler) HealthCheck(c *gin.Context) {
	total, pending, err := h.store.CountMediaItems(c.Request.Context())
	if err != nil {
		logger.ErrorCtx(c.Request.Context(), fmt.Errorf("health check failed: %w", err))
		respondWithError(c, apierrors.NewServiceUnavailableError("Store unavailable"))
		return
	}

	c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Service: SERVICE_NAME,
		Total:   total,
		Pending: pending,
	})
}

// ListItems retrieves media items with optional filters
func (h *handler) ListItems(c *gin.Context) {
	query, err := ParseListItemsQuery(c)
	if err != nil {
		respondValidationError(c, err.Error())
		return
	}

	items, err := h.store.QueryMediaItems(c.Request.Context(), *query)
	if err != nil {
		respondInternalError(c, err, "Failed to list media items")
		return
	}

	resp := ListItemsResponse{
		Items: make([]MediaItemResponse, 0, len(items)),
		Count: len(items),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, toMediaItemResponse(item))
	}

	c.JSON(http.StatusOK, resp)
}

// GetItem retrieves a single media item by its id
func (h *handler) GetItem(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		respondBadRequest(c, "Item ID is required")
		return
	}

	item, err := h.store.GetMediaItemByID(c.Request.Context(), id)
	if err != nil {
		respondInternalError(c, err, "Failed to get media item", zap.String("id", id))
		return
	}

	if item == nil {
		respondNotFound(c, "Media item not found")
		return
	}

	c.JSON(http.StatusOK, toMediaItemResponse(*item))
}

// GetIngestState retrieves the checkpoint of a source
func (h *handler) GetIngestState(c *gin.Context) {
	source := strings.ToLower(strings.TrimSpace(c.Param("source")))
	if !domain.IsValidPlatform(domain.Platform(source)) {
		respondBadRequest(c, "Unknown source", source)
		return
	}

	state, err := h.store.GetIngestState(c.Request.Context(), source)
	if err != nil {
		respondInternalError(c, err, "Failed to get ingest state", zap.String("source", source))
		return
	}

	if state == nil {
		respondNotFound(c, "Source has not been ingested yet")
		return
	}

	c.JSON(http.StatusOK, toIngestStateResponse(*state))
}
