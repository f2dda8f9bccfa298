package handlers

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"frigo-service/internal/domain"
	"frigo-service/internal/events"
	"frigo-service/internal/freshness"
	"frigo-service/internal/repository"
	apperrors "frigo-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	logger        *zap.Logger
	repository    repository.InventoryRepository
	eventBus      events.EventPublisher
	expiringLimit int
	now           func() time.Time
}

// NewInventoryHandler wires the inventory endpoints. expiringLimit is the
// default size of the expiring-soon view; 0 shows everything.
func NewInventoryHandler(logger *zap.Logger, repo repository.InventoryRepository, eventBus events.EventPublisher, expiringLimit int) *InventoryHandler {
	return &InventoryHandler{
		logger:        logger,
		repository:    repo,
		eventBus:      eventBus,
		expiringLimit: expiringLimit,
		now:           time.Now,
	}
}

// ListRecords handles GET /api/v1/inventory/records
// @Summary      List all records
// @Description  Returns every record in storage order with its freshness. Stored values that cannot be read are listed under skipped.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  ListRecordsResponse
// @Failure      503  {object}  errors.StandardError  "Storage unavailable"
// @Router       /inventory/records [get]
func (h *InventoryHandler) ListRecords(c *gin.Context) {
	result, err := h.repository.ListAll(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to list records", zap.Error(err))
		abortWithError(c, err)
		return
	}

	now := h.now()
	records := make([]RecordResponse, 0, len(result.Records))
	for _, record := range result.Records {
		records = append(records, h.describe(record, now))
	}

	c.JSON(http.StatusOK, ListRecordsResponse{
		Records: records,
		Skipped: result.Skipped,
		Total:   len(records),
	})
}

// GetRecord handles GET /api/v1/inventory/records/:id
// @Summary      Get a record
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Barcode or manual id"
// @Success      200  {object}  RecordResponse
// @Failure      404  {object}  errors.StandardError
// @Failure      503  {object}  errors.StandardError
// @Router       /inventory/records/{id} [get]
func (h *InventoryHandler) GetRecord(c *gin.Context) {
	record, err := h.repository.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.describe(*record, h.now()))
}

// SaveRecord handles POST /api/v1/inventory/records
// @Summary      Create or replace a record
// @Description  Stores the record under its barcode, replacing any record with the same id. Without an id a manual entry is created.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      RecordRequest  true  "Record"
// @Success      200      {object}  RecordResponse
// @Failure      400      {object}  errors.StandardError  "Invalid record"
// @Failure      503      {object}  errors.StandardError
// @Router       /inventory/records [post]
func (h *InventoryHandler) SaveRecord(c *gin.Context) {
	var req RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid request", zap.Error(err))
		c.Error(apperrors.NewInvalidRequest("invalid request body", err.Error()))
		c.Abort()
		return
	}

	saved, err := h.repository.Save(c.Request.Context(), req.toDomain())
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.publish(c, events.RecordSavedEvent{
		RecordID:       saved.ID,
		ProductName:    saved.ProductName,
		Quantity:       saved.Quantity.Int(),
		ExpirationDate: saved.ExpirationDate,
		OccurredAt:     h.now().UTC(),
	})

	h.logger.Info("Record saved", zap.String("record_id", saved.ID))
	c.JSON(http.StatusOK, h.describe(*saved, h.now()))
}

// UpdateRecord handles PATCH /api/v1/inventory/records/:id
// @Summary      Edit a record
// @Description  Changes name, description or expiration date. An empty expiration_date clears it.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string               true  "Barcode or manual id"
// @Param        request  body      UpdateFieldsRequest  true  "Fields to change"
// @Success      200      {object}  RecordResponse
// @Failure      400      {object}  errors.StandardError
// @Failure      404      {object}  errors.StandardError
// @Failure      503      {object}  errors.StandardError
// @Router       /inventory/records/{id} [patch]
func (h *InventoryHandler) UpdateRecord(c *gin.Context) {
	var req UpdateFieldsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewInvalidRequest("invalid request body", err.Error()))
		c.Abort()
		return
	}

	update := req.toDomain()
	if update.IsEmpty() {
		c.Error(apperrors.NewInvalidRequest("nothing to update", "Expected one of: product_name, description, expiration_date"))
		c.Abort()
		return
	}

	updated, err := h.repository.UpdateFields(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		abortWithError(c, err)
		return
	}

	h.publish(c, events.RecordUpdatedEvent{
		RecordID:       updated.ID,
		ProductName:    updated.ProductName,
		Description:    updated.Description,
		ExpirationDate: updated.ExpirationDate,
		OccurredAt:     h.now().UTC(),
	})

	h.logger.Info("Record updated", zap.String("record_id", updated.ID))
	c.JSON(http.StatusOK, h.describe(*updated, h.now()))
}

// UpdateQuantity handles PUT /api/v1/inventory/records/:id/quantity
// @Summary      Set the quantity of a record
// @Description  Sets an absolute quantity. A quantity of zero or less deletes the record and must be confirmed with confirm=true.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                 true   "Barcode or manual id"
// @Param        confirm  query     bool                   false  "Confirm a deleting update"
// @Param        request  body      UpdateQuantityRequest  true   "New quantity"
// @Success      200      {object}  QuantityResponse
// @Failure      400      {object}  errors.StandardError
// @Failure      404      {object}  errors.StandardError
// @Failure      409      {object}  errors.StandardError  "Deletion not confirmed"
// @Failure      503      {object}  errors.StandardError
// @Router       /inventory/records/{id}/quantity [put]
func (h *InventoryHandler) UpdateQuantity(c *gin.Context) {
	id := c.Param("id")

	var req UpdateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperrors.NewValidationError("quantity is required", "quantity"))
		c.Abort()
		return
	}
	quantity := *req.Quantity

	if domain.WouldDelete(quantity) && !queryBool(c, "confirm") {
		c.Error(apperrors.NewConfirmationRequired(id, quantity))
		c.Abort()
		return
	}

	result, err := h.repository.UpdateQuantity(c.Request.Context(), id, quantity)
	if err != nil {
		abortWithError(c, err)
		return
	}

	if result.Deleted {
		h.publish(c, events.RecordDeletedEvent{RecordID: id, OccurredAt: h.now().UTC()})
		h.logger.Info("Record removed by quantity update", zap.String("record_id", id))
		c.JSON(http.StatusOK, QuantityResponse{ID: id, Quantity: 0, Deleted: true})
		return
	}

	h.publish(c, events.QuantityUpdatedEvent{RecordID: id, Quantity: quantity, OccurredAt: h.now().UTC()})

	record := h.describe(*result.Record, h.now())
	c.JSON(http.StatusOK, QuantityResponse{
		ID:       id,
		Quantity: quantity,
		Record:   &record,
	})
}

// DeleteRecord handles DELETE /api/v1/inventory/records/:id
// @Summary      Delete a record
// @Description  Removes the record. Deleting an absent id succeeds.
// @Tags         inventory
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Barcode or manual id"
// @Success      200  {object}  SuccessResponse
// @Failure      503  {object}  errors.StandardError
// @Router       /inventory/records/{id} [delete]
func (h *InventoryHandler) DeleteRecord(c *gin.Context) {
	id := c.Param("id")

	if err := h.repository.Delete(c.Request.Context(), id); err != nil {
		abortWithError(c, err)
		return
	}

	h.publish(c, events.RecordDeletedEvent{RecordID: id, OccurredAt: h.now().UTC()})

	h.logger.Info("Record deleted", zap.String("record_id", id))
	c.JSON(http.StatusOK, SuccessResponse{Message: "record deleted successfully"})
}

// ExpiringSoon handles GET /api/v1/inventory/expiring
// @Summary      Records sorted by freshness
// @Description  Dated records sorted by days until expiration, soonest first. Expired records are left out unless include_expired=true.
// @Tags         freshness
// @Produce      json
// @Security     BearerAuth
// @Param        include_expired  query     bool  false  "Keep expired records"
// @Param        limit            query     int   false  "Maximum number of records"
// @Success      200              {object}  ExpiringResponse
// @Failure      400              {object}  errors.StandardError
// @Failure      503              {object}  errors.StandardError
// @Router       /inventory/expiring [get]
func (h *InventoryHandler) ExpiringSoon(c *gin.Context) {
	limit := h.expiringLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.Error(apperrors.NewValidationError("limit must be a non-negative integer", "limit"))
			c.Abort()
			return
		}
		limit = n
	}

	result, err := h.repository.ListAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	now := h.now()
	ranked := freshness.ExpiringSoon(result.Records, now, freshness.Options{
		IncludeExpired: queryBool(c, "include_expired"),
		Limit:          limit,
	})

	records := make([]RecordResponse, 0, len(ranked))
	for _, r := range ranked {
		records = append(records, newRankedResponse(r))
	}

	c.JSON(http.StatusOK, ExpiringResponse{
		Records: records,
		Total:   len(records),
		Today:   now.Format(domain.DateLayout),
	})
}

// Summary handles GET /api/v1/inventory/summary
// @Summary      Freshness summary
// @Description  Counts records per urgency color, plus expired and undated records
// @Tags         freshness
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  SummaryResponse
// @Failure      503  {object}  errors.StandardError
// @Router       /inventory/summary [get]
func (h *InventoryHandler) Summary(c *gin.Context) {
	result, err := h.repository.ListAll(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	now := h.now()
	c.JSON(http.StatusOK, SummaryResponse{
		Summary: freshness.Summarize(result.Records, now),
		Today:   now.Format(domain.DateLayout),
	})
}

func (h *InventoryHandler) describe(record domain.InventoryRecord, now time.Time) RecordResponse {
	if ranked, ok := freshness.Rank(record, now); ok {
		return newRankedResponse(ranked)
	}
	return newRecordResponse(record)
}

// publish sends a change event. The mutation already happened, so a
// failure is logged and not returned to the client.
func (h *InventoryHandler) publish(c *gin.Context, event interface{}) {
	if err := h.eventBus.Publish(c.Request.Context(), event); err != nil {
		h.logger.Error("Failed to publish event",
			zap.String("event-type", events.EventType(event)),
			zap.Error(err),
		)
	}
}

func queryBool(c *gin.Context, key string) bool {
	value, err := strconv.ParseBool(strings.TrimSpace(c.Query(key)))
	return err == nil && value
}
