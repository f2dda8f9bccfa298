package handlers

import (
	"errors"
	"net/http"
	"strings"

	"frigo-service/internal/domain"
	"frigo-service/internal/lookup"
	"frigo-service/internal/repository"
	apperrors "frigo-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type ProductHandler struct {
	logger     *zap.Logger
	lookup     lookup.ProductLookup
	repository repository.InventoryRepository
}

func NewProductHandler(logger *zap.Logger, productLookup lookup.ProductLookup, repo repository.InventoryRepository) *ProductHandler {
	return &ProductHandler{
		logger:     logger,
		lookup:     productLookup,
		repository: repo,
	}
}

// Scan handles GET /api/v1/products/:barcode
// @Summary      Look up a scanned barcode
// @Description  Queries the product database once. A found product comes back as a draft with quantity 1; otherwise manual_entry is set with the reason. If the barcode is already stocked the stored record is included.
// @Tags         products
// @Produce      json
// @Security     BearerAuth
// @Param        barcode  path      string  true  "Scanned barcode" example(3017620422003)
// @Success      200      {object}  ScanResponse
// @Failure      400      {object}  errors.StandardError
// @Failure      503      {object}  errors.StandardError
// @Router       /products/{barcode} [get]
func (h *ProductHandler) Scan(c *gin.Context) {
	barcode := strings.TrimSpace(c.Param("barcode"))
	if barcode == "" {
		c.Error(apperrors.NewValidationError("barcode is required", "barcode"))
		c.Abort()
		return
	}

	response := ScanResponse{
		Barcode: barcode,
		Draft:   RecordRequest{ID: barcode, Quantity: 1},
	}

	existing, err := h.repository.Get(c.Request.Context(), barcode)
	switch {
	case err == nil:
		record := newRecordResponse(*existing)
		response.Existing = &record
	case errors.Is(err, domain.ErrRecordNotFound):
	default:
		abortWithError(c, err)
		return
	}

	product, err := h.lookup.Lookup(c.Request.Context(), barcode)
	if err != nil {
		var failure *lookup.LookupFailure
		if !errors.As(err, &failure) {
			abortWithError(c, err)
			return
		}
		h.logger.Info("Product lookup failed, manual entry required",
			zap.String("barcode", barcode),
			zap.String("reason", failure.Reason),
		)
		response.ManualEntry = true
		response.Reason = failure.Reason
		c.JSON(http.StatusOK, response)
		return
	}

	response.Found = true
	response.Draft.ProductName = product.ProductName
	response.Draft.Brands = product.Brands
	response.Draft.ImageURL = product.ImageURL
	c.JSON(http.StatusOK, response)
}
