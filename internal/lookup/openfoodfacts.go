package lookup

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Failure reasons reported by LookupFailure
const (
	ReasonNotFound    = "not_found"
	ReasonUnavailable = "unavailable"
	ReasonBadResponse = "bad_response"
	ReasonIncomplete  = "incomplete"
)

const productFields = "product_name,brands,image_url"

// maxBodyBytes bounds how much of a response is read
const maxBodyBytes = 1 << 20

// Product is the metadata a scan prefills
type Product struct {
	Barcode     string `json:"barcode"`
	ProductName string `json:"product_name"`
	Brands      string `json:"brands,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

// LookupFailure means the product could not be resolved. The caller falls
// back to manual entry.
type LookupFailure struct {
	Barcode string
	Reason  string
	Err     error
}

func (e *LookupFailure) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("lookup %s failed (%s): %v", e.Barcode, e.Reason, e.Err)
	}
	return fmt.Sprintf("lookup %s failed (%s)", e.Barcode, e.Reason)
}

func (e *LookupFailure) Unwrap() error {
	return e.Err
}

// ProductLookup resolves a barcode to product metadata
type ProductLookup interface {
	Lookup(ctx context.Context, barcode string) (*Product, error)
}

// OpenFoodFactsClient queries the Open Food Facts v2 product API.
// Each call makes exactly one request; there are no retries.
type OpenFoodFactsClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

func NewOpenFoodFactsClient(baseURL string, timeout time.Duration, logger *zap.Logger) *OpenFoodFactsClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OpenFoodFactsClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

type productResponse struct {
	Status  int `json:"status"`
	Product *struct {
		ProductName string `json:"product_name"`
		Brands      string `json:"brands"`
		ImageURL    string `json:"image_url"`
	} `json:"product"`
}

func (c *OpenFoodFactsClient) Lookup(ctx context.Context, barcode string) (*Product, error) {
	barcode = strings.TrimSpace(barcode)
	if barcode == "" {
		return nil, &LookupFailure{Barcode: barcode, Reason: ReasonNotFound, Err: fmt.Errorf("empty barcode")}
	}

	endpoint := fmt.Sprintf("%s/api/v2/product/%s?fields=%s", c.baseURL, url.PathEscape(barcode), productFields)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &LookupFailure{Barcode: barcode, Reason: ReasonUnavailable, Err: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("Product lookup request failed", zap.String("barcode", barcode), zap.Error(err))
		return nil, &LookupFailure{Barcode: barcode, Reason: ReasonUnavailable, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &LookupFailure{Barcode: barcode, Reason: ReasonUnavailable, Err: err}
	}

	// Open Food Facts answers unknown barcodes with 404 and status 0
	if resp.StatusCode == http.StatusNotFound {
		return nil, &LookupFailure{Barcode: barcode, Reason: ReasonNotFound}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn("Product lookup returned unexpected status",
			zap.String("barcode", barcode),
			zap.Int("status", resp.StatusCode),
		)
		return nil, &LookupFailure{Barcode: barcode, Reason: ReasonUnavailable, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var payload productResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, &LookupFailure{Barcode: barcode, Reason: ReasonBadResponse, Err: err}
	}

	if payload.Status != 1 {
		return nil, &LookupFailure{Barcode: barcode, Reason: ReasonNotFound}
	}
	if payload.Product == nil || strings.TrimSpace(payload.Product.ProductName) == "" {
		return nil, &LookupFailure{Barcode: barcode, Reason: ReasonIncomplete}
	}

	product := &Product{
		Barcode:     barcode,
		ProductName: strings.TrimSpace(payload.Product.ProductName),
		Brands:      strings.TrimSpace(payload.Product.Brands),
		ImageURL:    strings.TrimSpace(payload.Product.ImageURL),
	}

	c.logger.Debug("Product found",
		zap.String("barcode", barcode),
		zap.String("product_name", product.ProductName),
	)
	return product, nil
}
