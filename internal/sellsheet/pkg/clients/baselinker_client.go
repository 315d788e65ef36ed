package clients

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
	"sellsheet_api/internal/sellsheet/models"
	"sellsheet_api/pkg/logger"
)

const (
	BaseLinkerService     = "baselinker"
	BaseLinkerTokenHeader = "X-BLToken"
	baseLinkerStatusError = "ERROR"
)

var ErrBaseLinker = errors.New("baselinker api error")

// APIError is the {"status":"ERROR"} envelope of the connector.
type APIError struct {
	Method  string
	Code    string
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("baselinker %s: %s: %s", e.Method, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return ErrBaseLinker
}

type envelope struct {
	Status       string `json:"status"`
	ErrorCode    string `json:"error_code"`
	ErrorMessage string `json:"error_message"`
}

type BaseLinkerClient struct {
	*BaseClient
}

// NewBaseLinkerClient: requestsPerMinute <= 0 disables throttling.
func NewBaseLinkerClient(apiURL, apiKey string, requestsPerMinute int, log logger.Logger) *BaseLinkerClient {
	var limiter *rate.Limiter
	if requestsPerMinute > 0 {
		limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), 1)
	}
	var auth AuthEngine
	if a := NewTokenHeaderAuth(BaseLinkerTokenHeader, apiKey); a != nil {
		auth = a
	}
	return &BaseLinkerClient{
		BaseClient: NewBaseClient(apiURL, BaseLinkerService, auth, limiter, log),
	}
}

// call posts a connector method and decodes the raw answer into response.
func (c *BaseLinkerClient) call(ctx context.Context, method string, parameters interface{}, response interface{}) error {
	params, err := json.Marshal(parameters)
	if err != nil {
		return fmt.Errorf("failed to marshal parameters for %s: %w", method, err)
	}
	form := url.Values{}
	form.Set("method", method)
	form.Set("parameters", string(params))

	var raw json.RawMessage
	err = c.doRequest(ctx, request{
		method:      http.MethodPost,
		label:       method,
		body:        strings.NewReader(form.Encode()),
		contentType: "application/x-www-form-urlencoded",
	}, &raw)
	if err != nil {
		return fmt.Errorf("baselinker %s: %w", method, err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return fmt.Errorf("baselinker %s: failed to decode status: %w", method, err)
	}
	if env.Status == baseLinkerStatusError {
		return &APIError{Method: method, Code: env.ErrorCode, Message: env.ErrorMessage}
	}
	if response == nil {
		return nil
	}
	if err := json.Unmarshal(raw, response); err != nil {
		return fmt.Errorf("baselinker %s: failed to unmarshal response: %w", method, err)
	}
	return nil
}

type Category struct {
	ID   int64  `json:"category_id"`
	Name string `json:"name"`
}

type Manufacturer struct {
	ID   int64  `json:"manufacturer_id"`
	Name string `json:"name"`
}

func (c *BaseLinkerClient) GetInventoryCategories(ctx context.Context) ([]Category, error) {
	var resp struct {
		Categories []Category `json:"categories"`
	}
	if err := c.call(ctx, "getInventoryCategories", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Categories, nil
}

func (c *BaseLinkerClient) AddInventoryCategory(ctx context.Context, name string) (int64, error) {
	params := map[string]interface{}{"name": name, "parent_id": 0}
	var resp struct {
		CategoryID int64 `json:"category_id"`
	}
	if err := c.call(ctx, "addInventoryCategory", params, &resp); err != nil {
		return 0, err
	}
	return resp.CategoryID, nil
}

func (c *BaseLinkerClient) GetInventoryManufacturers(ctx context.Context) ([]Manufacturer, error) {
	var resp struct {
		Manufacturers []Manufacturer `json:"manufacturers"`
	}
	if err := c.call(ctx, "getInventoryManufacturers", struct{}{}, &resp); err != nil {
		return nil, err
	}
	return resp.Manufacturers, nil
}

func (c *BaseLinkerClient) AddInventoryManufacturer(ctx context.Context, name string) (int64, error) {
	params := map[string]interface{}{"name": name}
	var resp struct {
		ManufacturerID int64 `json:"manufacturer_id"`
	}
	if err := c.call(ctx, "addInventoryManufacturer", params, &resp); err != nil {
		return 0, err
	}
	return resp.ManufacturerID, nil
}

// AddInventoryProduct creates a product, or updates it when ProductID is set.
func (c *BaseLinkerClient) AddInventoryProduct(ctx context.Context, product *models.Product) (models.UploadResponse, error) {
	var resp models.UploadResponse
	if err := c.call(ctx, "addInventoryProduct", product, &resp); err != nil {
		return resp, err
	}
	return resp, nil
}

// InventoryProduct is the subset of getInventoryProductsData used for re-translation.
type InventoryProduct struct {
	CategoryID int64                      `json:"category_id"`
	Weight     float64                    `json:"weight"`
	Prices     map[string]float64         `json:"prices"`
	TextFields map[string]json.RawMessage `json:"text_fields"`
}

// Text returns a string text field, "" if absent or not a string.
func (p InventoryProduct) Text(field string) string {
	raw, ok := p.TextFields[field]
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return ""
	}
	return s
}

// Features decodes the "features" text field. Non-string values are rendered as JSON text.
func (p InventoryProduct) Features() map[string]string {
	raw, ok := p.TextFields["features"]
	if !ok {
		return nil
	}
	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil
	}
	features := make(map[string]string, len(values))
	for name, v := range values {
		var s string
		if err := json.Unmarshal(v, &s); err == nil {
			features[name] = s
			continue
		}
		features[name] = string(v)
	}
	return features
}

func (c *BaseLinkerClient) GetInventoryProductsData(ctx context.Context, inventoryID int, productIDs []int64) (map[string]InventoryProduct, error) {
	params := map[string]interface{}{
		"inventory_id": inventoryID,
		"products":     productIDs,
	}
	var resp struct {
		Products map[string]InventoryProduct `json:"products"`
	}
	if err := c.call(ctx, "getInventoryProductsData", params, &resp); err != nil {
		return nil, err
	}
	return resp.Products, nil
}
