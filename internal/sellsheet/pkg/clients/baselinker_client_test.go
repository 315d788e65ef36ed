package clients

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sellsheet_api/internal/sellsheet/models"
	"sellsheet_api/pkg/logger"
)

type blCall struct {
	Method     string
	Parameters map[string]interface{}
	Token      string
}

func newBaseLinkerServer(t *testing.T, answers map[string]string, calls *[]blCall) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, r.ParseForm())
		call := blCall{Method: r.PostForm.Get("method"), Token: r.Header.Get(BaseLinkerTokenHeader)}
		require.NoError(t, json.Unmarshal([]byte(r.PostForm.Get("parameters")), &call.Parameters))
		*calls = append(*calls, call)

		answer, ok := answers[call.Method]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(answer))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestBaseLinkerClient_Catalogs(t *testing.T) {
	var calls []blCall
	srv := newBaseLinkerServer(t, map[string]string{
		"getInventoryCategories":    `{"status":"SUCCESS","categories":[{"category_id":5,"name":"Oświetlenie/Lampy"}]}`,
		"addInventoryCategory":      `{"status":"SUCCESS","category_id":6}`,
		"getInventoryManufacturers": `{"status":"SUCCESS","manufacturers":[{"manufacturer_id":9,"name":"Hella"}]}`,
		"addInventoryManufacturer":  `{"status":"SUCCESS","manufacturer_id":10}`,
	}, &calls)
	c := NewBaseLinkerClient(srv.URL, "secret", 0, logger.Nop())
	ctx := context.Background()

	cats, err := c.GetInventoryCategories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Category{{ID: 5, Name: "Oświetlenie/Lampy"}}, cats)

	id, err := c.AddInventoryCategory(ctx, "Karoseria/Zderzaki")
	require.NoError(t, err)
	assert.Equal(t, int64(6), id)

	mans, err := c.GetInventoryManufacturers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []Manufacturer{{ID: 9, Name: "Hella"}}, mans)

	id, err = c.AddInventoryManufacturer(ctx, "Valeo")
	require.NoError(t, err)
	assert.Equal(t, int64(10), id)

	require.Len(t, calls, 4)
	assert.Equal(t, "secret", calls[0].Token)
	assert.Equal(t, "Karoseria/Zderzaki", calls[1].Parameters["name"])
	assert.Equal(t, float64(0), calls[1].Parameters["parent_id"])
	assert.Equal(t, "Valeo", calls[3].Parameters["name"])
}

func TestBaseLinkerClient_ErrorEnvelope(t *testing.T) {
	var calls []blCall
	srv := newBaseLinkerServer(t, map[string]string{
		"addInventoryProduct": `{"status":"ERROR","error_code":"ERROR_EMPTY_SKU","error_message":"sku is required"}`,
	}, &calls)
	c := NewBaseLinkerClient(srv.URL, "secret", 0, logger.Nop())

	_, err := c.AddInventoryProduct(context.Background(), &models.Product{InventoryID: "1430"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBaseLinker))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "ERROR_EMPTY_SKU", apiErr.Code)
	assert.Equal(t, "addInventoryProduct", apiErr.Method)
}

func TestBaseLinkerClient_AddInventoryProduct(t *testing.T) {
	var calls []blCall
	srv := newBaseLinkerServer(t, map[string]string{
		"addInventoryProduct": `{"status":"SUCCESS","product_id":2685,"warnings":[]}`,
	}, &calls)
	c := NewBaseLinkerClient(srv.URL, "secret", 0, logger.Nop())

	p := &models.Product{
		InventoryID: "1430",
		SKU:         "J KOW SP_25 144 IMG_2 A12",
		Prices:      map[string]float64{"4848": 144},
		TextFields:  models.TextFields{"name": "Lampa", "features|de": map[string]string{"Farbe": "Schwarz"}},
	}
	resp, err := c.AddInventoryProduct(context.Background(), p)
	require.NoError(t, err)
	assert.True(t, resp.OK())
	assert.Equal(t, models.FlexibleID("2685"), resp.ProductID)

	require.Len(t, calls, 1)
	params := calls[0].Parameters
	assert.Equal(t, "1430", params["inventory_id"])
	assert.Equal(t, "J KOW SP_25 144 IMG_2 A12", params["sku"])
	text := params["text_fields"].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"Farbe": "Schwarz"}, text["features|de"])
}

func TestBaseLinkerClient_GetInventoryProductsData(t *testing.T) {
	var calls []blCall
	srv := newBaseLinkerServer(t, map[string]string{
		"getInventoryProductsData": `{"status":"SUCCESS","products":{"77":{"category_id":213362,"weight":3,
			"prices":{"1184":400},"text_fields":{"name":"Lampa","features":{"Kolor":"czarny","Liczba":4}}}}}`,
	}, &calls)
	c := NewBaseLinkerClient(srv.URL, "secret", 0, logger.Nop())

	products, err := c.GetInventoryProductsData(context.Background(), 1430, []int64{77})
	require.NoError(t, err)
	require.Contains(t, products, "77")

	p := products["77"]
	assert.Equal(t, int64(213362), p.CategoryID)
	assert.Equal(t, "Lampa", p.Text("name"))
	assert.Equal(t, "", p.Text("description"))
	assert.Equal(t, map[string]string{"Kolor": "czarny", "Liczba": "4"}, p.Features())
	assert.Equal(t, []interface{}{float64(77)}, calls[0].Parameters["products"])
}

func TestBaseClient_NonOKStatus(t *testing.T) {
	var calls []blCall
	srv := newBaseLinkerServer(t, map[string]string{}, &calls)
	c := NewBaseLinkerClient(srv.URL, "secret", 0, logger.Nop())

	_, err := c.GetInventoryCategories(context.Background())
	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
}

func TestBaseClient_CancelledContext(t *testing.T) {
	var calls []blCall
	srv := newBaseLinkerServer(t, map[string]string{}, &calls)
	c := NewBaseLinkerClient(srv.URL, "secret", 60, logger.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := c.GetInventoryCategories(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.Empty(t, calls)
}

func TestNewAuth_EmptyKey(t *testing.T) {
	assert.Nil(t, NewBearerAuth(""))
	assert.Nil(t, NewTokenHeaderAuth(BaseLinkerTokenHeader, ""))
}
