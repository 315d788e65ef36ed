package models

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuction_Validate(t *testing.T) {
	a := Auction{
		ID:            7,
		Name:          "Lampa prawa przód",
		PricePLN:      430,
		ShipmentPrice: 25,
		CategoryID:    "255102",
		PhotoSet:      PhotoSet{Thumbnail: "IMG_1.jpg"},
	}
	require.NoError(t, a.Validate())

	a.Name = " "
	a.PricePLN = 0
	err := a.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidAuction))
	assert.Contains(t, err.Error(), "name is empty")
	assert.Contains(t, err.Error(), "price_pln must be positive")
}

func TestUploadResponse_ProductIDForms(t *testing.T) {
	var numeric, text UploadResponse
	require.NoError(t, json.Unmarshal([]byte(`{"status":"SUCCESS","product_id":2685}`), &numeric))
	require.NoError(t, json.Unmarshal([]byte(`{"status":"ERROR","product_id":"2685","warnings":{"image_error":"bad"}}`), &text))

	assert.Equal(t, FlexibleID("2685"), numeric.ProductID)
	assert.True(t, numeric.OK())
	assert.Equal(t, FlexibleID("2685"), text.ProductID)
	assert.False(t, text.OK())
	assert.Equal(t, "bad", text.Warnings["image_error"])

	var empty UploadResponse
	require.NoError(t, json.Unmarshal([]byte(`{"status":"SUCCESS","product_id":7,"warnings":[]}`), &empty))
	assert.Nil(t, empty.Warnings)
}

func TestTextFields_OnlyLanguage(t *testing.T) {
	tf := TextFields{
		"name":           "Lampa",
		"name|de":        "Scheinwerfer",
		"features|de":    map[string]string{"Farbe": "Schwarz"},
		"description|en": "Lamp",
	}
	got := tf.OnlyLanguage("de")
	assert.Len(t, got, 2)
	assert.Equal(t, "Scheinwerfer", got[LangField("name", "de")])
}

func TestProduct_Validate(t *testing.T) {
	p := Product{InventoryID: "1430", SKU: "J KOW SP_25 120 IMG_1 A1", CategoryID: 3, ManufacturerID: 9,
		TextFields: TextFields{"name": "Lampa"}}
	require.NoError(t, p.Validate())

	update := Product{InventoryID: "1430", ProductID: "55", TextFields: TextFields{"name|de": "Scheinwerfer"}}
	require.NoError(t, update.Validate())

	p.ManufacturerID = 0
	assert.ErrorIs(t, p.Validate(), ErrInvalidProduct)
}
