package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Product is the addInventoryProduct payload of BaseLinker.
type Product struct {
	InventoryID    string             `json:"inventory_id"`
	ProductID      string             `json:"product_id,omitempty"`
	EAN            string             `json:"ean,omitempty"`
	SKU            string             `json:"sku,omitempty"`
	Weight         float64            `json:"weight,omitempty"`
	Prices         map[string]float64 `json:"prices,omitempty"`
	CategoryID     int64              `json:"category_id,omitempty"`
	Star           int                `json:"star"`
	ManufacturerID int64              `json:"manufacturer_id,omitempty"`
	TextFields     TextFields         `json:"text_fields,omitempty"`
	Images         map[int]string     `json:"images,omitempty"`
	Stock          map[string]int     `json:"stock,omitempty"`
}

// TextFields is keyed by field name with an optional "|lang" suffix.
// Values are strings except the features blocks which are maps.
type TextFields map[string]any

func LangField(field, language string) string {
	if language == "" {
		return field
	}
	return field + "|" + language
}

// OnlyLanguage keeps the fields suffixed with "|language".
func (tf TextFields) OnlyLanguage(language string) TextFields {
	out := TextFields{}
	suffix := "|" + language
	for k, v := range tf {
		if strings.HasSuffix(k, suffix) {
			out[k] = v
		}
	}
	return out
}

var ErrInvalidProduct = errors.New("invalid product")

func (p *Product) Validate() error {
	var problems []string
	if p.InventoryID == "" {
		problems = append(problems, "inventory_id is empty")
	}
	if p.ProductID == "" {
		if p.SKU == "" {
			problems = append(problems, "sku is empty")
		}
		if p.CategoryID == 0 {
			problems = append(problems, "category_id is empty")
		}
		if p.ManufacturerID == 0 {
			problems = append(problems, "manufacturer_id is empty")
		}
		if name, _ := p.TextFields["name"].(string); name == "" {
			problems = append(problems, "name is empty")
		}
	}
	for _, price := range p.Prices {
		if price < 0 {
			problems = append(problems, "negative price")
			break
		}
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidProduct, strings.Join(problems, ", "))
	}
	return nil
}

// FlexibleID accepts both numbers and strings, BaseLinker returns either.
type FlexibleID string

func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = FlexibleID(n.String())
	return nil
}

type UploadResponse struct {
	Status    string            `json:"status"`
	ProductID FlexibleID        `json:"product_id,omitempty"`
	Warnings  Warnings          `json:"warnings,omitempty"`
}

// Warnings is a field->message map; an empty list "[]" decodes to nil.
type Warnings map[string]string

func (w *Warnings) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		*w = nil
		return nil
	}
	var m map[string]string
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*w = m
	return nil
}

func (r UploadResponse) OK() bool {
	return r.Status == "SUCCESS"
}
