package assemble

import (
	"sellsheet_api/internal/sellsheet/models"
)

type Builder interface {
	Build() (*models.Product, error)
	Clear()
}

type ProductBuilder struct {
	InventoryID    string
	ProductID      string
	EAN            string
	SKU            string
	Weight         float64
	Prices         map[string]float64
	CategoryID     int64
	Star           int
	ManufacturerID int64
	TextFields     models.TextFields
	Images         map[int]string
	Stock          map[string]int
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{}
}

func (b *ProductBuilder) WithInventory(id string) *ProductBuilder {
	b.InventoryID = id
	return b
}
func (b *ProductBuilder) WithProductID(id string) *ProductBuilder {
	b.ProductID = id
	return b
}
func (b *ProductBuilder) WithEAN(ean string) *ProductBuilder {
	b.EAN = ean
	return b
}
func (b *ProductBuilder) WithSKU(sku string) *ProductBuilder {
	b.SKU = sku
	return b
}
func (b *ProductBuilder) WithWeight(weight float64) *ProductBuilder {
	b.Weight = weight
	return b
}
func (b *ProductBuilder) WithPrice(group string, price float64) *ProductBuilder {
	if b.Prices == nil {
		b.Prices = make(map[string]float64)
	}
	b.Prices[group] = price
	return b
}
func (b *ProductBuilder) WithCategory(id int64) *ProductBuilder {
	b.CategoryID = id
	return b
}
func (b *ProductBuilder) WithStar(star int) *ProductBuilder {
	b.Star = star
	return b
}
func (b *ProductBuilder) WithManufacturer(id int64) *ProductBuilder {
	b.ManufacturerID = id
	return b
}

// WithText sets field for language ("" is the default language).
func (b *ProductBuilder) WithText(field, language string, value any) *ProductBuilder {
	if b.TextFields == nil {
		b.TextFields = models.TextFields{}
	}
	b.TextFields[models.LangField(field, language)] = value
	return b
}
func (b *ProductBuilder) WithImages(images map[int]string) *ProductBuilder {
	b.Images = images
	return b
}
func (b *ProductBuilder) WithStock(warehouse string, amount int) *ProductBuilder {
	if b.Stock == nil {
		b.Stock = make(map[string]int)
	}
	b.Stock[warehouse] = amount
	return b
}

func (b *ProductBuilder) Build() (*models.Product, error) {
	product := &models.Product{
		InventoryID:    b.InventoryID,
		ProductID:      b.ProductID,
		EAN:            b.EAN,
		SKU:            b.SKU,
		Weight:         b.Weight,
		Prices:         b.Prices,
		CategoryID:     b.CategoryID,
		Star:           b.Star,
		ManufacturerID: b.ManufacturerID,
		TextFields:     b.TextFields,
		Images:         b.Images,
		Stock:          b.Stock,
	}
	if err := product.Validate(); err != nil {
		return nil, err
	}
	return product, nil
}

func (b *ProductBuilder) Clear() {
	*b = ProductBuilder{}
}
