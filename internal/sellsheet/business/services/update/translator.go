package update

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"sellsheet_api/config/values"
	"sellsheet_api/internal/sellsheet/business/services/translate"
	"sellsheet_api/internal/sellsheet/models"
	"sellsheet_api/internal/sellsheet/pkg/clients"
	"sellsheet_api/pkg/logger"
)

var ErrUnmappedCategory = errors.New("no source category for inventory category")

type Inventory interface {
	GetInventoryProductsData(ctx context.Context, inventoryID int, productIDs []int64) (map[string]clients.InventoryProduct, error)
	AddInventoryProduct(ctx context.Context, product *models.Product) (models.UploadResponse, error)
}

type FeatureTranslator interface {
	TranslateFeatures(ctx context.Context, req translate.Request) (map[string]string, error)
}

type TitleTranslator interface {
	TranslateTitleDescription(ctx context.Context, title, description, categoryID, language string) (models.TranslatedText, error)
}

type PriceCalculator interface {
	SecondaryPrice(pln, weight float64) (float64, error)
}

const (
	StatusUpdated = "UPDATED"
	StatusSkipped = "SKIPPED"
	StatusFailed  = "FAILED"
)

type Result struct {
	ProductID string `json:"product_id"`
	Status    string `json:"status"`
	Reason    string `json:"reason,omitempty"`
	Err       error  `json:"-"`
}

func (r Result) MarshalJSON() ([]byte, error) {
	type plain Result
	out := struct {
		plain
		Error string `json:"error,omitempty"`
	}{plain: plain(r)}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	return json.Marshal(out)
}

type Translator struct {
	inventory values.InventoryValues
	// inventory category id -> source marketplace category id
	categories map[string]string
	store      Inventory
	features   FeatureTranslator
	titles     TitleTranslator
	prices     PriceCalculator
	log        logger.Logger
}

func NewTranslator(inventory values.InventoryValues, categories map[string]string, store Inventory,
	features FeatureTranslator, titles TitleTranslator, prices PriceCalculator, log logger.Logger) *Translator {
	return &Translator{
		inventory:  inventory,
		categories: categories,
		store:      store,
		features:   features,
		titles:     titles,
		prices:     prices,
		log:        log.WithPrefix("[Update]"),
	}
}

// TranslateProducts writes language text fields for already uploaded products.
// Only fetching the batch is fatal, every product gets its own Result.
func (t *Translator) TranslateProducts(ctx context.Context, productIDs []int64, language string) ([]Result, error) {
	if language == "" {
		language = translate.DefaultLanguage
	}
	t.log.Log("translating %d products to %q", len(productIDs), language)

	products, err := t.store.GetInventoryProductsData(ctx, t.inventory.InventoryID, productIDs)
	if err != nil {
		return nil, fmt.Errorf("fetch products: %w", err)
	}

	ids := make([]string, 0, len(products))
	for id := range products {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	results := make([]Result, 0, len(ids))
	for _, id := range ids {
		if err := ctx.Err(); err != nil {
			return results, err
		}
		res := t.translateProduct(ctx, id, products[id], language)
		switch res.Status {
		case StatusFailed:
			t.log.Error("product %s: %v", id, res.Err)
		case StatusSkipped:
			t.log.Warn("product %s skipped: %s", id, res.Reason)
		}
		results = append(results, res)
	}
	return results, nil
}

func (t *Translator) translateProduct(ctx context.Context, id string, p clients.InventoryProduct, language string) Result {
	res := Result{ProductID: id}
	fail := func(err error) Result {
		res.Status, res.Err = StatusFailed, err
		return res
	}
	skip := func(reason string) Result {
		res.Status, res.Reason = StatusSkipped, reason
		return res
	}

	categoryID, ok := t.categories[strconv.FormatInt(p.CategoryID, 10)]
	if !ok {
		return fail(fmt.Errorf("%w %d", ErrUnmappedCategory, p.CategoryID))
	}

	features := p.Features()
	serialNumbers := features[models.PartNumberField]
	rawTags := features[models.AutoTagsField]
	delete(features, models.PartNumberField)
	delete(features, models.AutoTagsField)

	name := p.Text("name")
	description := p.Text("description")
	if description == "" {
		description = p.Text("description_extra4")
	}
	if name == "" {
		return skip("no name")
	}

	text, err := t.titles.TranslateTitleDescription(ctx, name, description, categoryID, language)
	if err != nil {
		return fail(fmt.Errorf("translate name: %w", err))
	}
	if text.Name == "" || (text.Description == "" && strings.TrimSpace(description) != "") {
		return skip("name or description was not translated")
	}
	if len(features) == 0 {
		return skip("no features")
	}

	translated, err := t.features.TranslateFeatures(ctx, translate.Request{
		Features:      toFeatures(features),
		CategoryID:    categoryID,
		SerialNumbers: serialNumbers,
		Name:          name,
		Tags:          rawTags,
		Language:      language,
	})
	if err != nil {
		return fail(fmt.Errorf("translate features: %w", err))
	}

	product := &models.Product{
		InventoryID: strconv.Itoa(t.inventory.InventoryID),
		ProductID:   id,
		TextFields: models.TextFields{
			models.LangField("name", language):               text.Name,
			models.LangField("description_extra1", language): text.Description,
			models.LangField("features", language):           translated,
		},
	}

	if _, hasEUR := p.Prices[t.inventory.PriceGroupEU]; p.Weight > 0 && !hasEUR {
		price, err := t.prices.SecondaryPrice(p.Prices[t.inventory.PriceGroupPL], p.Weight)
		if err != nil {
			return fail(fmt.Errorf("secondary price: %w", err))
		}
		product.Prices = map[string]float64{t.inventory.PriceGroupEU: price}
	}

	if err := product.Validate(); err != nil {
		return fail(err)
	}
	resp, err := t.store.AddInventoryProduct(ctx, product)
	if err != nil {
		return fail(fmt.Errorf("upload: %w", err))
	}
	if !resp.OK() {
		return fail(fmt.Errorf("upload status %q", resp.Status))
	}
	res.Status = StatusUpdated
	t.log.Log("product %s updated with %d %s features", id, len(translated), language)
	return res
}

// toFeatures orders fields by name so AI batches are stable.
func toFeatures(m map[string]string) []models.Feature {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	out := make([]models.Feature, 0, len(names))
	for _, name := range names {
		out = append(out, models.Feature{Name: name, Value: m[name]})
	}
	return out
}
