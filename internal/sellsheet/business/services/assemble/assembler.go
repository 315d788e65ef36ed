package assemble

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"strings"

	"sellsheet_api/config/values"
	"sellsheet_api/internal/sellsheet/business/services/translate"
	"sellsheet_api/internal/sellsheet/models"
	"sellsheet_api/metrics"
	"sellsheet_api/pkg/logger"
)

var ErrNoManufacturer = errors.New("no manufacturer feature")

var manufacturerMarkers = []string{"PRODUCENT", "MARKA"}

type CatalogMatcher interface {
	MatchManufacturer(ctx context.Context, name string) (int64, error)
	MatchCategory(ctx context.Context, sourceCategoryID string) (int64, error)
}

type FeatureTranslator interface {
	TranslateFeatures(ctx context.Context, req translate.Request) (map[string]string, error)
}

type TagComposer interface {
	Compose(ctx context.Context, categoryID, name, rawTags, language string) (string, error)
	OriginalNumbers(rawTags string) string
}

type TitleTranslator interface {
	TranslateTitleDescription(ctx context.Context, title, description, categoryID, language string) (models.TranslatedText, error)
}

type Options struct {
	Inventory values.InventoryValues
	Photos    values.PhotoValues
	MediaRoot string
	// Language is the translation target.
	Language string
}

type Assembler struct {
	opts     Options
	prices   *PriceEngine
	matcher  CatalogMatcher
	features FeatureTranslator
	tags     TagComposer
	titles   TitleTranslator
	renderer PhotoRenderer
	log      logger.Logger
}

// NewAssembler wires the pipeline. titles may be nil, missing translations then stay empty.
func NewAssembler(opts Options, prices *PriceEngine, matcher CatalogMatcher, features FeatureTranslator,
	tags TagComposer, titles TitleTranslator, renderer PhotoRenderer, log logger.Logger) *Assembler {
	if opts.Language == "" {
		opts.Language = translate.DefaultLanguage
	}
	opts.Inventory.ApplyDefaults()
	if opts.Photos.MaxPhotos == 0 {
		opts.Photos.MaxPhotos = 12
	}
	if opts.Photos.PackSize == 0 {
		opts.Photos.PackSize = 4
	}
	return &Assembler{
		opts:     opts,
		prices:   prices,
		matcher:  matcher,
		features: features,
		tags:     tags,
		titles:   titles,
		renderer: renderer,
		log:      log.WithPrefix("[Assembler]"),
	}
}

// Assemble builds the BaseLinker product of one auction.
func (a *Assembler) Assemble(ctx context.Context, auction *models.Auction, owner, author models.User) (*models.Product, error) {
	if err := auction.Validate(); err != nil {
		return nil, err
	}

	manufacturer, ok := ManufacturerFeature(auction.Features)
	if !ok {
		return nil, fmt.Errorf("%w in auction %d", ErrNoManufacturer, auction.ID)
	}

	weight, err := a.prices.WeightForShipment(auction.ShipmentPrice)
	if err != nil {
		return nil, fmt.Errorf("auction %d: %w", auction.ID, err)
	}
	priceEUR, err := a.prices.ResolveSecondaryPrice(auction.PriceEUR, auction.PricePLN, weight)
	if err != nil {
		return nil, fmt.Errorf("auction %d: price: %w", auction.ID, err)
	}

	categoryID, err := a.matcher.MatchCategory(ctx, auction.CategoryID)
	if err != nil {
		return nil, fmt.Errorf("auction %d: match category %s: %w", auction.ID, auction.CategoryID, err)
	}
	manufacturerID, err := a.matcher.MatchManufacturer(ctx, manufacturer.Value)
	if err != nil {
		return nil, fmt.Errorf("auction %d: match manufacturer %q: %w", auction.ID, manufacturer.Value, err)
	}

	sourceFeatures, err := a.sourceFeatures(ctx, auction)
	if err != nil {
		return nil, fmt.Errorf("auction %d: %w", auction.ID, err)
	}
	translated, err := a.features.TranslateFeatures(ctx, translate.Request{
		Features:      sourceFeatures,
		CategoryID:    auction.CategoryID,
		SerialNumbers: auction.SerialNumbers,
		Name:          auction.Name,
		Tags:          auction.Tags,
		Language:      a.opts.Language,
	})
	if err != nil {
		return nil, fmt.Errorf("auction %d: translate features: %w", auction.ID, err)
	}

	images, err := a.images(ctx, auction.PhotoSet)
	if err != nil {
		return nil, fmt.Errorf("auction %d: photos: %w", auction.ID, err)
	}

	text := a.translatedText(ctx, auction)
	lang := a.opts.Language
	inv := a.opts.Inventory

	b := NewProductBuilder().
		WithInventory(strconv.Itoa(inv.InventoryID)).
		WithEAN(auction.SerialNumbers).
		WithSKU(BuildSKU(owner, author, auction.ShipmentPrice, priceEUR, auction.PhotoSet.Thumbnail, auction.PhotoSet.Directory)).
		WithWeight(weight).
		WithPrice(inv.PriceGroupPL, auction.PricePLN).
		WithPrice(inv.PriceGroupEU, priceEUR).
		WithCategory(categoryID).
		WithStar(author.StarID).
		WithManufacturer(manufacturerID).
		WithText("name", "", auction.Name).
		WithText("name", lang, text.Name).
		WithText("description", "", auction.Description).
		WithText("description_extra1", "", text.Description).
		WithText("description_extra1", lang, text.Description).
		WithText("features", "", featureMap(sourceFeatures)).
		WithText("features", lang, translated).
		WithImages(images).
		WithStock(inv.Warehouse, auction.Amount)

	return b.Build()
}

// ManufacturerFeature returns the first feature naming a producer or brand.
func ManufacturerFeature(features []models.Feature) (models.Feature, bool) {
	for _, f := range features {
		upper := strings.ToUpper(f.Name)
		for _, marker := range manufacturerMarkers {
			if strings.Contains(upper, marker) {
				return f, true
			}
		}
	}
	return models.Feature{}, false
}

// sourceFeatures appends the synthetic reference fields to the auction features.
func (a *Assembler) sourceFeatures(ctx context.Context, auction *models.Auction) ([]models.Feature, error) {
	autoTags, err := a.tags.Compose(ctx, auction.CategoryID, auction.Name, auction.Tags, "pl")
	if err != nil {
		return nil, err
	}

	features := make([]models.Feature, 0, len(auction.Features)+3)
	for _, f := range auction.Features {
		if models.IsSyntheticFeature(f.Name) {
			continue
		}
		features = append(features, f)
	}
	return append(features,
		models.Feature{Name: models.PartNumberField, Value: auction.SerialNumbers},
		models.Feature{Name: models.OriginalNumberField, Value: a.tags.OriginalNumbers(auction.Tags)},
		models.Feature{Name: models.AutoTagsField, Value: autoTags},
	), nil
}

func featureMap(features []models.Feature) map[string]string {
	out := make(map[string]string, len(features))
	for _, f := range features {
		out[f.Name] = f.Value
	}
	return out
}

// translatedText prefers the operator's translation and falls back to the AI.
func (a *Assembler) translatedText(ctx context.Context, auction *models.Auction) models.TranslatedText {
	if t, ok := auction.TranslatedParams[a.opts.Language]; ok && t.Name != "" {
		return t
	}
	if a.titles == nil {
		return models.TranslatedText{}
	}
	t, err := a.titles.TranslateTitleDescription(ctx, auction.Name, auction.Description, auction.CategoryID, a.opts.Language)
	if err != nil {
		metrics.RecordAIFailure("title")
		a.log.Error("auction %d: title translation failed: %v", auction.ID, err)
		return models.TranslatedText{}
	}
	return t
}

func (a *Assembler) images(ctx context.Context, set models.PhotoSet) (map[int]string, error) {
	names := make([]string, 0, len(set.Photos))
	for _, p := range set.Photos {
		names = append(names, p.Name)
	}
	plan := PlanPhotos(OrderPhotos(names, set.Thumbnail), a.opts.Photos.MaxPhotos, a.opts.Photos.PackSize)

	path := func(name string) string {
		return filepath.Join(a.opts.MediaRoot, set.Directory, name)
	}

	images := make(map[int]string, plan.Len())
	for _, name := range plan.Singles {
		data, err := a.renderer.Encode(ctx, path(name))
		if err != nil {
			return nil, err
		}
		images[len(images)] = data
	}
	for _, pack := range plan.Packs {
		paths := make([]string, len(pack))
		for i, name := range pack {
			paths[i] = path(name)
		}
		data, err := a.renderer.Collage(ctx, paths)
		if err != nil {
			return nil, err
		}
		images[len(images)] = data
	}
	return images, nil
}
