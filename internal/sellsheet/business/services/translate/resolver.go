package translate

import (
	"context"
	"fmt"
	"strings"

	"sellsheet_api/internal/sellsheet/models"
	"sellsheet_api/metrics"
	"sellsheet_api/pkg/logger"
)

const DefaultLanguage = "de"

// Fixed cross-reference labels, written after all translation tiers.
const (
	ManufacturerNumberLabel = "Herstellernummer"
	ReferenceNumbersLabel   = "OE/OEM Referenznummer(n)"
	ComparisonNumberLabel   = "Vergleichsnummer"
)

type Store interface {
	ParameterTranslation(ctx context.Context, identity, language string) (string, bool, error)
	ValueTranslation(ctx context.Context, identity, value, language string) (string, bool, error)
}

type ParameterTranslator interface {
	TranslateParameters(ctx context.Context, params map[string]string, language string) (map[string]string, error)
}

type TagComposer interface {
	Compose(ctx context.Context, categoryID, name, rawTags, language string) (string, error)
}

type Request struct {
	Features      []models.Feature
	CategoryID    string
	SerialNumbers string
	Name          string
	// Tags are the raw auction tags, composed again in the target language.
	Tags     string
	Language string
}

type Resolver struct {
	store Store
	ai    ParameterTranslator
	tags  TagComposer
	log   logger.Logger
}

// NewResolver wires the tiers. ai may be nil, unresolved fields are then dropped.
func NewResolver(store Store, ai ParameterTranslator, tags TagComposer, log logger.Logger) *Resolver {
	return &Resolver{store: store, ai: ai, tags: tags, log: log.WithPrefix("[Resolver]")}
}

func (r *Resolver) TranslateFeatures(ctx context.Context, req Request) (map[string]string, error) {
	lang := req.Language
	if lang == "" {
		lang = DefaultLanguage
	}

	translated := make(map[string]string)
	queued := make(map[string]string)
	var byRule, byStore int

	for _, f := range req.Features {
		if models.IsSyntheticFeature(f.Name) {
			continue
		}
		if apply, ok := rules[f.Name]; ok {
			if fields, ok := apply(f.Value); ok {
				for k, v := range fields {
					translated[k] = v
				}
				byRule++
				continue
			}
			r.log.Warn("rule for %q could not parse %q", f.Name, f.Value)
		}

		key := KeyFor(f)
		label, labelOK, err := r.store.ParameterTranslation(ctx, key.Identity(), lang)
		if err != nil {
			r.log.Warn("label lookup for %q failed: %v", f.Name, err)
			queued[f.Name] = f.Value
			continue
		}
		value, valueOK, err := r.translateValue(ctx, key, lang)
		if err != nil {
			r.log.Warn("value lookup for %q failed: %v", f.Name, err)
			queued[f.Name] = f.Value
			continue
		}

		switch {
		case labelOK && valueOK:
			translated[label] = value
			byStore++
		case labelOK:
			queued[label] = f.Value
		default:
			queued[f.Name] = f.Value
		}
	}
	metrics.RecordTranslation("rule", byRule)
	metrics.RecordTranslation("store", byStore)

	r.translateQueued(ctx, queued, translated, lang)

	if req.SerialNumbers != "" {
		translated[ManufacturerNumberLabel] = req.SerialNumbers
	}
	for _, f := range req.Features {
		if f.Name == models.OriginalNumberField {
			translated[ReferenceNumbersLabel] = strings.ReplaceAll(f.Value, models.FeatureSeparator, ",")
			break
		}
	}
	tags, err := r.tags.Compose(ctx, req.CategoryID, req.Name, req.Tags, lang)
	if err != nil {
		return nil, fmt.Errorf("compose %s tags: %w", lang, err)
	}
	translated[ComparisonNumberLabel] = tags

	return translated, nil
}

// translateValue resolves every pipe-separated sub-value or none of them.
func (r *Resolver) translateValue(ctx context.Context, key LookupKey, lang string) (string, bool, error) {
	parts := strings.Split(key.Value(), models.FeatureSeparator)
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		t, ok, err := r.store.ValueTranslation(ctx, key.Identity(), strings.TrimSpace(part), lang)
		if err != nil {
			return "", false, err
		}
		if !ok {
			return "", false, nil
		}
		out = append(out, t)
	}
	return strings.Join(out, models.FeatureSeparator), true, nil
}

// translateQueued sends what is left to the AI in one batch. Failures are logged
// and earlier tiers keep their results.
func (r *Resolver) translateQueued(ctx context.Context, queued, translated map[string]string, lang string) {
	if len(queued) == 0 {
		return
	}
	if r.ai == nil {
		r.log.Warn("no AI translator configured, %d fields left untranslated", len(queued))
		return
	}

	result, err := r.ai.TranslateParameters(ctx, queued, lang)
	if err != nil {
		metrics.RecordAIFailure("parameters")
		r.log.Error("AI translation of %d fields failed: %v", len(queued), err)
		return
	}
	added := 0
	for k, v := range result {
		if _, exists := translated[k]; exists {
			continue
		}
		translated[k] = v
		added++
	}
	metrics.RecordTranslation("ai", added)
}
