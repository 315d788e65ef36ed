package tags

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"sellsheet_api/internal/sellsheet/models"
	"sellsheet_api/pkg/business/service"
)

var (
	ErrCustomTags   = errors.New("failed to add custom tags")
	ErrCategoryTags = errors.New("failed to add category tags")
)

type CustomTagSource interface {
	CustomTags(ctx context.Context, language string) ([]models.CustomTag, error)
}

type CategoryTagSource interface {
	CategoryTags(ctx context.Context, categoryID, language string) ([]string, error)
}

// Composer builds the searchable tag string of an auction.
type Composer struct {
	custom   CustomTagSource
	category CategoryTagSource
	text     service.ITextService
}

func NewComposer(custom CustomTagSource, category CategoryTagSource, text service.ITextService) *Composer {
	return &Composer{custom: custom, category: category, text: text}
}

// Compose joins matching custom tags, category tags, the model years and the side
// keywords, then deduplicates, upper-cases and wraps the result.
func (c *Composer) Compose(ctx context.Context, categoryID, name, rawTags, lang string) (string, error) {
	var parts []string

	customTags, err := c.custom.CustomTags(ctx, lang)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCustomTags, err)
	}
	for _, tag := range customTags {
		if customTagMatches(tag.Key, name, rawTags) {
			parts = append(parts, tag.Value)
		}
	}

	categoryTags, err := c.category.CategoryTags(ctx, categoryID, lang)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCategoryTags, err)
	}
	parts = append(parts, categoryTags...)

	parts = append(parts, c.text.ExtractDateRange(name, rawTags))
	parts = append(parts, c.text.SideKeywords(name))

	return c.finish(strings.Join(parts, " "), lang), nil
}

// OriginalNumbers normalizes the free-text reference numbers of an auction.
func (c *Composer) OriginalNumbers(rawTags string) string {
	return c.finish(rawTags, "pl")
}

// finish deduplicates case-sensitively, so "Lampa lampa" survives as "LAMPA LAMPA".
func (c *Composer) finish(text, lang string) string {
	collapsed := c.text.CollapseDuplicateWords(text)
	upper := cases.Upper(language.Make(lang)).String(collapsed)
	return c.text.WrapFixedWidth(upper, service.DefaultWrapWidth, service.DefaultWrapSeparator)
}

const liftKey = "LIFT"

var liftRe = regexp.MustCompile(`\bLIFT\b`)

func customTagMatches(key, name, rawTags string) bool {
	key = strings.ToUpper(strings.TrimSpace(key))
	if key == "" {
		return false
	}
	for _, haystack := range []string{strings.ToUpper(name), strings.ToUpper(rawTags)} {
		if key == liftKey {
			if facelift(haystack) {
				return true
			}
			continue
		}
		if strings.Contains(haystack, key) {
			return true
		}
	}
	return false
}

// facelift reports a standalone LIFT that is not part of "PRZED LIFT" (pre-facelift).
func facelift(upper string) bool {
	for _, loc := range liftRe.FindAllStringIndex(upper, -1) {
		before := strings.TrimRight(upper[:loc[0]], " -")
		if !strings.HasSuffix(before, "PRZED") {
			return true
		}
	}
	return false
}
