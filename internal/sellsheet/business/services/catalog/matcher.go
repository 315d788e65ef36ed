package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"sellsheet_api/pkg/logger"
)

// ManufacturerThreshold is exclusive: a ratio of exactly 0.9 is not a match.
const ManufacturerThreshold = 0.9

const (
	CategoryPathSeparator = "/"
	maxCategoryDepth      = 32
)

var ErrCategoryCycle = errors.New("category tree is cyclic or too deep")

type CategoryNode struct {
	ID       string
	Name     string
	ParentID string
}

// CategoryTree is the source marketplace taxonomy.
type CategoryTree interface {
	Category(ctx context.Context, id string) (CategoryNode, error)
}

type Similarity func(a, b string) float64

// Ratio is the Ratcliff/Obershelp similarity of two strings, compared rune by rune.
func Ratio(a, b string) float64 {
	return difflib.NewMatcher(runes(a), runes(b)).Ratio()
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

type Matcher struct {
	manufacturers *Registry
	categories    *Registry
	tree          CategoryTree
	similarity    Similarity
	log           logger.Logger
}

func NewMatcher(manufacturers, categories *Registry, tree CategoryTree, log logger.Logger) *Matcher {
	return &Matcher{
		manufacturers: manufacturers,
		categories:    categories,
		tree:          tree,
		similarity:    Ratio,
		log:           log.WithPrefix("[Matcher]"),
	}
}

func (m *Matcher) WithSimilarity(s Similarity) *Matcher {
	m.similarity = s
	return m
}

// MatchManufacturer returns the id of the manufacturer called name, creating it
// when nothing is similar enough.
func (m *Matcher) MatchManufacturer(ctx context.Context, name string) (int64, error) {
	entries, err := m.manufacturers.Entries(ctx)
	if err != nil {
		return 0, err
	}
	lower := strings.ToLower(strings.TrimSpace(name))

	for _, e := range entries {
		if strings.ToLower(e.Name) == lower {
			return e.ID, nil
		}
	}

	best := ManufacturerThreshold
	var matched *Entry
	for i := range entries {
		ratio := m.similarity(lower, strings.ToLower(entries[i].Name))
		if ratio > best {
			best = ratio
			matched = &entries[i]
		}
	}
	if matched != nil {
		m.log.Log("manufacturer %q matched %q (%.3f)", name, matched.Name, best)
		return matched.ID, nil
	}
	return m.manufacturers.Create(ctx, strings.TrimSpace(name))
}

// MatchCategory maps a source category to the catalog entry named after its full path.
func (m *Matcher) MatchCategory(ctx context.Context, sourceCategoryID string) (int64, error) {
	path, err := m.CategoryPath(ctx, sourceCategoryID)
	if err != nil {
		return 0, err
	}
	return m.categories.GetOrCreate(ctx, path)
}

// CategoryPath walks from id to the root and joins the names root first.
func (m *Matcher) CategoryPath(ctx context.Context, id string) (string, error) {
	var names []string
	seen := make(map[string]struct{})

	for current := id; current != ""; {
		if _, ok := seen[current]; ok || len(names) >= maxCategoryDepth {
			return "", fmt.Errorf("%w: at %s", ErrCategoryCycle, current)
		}
		seen[current] = struct{}{}

		node, err := m.tree.Category(ctx, current)
		if err != nil {
			return "", fmt.Errorf("get category %s: %w", current, err)
		}
		names = append(names, node.Name)
		current = node.ParentID
	}

	for i, j := 0, len(names)-1; i < j; i, j = i+1, j-1 {
		names[i], names[j] = names[j], names[i]
	}
	return strings.Join(names, CategoryPathSeparator), nil
}
