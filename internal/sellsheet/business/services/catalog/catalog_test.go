package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sellsheet_api/pkg/logger"
)

type fakeSource struct {
	entries  []Entry
	nextID   int64
	lists    int
	creates  []string
	listErr  error
	failList bool // fail every List after the first
}

func (s *fakeSource) List(context.Context) ([]Entry, error) {
	s.lists++
	if s.listErr != nil || (s.failList && s.lists > 1) {
		return nil, errors.New("list failed")
	}
	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

func (s *fakeSource) Create(_ context.Context, name string) (int64, error) {
	s.nextID++
	s.creates = append(s.creates, name)
	s.entries = append(s.entries, Entry{ID: s.nextID, Name: name})
	return s.nextID, nil
}

type fakeTree map[string]CategoryNode

func (t fakeTree) Category(_ context.Context, id string) (CategoryNode, error) {
	node, ok := t[id]
	if !ok {
		return CategoryNode{}, errors.New("unknown category " + id)
	}
	return node, nil
}

func manufacturers() *fakeSource {
	return &fakeSource{
		entries: []Entry{{ID: 1, Name: "Volkswagen"}, {ID: 2, Name: "abcdefghij"}, {ID: 3, Name: "Mercedes-Benz"}},
		nextID:  100,
	}
}

func newMatcher(m, c *fakeSource, tree CategoryTree) *Matcher {
	log := logger.Nop()
	return NewMatcher(NewRegistry("manufacturers", m, log), NewRegistry("categories", c, log), tree, log)
}

func TestMatchManufacturer_ExactSkipsSimilarity(t *testing.T) {
	calls := 0
	m := newMatcher(manufacturers(), &fakeSource{}, nil).WithSimilarity(func(a, b string) float64 {
		calls++
		return Ratio(a, b)
	})

	id, err := m.MatchManufacturer(context.Background(), "VOLKSWAGEN")
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)
	assert.Zero(t, calls)
}

func TestMatchManufacturer_FuzzyAboveThreshold(t *testing.T) {
	src := manufacturers()
	m := newMatcher(src, &fakeSource{}, nil)

	id, err := m.MatchManufacturer(context.Background(), "Mercedes Benz")
	require.NoError(t, err)
	assert.Equal(t, int64(3), id)
	assert.Empty(t, src.creates)
}

func TestMatchManufacturer_ExactThresholdCreates(t *testing.T) {
	require.Equal(t, 0.9, Ratio("abcdefghix", "abcdefghij"))

	src := manufacturers()
	m := newMatcher(src, &fakeSource{}, nil)

	id, err := m.MatchManufacturer(context.Background(), "abcdefghix")
	require.NoError(t, err)
	assert.Equal(t, int64(101), id)
	assert.Equal(t, []string{"abcdefghix"}, src.creates)

	// the refreshed snapshot now knows the new entry
	id, err = m.MatchManufacturer(context.Background(), "ABCDEFGHIX")
	require.NoError(t, err)
	assert.Equal(t, int64(101), id)
	assert.Len(t, src.creates, 1)
}

func TestRegistry_CreateKeepsEntryWhenRefreshFails(t *testing.T) {
	src := &fakeSource{nextID: 7, failList: true}
	r := NewRegistry("categories", src, logger.Nop())

	id, err := r.GetOrCreate(context.Background(), "Części samochodowe")
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)

	id, err = r.GetOrCreate(context.Background(), "Części samochodowe")
	require.NoError(t, err)
	assert.Equal(t, int64(8), id)
	assert.Len(t, src.creates, 1)
}

func TestRegistry_ListErrorPropagates(t *testing.T) {
	r := NewRegistry("categories", &fakeSource{listErr: errors.New("down")}, logger.Nop())
	_, err := r.GetOrCreate(context.Background(), "x")
	assert.Error(t, err)
}

func TestMatchCategory(t *testing.T) {
	tree := fakeTree{
		"3":      {ID: "3", Name: "Motoryzacja"},
		"620":    {ID: "620", Name: "Części samochodowe", ParentID: "3"},
		"255102": {ID: "255102", Name: "Lampy przednie", ParentID: "620"},
	}
	categories := &fakeSource{entries: []Entry{{ID: 40, Name: "Motoryzacja/Części samochodowe"}}, nextID: 50}
	m := newMatcher(manufacturers(), categories, tree)

	path, err := m.CategoryPath(context.Background(), "255102")
	require.NoError(t, err)
	assert.Equal(t, "Motoryzacja/Części samochodowe/Lampy przednie", path)

	id, err := m.MatchCategory(context.Background(), "620")
	require.NoError(t, err)
	assert.Equal(t, int64(40), id)

	id, err = m.MatchCategory(context.Background(), "255102")
	require.NoError(t, err)
	assert.Equal(t, int64(51), id)
	assert.Equal(t, []string{"Motoryzacja/Części samochodowe/Lampy przednie"}, categories.creates)
}

func TestCategoryPath_Cycle(t *testing.T) {
	tree := fakeTree{
		"1": {ID: "1", Name: "a", ParentID: "2"},
		"2": {ID: "2", Name: "b", ParentID: "1"},
	}
	m := newMatcher(manufacturers(), &fakeSource{}, tree)

	_, err := m.CategoryPath(context.Background(), "1")
	assert.ErrorIs(t, err, ErrCategoryCycle)
}
