package tags

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sellsheet_api/internal/sellsheet/models"
	"sellsheet_api/pkg/business/service"
)

type fakeTags struct {
	custom      map[string][]models.CustomTag
	category    map[string][]string
	customErr   error
	categoryErr error
}

func (f *fakeTags) CustomTags(_ context.Context, lang string) ([]models.CustomTag, error) {
	if f.customErr != nil {
		return nil, f.customErr
	}
	return f.custom[lang], nil
}

func (f *fakeTags) CategoryTags(_ context.Context, categoryID, lang string) ([]string, error) {
	if f.categoryErr != nil {
		return nil, f.categoryErr
	}
	return f.category[categoryID+"/"+lang], nil
}

func newFakeTags() *fakeTags {
	return &fakeTags{
		custom: map[string][]models.CustomTag{
			"pl": {
				{Key: "xenon", Value: "ksenon bixenon", Language: "pl"},
				{Key: "LIFT", Value: "facelift FL", Language: "pl"},
				{Key: "golf", Value: "vw volkswagen", Language: "pl"},
			},
			"de": {
				{Key: "xenon", Value: "xenon scheinwerfer", Language: "de"},
			},
		},
		category: map[string][]string{
			"255102/pl": {"lampa reflektor"},
			"255102/de": {"scheinwerfer frontscheinwerfer"},
		},
	}
}

func TestComposer_Compose(t *testing.T) {
	src := newFakeTags()
	c := NewComposer(src, src, service.NewTextService())

	got, err := c.Compose(context.Background(), "255102", "Lampa prawa przód Golf VII 12-14 Xenon", "5G1941006", "pl")
	require.NoError(t, err)

	for _, want := range []string{"KSENON", "BIXENON", "VW", "LAMPA", "REFLEKTOR", "2012", "14", "PRAWE", "PRZEDNIA"} {
		assert.Contains(t, got, want)
	}
	assert.NotContains(t, got, "FACELIFT")
	assert.Equal(t, 1, strings.Count(got, "LAMPA"))
	for _, segment := range strings.Split(got, "|") {
		assert.LessOrEqual(t, len([]rune(segment)), 40)
	}
}

func TestComposer_DeduplicatesBeforeUpperCasing(t *testing.T) {
	src := &fakeTags{
		custom:   map[string][]models.CustomTag{"pl": {{Key: "lampa", Value: "Lampa tylna", Language: "pl"}}},
		category: map[string][]string{"1/pl": {"lampa tylna"}},
	}
	got, err := NewComposer(src, src, service.NewTextService()).Compose(context.Background(), "1", "lampa", "", "pl")
	require.NoError(t, err)
	assert.Equal(t, "LAMPA TYLNA LAMPA", got)
}

func TestComposer_ComposeUsesLanguage(t *testing.T) {
	src := newFakeTags()
	c := NewComposer(src, src, service.NewTextService())

	got, err := c.Compose(context.Background(), "255102", "Lampa xenon", "", "de")
	require.NoError(t, err)
	assert.Equal(t, "XENON SCHEINWERFER FRONTSCHEINWERFER", got)
}

func TestComposer_Errors(t *testing.T) {
	boom := errors.New("db down")
	text := service.NewTextService()

	src := newFakeTags()
	src.customErr = boom
	_, err := NewComposer(src, src, text).Compose(context.Background(), "1", "a", "", "pl")
	assert.ErrorIs(t, err, ErrCustomTags)
	assert.ErrorIs(t, err, boom)

	src = newFakeTags()
	src.categoryErr = boom
	_, err = NewComposer(src, src, text).Compose(context.Background(), "1", "a", "", "pl")
	assert.ErrorIs(t, err, ErrCategoryTags)
	assert.NotErrorIs(t, err, ErrCustomTags)
}

func TestComposer_OriginalNumbers(t *testing.T) {
	c := NewComposer(newFakeTags(), newFakeTags(), service.NewTextService())
	assert.Equal(t, "5G1941006 5G1941006A", c.OriginalNumbers("5g1941006 5G1941006 5g1941006a"))
}

func TestCustomTagMatches(t *testing.T) {
	tests := []struct {
		name, key, title, tags string
		want                   bool
	}{
		{"substring of name", "xenon", "Lampa BIXENON", "", true},
		{"substring of tags", "xenon", "Lampa", "bixenon", true},
		{"absent", "xenon", "Lampa", "halogen", false},
		{"lift whole word", "LIFT", "Golf VII LIFT lampa", "", true},
		{"lift at end", "lift", "Golf VII lift", "", true},
		{"lift after przed", "LIFT", "Golf VII PRZED LIFT lampa", "", false},
		{"lift after przed with dash", "LIFT", "Golf VII przed-lift", "", false},
		{"lift inside word", "LIFT", "Golf VII POLIFT", "", false},
		{"lift in tags", "LIFT", "Golf VII", "lift", true},
		{"one valid lift is enough", "LIFT", "przed lift / lift", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, customTagMatches(tt.key, tt.title, tt.tags))
		})
	}
}
