package service

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	DefaultWrapWidth     = 40
	DefaultWrapSeparator = "|"
)

type ITextService interface {
	CollapseDuplicateWords(input string) string
	WrapFixedWidth(input string, maxWidth int, sep string) string
	ExtractDateRange(name, tags string) string
	SideKeywords(input string) string
}

type TextService struct{}

func NewTextService() *TextService {
	return &TextService{}
}

// CollapseDuplicateWords keeps the first occurrence of every whitespace-separated token.
func (ts *TextService) CollapseDuplicateWords(input string) string {
	words := strings.Fields(input)
	seen := make(map[string]struct{}, len(words))
	kept := words[:0]
	for _, word := range words {
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		kept = append(kept, word)
	}
	return strings.Join(kept, " ")
}

// WrapFixedWidth packs tokens into sep-terminated segments of roughly maxWidth runes.
func (ts *TextService) WrapFixedWidth(input string, maxWidth int, sep string) string {
	words := strings.Fields(input)
	size := 0
	for i, word := range words {
		n := utf8.RuneCountInString(word)
		if size+n+1 >= maxWidth {
			size = n
			if i > 0 {
				words[i-1] += sep
			}
			continue
		}
		size += n + 1
	}

	var b strings.Builder
	for i, word := range words {
		b.WriteString(word)
		if i < len(words)-1 && !strings.HasSuffix(word, sep) {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

var (
	nameRangeRe = regexp.MustCompile(`\b(\d{1,2})-(\d{1,2})\b`)
	tagsRangeRe = regexp.MustCompile(`\((\d{1,2})-(\d{1,2})\)`)
)

// ExtractDateRange turns "18-20" into "2018 18 2019 19 2020 20".
// The name wins over the tags; tags only count inside parentheses.
func (ts *TextService) ExtractDateRange(name, tags string) string {
	m := nameRangeRe.FindStringSubmatch(name)
	if m == nil {
		m = tagsRangeRe.FindStringSubmatch(tags)
	}
	if m == nil {
		return ""
	}

	start, err := normalizeYear(m[1])
	if err != nil {
		return ""
	}
	end, err := normalizeYear(m[2])
	if err != nil {
		return ""
	}
	if start > end {
		return ""
	}

	years := make([]string, 0, end-start+1)
	for year := start; year <= end; year++ {
		years = append(years, fmt.Sprintf("%d %02d", year, year%100))
	}
	return strings.Join(years, " ")
}

func normalizeYear(s string) (int, error) {
	year, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if year <= 49 {
		return year + 2000, nil
	}
	return year + 1900, nil
}

var sideAxes = [][]struct {
	markers  []string
	variants string
}{
	{
		{markers: []string{"prawa", "prawy"}, variants: "prawa prawy prawe prawo"},
		{markers: []string{"lewa", "lewy"}, variants: "lewa lewy lewe lewo"},
	},
	{
		{markers: []string{"przód"}, variants: "przód przednie przedni przednia"},
		{markers: []string{"tył"}, variants: "tył tyłnie tylni tylna tylny"},
	},
}

// SideKeywords expands left/right and front/rear markers into all their grammatical forms.
// Each axis contributes at most one side.
func (ts *TextService) SideKeywords(input string) string {
	lower := strings.ToLower(input)
	var parts []string
	for _, axis := range sideAxes {
	axisLoop:
		for _, side := range axis {
			for _, marker := range side.markers {
				if strings.Contains(lower, marker) {
					parts = append(parts, side.variants)
					break axisLoop
				}
			}
		}
	}
	return strings.Join(parts, " ")
}
