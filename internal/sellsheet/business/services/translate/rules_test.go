package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"sellsheet_api/internal/sellsheet/models"
)

func TestRules(t *testing.T) {
	tests := []struct {
		name  string
		param string
		value string
		want  map[string]string
		ok    bool
	}{
		{"bolt pattern", "Rozstaw śrub", "5x112", map[string]string{"Lochzahl": "5", "Lochkreis": "112 mm"}, true},
		{"bolt pattern with times sign", "Rozstaw śrub", "4 × 100", map[string]string{"Lochzahl": "4", "Lochkreis": "100 mm"}, true},
		{"bolt pattern garbage", "Rozstaw śrub", "5", nil, false},
		{"offset", "Odsadzenie (ET)", "45", map[string]string{"Einpresstiefe (ET)": "45 mm"}, true},
		{"offset empty", "Odsadzenie (ET)", " ", nil, false},
		{"rim diameter", "Średnica felgi", `16.5"`, map[string]string{"Zollgröße": "16,5"}, true},
		{"rim width", "Szerokość felgi", `7,5"`, map[string]string{"Felgenbreite": "7"}, true},
		{"rim width whole", "Szerokość felgi", `8"`, map[string]string{"Felgenbreite": "8"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			apply, found := rules[tt.param]
			if !assert.True(t, found) {
				return
			}
			got, ok := apply(tt.value)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestKeyFor(t *testing.T) {
	identified := KeyFor(models.Feature{Name: "Kolor", Value: "czarny", ExternalID: "11323"})
	assert.Equal(t, "11323", identified.Identity())
	assert.Equal(t, "Kolor", identified.Name())
	assert.Equal(t, "czarny", identified.Value())

	named := KeyFor(models.Feature{Name: "Stan", Value: "Używany"})
	assert.Equal(t, "Stan", named.Identity())
	assert.Equal(t, ByName("Stan", "Używany"), named)
}
