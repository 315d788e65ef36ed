package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPricingValues_TierPrice(t *testing.T) {
	p := PricingValues{WeightTiers: []WeightTier{
		{MaxWeight: 10, Price: 15},
		{MaxWeight: 2, Price: 10},
		{MaxWeight: 31.5, Price: 40},
	}}

	tests := []struct {
		weight float64
		want   float64
	}{
		{0.5, 10},
		{2, 10},
		{2.01, 15},
		{31.5, 40},
	}
	for _, tt := range tests {
		got, err := p.TierPrice(tt.weight)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "weight %v", tt.weight)
	}

	_, err := p.TierPrice(40)
	assert.Error(t, err)
	// input order untouched
	assert.Equal(t, 10.0, p.WeightTiers[0].MaxWeight)
}

func TestInventoryValues_ApplyDefaults(t *testing.T) {
	v := InventoryValues{PriceGroupPL: "99"}
	v.ApplyDefaults()
	assert.Equal(t, 1430, v.InventoryID)
	assert.Equal(t, "99", v.PriceGroupPL)
	assert.Equal(t, "4848", v.PriceGroupEU)
}
