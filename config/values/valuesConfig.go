package values

import (
	"fmt"
	"sort"
)

type InventoryValues struct {
	InventoryID  int    `yaml:"inventory_id"`
	PriceGroupPL string `yaml:"price_group_pln"`
	PriceGroupEU string `yaml:"price_group_eur"`
	Warehouse    string `yaml:"warehouse"`
}

func (v *InventoryValues) ApplyDefaults() {
	if v.InventoryID == 0 {
		v.InventoryID = 1430
	}
	if v.PriceGroupPL == "" {
		v.PriceGroupPL = "1184"
	}
	if v.PriceGroupEU == "" {
		v.PriceGroupEU = "4848"
	}
	if v.Warehouse == "" {
		v.Warehouse = "bl_1855"
	}
}

// WeightTier prices shipping of parcels up to MaxWeight (kg) in the secondary currency.
type WeightTier struct {
	MaxWeight float64 `yaml:"max_weight"`
	Price     float64 `yaml:"price"`
}

type PricingValues struct {
	// ExchangeRate is PLN per EUR.
	ExchangeRate float64 `yaml:"exchange_rate"`
	// ShipmentWeights maps the shipment price (PLN, truncated) to a parcel weight.
	ShipmentWeights map[int]float64 `yaml:"shipment_weights"`
	WeightTiers     []WeightTier    `yaml:"weight_tiers"`
	VATMultiplier   float64         `yaml:"vat_multiplier"`
}

// TierPrice returns the price of the cheapest tier that fits weight.
func (p PricingValues) TierPrice(weight float64) (float64, error) {
	tiers := make([]WeightTier, len(p.WeightTiers))
	copy(tiers, p.WeightTiers)
	sort.Slice(tiers, func(i, j int) bool { return tiers[i].MaxWeight < tiers[j].MaxWeight })

	for _, tier := range tiers {
		if weight <= tier.MaxWeight {
			return tier.Price, nil
		}
	}
	return 0, fmt.Errorf("no weight tier for %.2f kg", weight)
}

type PhotoValues struct {
	MaxPhotos    int `yaml:"max_photos"`
	PackSize     int `yaml:"pack_size"`
	MaxSizeMB    int `yaml:"max_size_mb"`
	FallbackSize int `yaml:"fallback_size"`
}
