package assemble

import (
	"errors"
	"fmt"
	"math"

	"sellsheet_api/config/values"
)

var ErrUnknownShipmentTier = errors.New("unknown shipment tier")

// PriceEngine derives parcel weight and the EUR price of an auction.
type PriceEngine struct {
	values values.PricingValues
}

func NewPriceEngine(v values.PricingValues) *PriceEngine {
	if v.VATMultiplier == 0 {
		v.VATMultiplier = 1.2
	}
	return &PriceEngine{values: v}
}

// WeightForShipment maps the shipment price (truncated to PLN) to a parcel weight.
func (e *PriceEngine) WeightForShipment(shipment float64) (float64, error) {
	tier := int(shipment)
	weight, ok := e.values.ShipmentWeights[tier]
	if !ok {
		return 0, fmt.Errorf("%w: %d", ErrUnknownShipmentTier, tier)
	}
	return weight, nil
}

// SecondaryPrice is ceilToTen(pln/rate + shipping(weight)) * VAT, in cents.
func (e *PriceEngine) SecondaryPrice(pln, weight float64) (float64, error) {
	if e.values.ExchangeRate <= 0 {
		return 0, fmt.Errorf("exchange rate must be positive, got %v", e.values.ExchangeRate)
	}
	shipping, err := e.values.TierPrice(weight)
	if err != nil {
		return 0, err
	}
	net := ceilToTen(pln/e.values.ExchangeRate + shipping)
	return roundCents(net * e.values.VATMultiplier), nil
}

// ResolveSecondaryPrice keeps an explicit price and derives one otherwise.
func (e *PriceEngine) ResolveSecondaryPrice(explicit *float64, pln, weight float64) (float64, error) {
	if explicit != nil && *explicit > 0 {
		return *explicit, nil
	}
	return e.SecondaryPrice(pln, weight)
}

// эпсилон гасит ошибку деления вроде 430/4.3 = 100.00000000000001
const ceilEpsilon = 1e-9

func ceilToTen(x float64) float64 {
	return math.Ceil(x/10-ceilEpsilon) * 10
}

func roundCents(x float64) float64 {
	return math.Round(x*100) / 100
}
