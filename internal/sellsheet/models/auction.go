package models

import (
	"errors"
	"fmt"
	"strings"
)

// Feature is one structured auction attribute. Value may hold several
// sub-values joined with FeatureSeparator.
type Feature struct {
	Name       string `json:"name"`
	Value      string `json:"value"`
	ExternalID string `json:"external_id,omitempty"`
}

const FeatureSeparator = "|"

type Photo struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

type PhotoSet struct {
	ID        int64   `json:"id"`
	Directory string  `json:"directory"`
	Thumbnail string  `json:"thumbnail"`
	Photos    []Photo `json:"photos"`
}

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	// StarID is the BaseLinker star (1-5), 0 when unset.
	StarID int `json:"star_id"`
}

// TranslatedText holds name and description already translated by an operator.
type TranslatedText struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Auction struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	PricePLN      float64   `json:"price_pln"`
	// PriceEUR is nil when no explicit secondary price was set.
	PriceEUR      *float64  `json:"price_euro"`
	ShipmentPrice float64   `json:"shipment_price"`
	Tags          string    `json:"tags"`
	SerialNumbers string    `json:"serial_numbers"`
	CategoryID    string    `json:"category"`
	Amount        int       `json:"amount"`
	Features      []Feature `json:"features"`
	PhotoSet      PhotoSet  `json:"photoset"`
	// TranslatedParams is keyed by language code.
	TranslatedParams map[string]TranslatedText `json:"translated_params"`
}

var ErrInvalidAuction = errors.New("invalid auction")

func (a *Auction) Validate() error {
	var problems []string
	if strings.TrimSpace(a.Name) == "" {
		problems = append(problems, "name is empty")
	}
	if strings.TrimSpace(a.CategoryID) == "" {
		problems = append(problems, "category is empty")
	}
	if a.PricePLN <= 0 {
		problems = append(problems, "price_pln must be positive")
	}
	if a.ShipmentPrice <= 0 {
		problems = append(problems, "shipment_price must be positive")
	}
	if a.PhotoSet.Thumbnail == "" {
		problems = append(problems, "photoset has no thumbnail")
	}
	if len(problems) > 0 {
		return fmt.Errorf("%w %d: %s", ErrInvalidAuction, a.ID, strings.Join(problems, ", "))
	}
	return nil
}

// FeatureValue returns the value of the first feature named name.
func (a *Auction) FeatureValue(name string) (string, bool) {
	for _, f := range a.Features {
		if f.Name == name {
			return f.Value, true
		}
	}
	return "", false
}

type AuctionSet struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Directory string  `json:"directory_location"`
	Owner     User    `json:"owner"`
	Creator   User    `json:"creator"`
	Auctions  []int64 `json:"auctions"`
}

// Synthetic features are generated from auction fields during assembly and are
// never translated feature by feature.
const (
	PartNumberField     = "Numer katalogowy części"
	OriginalNumberField = "Numer katalogowy oryginału"
	AutoTagsField       = "Numery katalogowe zamienników"
)

func IsSyntheticFeature(name string) bool {
	switch name {
	case PartNumberField, OriginalNumberField, AutoTagsField:
		return true
	}
	return false
}
