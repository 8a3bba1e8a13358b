package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-avail-gateway/internal/availability"
)

// Offer is one supplier candidate with its net price in the supplier's
// quoted currency.
type Offer struct {
	ID             string
	HotelCode      string
	Net            decimal.Decimal
	QuotedCurrency string
}

// Source yields candidate offers for a validated search.
type Source interface {
	Offers(ctx context.Context, req *availability.NormalizedRequest) ([]Offer, error)
}

// Static serves a fixed offer list, standing in for a live supplier feed.
type Static struct {
	offers []Offer
}

// NewStatic returns a Static source over the given offers.
func NewStatic(offers []Offer) *Static {
	return &Static{offers: offers}
}

// Offers returns a copy of the configured offer list.
func (s *Static) Offers(ctx context.Context, req *availability.NormalizedRequest) ([]Offer, error) {
	out := make([]Offer, len(s.offers))
	copy(out, s.offers)
	return out, nil
}

// SampleOffers returns the demo supplier inventory.
func SampleOffers() []Offer {
	return []Offer{
		{ID: "A#1", HotelCode: "39971881", Net: decimal.RequireFromString("132.42"), QuotedCurrency: "USD"},
		{ID: "A#2", HotelCode: "84120965", Net: decimal.RequireFromString("210.00"), QuotedCurrency: "EUR"},
		{ID: "A#3", HotelCode: "55310772", Net: decimal.RequireFromString("99.95"), QuotedCurrency: "GBP"},
	}
}
