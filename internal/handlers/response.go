package handlers

// OfferResponse is one priced offer record in the response body.
type OfferResponse struct {
	ID                string     `json:"id"`
	HotelCodeSupplier string     `json:"hotelCodeSupplier"`
	Market            string     `json:"market"`
	Price             PriceBlock `json:"price"`
}

// PriceBlock carries the supplier net alongside the computed sell side.
type PriceBlock struct {
	MinimumSellingPrice float64 `json:"minimumSellingPrice"`
	Currency            string  `json:"currency"`
	Net                 float64 `json:"net"`
	SellingPrice        float64 `json:"sellingPrice"`
	Markup              float64 `json:"markup"`
	ExchangeRate        float64 `json:"exchangeRate"`
	SellingCurrency     string  `json:"sellingCurrency"`
}

// ErrorResponse is the single structured error payload returned for any
// validation or pricing failure.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// ErrorBody names the failed rule and carries a human-readable message.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func errorResponse(code, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorBody{Code: code, Message: message}}
}

// Markets the response can be keyed to; the request nationality maps
// through when it is a known market.
var validMarkets = map[string]bool{"US": true, "GB": true, "CA": true, "ES": true}

const defaultMarket = "ES"

func resolveMarket(nationality string) string {
	if validMarkets[nationality] {
		return nationality
	}
	return defaultMarket
}
