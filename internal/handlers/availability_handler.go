package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-avail-gateway/internal/audit"
	"github.com/imrishuroy/go-avail-gateway/internal/availability"
	"github.com/imrishuroy/go-avail-gateway/internal/aws"
	"github.com/imrishuroy/go-avail-gateway/internal/inventory"
	"github.com/imrishuroy/go-avail-gateway/internal/pricing"
	"github.com/imrishuroy/go-avail-gateway/internal/quotecache"
	"github.com/imrishuroy/go-avail-gateway/internal/xmldoc"
)

const dateFormat = "2006-01-02"

// Config groups dependencies for the availability handler. Cache,
// Publisher and Metrics are optional; a nil field disables that feature.
type Config struct {
	Validator  *availability.Validator
	Calculator *pricing.Calculator
	Inventory  inventory.Source

	Cache     *quotecache.Store
	Publisher *aws.Publisher
	Metrics   *aws.MetricsEmitter

	MarkupPercent    decimal.Decimal
	MinMarkupPercent decimal.Decimal

	Logger *slog.Logger
}

// RegisterAvailabilityRoutes registers the availability search route.
func RegisterAvailabilityRoutes(r *gin.Engine, cfg Config) {
	r.POST("/availability", func(c *gin.Context) {
		ctx := c.Request.Context()
		searchID := uuid.NewString()

		raw, err := c.GetRawData()
		if err != nil {
			cfg.countSearch(ctx, "bad_request")
			c.JSON(http.StatusBadRequest, errorResponse("invalid_request_body", "failed to read request body"))
			return
		}

		doc, err := xmldoc.Parse(raw)
		if err != nil {
			cfg.countSearch(ctx, "bad_request")
			c.JSON(http.StatusBadRequest, errorResponse("invalid_request_body", err.Error()))
			return
		}

		req, err := cfg.Validator.Validate(doc)
		if err != nil {
			cfg.Logger.Debug("validation failed",
				"search_id", searchID,
				"code", errorCode(err),
				"error", err)
			cfg.countSearch(ctx, "validation_failed")
			c.JSON(http.StatusBadRequest, errorResponse(errorCode(err), err.Error()))
			return
		}

		fingerprint := quotecache.Fingerprint(req, cfg.MarkupPercent)

		if cfg.Cache != nil {
			cached, err := cfg.Cache.Get(ctx, fingerprint)
			if err != nil {
				// Cache trouble never fails the search.
				cfg.Logger.Error("quote cache lookup failed", "search_id", searchID, "error", err)
			} else if cached != nil {
				cfg.countSearch(ctx, "cache_hit")
				c.Header("X-Cache", "hit")
				c.Header("X-Search-Id", searchID)
				c.Data(cached.ResponseStatus, "application/json", []byte(cached.ResponseBody))
				return
			}
		}

		offers, err := cfg.Inventory.Offers(ctx, req)
		if err != nil {
			cfg.Logger.Error("inventory lookup failed", "search_id", searchID, "error", err)
			cfg.countSearch(ctx, "inventory_failed")
			c.JSON(http.StatusInternalServerError, errorResponse("inventory_unavailable", "supplier inventory unavailable"))
			return
		}
		if len(offers) > req.OptionsQuota {
			offers = offers[:req.OptionsQuota]
		}

		body := make([]OfferResponse, 0, len(offers))
		for _, offer := range offers {
			quote, err := cfg.Calculator.Price(offer.Net, req.Currency, offer.QuotedCurrency, cfg.MarkupPercent)
			if err != nil {
				cfg.Logger.Warn("pricing failed",
					"search_id", searchID,
					"offer_id", offer.ID,
					"error", err)
				cfg.countSearch(ctx, "pricing_failed")
				c.JSON(http.StatusUnprocessableEntity, errorResponse(errorCode(err), err.Error()))
				return
			}

			body = append(body, OfferResponse{
				ID:                offer.ID,
				HotelCodeSupplier: offer.HotelCode,
				Market:            resolveMarket(req.Nationality),
				Price: PriceBlock{
					MinimumSellingPrice: toFloat(pricing.MinimumSellingPrice(offer.Net, cfg.MinMarkupPercent)),
					Currency:            offer.QuotedCurrency,
					Net:                 toFloat(offer.Net),
					SellingPrice:        toFloat(quote.SellingPrice),
					Markup:              toFloat(quote.MarkupPercent),
					ExchangeRate:        toFloat(quote.ExchangeRate),
					SellingCurrency:     quote.SellingCurrency,
				},
			})
		}

		// Render once so the cache stores exactly what the caller sees.
		rendered, err := json.MarshalIndent(body, "", "    ")
		if err != nil {
			cfg.Logger.Error("failed to render response", "search_id", searchID, "error", err)
			c.JSON(http.StatusInternalServerError, errorResponse("internal_error", "failed to render response"))
			return
		}

		if cfg.Cache != nil {
			if err := cfg.Cache.Save(ctx, quotecache.CachedResponse{
				Fingerprint:    fingerprint,
				SearchID:       searchID,
				ResponseBody:   string(rendered),
				ResponseStatus: http.StatusOK,
			}); err != nil {
				cfg.Logger.Error("quote cache save failed", "search_id", searchID, "error", err)
			}
		}

		cfg.publishAudit(ctx, c, searchID, fingerprint, req, len(body))
		cfg.countSearch(ctx, "ok")

		c.Header("X-Search-Id", searchID)
		c.Data(http.StatusOK, "application/json", rendered)
	})
}

func (cfg Config) publishAudit(ctx context.Context, c *gin.Context, searchID, fingerprint string, req *availability.NormalizedRequest, offerCount int) {
	if cfg.Publisher == nil {
		return
	}

	event := audit.Event{
		SearchID:      searchID,
		Fingerprint:   fingerprint,
		CompanyID:     req.Credentials.CompanyID,
		Username:      req.Credentials.Username,
		Currency:      req.Currency,
		Nationality:   req.Nationality,
		StartDate:     req.StartDate.Format(dateFormat),
		EndDate:       req.EndDate.Format(dateFormat),
		OfferCount:    offerCount,
		CorrelationID: c.GetHeader("X-Request-Id"),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		cfg.Logger.Error("failed to marshal audit event", "search_id", searchID, "error", err)
		return
	}

	attrs := map[string]string{"search_id": searchID}
	if event.CorrelationID != "" {
		attrs["correlation_id"] = event.CorrelationID
	}
	if err := cfg.Publisher.SendSearchEvent(ctx, string(payload), attrs); err != nil {
		cfg.Logger.Error("audit publish failed", "search_id", searchID, "error", err)
	}
}

func (cfg Config) countSearch(ctx context.Context, outcome string) {
	if cfg.Metrics == nil {
		return
	}
	if err := cfg.Metrics.CountSearch(ctx, outcome); err != nil {
		cfg.Logger.Warn("metric emit failed", "outcome", outcome, "error", err)
	}
}

// errorCode maps core failures onto the wire-level error taxonomy.
func errorCode(err error) string {
	var missingField *availability.MissingFieldError
	var pair *pricing.UnsupportedCurrencyPairError

	switch {
	case errors.Is(err, availability.ErrInvalidTimeout):
		return "invalid_timeout"
	case errors.As(err, &missingField):
		return "missing_field"
	case errors.Is(err, availability.ErrInvalidQuota):
		return "invalid_quota"
	case errors.Is(err, availability.ErrMissingCredentials):
		return "missing_credentials"
	case errors.Is(err, availability.ErrInvalidDateFormat):
		return "invalid_date_format"
	case errors.Is(err, availability.ErrLeadTimeViolation):
		return "lead_time_violation"
	case errors.Is(err, availability.ErrMinimumStayViolation):
		return "minimum_stay_violation"
	case errors.As(err, &pair):
		return "unsupported_currency_pair"
	default:
		return "internal_error"
	}
}

func toFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
