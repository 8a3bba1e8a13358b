package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-avail-gateway/internal/availability"
	"github.com/imrishuroy/go-avail-gateway/internal/aws"
	"github.com/imrishuroy/go-avail-gateway/internal/config"
	"github.com/imrishuroy/go-avail-gateway/internal/handlers"
	"github.com/imrishuroy/go-avail-gateway/internal/inventory"
	"github.com/imrishuroy/go-avail-gateway/internal/pricing"
	"github.com/imrishuroy/go-avail-gateway/internal/quotecache"
	"github.com/imrishuroy/go-avail-gateway/internal/rates"
)

func setupRouter(cfg handlers.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	// health
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	handlers.RegisterAvailabilityRoutes(r, cfg)

	return r
}

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Read()
	if err != nil {
		logger.Error("failed to read config", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	table := pricing.DefaultTable()

	var (
		cache     *quotecache.Store
		publisher *aws.Publisher
		metrics   *aws.MetricsEmitter
	)

	if cfg.UsesAWS() {
		clients, err := aws.NewClients(ctx, cfg.AWSRegion)
		if err != nil {
			logger.Error("failed to init aws clients", "error", err)
			os.Exit(1)
		}
		if cfg.RatesTable != "" {
			loaded, err := rates.NewStore(clients.DynamoDB, cfg.RatesTable).Load(ctx)
			if err != nil {
				logger.Error("failed to load exchange rates", "table", cfg.RatesTable, "error", err)
				os.Exit(1)
			}
			table = loaded
		}
		if cfg.QuoteCacheTable != "" {
			cache = quotecache.NewStore(clients.DynamoDB, cfg.QuoteCacheTable, cfg.QuoteCacheTTL)
		}
		if cfg.AuditQueueURL != "" {
			publisher = aws.NewPublisher(clients.SQS, cfg.AuditQueueURL)
		}
		if cfg.MetricsNamespace != "" {
			metrics = aws.NewMetricsEmitter(clients.CloudWatch, cfg.MetricsNamespace)
		}
	}

	if err := table.Validate(); err != nil {
		logger.Error("invalid exchange-rate table", "error", err)
		os.Exit(1)
	}

	hcfg := handlers.Config{
		Validator:        availability.NewValidator(availability.DefaultRules()),
		Calculator:       pricing.NewCalculator(table),
		Inventory:        inventory.NewStatic(inventory.SampleOffers()),
		Cache:            cache,
		Publisher:        publisher,
		Metrics:          metrics,
		MarkupPercent:    decimal.NewFromFloat(cfg.MarkupPercent),
		MinMarkupPercent: decimal.NewFromFloat(cfg.MinMarkupPercent),
		Logger:           logger,
	}

	r := setupRouter(hcfg)

	// RUN_LOCAL=true runs a plain HTTP server for development.
	if cfg.RunLocal {
		addr := ":" + cfg.Port
		logger.Info("running local server", "addr", addr)
		if err := r.Run(addr); err != nil {
			logger.Error("local server exited", "error", err)
			os.Exit(1)
		}
		return
	}

	// lambda adapter
	adapter := ginadapter.New(r)

	lambda.Start(func(ctx context.Context, req events.APIGatewayProxyRequest) (interface{}, error) {
		return adapter.ProxyWithContext(ctx, req)
	})
}
