package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"

	"github.com/imrishuroy/go-avail-gateway/internal/audit"
	"github.com/imrishuroy/go-avail-gateway/internal/aws"
	"github.com/imrishuroy/go-avail-gateway/internal/config"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Read()
	if err != nil {
		logger.Error("failed to read config", "error", err)
		os.Exit(1)
	}
	if cfg.SearchAuditTable == "" {
		logger.Error("SEARCH_AUDIT_TABLE is required")
		os.Exit(1)
	}

	clients, err := aws.NewClients(context.Background(), cfg.AWSRegion)
	if err != nil {
		logger.Error("failed to init aws clients", "error", err)
		os.Exit(1)
	}

	p := NewProcessor(audit.NewStore(clients.DynamoDB, cfg.SearchAuditTable), logger)

	// RUN_LOCAL=true simulates a single SQS event for local testing.
	if cfg.RunLocal {
		body := os.Getenv("LOCAL_SQS_BODY")
		if body == "" {
			body = `{"search_id":"local-search-1","currency":"USD","nationality":"US","start_date":"2025-02-20","end_date":"2025-02-24","offer_count":1}`
		}
		event := events.SQSEvent{
			Records: []events.SQSMessage{
				{Body: body},
			},
		}
		if err := p.Handle(context.Background(), event); err != nil {
			logger.Error("local handler error", "error", err)
			os.Exit(1)
		}
		return
	}

	lambda.Start(p.Handle)
}
