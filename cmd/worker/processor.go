package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aws/aws-lambda-go/events"

	"github.com/imrishuroy/go-avail-gateway/internal/audit"
)

// AuditStore is the slice of the audit store the processor needs.
type AuditStore interface {
	Put(ctx context.Context, rec audit.Record) error
}

// Processor persists search-audit events delivered over SQS. Writes are
// conditional on the search id, so redelivered messages are no-ops.
type Processor struct {
	store  AuditStore
	logger *slog.Logger
}

// NewProcessor creates a worker processor with its store injected.
func NewProcessor(store AuditStore, logger *slog.Logger) *Processor {
	return &Processor{
		store:  store,
		logger: logger,
	}
}

// Handle processes one SQS batch. A failing record fails the batch so the
// Lambda runtime redelivers it (and eventually parks it on the DLQ).
func (p *Processor) Handle(ctx context.Context, ev events.SQSEvent) error {
	for _, rec := range ev.Records {
		if err := p.processMessage(ctx, rec); err != nil {
			p.logger.Error("worker error", "error", err)
			return err
		}
	}
	return nil
}

func (p *Processor) processMessage(ctx context.Context, rec events.SQSMessage) error {
	var ev audit.Event
	if err := json.Unmarshal([]byte(rec.Body), &ev); err != nil {
		return fmt.Errorf("invalid message body: %w", err)
	}
	if ev.SearchID == "" {
		return fmt.Errorf("event missing search_id: %s", rec.Body)
	}

	err := p.store.Put(ctx, audit.Record{
		SearchID:    ev.SearchID,
		Fingerprint: ev.Fingerprint,
		CompanyID:   ev.CompanyID,
		Username:    ev.Username,
		Currency:    ev.Currency,
		Nationality: ev.Nationality,
		StartDate:   ev.StartDate,
		EndDate:     ev.EndDate,
		OfferCount:  ev.OfferCount,
	})
	if errors.Is(err, audit.ErrAlreadyRecorded) {
		p.logger.Info("duplicate delivery", "search_id", ev.SearchID)
		return nil
	}
	if err != nil {
		return fmt.Errorf("record search %s: %w", ev.SearchID, err)
	}

	p.logger.Info("search recorded", "search_id", ev.SearchID, "offers", ev.OfferCount)
	return nil
}
