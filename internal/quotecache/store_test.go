package quotecache

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/imrishuroy/go-avail-gateway/internal/availability"
)

func sampleRequest() *availability.NormalizedRequest {
	return &availability.NormalizedRequest{
		Language:     "en",
		OptionsQuota: 20,
		Currency:     "USD",
		Nationality:  "US",
		StartDate:    time.Date(2025, 2, 20, 0, 0, 0, 0, time.UTC),
		EndDate:      time.Date(2025, 2, 24, 0, 0, 0, 0, time.UTC),
		Credentials:  availability.Credentials{Username: "YYYYYYYYY", CompanyID: "123456"},
	}
}

func TestFingerprint(t *testing.T) {
	markup := decimal.RequireFromString("3.2")

	a := Fingerprint(sampleRequest(), markup)
	b := Fingerprint(sampleRequest(), markup)
	if a != b {
		t.Fatal("fingerprint not deterministic")
	}

	other := sampleRequest()
	other.Currency = "EUR"
	if Fingerprint(other, markup) == a {
		t.Fatal("different currency must change the fingerprint")
	}

	if Fingerprint(sampleRequest(), decimal.RequireFromString("4.0")) == a {
		t.Fatal("different markup must change the fingerprint")
	}

	// Credentials are not part of the key.
	cross := sampleRequest()
	cross.Credentials = availability.Credentials{Username: "other", CompanyID: "999"}
	if Fingerprint(cross, markup) != a {
		t.Fatal("credentials must not change the fingerprint")
	}
}

func TestStore_SaveAndGet(t *testing.T) {
	mock := newSimpleMock()
	s := NewStore(mock, "quote-cache", 15*time.Minute)

	ctx := context.Background()
	fp := Fingerprint(sampleRequest(), decimal.RequireFromString("3.2"))

	rec, err := s.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec != nil {
		t.Fatal("expected miss on empty cache")
	}

	err = s.Save(ctx, CachedResponse{
		Fingerprint:    fp,
		SearchID:       "s-1",
		ResponseBody:   `[{"id":"A#1"}]`,
		ResponseStatus: http.StatusOK,
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	rec, err = s.Get(ctx, fp)
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec == nil {
		t.Fatal("expected hit after save")
	}
	if rec.ResponseBody != `[{"id":"A#1"}]` || rec.ResponseStatus != http.StatusOK {
		t.Fatalf("cached response mismatch: %+v", rec)
	}
	if rec.ExpiresAt <= time.Now().Unix() {
		t.Fatalf("expiry not in the future: %d", rec.ExpiresAt)
	}
}

func TestStore_ExpiredEntryIsAMiss(t *testing.T) {
	mock := newSimpleMock()
	s := NewStore(mock, "quote-cache", 15*time.Minute)

	base := time.Date(2025, 2, 10, 12, 0, 0, 0, time.UTC)
	s.nowFunc = func() time.Time { return base }

	ctx := context.Background()
	if err := s.Save(ctx, CachedResponse{Fingerprint: "fp-1", ResponseBody: "[]", ResponseStatus: 200}); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	// Move the clock past the TTL; the row still exists in the table but
	// must read as a miss.
	s.nowFunc = func() time.Time { return base.Add(16 * time.Minute) }

	rec, err := s.Get(ctx, "fp-1")
	if err != nil {
		t.Fatalf("Get error: %v", err)
	}
	if rec != nil {
		t.Fatal("expected expired entry to be a miss")
	}
	if len(mock.table) != 1 {
		t.Fatal("expired entry should still be in the table (TTL deletion is lazy)")
	}
}
