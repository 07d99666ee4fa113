package qr

import (
	"testing"
	"time"
)

func TestRoundTrip(t *testing.T) {
	now := time.Date(2025, 7, 22, 10, 30, 0, 0, time.UTC)
	p := NewPayload(7, now)

	s, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if got.SiteID != 7 {
		t.Errorf("SiteID = %d, want 7", got.SiteID)
	}
	if got.Static() {
		t.Error("generated payload decoded as static")
	}
	if !got.GeneratedAt.Equal(now) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, now)
	}
	if !got.Valid() {
		t.Error("round-tripped payload failed integrity check")
	}
}

func TestStaticPayload(t *testing.T) {
	p := NewStaticPayload(3)
	if !p.Static() {
		t.Fatal("NewStaticPayload not static")
	}

	s, err := Encode(p)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}

	got, err := Decode(s)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !got.Static() {
		t.Error("static payload decoded with a generation stamp")
	}
	if got.Expired(time.Now().Add(24*time.Hour), time.Minute) {
		t.Error("static payload reported expired")
	}
	if !got.Valid() {
		t.Error("static payload failed integrity check")
	}
}

func TestExpired(t *testing.T) {
	generated := time.Date(2025, 7, 22, 10, 0, 0, 0, time.UTC)
	window := 5 * time.Minute
	p := NewPayload(1, generated)

	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{"immediately", generated, false},
		{"within window", generated.Add(4 * time.Minute), false},
		{"exactly at window", generated.Add(window), false},
		{"just past window", generated.Add(window + time.Second), true},
		{"long past window", generated.Add(time.Hour), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Expired(tt.now, window); got != tt.want {
				t.Errorf("Expired = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDecodeRejectsMissingSite(t *testing.T) {
	if _, err := Decode(`{"generated_at":"2025-07-22T10:00:00Z"}`); err == nil {
		t.Error("Decode accepted payload without site_id")
	}
	if _, err := Decode(`not json`); err == nil {
		t.Error("Decode accepted malformed payload")
	}
}

func TestTamperedHashInvalid(t *testing.T) {
	p := NewPayload(9, time.Now())
	p.Hash = "AAAAAAAAAAAAAAAA"
	if p.Valid() {
		t.Error("tampered payload passed integrity check")
	}
}
