package attendance

import (
	"errors"
	"math"
	"testing"
	"time"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/entity"
	"worksite/backend/internal/pkg/geo"
	"worksite/backend/internal/pkg/qr"
	"worksite/backend/internal/repository/postgres"
)

const metersPerDegree = math.Pi * geo.EarthRadius / 180

func strPtr(s string) *string    { return &s }
func f64Ptr(f float64) *float64  { return &f }
func boolPtr(b bool) *bool       { return &b }
func timePtr(t time.Time) *time.Time { return &t }

func testSite(active bool) *entity.Site {
	return &entity.Site{
		Name:      strPtr("Obra Centro"),
		Latitude:  -32.8908,
		Longitude: -68.8272,
		Radius:    100,
		Active:    active,
	}
}

func testWorker(id int, active bool) *entity.Worker {
	w := &entity.Worker{
		FullName: strPtr("Juan Perez"),
		Active:   active,
	}
	w.ID = id
	return w
}

func testRequest(workerID int, lat, long float64) ScanRequest {
	return ScanRequest{
		SiteID:    1,
		WorkerID:  workerID,
		Phone:     "+5492610000000",
		Latitude:  f64Ptr(lat),
		Longitude: f64Ptr(long),
		Type:      entity.TypeCheckIn,
	}
}

func TestEvaluateScanAtSite(t *testing.T) {
	claims := auth.Claims{UserId: 7, Role: auth.RoleWorker}
	site := testSite(true)
	request := testRequest(7, site.Latitude, site.Longitude)

	distance, err := evaluateScan(claims, request, testWorker(7, true), site, time.Now(), 5*time.Minute, nil)
	if err != nil {
		t.Fatalf("evaluateScan() error = %v, want nil", err)
	}
	if distance != 0 {
		t.Errorf("distance = %d, want 0", distance)
	}
}

func TestEvaluateScanGeofence(t *testing.T) {
	claims := auth.Claims{UserId: 7, Role: auth.RoleWorker}
	site := testSite(true)

	t.Run("inside radius", func(t *testing.T) {
		request := testRequest(7, site.Latitude+99/metersPerDegree, site.Longitude)

		distance, err := evaluateScan(claims, request, testWorker(7, true), site, time.Now(), 5*time.Minute, nil)
		if err != nil {
			t.Fatalf("evaluateScan() error = %v, want nil", err)
		}
		if distance != 99 {
			t.Errorf("distance = %d, want 99", distance)
		}
	})

	t.Run("outside radius", func(t *testing.T) {
		request := testRequest(7, site.Latitude+101/metersPerDegree, site.Longitude)

		_, err := evaluateScan(claims, request, testWorker(7, true), site, time.Now(), 5*time.Minute, nil)
		if !errors.Is(err, postgres.ErrOutOfRange) {
			t.Fatalf("evaluateScan() error = %v, want ErrOutOfRange", err)
		}

		webErr, ok := web.IsRequestError(err)
		if !ok {
			t.Fatal("expected a request error")
		}
		if webErr.Fields["distance"] != 101 {
			t.Errorf("distance field = %v, want 101", webErr.Fields["distance"])
		}
		if webErr.Fields["limit"] != site.Radius {
			t.Errorf("limit field = %v, want %d", webErr.Fields["limit"], site.Radius)
		}
	})
}

func TestEvaluateScanAuthorization(t *testing.T) {
	site := testSite(true)

	t.Run("worker for another worker", func(t *testing.T) {
		claims := auth.Claims{UserId: 7, Role: auth.RoleWorker}
		request := testRequest(8, site.Latitude, site.Longitude)

		// Denied before any other condition is looked at, even when
		// the referenced rows do not exist.
		_, err := evaluateScan(claims, request, nil, nil, time.Now(), 5*time.Minute, nil)
		if !errors.Is(err, postgres.ErrForbidden) {
			t.Fatalf("evaluateScan() error = %v, want ErrForbidden", err)
		}
	})

	t.Run("supervisor for another worker", func(t *testing.T) {
		claims := auth.Claims{UserId: 2, Role: auth.RoleSupervisor}
		request := testRequest(8, site.Latitude, site.Longitude)

		if _, err := evaluateScan(claims, request, testWorker(8, true), site, time.Now(), 5*time.Minute, nil); err != nil {
			t.Fatalf("evaluateScan() error = %v, want nil", err)
		}
	})
}

func TestEvaluateScanOrder(t *testing.T) {
	claims := auth.Claims{UserId: 7, Role: auth.RoleWorker}
	site := testSite(true)
	now := time.Now()

	t.Run("missing worker before site", func(t *testing.T) {
		request := testRequest(7, site.Latitude, site.Longitude)

		_, err := evaluateScan(claims, request, nil, nil, now, 5*time.Minute, nil)
		if !errors.Is(err, postgres.ErrNotFound) {
			t.Fatalf("evaluateScan() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("inactive worker before site", func(t *testing.T) {
		request := testRequest(7, site.Latitude, site.Longitude)

		_, err := evaluateScan(claims, request, testWorker(7, false), nil, now, 5*time.Minute, nil)
		if !errors.Is(err, postgres.ErrInactiveWorker) {
			t.Fatalf("evaluateScan() error = %v, want ErrInactiveWorker", err)
		}
	})

	t.Run("inactive site before geofence", func(t *testing.T) {
		// Way off site, but the site's state is reported first.
		request := testRequest(7, site.Latitude+1, site.Longitude)

		_, err := evaluateScan(claims, request, testWorker(7, true), testSite(false), now, 5*time.Minute, nil)
		if !errors.Is(err, postgres.ErrInactiveSite) {
			t.Fatalf("evaluateScan() error = %v, want ErrInactiveSite", err)
		}
	})

	t.Run("expired code before geofence", func(t *testing.T) {
		request := testRequest(7, site.Latitude+1, site.Longitude)
		stale := qr.NewPayload(request.SiteID, now.Add(-10*time.Minute))
		request.ScannedAt = stale.GeneratedAt
		request.Hash = stale.Hash

		_, err := evaluateScan(claims, request, testWorker(7, true), site, now, 5*time.Minute, nil)
		if !errors.Is(err, postgres.ErrExpiredCode) {
			t.Fatalf("evaluateScan() error = %v, want ErrExpiredCode", err)
		}
	})
}

func TestEvaluateScanExpiry(t *testing.T) {
	claims := auth.Claims{UserId: 7, Role: auth.RoleWorker}
	site := testSite(true)
	now := time.Now()
	window := 5 * time.Minute

	stamped := func(t *testing.T, generated time.Time) ScanRequest {
		t.Helper()
		request := testRequest(7, site.Latitude, site.Longitude)
		payload := qr.NewPayload(request.SiteID, generated)
		request.ScannedAt = payload.GeneratedAt
		request.Hash = payload.Hash
		return request
	}

	t.Run("exactly at window", func(t *testing.T) {
		request := stamped(t, now.Add(-window))

		if _, err := evaluateScan(claims, request, testWorker(7, true), site, now, window, boolPtr(true)); err != nil {
			t.Fatalf("evaluateScan() error = %v, want nil", err)
		}
	})

	t.Run("just past window", func(t *testing.T) {
		request := stamped(t, now.Add(-window-time.Second))

		_, err := evaluateScan(claims, request, testWorker(7, true), site, now, window, boolPtr(true))
		if !errors.Is(err, postgres.ErrExpiredCode) {
			t.Fatalf("evaluateScan() error = %v, want ErrExpiredCode", err)
		}

		webErr, ok := web.IsRequestError(err)
		if !ok {
			t.Fatal("expected a request error")
		}
		if webErr.Fields["generated"] == nil || webErr.Fields["scanned"] == nil {
			t.Errorf("expected generated and scanned fields, got %v", webErr.Fields)
		}
	})

	t.Run("revoked hash", func(t *testing.T) {
		request := stamped(t, now.Add(-time.Minute))

		_, err := evaluateScan(claims, request, testWorker(7, true), site, now, window, boolPtr(false))
		if !errors.Is(err, postgres.ErrExpiredCode) {
			t.Fatalf("evaluateScan() error = %v, want ErrExpiredCode", err)
		}
	})

	t.Run("stamped without hash", func(t *testing.T) {
		// Omitting the hash must not bypass the freshness checks.
		request := testRequest(7, site.Latitude, site.Longitude)
		request.ScannedAt = timePtr(now.Add(-time.Minute))

		_, err := evaluateScan(claims, request, testWorker(7, true), site, now, window, nil)
		if !errors.Is(err, postgres.ErrExpiredCode) {
			t.Fatalf("evaluateScan() error = %v, want ErrExpiredCode", err)
		}
	})

	t.Run("tampered hash", func(t *testing.T) {
		request := stamped(t, now.Add(-time.Minute))
		request.Hash = "forged-hash-value"

		_, err := evaluateScan(claims, request, testWorker(7, true), site, now, window, boolPtr(true))
		if !errors.Is(err, postgres.ErrExpiredCode) {
			t.Fatalf("evaluateScan() error = %v, want ErrExpiredCode", err)
		}
	})

	t.Run("static code never expires", func(t *testing.T) {
		request := testRequest(7, site.Latitude, site.Longitude)

		if _, err := evaluateScan(claims, request, testWorker(7, true), site, now, window, nil); err != nil {
			t.Fatalf("evaluateScan() error = %v, want nil", err)
		}
	})
}

func TestApplyCode(t *testing.T) {
	t.Run("stamped payload", func(t *testing.T) {
		generated := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
		payload := qr.NewPayload(3, generated)
		encoded, err := qr.Encode(payload)
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		request := ScanRequest{Code: encoded}
		if err := applyCode(&request); err != nil {
			t.Fatalf("applyCode() error = %v", err)
		}
		if request.SiteID != 3 {
			t.Errorf("SiteID = %d, want 3", request.SiteID)
		}
		if request.Hash != payload.Hash {
			t.Errorf("Hash = %q, want %q", request.Hash, payload.Hash)
		}
		if request.ScannedAt == nil || !request.ScannedAt.Equal(generated) {
			t.Errorf("ScannedAt = %v, want %v", request.ScannedAt, generated)
		}
	})

	t.Run("static payload", func(t *testing.T) {
		encoded, err := qr.Encode(qr.NewStaticPayload(5))
		if err != nil {
			t.Fatalf("Encode() error = %v", err)
		}

		request := ScanRequest{Code: encoded}
		if err := applyCode(&request); err != nil {
			t.Fatalf("applyCode() error = %v", err)
		}
		if request.SiteID != 5 || request.ScannedAt != nil || request.Hash != "" {
			t.Errorf("unexpected decode result: %+v", request)
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		request := ScanRequest{Code: "not-json"}
		if err := applyCode(&request); err == nil {
			t.Fatal("applyCode() accepted a malformed payload")
		}
	})

	t.Run("no code is a no-op", func(t *testing.T) {
		request := ScanRequest{SiteID: 9}
		if err := applyCode(&request); err != nil {
			t.Fatalf("applyCode() error = %v", err)
		}
		if request.SiteID != 9 {
			t.Errorf("SiteID = %d, want 9", request.SiteID)
		}
	})
}

func TestValidateScan(t *testing.T) {
	base := testRequest(7, -32.8908, -68.8272)

	tests := []struct {
		name    string
		mutate  func(*ScanRequest)
		wantErr bool
	}{
		{"valid", func(r *ScanRequest) {}, false},
		{"missing site", func(r *ScanRequest) { r.SiteID = 0 }, true},
		{"missing worker", func(r *ScanRequest) { r.WorkerID = 0 }, true},
		{"missing phone", func(r *ScanRequest) { r.Phone = "" }, true},
		{"missing coordinates", func(r *ScanRequest) { r.Latitude = nil }, true},
		{"latitude out of bounds", func(r *ScanRequest) { r.Latitude = f64Ptr(91) }, true},
		{"longitude out of bounds", func(r *ScanRequest) { r.Longitude = f64Ptr(-181) }, true},
		{"bad type", func(r *ScanRequest) { r.Type = "lunch" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			request := base
			tt.mutate(&request)

			err := validateScan(request)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateScan() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
