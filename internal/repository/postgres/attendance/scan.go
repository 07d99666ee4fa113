package attendance

import (
	"math"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/entity"
	"worksite/backend/internal/pkg/geo"
	"worksite/backend/internal/pkg/qr"
	"worksite/backend/internal/repository/postgres"
)

// applyCode decodes a raw scanned QR payload into the request fields.
// Clients may send the payload verbatim instead of unpacking it
// themselves.
func applyCode(request *ScanRequest) error {
	if request.Code == "" {
		return nil
	}

	payload, err := qr.Decode(request.Code)
	if err != nil {
		return web.NewRequestError(errors.Wrap(err, "decoding qr payload"), http.StatusBadRequest)
	}

	request.SiteID = payload.SiteID
	request.ScannedAt = payload.GeneratedAt
	request.Hash = payload.Hash

	return nil
}

// validateScan checks the shape of the request before any precondition
// runs: coordinate bounds, event type and phone presence.
func validateScan(request ScanRequest) error {
	if request.SiteID <= 0 {
		return web.NewRequestError(errors.New("site_id is required"), http.StatusBadRequest)
	}
	if request.WorkerID <= 0 {
		return web.NewRequestError(errors.New("worker_id is required"), http.StatusBadRequest)
	}
	if request.Phone == "" {
		return web.NewRequestError(errors.New("phone is required"), http.StatusBadRequest)
	}
	if request.Latitude == nil || request.Longitude == nil {
		return web.NewRequestError(errors.New("latitude and longitude are required"), http.StatusBadRequest)
	}
	if *request.Latitude < -90 || *request.Latitude > 90 {
		return web.NewRequestError(errors.New("latitude must be between -90 and 90"), http.StatusBadRequest)
	}
	if *request.Longitude < -180 || *request.Longitude > 180 {
		return web.NewRequestError(errors.New("longitude must be between -180 and 180"), http.StatusBadRequest)
	}
	if request.Type != entity.TypeCheckIn && request.Type != entity.TypeCheckOut {
		return web.NewRequestError(errors.New("type must be check_in or check_out"), http.StatusBadRequest)
	}
	return nil
}

// evaluateScan runs the ordered scan preconditions over already
// fetched entities and returns the rounded distance in meters. The
// order is a contract: callers see the first violated condition, so an
// inactive site is reported before any distance check. worker and
// site are nil when the referenced row does not exist. hashAlive is
// nil when the scan carried no stamped payload; otherwise it reports
// whether the payload hash is still within its window.
func evaluateScan(claims auth.Claims, request ScanRequest, worker *entity.Worker, site *entity.Site, now time.Time, window time.Duration, hashAlive *bool) (int, error) {
	// 1. Authorization: acting for another worker needs supervisor or
	// admin.
	if !auth.Allowed(claims.Role, auth.ActionRegisterAttendance, claims.UserId == request.WorkerID) {
		return 0, web.NewRequestError(postgres.ErrForbidden, http.StatusForbidden)
	}

	// 2. Target worker.
	if worker == nil {
		return 0, web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "worker"), http.StatusNotFound)
	}
	if !worker.Active {
		return 0, web.NewRequestError(postgres.ErrInactiveWorker, http.StatusBadRequest)
	}

	// 3. Site.
	if site == nil {
		return 0, web.NewRequestError(errors.Wrap(postgres.ErrNotFound, "site"), http.StatusNotFound)
	}
	if !site.Active {
		return 0, web.NewRequestError(postgres.ErrInactiveSite, http.StatusBadRequest)
	}

	// 4. Expiry window, only for stamped payloads. Static codes carry
	// no stamp and never expire. A stamped payload must carry its
	// original integrity hash, and the hash must still be known to the
	// nonce store when one was consulted.
	payload := qr.Payload{SiteID: request.SiteID, GeneratedAt: request.ScannedAt, Hash: request.Hash}
	if !payload.Static() {
		if !payload.Valid() || payload.Expired(now, window) || (hashAlive != nil && !*hashAlive) {
			return 0, &web.Error{
				Err:    postgres.ErrExpiredCode,
				Status: http.StatusBadRequest,
				Fields: map[string]interface{}{
					"generated": request.ScannedAt,
					"scanned":   now,
				},
			}
		}
	}

	// 5. Geofence.
	distance := geo.Distance(*request.Latitude, *request.Longitude, site.Latitude, site.Longitude)
	rounded := int(math.Round(distance))
	if distance > float64(site.Radius) {
		return 0, &web.Error{
			Err:    postgres.ErrOutOfRange,
			Status: http.StatusBadRequest,
			Fields: map[string]interface{}{
				"distance": rounded,
				"limit":    site.Radius,
			},
		}
	}

	return rounded, nil
}
