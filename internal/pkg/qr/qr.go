// Package qr encodes and decodes the payload carried by site check-in
// QR codes. Two payload shapes exist: a generated, expiring payload
// stamped with its generation time, and a static payload holding only
// the site id (used on printed sheets). The stamp decides whether the
// scan validator applies the expiry window.
package qr

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"time"

	"github.com/pkg/errors"
	qrcode "github.com/skip2/go-qrcode"
)

// Payload is the JSON blob encoded into a QR image.
type Payload struct {
	SiteID      int        `json:"site_id"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
	Hash        string     `json:"hash,omitempty"`
}

// NewPayload builds an expiring payload stamped with now.
func NewPayload(siteID int, now time.Time) Payload {
	t := now.UTC()
	return Payload{
		SiteID:      siteID,
		GeneratedAt: &t,
		Hash:        hash(siteID, t),
	}
}

// NewStaticPayload builds a non-expiring payload for printed codes.
func NewStaticPayload(siteID int) Payload {
	return Payload{SiteID: siteID}
}

// Static reports whether the payload carries no generation stamp.
func (p Payload) Static() bool {
	return p.GeneratedAt == nil
}

// Expired reports whether an expiring payload is older than window.
// Static payloads never expire.
func (p Payload) Expired(now time.Time, window time.Duration) bool {
	if p.Static() {
		return false
	}
	return now.Sub(*p.GeneratedAt) > window
}

// Valid checks the integrity stamp of an expiring payload.
func (p Payload) Valid() bool {
	if p.Static() {
		return p.Hash == ""
	}
	return p.Hash == hash(p.SiteID, p.GeneratedAt.UTC())
}

func hash(siteID int, t time.Time) string {
	raw := fmt.Sprintf("%d-%d", siteID, t.UnixMilli())
	encoded := base64.StdEncoding.EncodeToString([]byte(raw))
	if len(encoded) > 16 {
		encoded = encoded[:16]
	}
	return encoded
}

func Encode(p Payload) (string, error) {
	data, err := json.Marshal(p)
	if err != nil {
		return "", errors.Wrap(err, "marshalling qr payload")
	}
	return string(data), nil
}

func Decode(s string) (Payload, error) {
	var p Payload
	if err := json.Unmarshal([]byte(s), &p); err != nil {
		return Payload{}, errors.Wrap(err, "unmarshalling qr payload")
	}
	if p.SiteID <= 0 {
		return Payload{}, errors.New("qr payload missing site_id")
	}
	return p, nil
}

// Image renders the payload as a PNG of the given pixel size.
func Image(p Payload, size int) ([]byte, error) {
	content, err := Encode(p)
	if err != nil {
		return nil, err
	}

	png, err := qrcode.Encode(content, qrcode.Medium, size)
	if err != nil {
		return nil, errors.Wrap(err, "encoding qr image")
	}

	return png, nil
}
