package service

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"

	"worksite/backend/internal/entity"
	"worksite/backend/internal/pkg/qr"
)

const (
	qrImageSize = 256
	// Print resolution for the embedded image. QR modules must stay
	// crisp, so upscaling uses nearest neighbor, never interpolation.
	qrPrintSize = 1024
)

// BuildSiteQRSheet renders one page per site with its printable static
// QR code, for posting at the site entrance.
func BuildSiteQRSheet(sites []entity.Site) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle("Site QR Codes", false)

	for _, site := range sites {
		payload := qr.NewStaticPayload(site.ID)

		img, err := qr.Image(payload, qrImageSize)
		if err != nil {
			return nil, errors.Wrapf(err, "encoding qr for site %d", site.ID)
		}

		printable, err := upscalePNG(img, qrPrintSize)
		if err != nil {
			return nil, errors.Wrapf(err, "scaling qr for site %d", site.ID)
		}

		pdf.AddPage()

		pdf.SetFont("Helvetica", "B", 24)
		name := fmt.Sprintf("Site %d", site.ID)
		if site.Name != nil {
			name = *site.Name
		}
		pdf.CellFormat(0, 16, name, "", 1, "C", false, 0, "")

		if site.Address != nil {
			pdf.SetFont("Helvetica", "", 12)
			pdf.CellFormat(0, 8, *site.Address, "", 1, "C", false, 0, "")
		}

		imageName := fmt.Sprintf("site-%d", site.ID)
		pdf.RegisterImageOptionsReader(imageName, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(printable))
		pdf.ImageOptions(imageName, 55, 60, 100, 100, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")

		pdf.SetY(170)
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(0, 6, fmt.Sprintf("%.6f, %.6f (radius %d m)", site.Latitude, site.Longitude, site.Radius), "", 1, "C", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, errors.Wrap(err, "writing pdf")
	}

	return buf.Bytes(), nil
}

func upscalePNG(data []byte, size int) ([]byte, error) {
	src, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
