package site

import (
	"fmt"
	"net/http"
	"reflect"
	"time"

	"github.com/pkg/errors"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/pkg/qr"
	"worksite/backend/internal/pkg/repository/redisdb"
	"worksite/backend/internal/repository/postgres"
	"worksite/backend/internal/repository/postgres/site"
	"worksite/backend/internal/service"
)

const qrImageSize = 512

type Controller struct {
	site   Site
	codes  *redisdb.Store
	window time.Duration
}

func NewController(site Site, codes *redisdb.Store, window time.Duration) *Controller {
	return &Controller{site: site, codes: codes, window: window}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter site.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if search, ok := c.GetQueryFunc(reflect.String, "search").(*string); ok {
		filter.Search = search
	}
	if active, ok := c.GetQueryFunc(reflect.Bool, "active").(*bool); ok {
		filter.Active = active
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.site.GetList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": map[string]interface{}{
			"results": list,
			"count":   count,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.site.GetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   detail,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request site.CreateRequest
	if err := c.BindFunc(&request, "Name", "Latitude", "Longitude"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.site.Create(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) UpdateColumns(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	var request site.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	if err := uc.site.UpdateColumns(c.Ctx, request); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Deactivate(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	if err := uc.site.Deactivate(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}

// GenerateQR issues a short-lived QR code for a site. The payload hash
// is stored in redis with the same TTL so a scan can tell a genuinely
// issued code from a fabricated one.
func (uc Controller) GenerateQR(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.site.GetById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}
	if !detail.Active {
		return c.RespondError(web.NewRequestError(postgres.ErrInactiveSite, http.StatusBadRequest))
	}

	payload := qr.NewPayload(detail.ID, time.Now())

	if err = uc.codes.SaveHash(c.Ctx, payload.Hash, uc.window); err != nil {
		return c.RespondError(errors.Wrap(err, "saving qr hash"))
	}

	img, err := qr.Image(payload, qrImageSize)
	if err != nil {
		return c.RespondError(errors.Wrap(err, "encoding qr image"))
	}

	c.Header("Content-Type", "image/png")
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=\"site-%d.png\"", detail.ID))
	c.Data(http.StatusOK, "image/png", img)

	return nil
}

// QRSheet renders a printable PDF with a static QR code per active
// site.
func (uc Controller) QRSheet(c *web.Context) error {
	sites, err := uc.site.GetActiveList(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	data, err := service.BuildSiteQRSheet(sites)
	if err != nil {
		return c.RespondError(err)
	}

	c.Header("Content-Type", "application/pdf")
	c.Header("Content-Disposition", "attachment; filename=\"site_qr_codes.pdf\"")
	c.Data(http.StatusOK, "application/pdf", data)

	return nil
}
