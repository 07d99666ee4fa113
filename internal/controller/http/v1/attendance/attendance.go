package attendance

import (
	"net/http"
	"reflect"

	"github.com/Azure/go-autorest/autorest/date"
	"github.com/pkg/errors"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/repository/postgres/attendance"
	"worksite/backend/internal/service"
)

type Controller struct {
	attendance Attendance
}

func NewController(attendance Attendance) *Controller {
	return &Controller{attendance}
}

func (uc Controller) Scan(c *web.Context) error {
	var request attendance.ScanRequest
	if err := c.BindFunc(&request, "WorkerID", "Phone", "Type"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Scan(c.Ctx, request)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusCreated)
}

func (uc Controller) Approve(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.attendance.Approve(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetList(c *web.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.attendance.GetList(c.Ctx, filter)
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

	response, err := uc.attendance.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetStats(c *web.Context) error {
	var filter attendance.StatsFilter

	from, to, err := parseDateRange(c)
	if err != nil {
		return c.RespondError(err)
	}
	filter.From = from
	filter.To = to

	response, err := uc.attendance.GetStats(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Export(c *web.Context) error {
	filter, err := parseFilter(c)
	if err != nil {
		return c.RespondError(err)
	}

	rows, err := uc.attendance.GetExportList(c.Ctx, filter)
	if err != nil {
		return c.RespondError(err)
	}

	f, err := service.BuildAttendanceExcel(rows)
	if err != nil {
		return c.RespondError(err)
	}
	defer f.Close()

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename=\"attendance.xlsx\"")
	c.Status(http.StatusOK)
	if err = f.Write(c.Writer); err != nil {
		return c.RespondError(err)
	}

	return nil
}

func parseFilter(c *web.Context) (attendance.Filter, error) {
	var filter attendance.Filter

	if limit, ok := c.GetQueryFunc(reflect.Int, "limit").(*int); ok {
		filter.Limit = limit
	}
	if offset, ok := c.GetQueryFunc(reflect.Int, "offset").(*int); ok {
		filter.Offset = offset
	}
	if page, ok := c.GetQueryFunc(reflect.Int, "page").(*int); ok {
		filter.Page = page
	}
	if siteId, ok := c.GetQueryFunc(reflect.Int, "site_id").(*int); ok {
		filter.SiteID = siteId
	}
	if workerId, ok := c.GetQueryFunc(reflect.Int, "worker_id").(*int); ok {
		filter.WorkerID = workerId
	}
	if approved, ok := c.GetQueryFunc(reflect.Bool, "approved").(*bool); ok {
		filter.Approved = approved
	}
	if eventType, ok := c.GetQueryFunc(reflect.String, "type").(*string); ok {
		filter.Type = eventType
	}
	if err := c.ValidQuery(); err != nil {
		return attendance.Filter{}, err
	}

	from, to, err := parseDateRange(c)
	if err != nil {
		return attendance.Filter{}, err
	}
	filter.From = from
	filter.To = to

	return filter, nil
}

func parseDateRange(c *web.Context) (*date.Date, *date.Date, error) {
	var from, to *date.Date

	if fromStr := c.Query("from"); fromStr != "" {
		parsed, err := date.ParseDate(fromStr)
		if err != nil {
			return nil, nil, web.NewRequestError(errors.New("invalid from date format"), http.StatusBadRequest)
		}
		from = &parsed
	}
	if toStr := c.Query("to"); toStr != "" {
		parsed, err := date.ParseDate(toStr)
		if err != nil {
			return nil, nil, web.NewRequestError(errors.New("invalid to date format"), http.StatusBadRequest)
		}
		to = &parsed
	}

	return from, to, nil
}
