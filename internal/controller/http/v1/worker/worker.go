package worker

import (
	"net/http"
	"reflect"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
	"worksite/backend/internal/repository/postgres/worker"
)

type Controller struct {
	worker Worker
}

func NewController(worker Worker) *Controller {
	return &Controller{worker}
}

func (uc Controller) GetList(c *web.Context) error {
	var filter worker.Filter

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
	if role, ok := c.GetQueryFunc(reflect.String, "role").(*string); ok {
		filter.Role = role
	}
	if active, ok := c.GetQueryFunc(reflect.Bool, "active").(*bool); ok {
		filter.Active = active
	}
	if err := c.ValidQuery(); err != nil {
		return c.RespondError(err)
	}

	list, count, err := uc.worker.GetList(c.Ctx, filter)
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

// Me returns the authenticated caller's own profile, whatever their
// role.
func (uc Controller) Me(c *web.Context) error {
	claims, err := auth.GetClaims(c.Ctx)
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.worker.GetById(c.Ctx, claims.UserId)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data": worker.GetDetailByIdResponse{
			ID:         detail.ID,
			FullName:   detail.FullName,
			Phone:      detail.Phone,
			NationalID: detail.NationalID,
			Role:       detail.Role,
			Active:     detail.Active,
		},
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) GetDetailById(c *web.Context) error {
	id := c.GetParam(reflect.Int, "id").(int)

	if err := c.ValidParam(); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.worker.GetDetailById(c.Ctx, id)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   response,
		"status": true,
	}, http.StatusOK)
}

func (uc Controller) Create(c *web.Context) error {
	var request worker.CreateRequest
	if err := c.BindFunc(&request, "NationalID", "Password", "Role"); err != nil {
		return c.RespondError(err)
	}

	response, err := uc.worker.Create(c.Ctx, request)
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

	var request worker.UpdateRequest
	if err := c.BindFunc(&request); err != nil {
		return c.RespondError(err)
	}

	request.ID = id

	if err := uc.worker.UpdateColumns(c.Ctx, request); err != nil {
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

	if err := uc.worker.Deactivate(c.Ctx, id); err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"data":   "ok!",
		"status": true,
	}, http.StatusOK)
}
