package web

import (
	"context"
	"fmt"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
)

// Context carries the gin context plus the request context that
// repositories receive. Query/param parse failures are collected and
// reported by ValidQuery/ValidParam.
type Context struct {
	*gin.Context
	Ctx context.Context

	queryErrs []string
	paramErrs []string
}

// BindFunc binds the JSON/form body into obj and checks that the named
// struct fields are present.
func (c *Context) BindFunc(obj interface{}, requiredFields ...string) error {
	if err := c.ShouldBind(obj); err != nil {
		return NewRequestError(errors.Wrap(err, "binding request body"), http.StatusBadRequest)
	}

	return CheckRequiredFields(obj, requiredFields...)
}

// CheckRequiredFields verifies that the named struct fields of obj are
// set. Field names are Go field names; comma-separated lists are
// accepted as well.
func CheckRequiredFields(obj interface{}, requiredFields ...string) error {
	v := reflect.ValueOf(obj)
	for v.Kind() == reflect.Ptr {
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return nil
	}

	var missing []string
	for _, field := range requiredFields {
		for _, name := range strings.Split(field, ",") {
			name = strings.TrimSpace(name)
			if name == "" {
				continue
			}
			f := v.FieldByName(name)
			if !f.IsValid() || f.IsZero() {
				missing = append(missing, name)
			}
		}
	}

	if len(missing) > 0 {
		return NewRequestError(
			errors.New("required fields: "+strings.Join(missing, ", ")),
			http.StatusBadRequest,
		)
	}

	return nil
}

// GetQueryFunc parses an optional query parameter and returns a typed
// pointer, or nil when the parameter is absent or malformed. Malformed
// values are reported by ValidQuery.
func (c *Context) GetQueryFunc(kind reflect.Kind, name string) interface{} {
	value, ok := c.GetQuery(name)
	if !ok || value == "" {
		return nil
	}

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, name)
			return nil
		}
		return &n
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			c.queryErrs = append(c.queryErrs, name)
			return nil
		}
		return &b
	case reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			c.queryErrs = append(c.queryErrs, name)
			return nil
		}
		return &f
	case reflect.String:
		return &value
	}

	c.queryErrs = append(c.queryErrs, name)
	return nil
}

func (c *Context) ValidQuery() error {
	if len(c.queryErrs) > 0 {
		return NewRequestError(
			errors.New("invalid query parameters: "+strings.Join(c.queryErrs, ", ")),
			http.StatusBadRequest,
		)
	}
	return nil
}

// GetParam parses a path parameter and returns the value. Failures are
// reported by ValidParam.
func (c *Context) GetParam(kind reflect.Kind, name string) interface{} {
	value := c.Param(name)

	switch kind {
	case reflect.Int:
		n, err := strconv.Atoi(value)
		if err != nil {
			c.paramErrs = append(c.paramErrs, name)
			return 0
		}
		return n
	case reflect.String:
		return value
	}

	c.paramErrs = append(c.paramErrs, name)
	return nil
}

func (c *Context) ValidParam() error {
	if len(c.paramErrs) > 0 {
		return NewRequestError(
			errors.New("invalid path parameters: "+strings.Join(c.paramErrs, ", ")),
			http.StatusBadRequest,
		)
	}
	return nil
}

func (c *Context) Respond(data interface{}, status int) error {
	c.JSON(status, data)
	return nil
}

// RespondError writes the error envelope. Request errors keep their
// status and extra fields; anything else is surfaced generically.
func (c *Context) RespondError(err error) error {
	if webErr, ok := IsRequestError(err); ok {
		body := map[string]interface{}{
			"error":  webErr.Err.Error(),
			"status": false,
		}
		for k, v := range webErr.Fields {
			body[k] = v
		}
		c.JSON(webErr.Status, body)
		return nil
	}

	c.JSON(http.StatusInternalServerError, map[string]interface{}{
		"error":  fmt.Sprintf("internal server error: %v", err),
		"status": false,
	})
	return nil
}
