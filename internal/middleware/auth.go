package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/auth"
)

func Authenticate(a *auth.Auth, role ...string) web.Middleware {
	m := func(handler web.Handler) web.Handler {

		h := func(c *web.Context) error {

			// Expecting: Bearer <token>
			authStr := c.Request.Header.Get("authorization")

			parts := strings.Split(authStr, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				err := errors.New("expected authorization header format: Bearer <token>")
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			// Validate the token is signed by us.
			claims, err := a.ValidateToken(parts[1])
			if err != nil {
				return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
			}

			if ok := claims.Authorized(role...); !ok && (len(role) > 0) {
				return c.RespondError(web.NewRequestError(errors.New("attempted action is not allowed"), http.StatusForbidden))
			}

			// Add claims to the context so that they can be retrieved later.
			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)

			return handler(c)
		}

		return h
	}

	return m
}
