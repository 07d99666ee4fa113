package auth

import (
	"context"
	"net/http"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"worksite/backend/foundation/web"
)

// Roles known to the system.
const (
	RoleWorker     = "worker"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

const (
	TokenAccess  = "access"
	TokenRefresh = "refresh"
)

type ctxKey int

// Key is used to store/retrieve Claims in a request context.
const Key ctxKey = 1

// Claims is the payload carried by every issued token.
type Claims struct {
	jwt.StandardClaims
	UserId     int    `json:"user_id"`
	NationalID string `json:"national_id"`
	Role       string `json:"role"`
	Type       string `json:"type"`
}

// Authorized reports whether the claims carry one of the given roles.
func (c Claims) Authorized(roles ...string) bool {
	for _, role := range roles {
		if c.Role == role {
			return true
		}
	}
	return false
}

type Auth struct {
	secret []byte
}

func New(secret string) *Auth {
	return &Auth{secret: []byte(secret)}
}

// ValidateToken checks the signature and expiry of an access token and
// returns its claims.
func (a *Auth) ValidateToken(tokenStr string) (Claims, error) {
	var claims Claims

	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return Claims{}, errors.Wrap(err, "parsing token")
	}
	if !token.Valid {
		return Claims{}, errors.New("invalid token")
	}
	if claims.Type != TokenAccess {
		return Claims{}, errors.New("not an access token")
	}

	return claims, nil
}

// GetClaims retrieves the authenticated claims stored by the
// middleware. Missing claims mean the request never passed
// authentication.
func GetClaims(ctx context.Context) (Claims, error) {
	claims, ok := ctx.Value(Key).(Claims)
	if !ok {
		return Claims{}, web.NewRequestError(errors.New("claims missing from context"), http.StatusUnauthorized)
	}
	return claims, nil
}
