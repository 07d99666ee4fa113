package commands

import (
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/pkg/errors"

	"worksite/backend/internal/auth"
	"worksite/backend/internal/repository/postgres/worker"
)

const (
	accessTokenTTL  = 12 * time.Hour
	refreshTokenTTL = 30 * 24 * time.Hour
)

// GenToken issues an access/refresh token pair for the given worker.
func GenToken(claims worker.AuthClaims, secret string) (string, string, error) {
	now := time.Now()

	accessToken, err := signToken(claims, auth.TokenAccess, now.Add(accessTokenTTL), secret)
	if err != nil {
		return "", "", errors.Wrap(err, "signing access token")
	}

	refreshToken, err := signToken(claims, auth.TokenRefresh, now.Add(refreshTokenTTL), secret)
	if err != nil {
		return "", "", errors.Wrap(err, "signing refresh token")
	}

	return accessToken, refreshToken, nil
}

// VerifyTokens checks a refresh request. The refresh token must be
// valid and unexpired; the access token only needs a valid signature,
// since refreshing an expired access token is the whole point.
func VerifyTokens(accessToken, refreshToken, secret string) (auth.Claims, auth.Claims, error) {
	accessClaims, err := parseToken(accessToken, secret, true)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing access token")
	}
	if accessClaims.Type != auth.TokenAccess {
		return auth.Claims{}, auth.Claims{}, errors.New("not an access token")
	}

	refreshClaims, err := parseToken(refreshToken, secret, false)
	if err != nil {
		return auth.Claims{}, auth.Claims{}, errors.Wrap(err, "parsing refresh token")
	}
	if refreshClaims.Type != auth.TokenRefresh {
		return auth.Claims{}, auth.Claims{}, errors.New("not a refresh token")
	}

	if accessClaims.UserId != refreshClaims.UserId {
		return auth.Claims{}, auth.Claims{}, errors.New("token pair mismatch")
	}

	return accessClaims, refreshClaims, nil
}

func signToken(claims worker.AuthClaims, tokenType string, expiresAt time.Time, secret string) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: expiresAt.Unix(),
		},
		UserId:     claims.ID,
		NationalID: claims.NationalID,
		Role:       claims.Role,
		Type:       tokenType,
	})

	return token.SignedString([]byte(secret))
}

func parseToken(tokenStr, secret string, allowExpired bool) (auth.Claims, error) {
	var claims auth.Claims

	parser := jwt.Parser{}
	if allowExpired {
		parser.SkipClaimsValidation = true
	}

	token, err := parser.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return auth.Claims{}, err
	}
	if !token.Valid && !allowExpired {
		return auth.Claims{}, errors.New("invalid token")
	}

	return claims, nil
}
