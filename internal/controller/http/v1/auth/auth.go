package auth

import (
	"net/http"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"worksite/backend/foundation/web"
	"worksite/backend/internal/commands"
	"worksite/backend/internal/repository/postgres/worker"
)

type Controller struct {
	worker Worker
	jwtKey string
}

func NewController(worker Worker, jwtKey string) *Controller {
	return &Controller{worker: worker, jwtKey: jwtKey}
}

func (uc Controller) SignIn(c *web.Context) error {
	var data worker.SignInRequest

	err := c.BindFunc(&data, "NationalID", "Password")
	if err != nil {
		return c.RespondError(err)
	}

	detail, err := uc.worker.GetByNationalID(c.Ctx, data.NationalID)
	if err != nil {
		return c.RespondError(err)
	}

	if detail.Password == nil {
		return c.RespondError(web.NewRequestError(errors.New("worker not found"), http.StatusUnauthorized))
	}

	if err = bcrypt.CompareHashAndPassword([]byte(*detail.Password), []byte(data.Password)); err != nil {
		return c.RespondError(web.NewRequestError(errors.New("incorrect national_id or password"), http.StatusUnauthorized))
	}

	// Deactivated workers keep their history but cannot sign in.
	if !detail.Active {
		return c.RespondError(web.NewRequestError(errors.New("worker is deactivated"), http.StatusUnauthorized))
	}

	accessToken, refreshToken, err := commands.GenToken(worker.AuthClaims{
		ID:         detail.ID,
		NationalID: derefStr(detail.NationalID),
		Role:       derefStr(detail.Role),
	}, uc.jwtKey)
	if err != nil {
		return c.RespondError(err)
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

func (uc Controller) RefreshToken(c *web.Context) error {
	var data worker.RefreshTokenRequest

	err := c.BindFunc(&data, "AccessToken", "RefreshToken")
	if err != nil {
		return c.RespondError(err)
	}

	_, refreshTokenClaims, err := commands.VerifyTokens(data.AccessToken, data.RefreshToken, uc.jwtKey)
	if err != nil {
		return c.RespondError(web.NewRequestError(err, http.StatusUnauthorized))
	}

	accessToken, refreshToken, err := commands.GenToken(worker.AuthClaims{
		ID:         refreshTokenClaims.UserId,
		NationalID: refreshTokenClaims.NationalID,
		Role:       refreshTokenClaims.Role,
	}, uc.jwtKey)
	if err != nil {
		return c.RespondError(web.NewRequestError(errors.Wrap(err, "generating new tokens"), http.StatusInternalServerError))
	}

	return c.Respond(map[string]interface{}{
		"status": true,
		"data": map[string]string{
			"access_token":  accessToken,
			"refresh_token": refreshToken,
		},
		"error": nil,
	}, http.StatusOK)
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
