package v1

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rifasoft/raffle-admin/internal/api/handler/v1/request"
	"github.com/rifasoft/raffle-admin/internal/api/handler/v1/response"
	"github.com/rifasoft/raffle-admin/internal/pkg/jwthelper"
	"github.com/rifasoft/raffle-admin/internal/service"
)

type AuthService interface {
	Login(username, password string) error
}

type AuthHandler struct {
	svc        AuthService
	signingKey []byte
}

func NewAuthHandler(svc AuthService, signingKey []byte) *AuthHandler {
	return &AuthHandler{
		svc:        svc,
		signingKey: signingKey,
	}
}

// HandleLogin godoc
// @Summary      Authenticate the admin
// @Description  Checks the admin credentials and issues a bearer token for the protected routes.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body  request.LoginRequest  true  "credentials"
// @Success      200  {object}  response.LoginResponse
// @Failure      400  {object}  response.Err
// @Failure      401  {object}  response.Err
// @Failure      500  {object}  response.Err
// @Router       /auth/login [post]
func (h *AuthHandler) HandleLogin(ctx *gin.Context) {
	var req request.LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}
	if err := req.Validate(); err != nil {
		response.RenderErr(ctx, response.ErrBadRequest(err))
		return
	}

	if err := h.svc.Login(req.Username, req.Password); err != nil {
		if errors.Is(err, service.ErrWrongCredentials) {
			response.RenderErr(ctx, response.ErrWrongCredentials(err))
			return
		}

		err = fmt.Errorf("HandleLogin -> h.svc.Login -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	token, err := jwthelper.GenerateToken(h.signingKey, req.Username, ctx.Request.UserAgent())
	if err != nil {
		err = fmt.Errorf("HandleLogin -> jwthelper.GenerateToken -> %w", err)
		response.RenderErr(ctx, response.ErrInternalServerError(err))
		return
	}

	ctx.JSON(http.StatusOK, response.LoginResponse{Token: token})
}
