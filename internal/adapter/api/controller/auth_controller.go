package controller

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/connector-agent/internal/adapter/api/dto"
	"github.com/hugohenrick/connector-agent/pkg/auth"
)

// AuthController renova tokens de operador. A emissão é feita pelo cmd/token.
type AuthController struct {
	jwt *auth.JWTService
}

// NewAuthController cria uma nova instância de AuthController
func NewAuthController(jwt *auth.JWTService) *AuthController {
	return &AuthController{
		jwt: jwt,
	}
}

// RefreshToken renova um token JWT
// @Summary Renova o token
// @Description Gera um novo token a partir de um token válido ou expirado
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "Token atual"
// @Success 200 {object} dto.RefreshTokenResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (c *AuthController) RefreshToken(ctx *gin.Context) {
	var request dto.RefreshTokenRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	token, err := c.jwt.RefreshToken(request.Token)
	if err != nil {
		message := "Token inválido"
		if errors.Is(err, auth.ErrInvalidClaims) {
			message = "Claims inválidas"
		}
		ctx.JSON(http.StatusUnauthorized, dto.NewErrorResponse(http.StatusUnauthorized, message, err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.RefreshTokenResponse{
		AccessToken: token,
		ExpiresAt:   time.Now().Add(c.jwt.Expiration()),
	})
}
