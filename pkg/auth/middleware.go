package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/connector-agent/internal/adapter/api/dto"
	"github.com/hugohenrick/connector-agent/pkg/tenant"
)

// Chaves gravadas no gin.Context
const (
	userIDKey   = "user_id"
	tenantIDKey = "tenant_id"
	userNameKey = "user_name"
	userRoleKey = "user_role"
)

// JWTAuthMiddleware exige um token Bearer válido e grava o operador no contexto
func JWTAuthMiddleware(svc *JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Autenticação requerida",
				"O cabeçalho Authorization não foi fornecido",
			))
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				"Formato de token inválido",
				"Use o formato 'Bearer <token>'",
			))
			return
		}

		claims, err := svc.ValidateToken(tokenParts[1])
		if err != nil {
			message := "Token inválido"
			if errors.Is(err, ErrExpiredToken) {
				message = "Token expirado"
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
				http.StatusUnauthorized,
				message,
				err.Error(),
			))
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Set(tenantIDKey, claims.TenantID)
		c.Set(userNameKey, claims.Name)
		c.Set(userRoleKey, claims.Role)

		c.Request = c.Request.WithContext(tenant.SetTenantIDContext(c.Request.Context(), claims.TenantID))

		c.Next()
	}
}

// GetCurrentOperator obtém o operador autenticado; ok é falso sem autenticação
func GetCurrentOperator(c *gin.Context) (Operator, bool) {
	userID := c.GetString(userIDKey)
	if userID == "" {
		return Operator{}, false
	}
	return Operator{
		UserID:   userID,
		TenantID: c.GetString(tenantIDKey),
		Name:     c.GetString(userNameKey),
		Role:     c.GetString(userRoleKey),
	}, true
}
