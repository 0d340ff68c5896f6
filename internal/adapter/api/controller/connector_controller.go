package controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hugohenrick/connector-agent/internal/adapter/api/dto"
	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
	"github.com/hugohenrick/connector-agent/pkg/connectors/shopify"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

// ConnectorController valida credenciais de conectores antes de o cliente guardá-las
type ConnectorController struct {
	shopify  connector.Shopify
	telegram connector.Telegram
	logger   logger.Logger
}

// NewConnectorController cria uma nova instância de ConnectorController
func NewConnectorController(s connector.Shopify, t connector.Telegram, log logger.Logger) *ConnectorController {
	return &ConnectorController{
		shopify:  s,
		telegram: t,
		logger:   log,
	}
}

// VerifyShopify godoc
// @Summary Valida credenciais do Shopify
// @Description Confere o formato do domínio e do token e consulta a loja
// @Tags connectors
// @Accept json
// @Produce json
// @Param credentials body dto.ShopifyVerifyRequest true "Credenciais da loja"
// @Success 200 {object} dto.ShopifyVerifyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /connectors/shopify/verify [post]
func (c *ConnectorController) VerifyShopify(ctx *gin.Context) {
	var req dto.ShopifyVerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Missing store URL or access token", err.Error()))
		return
	}
	cfg := connector.ShopifyConfig{StoreURL: strings.TrimSpace(req.StoreURL), AccessToken: strings.TrimSpace(req.AccessToken)}

	if err := shopify.ValidateConfig(cfg); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Invalid Shopify credentials", err.Error()))
		return
	}
	if c.shopify == nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "Shopify is not configured on this server", ""))
		return
	}

	shop, err := c.shopify.Shop(ctx.Request.Context(), cfg)
	if err != nil {
		c.logger.Warn("Falha ao validar loja Shopify", "store", cfg.StoreURL, "error", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Failed to connect Shopify", shopifyErrorDetails(err)))
		return
	}

	ctx.JSON(http.StatusOK, dto.ShopifyVerifyResponse{
		Success: true,
		Message: "Shopify connected successfully",
		Shop:    shop,
		Config:  cfg,
	})
}

// shopifyErrorDetails traduz o status devolvido pela loja
func shopifyErrorDetails(err error) string {
	var se *rest.StatusError
	if !errors.As(err, &se) {
		return err.Error()
	}
	switch se.StatusCode {
	case http.StatusUnauthorized:
		return "Unauthorized: token is invalid or missing required scopes."
	case http.StatusForbidden:
		return "Forbidden: token does not have sufficient permissions."
	case http.StatusNotFound:
		return "Shop not found: check store URL."
	default:
		return se.Error()
	}
}

// VerifyTelegram godoc
// @Summary Valida o token de um bot do Telegram
// @Tags connectors
// @Accept json
// @Produce json
// @Param credentials body dto.TelegramVerifyRequest true "Token do bot"
// @Success 200 {object} dto.TelegramVerifyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 503 {object} dto.ErrorResponse
// @Router /connectors/telegram/verify [post]
func (c *ConnectorController) VerifyTelegram(ctx *gin.Context) {
	var req dto.TelegramVerifyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Missing Telegram Bot Token", err.Error()))
		return
	}
	if c.telegram == nil {
		ctx.JSON(http.StatusServiceUnavailable, dto.NewErrorResponse(http.StatusServiceUnavailable, "Telegram is not configured on this server", ""))
		return
	}

	bot, err := c.telegram.GetMe(ctx.Request.Context(), req.Token)
	if err != nil {
		c.logger.Warn("Falha ao validar bot do Telegram", "error", err)
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Failed to connect Telegram", err.Error()))
		return
	}

	ctx.JSON(http.StatusOK, dto.TelegramVerifyResponse{
		Success: true,
		Message: "Telegram connected successfully",
		Bot:     bot,
	})
}
