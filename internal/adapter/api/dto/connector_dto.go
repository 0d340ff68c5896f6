package dto

import (
	"github.com/hugohenrick/connector-agent/pkg/connector"
)

// ShopifyVerifyRequest carrega as credenciais da loja a validar
type ShopifyVerifyRequest struct {
	StoreURL    string `json:"storeUrl" binding:"required"`
	AccessToken string `json:"accessToken" binding:"required"`
}

// ShopifyVerifyResponse confirma a conexão e devolve a configuração aceita
type ShopifyVerifyResponse struct {
	Success bool                    `json:"success"`
	Message string                  `json:"message"`
	Shop    connector.ShopInfo      `json:"shop"`
	Config  connector.ShopifyConfig `json:"config"`
}

// TelegramVerifyRequest carrega o token do bot a validar
type TelegramVerifyRequest struct {
	Token string `json:"token" binding:"required"`
}

// TelegramVerifyResponse confirma o token e identifica o bot
type TelegramVerifyResponse struct {
	Success bool                  `json:"success"`
	Message string                `json:"message"`
	Bot     connector.TelegramBot `json:"bot"`
}
