package connector

import (
	"strings"
	"time"
)

// ShopifyConfig representa as credenciais da loja enviadas pelo cliente
type ShopifyConfig struct {
	APIKey      string `json:"apiKey,omitempty"`
	APISecret   string `json:"apiSecret,omitempty"`
	StoreURL    string `json:"storeUrl"`
	AccessToken string `json:"accessToken"`
}

// Ready informa se a URL da loja e o token estão preenchidos
func (c *ShopifyConfig) Ready() bool {
	return c != nil && strings.TrimSpace(c.StoreURL) != "" && strings.TrimSpace(c.AccessToken) != ""
}

// MicrosoftTokens representa os tokens do Graph obtidos pelo cliente
type MicrosoftTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	// ExpiresOn em segundos unix
	ExpiresOn int64  `json:"expires_on,omitempty"`
	Scope     string `json:"scope,omitempty"`
}

// Credentials representa as credenciais de provedores de uma requisição
type Credentials struct {
	Shopify       *ShopifyConfig
	Microsoft     *MicrosoftTokens
	TelegramToken string
}

// MicrosoftToken devolve o token do Graph, ou "" se ausente ou expirado
func (c Credentials) MicrosoftToken(now time.Time) string {
	if c.Microsoft == nil {
		return ""
	}
	if c.Microsoft.ExpiresOn > 0 && time.Unix(c.Microsoft.ExpiresOn, 0).Before(now) {
		return ""
	}
	return strings.TrimSpace(c.Microsoft.AccessToken)
}
