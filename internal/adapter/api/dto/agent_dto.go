package dto

import (
	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/history"
)

// QueryRequest é a consulta em texto livre com as credenciais do cliente
type QueryRequest struct {
	Query           string                     `json:"query" binding:"required"`
	SessionID       string                     `json:"sessionId,omitempty"`
	ShopifyConfig   *connector.ShopifyConfig   `json:"shopifyConfig,omitempty"`
	MicrosoftTokens *connector.MicrosoftTokens `json:"microsoftTokens,omitempty"`
	TelegramToken   string                     `json:"telegramToken,omitempty"`
}

// Credentials converte os campos de credenciais da requisição
func (r QueryRequest) Credentials() connector.Credentials {
	return connector.Credentials{
		Shopify:       r.ShopifyConfig,
		Microsoft:     r.MicrosoftTokens,
		TelegramToken: r.TelegramToken,
	}
}

// HistoryResponse representa uma página do histórico da sessão
type HistoryResponse struct {
	Items      []history.Interaction `json:"items"`
	TotalCount int                   `json:"totalCount"`
	Page       int                   `json:"page"`
	PageSize   int                   `json:"pageSize"`
	TotalPages int                   `json:"totalPages"`
}

// NewHistoryResponse monta a página do histórico
func NewHistoryResponse(items []history.Interaction, total int, p Pagination) HistoryResponse {
	if items == nil {
		items = []history.Interaction{}
	}
	return HistoryResponse{
		Items:      items,
		TotalCount: total,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: calculateTotalPages(total, p.PageSize),
	}
}
