// Package shopify implementa o conector da Admin REST API do Shopify.
// As credenciais da loja chegam a cada requisição.
package shopify

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/hugohenrick/connector-agent/pkg/connector"
	"github.com/hugohenrick/connector-agent/pkg/connectors/rest"
	"github.com/hugohenrick/connector-agent/pkg/logger"
)

// APIVersion é a versão da Admin API usada em todas as chamadas
const APIVersion = "2024-01"

var (
	// ErrMissingCredentials indica URL da loja ou token ausente
	ErrMissingCredentials = errors.New("missing store URL or access token")
	// ErrInvalidStoreURL indica um domínio fora de .myshopify.com
	ErrInvalidStoreURL = errors.New("invalid store URL format")
	// ErrInvalidToken indica um token que não é da Admin API
	ErrInvalidToken = errors.New("invalid access token: use a Shopify Admin API token (starts with shpat_)")
)

// ValidateConfig confere o formato das credenciais antes de chamar a loja
func ValidateConfig(cfg connector.ShopifyConfig) error {
	if !cfg.Ready() {
		return ErrMissingCredentials
	}
	if !strings.HasSuffix(storeHost(cfg.StoreURL), ".myshopify.com") {
		return ErrInvalidStoreURL
	}
	if !strings.HasPrefix(strings.TrimSpace(cfg.AccessToken), "shpat_") {
		return ErrInvalidToken
	}
	return nil
}

// storeHost remove esquema e barras finais da URL informada pelo usuário
func storeHost(storeURL string) string {
	host := strings.TrimSpace(strings.ToLower(storeURL))
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	if i := strings.IndexByte(host, '/'); i >= 0 {
		host = host[:i]
	}
	return host
}

// Client fala com a Admin API da loja indicada nas credenciais
type Client struct {
	api *rest.Client
	// endpoint devolve a raiz da Admin API de uma loja
	endpoint func(storeURL string) string
}

// Option configura o Client
type Option func(*Client)

// WithEndpoint fixa a raiz da Admin API, ignorando a URL da loja (testes)
func WithEndpoint(base string) Option {
	return func(c *Client) {
		base = strings.TrimRight(base, "/")
		c.endpoint = func(string) string { return base }
	}
}

// New cria o Client
func New(log logger.Logger, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		api: rest.New("shopify", "", log, rest.WithTimeout(timeout)),
		endpoint: func(storeURL string) string {
			return "https://" + storeHost(storeURL) + "/admin/api/" + APIVersion
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Client) get(ctx context.Context, cfg connector.ShopifyConfig, resource string, q url.Values, out any) error {
	// o token só segue para domínios .myshopify.com
	if err := ValidateConfig(cfg); err != nil {
		return fmt.Errorf("%w: %w", connector.ErrNotAuthenticated, err)
	}
	token := strings.TrimSpace(cfg.AccessToken)
	return c.api.Do(ctx, rest.Request{
		Path:  c.endpoint(cfg.StoreURL) + "/" + resource,
		Query: q,
		Auth: func(_ context.Context, req *http.Request) error {
			req.Header.Set("X-Shopify-Access-Token", token)
			return nil
		},
	}, out)
}

type order struct {
	ID                int64  `json:"id"`
	OrderNumber       int64  `json:"order_number"`
	Email             string `json:"email"`
	TotalPrice        string `json:"total_price"`
	CreatedAt         string `json:"created_at"`
	FinancialStatus   string `json:"financial_status"`
	FulfillmentStatus string `json:"fulfillment_status"`
	Customer          *struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Email     string `json:"email"`
	} `json:"customer"`
}

func (o order) toOrder() connector.Order {
	out := connector.Order{
		ID:                o.ID,
		OrderNumber:       o.OrderNumber,
		CustomerName:      "Guest",
		CustomerEmail:     o.Email,
		TotalPrice:        o.TotalPrice,
		CreatedAt:         o.CreatedAt,
		FinancialStatus:   o.FinancialStatus,
		FulfillmentStatus: o.FulfillmentStatus,
	}
	if o.Customer != nil {
		if name := strings.TrimSpace(o.Customer.FirstName + " " + o.Customer.LastName); name != "" {
			out.CustomerName = name
		}
		if out.CustomerEmail == "" {
			out.CustomerEmail = o.Customer.Email
		}
	}
	return out
}

// ListOrders lista os pedidos mais recentes da loja
func (c *Client) ListOrders(ctx context.Context, cfg connector.ShopifyConfig, q connector.OrderQuery) ([]connector.Order, error) {
	params := url.Values{"status": {"any"}}
	if q.Status != "" {
		params.Set("status", q.Status)
	}
	if q.Limit > 0 {
		// a API aceita no máximo 250 por página
		params.Set("limit", strconv.Itoa(min(q.Limit, 250)))
	}
	if q.CreatedAtMin != "" {
		params.Set("created_at_min", q.CreatedAtMin)
	}
	if q.CreatedAtMax != "" {
		params.Set("created_at_max", q.CreatedAtMax)
	}

	var resp struct {
		Orders []order `json:"orders"`
	}
	if err := c.get(ctx, cfg, "orders.json", params, &resp); err != nil {
		return nil, fmt.Errorf("erro ao listar pedidos do Shopify: %w", err)
	}

	orders := make([]connector.Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		orders = append(orders, o.toOrder())
	}
	return orders, nil
}

// Shop devolve os dados da loja; serve para validar as credenciais
func (c *Client) Shop(ctx context.Context, cfg connector.ShopifyConfig) (connector.ShopInfo, error) {
	var resp struct {
		Shop connector.ShopInfo `json:"shop"`
	}
	if err := c.get(ctx, cfg, "shop.json", nil, &resp); err != nil {
		return connector.ShopInfo{}, fmt.Errorf("erro ao consultar loja no Shopify: %w", err)
	}
	return resp.Shop, nil
}
