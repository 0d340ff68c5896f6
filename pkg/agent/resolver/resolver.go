// Package resolver traduz nomes ditos pelo usuário ("relatório de março")
// em ids que as APIs aceitam.
package resolver

import (
	"context"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/crypto/blake2b"

	"github.com/hugohenrick/connector-agent/pkg/connector"
)

// Type hints usados nas buscas por nome
const (
	GoogleDocType   = "application/vnd.google-apps.document"
	GoogleSheetType = "application/vnd.google-apps.spreadsheet"
	CourseType      = "course"
	OfficeFileType  = "office"
)

// NameReference é uma referência a um recurso: id explícito ou nome
type NameReference struct {
	DisplayName string
	ExplicitID  string
}

// Resolution é o resultado de uma resolução
type Resolution struct {
	ID    string
	Name  string
	Found bool
}

// Lister busca recursos pelo nome
type Lister interface {
	FindByName(ctx context.Context, name, typeHint string) ([]connector.FileRef, error)
}

// ListerFunc adapta uma função a Lister
type ListerFunc func(ctx context.Context, name, typeHint string) ([]connector.FileRef, error)

// FindByName chama f
func (f ListerFunc) FindByName(ctx context.Context, name, typeHint string) ([]connector.FileRef, error) {
	return f(ctx, name, typeHint)
}

// Cache guarda resoluções bem-sucedidas por um tempo limitado
type Cache = expirable.LRU[string, Resolution]

// NewCache cria o cache compartilhado entre resolvers
func NewCache(size int, ttl time.Duration) *Cache {
	if size <= 0 {
		size = 256
	}
	return expirable.NewLRU[string, Resolution](size, nil, ttl)
}

// Resolver resolve referências sem efeitos colaterais
type Resolver struct {
	lister Lister
	cache  *Cache
	scope  string
}

// Option configura o Resolver
type Option func(*Resolver)

// WithCache ativa o cache
func WithCache(c *Cache) Option {
	return func(r *Resolver) { r.cache = c }
}

// WithScope separa entradas de cache entre provedores ou contas
func WithScope(scope string) Option {
	return func(r *Resolver) { r.scope = scope }
}

// New cria um Resolver sobre o Lister informado
func New(lister Lister, opts ...Option) *Resolver {
	r := &Resolver{lister: lister}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve devolve o id do recurso. Id explícito ganha sem consulta; nome
// desconhecido devolve Found=false com o nome original.
func (r *Resolver) Resolve(ctx context.Context, ref NameReference, typeHint string) (Resolution, error) {
	if id := strings.TrimSpace(ref.ExplicitID); id != "" {
		return Resolution{ID: id, Name: "File", Found: true}, nil
	}

	name := strings.TrimSpace(ref.DisplayName)
	if name == "" {
		return Resolution{}, nil
	}

	key := r.cacheKey(name, typeHint)
	if r.cache != nil {
		if hit, ok := r.cache.Get(key); ok {
			return hit, nil
		}
	}

	if r.lister == nil {
		return Resolution{}, connector.ErrNotConfigured
	}

	refs, err := r.lister.FindByName(ctx, name, typeHint)
	if err != nil {
		return Resolution{}, fmt.Errorf("resolve %q: %w", name, err)
	}
	if len(refs) == 0 {
		return Resolution{Name: name}, nil
	}

	res := Resolution{ID: refs[0].ID, Name: refs[0].Name, Found: true}
	if r.cache != nil {
		r.cache.Add(key, res)
	}
	return res, nil
}

func (r *Resolver) cacheKey(name, typeHint string) string {
	return r.scope + "|" + typeHint + "|" + strings.ToLower(name)
}

// Scope deriva um escopo de cache estável a partir de um token de acesso
// sem guardar o token em memória.
func Scope(provider, token string) string {
	sum := blake2b.Sum256([]byte(token))
	return provider + ":" + hex.EncodeToString(sum[:8])
}
