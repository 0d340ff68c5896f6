// Package session guarda o contexto de curto prazo de uma conversa: as
// reuniões criadas, para que "essa reunião" possa ser resolvida depois.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Meeting é uma reunião criada nesta sessão
type Meeting struct {
	Key         string    `json:"key"`
	ExternalID  string    `json:"eventId,omitempty"`
	Link        string    `json:"meetLink,omitempty"`
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Title       string    `json:"title,omitempty"`
	Description string    `json:"description,omitempty"`
}

// Context é a lista ordenada de reuniões de uma sessão
type Context struct {
	mu       sync.RWMutex
	meetings []Meeting
	loc      *time.Location
}

// NewContext cria um contexto vazio. loc define o fuso usado nas comparações de horário.
func NewContext(loc *time.Location) *Context {
	if loc == nil {
		loc = time.Local
	}
	return &Context{loc: loc}
}

// Add acrescenta a reunião e devolve a cópia com a chave interna atribuída
func (c *Context) Add(m Meeting) Meeting {
	m.Key = uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.meetings = append(c.meetings, m)
	return m
}

// Last devolve a reunião mais recente
func (c *Context) Last() (Meeting, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.meetings) == 0 {
		return Meeting{}, false
	}
	return c.meetings[len(c.meetings)-1], true
}

// Snapshot devolve uma cópia das reuniões em ordem de criação
func (c *Context) Snapshot() []Meeting {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]Meeting, len(c.meetings))
	copy(out, c.meetings)
	return out
}

// Match aplica FindMatching sobre um snapshot
func (c *Context) Match(hint string) []Meeting {
	return FindMatching(c.Snapshot(), hint, c.loc)
}

// Update altera início e fim da reunião. Devolve false se ela já não existe.
func (c *Context) Update(key string, start, end time.Time) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.meetings {
		if c.meetings[i].Key == key {
			c.meetings[i].Start = start
			c.meetings[i].End = end
			return true
		}
	}
	return false
}

// Remove apaga a reunião. Devolve false se ela já não existe.
func (c *Context) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.meetings {
		if c.meetings[i].Key == key {
			c.meetings = append(c.meetings[:i], c.meetings[i+1:]...)
			return true
		}
	}
	return false
}

// Len devolve a quantidade de reuniões
func (c *Context) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.meetings)
}

// Registry mantém um Context por chave de sessão
type Registry struct {
	mu       sync.Mutex
	contexts map[string]*Context
	loc      *time.Location
}

// NewRegistry cria um registro vazio
func NewRegistry(loc *time.Location) *Registry {
	return &Registry{contexts: make(map[string]*Context), loc: loc}
}

// Get devolve o contexto da sessão, criando-o na primeira vez
func (r *Registry) Get(key string) *Context {
	if key == "" {
		key = DefaultKey
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.contexts[key]
	if !ok {
		c = NewContext(r.loc)
		r.contexts[key] = c
	}
	return c
}

// DefaultKey é a sessão usada quando o cliente não se identifica
const DefaultKey = "default"
