package history

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryRepository guarda o histórico em memória; usado quando não há banco
type MemoryRepository struct {
	mu    sync.RWMutex
	items map[string][]Interaction
	max   int
}

// NewMemoryRepository cria o repositório. max limita as interações por sessão (0 = sem limite).
func NewMemoryRepository(max int) *MemoryRepository {
	return &MemoryRepository{items: make(map[string][]Interaction), max: max}
}

func (r *MemoryRepository) Save(_ context.Context, in *Interaction) error {
	if in.ID == "" {
		in.ID = uuid.New().String()
	}
	if in.CreatedAt.IsZero() {
		in.CreatedAt = time.Now()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	list := append(r.items[in.SessionKey], *in)
	if r.max > 0 && len(list) > r.max {
		list = list[len(list)-r.max:]
	}
	r.items[in.SessionKey] = list
	return nil
}

func (r *MemoryRepository) List(_ context.Context, sessionKey string, limit, offset int) ([]Interaction, error) {
	r.mu.RLock()
	list := make([]Interaction, len(r.items[sessionKey]))
	copy(list, r.items[sessionKey])
	r.mu.RUnlock()

	sort.SliceStable(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})

	if offset >= len(list) {
		return []Interaction{}, nil
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list, nil
}

func (r *MemoryRepository) Delete(_ context.Context, sessionKey string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.items[sessionKey]) == 0 {
		return ErrNoHistory
	}
	delete(r.items, sessionKey)
	return nil
}

func (r *MemoryRepository) Count(_ context.Context, sessionKey string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.items[sessionKey]), nil
}
