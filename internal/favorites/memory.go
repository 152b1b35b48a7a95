package favorites

import (
	"context"
	"sync"
	"time"

	"github.com/pefman/pokedex-duel/internal/models"
)

// Memory keeps favorites in process memory.
type Memory struct {
	mu     sync.Mutex
	owners map[string]map[int]models.Favorite
	now    func() time.Time
}

func NewMemory() *Memory {
	return &Memory{owners: map[string]map[int]models.Favorite{}, now: time.Now}
}

func (m *Memory) List(_ context.Context, owner string, by SortBy) ([]models.Favorite, error) {
	m.mu.Lock()
	out := make([]models.Favorite, 0, len(m.owners[owner]))
	for _, f := range m.owners[owner] {
		out = append(out, f)
	}
	m.mu.Unlock()
	sortFavorites(out, by)
	return out, nil
}

func (m *Memory) Add(_ context.Context, owner string, f models.Favorite) (models.Favorite, bool, error) {
	if err := validate(f); err != nil {
		return f, false, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	stored, added := m.addLocked(owner, f)
	return stored, added, nil
}

func (m *Memory) addLocked(owner string, f models.Favorite) (models.Favorite, bool) {
	set := m.owners[owner]
	if set == nil {
		set = map[int]models.Favorite{}
		m.owners[owner] = set
	}
	if cur, ok := set[f.ID]; ok {
		return cur, false
	}
	f = stamp(f, m.now())
	set[f.ID] = f
	return f, true
}

func (m *Memory) Remove(_ context.Context, owner string, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.owners[owner][id]; !ok {
		return false, nil
	}
	delete(m.owners[owner], id)
	return true, nil
}

func (m *Memory) Toggle(_ context.Context, owner string, f models.Favorite) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.owners[owner][f.ID]; ok {
		delete(m.owners[owner], f.ID)
		return false, nil
	}
	if err := validate(f); err != nil {
		return false, err
	}
	_, added := m.addLocked(owner, f)
	return added, nil
}

func (m *Memory) Clear(_ context.Context, owner string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.owners, owner)
	return nil
}

func (m *Memory) Count(_ context.Context, owner string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.owners[owner]), nil
}

func (m *Memory) IsFavorite(_ context.Context, owner string, id int) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.owners[owner][id]
	return ok, nil
}

func (m *Memory) Close() error { return nil }
