package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/terrazza/bizplanner/internal/domain/models"
)

// Repository keeps scenarios in process memory. Values are cloned on the way
// in and out so callers never share state with the store.
type Repository struct {
	mu        sync.RWMutex
	scenarios map[string]models.Scenario
}

// NewRepository creates an empty in-memory scenario store.
func NewRepository() *Repository {
	return &Repository{scenarios: make(map[string]models.Scenario)}
}

// ListScenarios returns all scenarios ordered by timestamp, then id.
func (r *Repository) ListScenarios(_ context.Context) ([]models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.Scenario, 0, len(r.scenarios))
	for _, s := range r.scenarios {
		out = append(out, cloneScenario(s))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Timestamp.Equal(out[j].Timestamp) {
			return out[i].ID < out[j].ID
		}
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// GetScenario returns one scenario or models.ErrScenarioNotFound.
func (r *Repository) GetScenario(_ context.Context, id string) (models.Scenario, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scenarios[id]
	if !ok {
		return models.Scenario{}, models.ErrScenarioNotFound
	}
	return cloneScenario(s), nil
}

// SaveScenario inserts or replaces a scenario by id.
func (r *Repository) SaveScenario(_ context.Context, scenario models.Scenario) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.scenarios[scenario.ID] = cloneScenario(scenario)
	return nil
}

// DeleteScenario removes a scenario or returns models.ErrScenarioNotFound.
func (r *Repository) DeleteScenario(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scenarios[id]; !ok {
		return models.ErrScenarioNotFound
	}
	delete(r.scenarios, id)
	return nil
}

func cloneScenario(s models.Scenario) models.Scenario {
	s.Config = s.Config.Clone()
	return s
}
