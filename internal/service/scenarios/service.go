package scenarios

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/domain/models"
	"github.com/terrazza/bizplanner/internal/engine"
	"github.com/terrazza/bizplanner/internal/metrics"
)

// ErrEmptyName is returned when a scenario is saved without a name.
var ErrEmptyName = errors.New("scenario name must not be empty")

// Repository is the persistence surface for saved scenarios.
type Repository interface {
	ListScenarios(ctx context.Context) ([]models.Scenario, error)
	GetScenario(ctx context.Context, id string) (models.Scenario, error)
	SaveScenario(ctx context.Context, scenario models.Scenario) error
	DeleteScenario(ctx context.Context, id string) error
}

// Service manages named scenarios and compares them.
type Service struct {
	repo    Repository
	rates   engine.LaborRates
	metrics *metrics.Recorder
	logger  *zap.Logger
	now     func() time.Time
	newID   func() string
}

// NewService wires a scenario service on top of repo.
func NewService(repo Repository, rates engine.LaborRates, recorder *metrics.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		repo:    repo,
		rates:   rates,
		metrics: recorder,
		logger:  logger.Named("svc.scenarios"),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// List returns all saved scenarios, oldest first.
func (s *Service) List(ctx context.Context) ([]models.Scenario, error) {
	list, err := s.repo.ListScenarios(ctx)
	if err != nil {
		return nil, fmt.Errorf("list scenarios: %w", err)
	}
	s.metrics.ScenarioOp("list")
	return list, nil
}

// Get loads one scenario.
func (s *Service) Get(ctx context.Context, id string) (models.Scenario, error) {
	scenario, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return models.Scenario{}, fmt.Errorf("get scenario %s: %w", id, err)
	}
	return scenario, nil
}

// Save stores a copy of cfg under a fresh id.
func (s *Service) Save(ctx context.Context, name string, cfg models.BusinessConfiguration) (models.Scenario, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.Scenario{}, ErrEmptyName
	}

	scenario := models.Scenario{
		ID:        s.newID(),
		Name:      name,
		Config:    cfg.Clone(),
		Timestamp: s.now().UTC(),
	}
	if err := s.repo.SaveScenario(ctx, scenario); err != nil {
		return models.Scenario{}, fmt.Errorf("save scenario: %w", err)
	}

	s.metrics.ScenarioOp("save")
	s.logger.Info("scenario saved", zap.String("scenario_id", scenario.ID), zap.String("name", scenario.Name))
	return scenario, nil
}

// Update overwrites the configuration of an existing scenario and refreshes
// its timestamp. A non-empty name renames it.
func (s *Service) Update(ctx context.Context, id, name string, cfg models.BusinessConfiguration) (models.Scenario, error) {
	scenario, err := s.repo.GetScenario(ctx, id)
	if err != nil {
		return models.Scenario{}, fmt.Errorf("update scenario %s: %w", id, err)
	}

	if name = strings.TrimSpace(name); name != "" {
		scenario.Name = name
	}
	scenario.Config = cfg.Clone()
	scenario.Timestamp = s.now().UTC()

	if err := s.repo.SaveScenario(ctx, scenario); err != nil {
		return models.Scenario{}, fmt.Errorf("update scenario %s: %w", id, err)
	}

	s.metrics.ScenarioOp("update")
	s.logger.Info("scenario updated", zap.String("scenario_id", id))
	return scenario, nil
}

// Delete removes a scenario.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteScenario(ctx, id); err != nil {
		return fmt.Errorf("delete scenario %s: %w", id, err)
	}
	s.metrics.ScenarioOp("delete")
	s.logger.Info("scenario deleted", zap.String("scenario_id", id))
	return nil
}

// Compare evaluates every saved scenario, plus the draft when it is not nil.
// The draft row comes first.
func (s *Service) Compare(ctx context.Context, draft *models.BusinessConfiguration) (models.Comparison, error) {
	saved, err := s.repo.ListScenarios(ctx)
	if err != nil {
		return models.Comparison{}, fmt.Errorf("compare scenarios: %w", err)
	}

	entries := make([]engine.Entry, 0, len(saved)+1)
	if draft != nil {
		entries = append(entries, engine.Entry{
			Name:    models.DraftEntryName,
			IsDraft: true,
			Config:  draft.Clone(),
		})
	}
	for _, sc := range saved {
		entries = append(entries, engine.Entry{ScenarioID: sc.ID, Name: sc.Name, Config: sc.Config})
	}

	s.metrics.Evaluation("comparison", len(entries))
	return engine.Compare(entries, s.rates), nil
}
