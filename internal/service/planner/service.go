package planner

import (
	"sync"

	"go.uber.org/zap"

	"github.com/terrazza/bizplanner/internal/domain/models"
	"github.com/terrazza/bizplanner/internal/engine"
	"github.com/terrazza/bizplanner/internal/metrics"
)

// Service owns the operator's working draft and turns configurations into dashboards.
type Service struct {
	mu     sync.RWMutex
	draft  models.BusinessConfiguration
	rates  engine.LaborRates
	months int

	metrics *metrics.Recorder
	logger  *zap.Logger
}

// NewService starts a planner with the default configuration as its draft.
// months is the projection horizon used when a caller does not pick one.
func NewService(rates engine.LaborRates, months int, recorder *metrics.Recorder, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if months < 0 {
		months = 0
	}
	return &Service{
		draft:   models.DefaultConfiguration(),
		rates:   rates,
		months:  months,
		metrics: recorder,
		logger:  logger.Named("svc.planner"),
	}
}

// DefaultMonths is the configured projection horizon.
func (s *Service) DefaultMonths() int {
	return s.months
}

// Rates returns the labor assumptions shared by every calculation.
func (s *Service) Rates() engine.LaborRates {
	return s.rates
}

// Draft returns a copy of the current draft.
func (s *Service) Draft() models.BusinessConfiguration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.draft.Clone()
}

// UpdateDraft replaces the draft wholesale and returns the stored copy.
func (s *Service) UpdateDraft(cfg models.BusinessConfiguration) models.BusinessConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = cfg.Clone()
	s.logger.Debug("draft updated")
	return s.draft.Clone()
}

// ResetDraft restores the default configuration.
func (s *Service) ResetDraft() models.BusinessConfiguration {
	return s.UpdateDraft(models.DefaultConfiguration())
}

// LoadScenario copies a saved scenario's configuration into the draft.
func (s *Service) LoadScenario(scenario models.Scenario) models.BusinessConfiguration {
	s.logger.Info("scenario loaded into draft", zap.String("scenario_id", scenario.ID), zap.String("name", scenario.Name))
	s.metrics.ScenarioOp("load")
	return s.UpdateDraft(scenario.Config)
}

// DraftDashboard evaluates the current draft over months (negative means the default horizon).
func (s *Service) DraftDashboard(months int) models.Dashboard {
	_, d := s.DraftWithDashboard(months)
	return d
}

// DraftWithDashboard returns the draft and the dashboard computed from that
// same copy, so a concurrent update cannot pair one with the other's figures.
func (s *Service) DraftWithDashboard(months int) (models.BusinessConfiguration, models.Dashboard) {
	if months < 0 {
		months = s.months
	}
	cfg := s.Draft()
	return cfg, s.Dashboard(cfg.Clone(), months)
}

// Dashboard runs the full engine pipeline for one configuration.
func (s *Service) Dashboard(cfg models.BusinessConfiguration, months int) models.Dashboard {
	costs, summary := engine.Evaluate(cfg, s.rates)
	projection := engine.Project(summary, months)
	breakEven := engine.BreakEven(projection)
	s.metrics.Evaluation("dashboard", 1)

	warnings := engine.CheckMix(cfg.Cafe)
	if len(warnings) > 0 {
		s.logger.Debug("menu mix warnings", zap.Strings("warnings", warnings))
	}

	return models.Dashboard{
		Summary:    summary,
		Payback:    engine.PaybackMonths(summary.TotalInvestment, summary.NetProfit),
		UnitCosts:  costs,
		Projection: projection,
		BreakEven:  breakEven,
		BreakLabel: breakEven.String(),
		Warnings:   warnings,
	}
}
