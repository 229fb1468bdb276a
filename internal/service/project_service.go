package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/model"
	"github.com/Aqsariasat123/catalyst-dashboard-sub000/internal/repository"
)

// ProjectService exposes project reads and the financial-config patch.
type ProjectService struct {
	projects ProjectStore
	cache    Cache
	logger   *zap.Logger
}

func NewProjectService(projects ProjectStore, cache Cache, logger *zap.Logger) *ProjectService {
	return &ProjectService{projects: projects, cache: cache, logger: logger}
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	return s.projects.GetByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

// UpdateFinancialConfig patches the fee percent, working budget and exchange
// rate override of a project. Absent fields keep their stored value.
func (s *ProjectService) UpdateFinancialConfig(ctx context.Context, id int64, patch repository.FinancialConfigPatch) (*model.Project, error) {
	if patch.FeePercent != nil && (*patch.FeePercent < 0 || *patch.FeePercent > 100) {
		return nil, fmt.Errorf("%w: fee percent must be between 0 and 100", ErrInvalidInput)
	}
	if patch.WorkingBudget != nil && *patch.WorkingBudget < 0 {
		return nil, fmt.Errorf("%w: working budget must not be negative", ErrInvalidInput)
	}
	if patch.ExchangeRate != nil && *patch.ExchangeRate <= 0 {
		return nil, fmt.Errorf("%w: exchange rate must be positive", ErrInvalidInput)
	}

	project, err := s.projects.UpdateFinancialConfig(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Project financial config updated",
		zap.Int64("project_id", id),
	)
	s.cache.Invalidate(ctx, CacheKeyOverview)
	return project, nil
}
