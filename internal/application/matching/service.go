package matching

import (
	"context"
	"errors"
	"fmt"

	"fundmatch-backend/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Service runs the matching predicates against the database.
type Service struct {
	DB *gorm.DB
}

// ProjectsForInvestor returns the projects the investor could fund.
func (s *Service) ProjectsForInvestor(ctx context.Context, investorID uuid.UUID) ([]domain.Project, error) {
	var investor domain.Investor
	if err := s.DB.WithContext(ctx).Where("id = ?", investorID).First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvestorNotFound
		}
		return nil, fmt.Errorf("load investor: %w", err)
	}
	return s.MatchingProjects(ctx, &investor)
}

// MatchingProjects runs the project filter for an already loaded investor.
func (s *Service) MatchingProjects(ctx context.Context, investor *domain.Investor) ([]domain.Project, error) {
	projects := []domain.Project{}
	err := s.DB.WithContext(ctx).
		Scopes(UnfundedProjects, ProjectsAffordableBy(investor), CreationOrder).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("find matching projects: %w", err)
	}
	return projects, nil
}

// InvestorsForProject returns the investors able to fund the project, or
// domain.ErrAlreadyFunded when it is funded.
func (s *Service) InvestorsForProject(ctx context.Context, projectID uuid.UUID) ([]domain.Investor, error) {
	var project domain.Project
	if err := s.DB.WithContext(ctx).Where("id = ?", projectID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, fmt.Errorf("load project: %w", err)
	}
	return s.MatchingInvestors(ctx, &project)
}

// MatchingInvestors runs the investor filter for an already loaded project.
func (s *Service) MatchingInvestors(ctx context.Context, project *domain.Project) ([]domain.Investor, error) {
	if project.IsFunded() {
		return nil, domain.ErrAlreadyFunded
	}
	investors := []domain.Investor{}
	err := s.DB.WithContext(ctx).
		Scopes(InvestorsAbleToFund(project), CreationOrder).
		Find(&investors).Error
	if err != nil {
		return nil, fmt.Errorf("find matching investors: %w", err)
	}
	return investors, nil
}

// ProjectIDs and InvestorIDs flatten match results for detail views.
func ProjectIDs(projects []domain.Project) []uuid.UUID {
	ids := make([]uuid.UUID, len(projects))
	for i, p := range projects {
		ids[i] = p.ID
	}
	return ids
}

func InvestorIDs(investors []domain.Investor) []uuid.UUID {
	ids := make([]uuid.UUID, len(investors))
	for i, inv := range investors {
		ids[i] = inv.ID
	}
	return ids
}
