package projects

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fundmatch-backend/internal/application/matching"
	"fundmatch-backend/internal/domain"
	"fundmatch-backend/internal/pkg/pagination"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// CreateProjectInput carries the client-writable fields. Funding state is
// never taken from the client.
type CreateProjectInput struct {
	Name         string
	Description  string
	Amount       decimal.Decimal
	DeliveryDate time.Time
}

// UpdateProjectInput is a partial update; nil fields are left as they are.
type UpdateProjectInput struct {
	Name         *string
	Description  *string
	Amount       *decimal.Decimal
	DeliveryDate *time.Time
}

// ProjectDetails is a project with the ids of the investors able to fund it.
type ProjectDetails struct {
	domain.Project
	MatchingInvestors []uuid.UUID `json:"matching_investors"`
}

func (s *Service) CreateProject(ctx context.Context, in CreateProjectInput) (*domain.Project, error) {
	project := &domain.Project{
		Name:         in.Name,
		Description:  in.Description,
		Amount:       in.Amount,
		DeliveryDate: in.DeliveryDate,
	}
	if err := s.DB.WithContext(ctx).Create(project).Error; err != nil {
		return nil, fmt.Errorf("Failed to create project: %w", err)
	}
	return project, nil
}

func (s *Service) ListProjects(ctx context.Context, page pagination.Params) ([]domain.Project, int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&domain.Project{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("Failed to count projects: %w", err)
	}
	projects := []domain.Project{}
	if err := s.DB.WithContext(ctx).Scopes(matching.CreationOrder, page.Scope).Find(&projects).Error; err != nil {
		return nil, 0, fmt.Errorf("Failed to fetch projects: %w", err)
	}
	return projects, total, nil
}

func (s *Service) GetProject(ctx context.Context, id uuid.UUID) (*domain.Project, error) {
	var project domain.Project
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}
	return &project, nil
}

// GetProjectDetails loads a project and its matching investor ids. A funded
// project has no matches rather than an error.
func (s *Service) GetProjectDetails(ctx context.Context, id uuid.UUID) (*ProjectDetails, error) {
	project, err := s.GetProject(ctx, id)
	if err != nil {
		return nil, err
	}
	details := &ProjectDetails{Project: *project, MatchingInvestors: []uuid.UUID{}}
	m := &matching.Service{DB: s.DB}
	investors, err := m.MatchingInvestors(ctx, project)
	switch {
	case errors.Is(err, domain.ErrAlreadyFunded):
	case err != nil:
		return nil, err
	default:
		details.MatchingInvestors = matching.InvestorIDs(investors)
	}
	return details, nil
}

// UpdateProject applies in to an unfunded project. Funded projects are
// immutable and return domain.ErrProjectFunded.
func (s *Service) UpdateProject(ctx context.Context, id uuid.UUID, in UpdateProjectInput) (*domain.Project, error) {
	var project domain.Project
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProjectNotFound
			}
			return err
		}
		if project.IsFunded() {
			return domain.ErrProjectFunded
		}
		if in.Name != nil {
			project.Name = *in.Name
		}
		if in.Description != nil {
			project.Description = *in.Description
		}
		if in.Amount != nil {
			project.Amount = *in.Amount
		}
		if in.DeliveryDate != nil {
			project.DeliveryDate = *in.DeliveryDate
		}
		res := tx.Model(&project).
			Where("funded = ? AND funded_by_id IS NULL", false).
			Select("name", "description", "amount", "delivery_date", "updated_at").
			Updates(&project)
		if res.Error != nil {
			return fmt.Errorf("Failed to update project: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return domain.ErrProjectFunded
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &project, nil
}
