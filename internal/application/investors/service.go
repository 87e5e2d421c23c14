package investors

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

// CreateInvestorInput carries the client-writable fields; RemainingAmount is
// seeded from TotalAmount on create.
type CreateInvestorInput struct {
	Name                    string
	TotalAmount             decimal.Decimal
	IndividualAmount        decimal.Decimal
	ProjectDeliveryDeadline time.Time
}

// UpdateInvestorInput is a partial update. TotalAmount is fixed after create.
type UpdateInvestorInput struct {
	Name                    *string
	IndividualAmount        *decimal.Decimal
	ProjectDeliveryDeadline *time.Time
}

type InvestorDetails struct {
	domain.Investor
	MatchingProjects []uuid.UUID `json:"matching_projects"`
}

func (s *Service) CreateInvestor(ctx context.Context, in CreateInvestorInput) (*domain.Investor, error) {
	investor := &domain.Investor{
		Name:                    in.Name,
		TotalAmount:             in.TotalAmount,
		IndividualAmount:        in.IndividualAmount,
		ProjectDeliveryDeadline: in.ProjectDeliveryDeadline,
	}
	if err := s.DB.WithContext(ctx).Create(investor).Error; err != nil {
		return nil, fmt.Errorf("Failed to create investor: %w", err)
	}
	return investor, nil
}

func (s *Service) ListInvestors(ctx context.Context, page pagination.Params) ([]domain.Investor, int64, error) {
	var total int64
	if err := s.DB.WithContext(ctx).Model(&domain.Investor{}).Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("Failed to count investors: %w", err)
	}
	investors := []domain.Investor{}
	if err := s.DB.WithContext(ctx).Scopes(matching.CreationOrder, page.Scope).Find(&investors).Error; err != nil {
		return nil, 0, fmt.Errorf("Failed to fetch investors: %w", err)
	}
	return investors, total, nil
}

func (s *Service) GetInvestor(ctx context.Context, id uuid.UUID) (*domain.Investor, error) {
	var investor domain.Investor
	if err := s.DB.WithContext(ctx).Where("id = ?", id).First(&investor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrInvestorNotFound
		}
		return nil, err
	}
	return &investor, nil
}

func (s *Service) GetInvestorDetails(ctx context.Context, id uuid.UUID) (*InvestorDetails, error) {
	investor, err := s.GetInvestor(ctx, id)
	if err != nil {
		return nil, err
	}
	m := &matching.Service{DB: s.DB}
	projects, err := m.MatchingProjects(ctx, investor)
	if err != nil {
		return nil, err
	}
	return &InvestorDetails{Investor: *investor, MatchingProjects: matching.ProjectIDs(projects)}, nil
}

// UpdateInvestor changes the investor's name, per-project limit or deadline.
// remaining_amount is left alone.
func (s *Service) UpdateInvestor(ctx context.Context, id uuid.UUID, in UpdateInvestorInput) (*domain.Investor, error) {
	investor, err := s.GetInvestor(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		investor.Name = *in.Name
	}
	if in.IndividualAmount != nil {
		investor.IndividualAmount = *in.IndividualAmount
	}
	if in.ProjectDeliveryDeadline != nil {
		investor.ProjectDeliveryDeadline = *in.ProjectDeliveryDeadline
	}
	err = s.DB.WithContext(ctx).Model(investor).
		Select("name", "individual_amount", "project_delivery_deadline", "updated_at").
		Updates(investor).Error
	if err != nil {
		return nil, fmt.Errorf("Failed to update investor: %w", err)
	}
	return investor, nil
}
