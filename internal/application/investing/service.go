package investing

import (
	"context"
	"errors"
	"fmt"

	"fundmatch-backend/internal/domain"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type Service struct {
	DB *gorm.DB
}

// Result is the committed state of both records after a successful investment.
type Result struct {
	Project  domain.Project
	Investor domain.Investor
}

// Invest commits investorID's capital to projectID in one transaction.
// Both updates are guarded so a concurrent investment into the same project,
// or one that would overdraw the investor, affects zero rows and rolls back.
func (s *Service) Invest(ctx context.Context, investorID, projectID uuid.UUID) (*Result, error) {
	var result Result

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var investor domain.Investor
		if err := tx.Where("id = ?", investorID).First(&investor).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrInvestorNotFound
			}
			return fmt.Errorf("load investor: %w", err)
		}
		var project domain.Project
		if err := tx.Where("id = ?", projectID).First(&project).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrProjectNotFound
			}
			return fmt.Errorf("load project: %w", err)
		}

		if err := domain.Invest(&investor, &project); err != nil {
			return err
		}

		res := tx.Model(&domain.Project{}).
			Where("id = ? AND funded = ? AND funded_by_id IS NULL", project.ID, false).
			Updates(map[string]interface{}{
				"funded":       true,
				"funded_by_id": investor.ID,
			})
		if res.Error != nil {
			return fmt.Errorf("fund project: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.InvestmentRejectedError{Reason: domain.ReasonAlreadyFunded}
		}

		res = tx.Model(&domain.Investor{}).
			Where("id = ? AND remaining_amount >= ?", investor.ID, project.Amount).
			Update("remaining_amount", gorm.Expr("remaining_amount - ?", project.Amount))
		if res.Error != nil {
			return fmt.Errorf("debit investor: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return &domain.InvestmentRejectedError{Reason: domain.ReasonExceedsRemaining}
		}

		if err := tx.Where("id = ?", project.ID).First(&result.Project).Error; err != nil {
			return fmt.Errorf("reload project: %w", err)
		}
		if err := tx.Where("id = ?", investor.ID).First(&result.Investor).Error; err != nil {
			return fmt.Errorf("reload investor: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("investor_id", investorID.String()).
		Str("project_id", projectID.String()).
		Str("amount", result.Project.Amount.String()).
		Str("remaining_amount", result.Investor.RemainingAmount.String()).
		Msg("Investment committed")
	return &result, nil
}
