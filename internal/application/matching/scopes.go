package matching

import (
	"fundmatch-backend/internal/domain"

	"gorm.io/gorm"
)

// The scopes below are the SQL form of domain.ProjectMatchesInvestor and
// domain.InvestorMatchesProject; keep them in step.

// UnfundedProjects keeps projects with no funder and the funded flag unset.
func UnfundedProjects(db *gorm.DB) *gorm.DB {
	return db.Where("funded = ? AND funded_by_id IS NULL", false)
}

// ProjectsAffordableBy keeps projects due by the investor's deadline and no
// larger than its MaxPerProject.
func ProjectsAffordableBy(investor *domain.Investor) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("delivery_date <= ?", domain.NormalizeTime(investor.ProjectDeliveryDeadline)).
			Where("amount <= ?", investor.MaxPerProject())
	}
}

// InvestorsAbleToFund keeps investors whose limits and deadline allow the project.
func InvestorsAbleToFund(project *domain.Project) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Where("individual_amount >= ?", project.Amount).
			Where("remaining_amount >= ?", project.Amount).
			Where("project_delivery_deadline >= ?", domain.NormalizeTime(project.DeliveryDate))
	}
}

// CreationOrder sorts oldest first, id as tiebreaker.
func CreationOrder(db *gorm.DB) *gorm.DB {
	return db.Order("created_at ASC").Order("id ASC")
}
