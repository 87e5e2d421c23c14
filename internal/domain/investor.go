package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Investor holds capital to commit to projects.
// RemainingAmount starts at TotalAmount and only Invest decreases it.
type Investor struct {
	ID                      uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name                    string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	TotalAmount             decimal.Decimal `gorm:"column:total_amount;type:decimal(18,2);not null" json:"total_amount"`
	IndividualAmount        decimal.Decimal `gorm:"column:individual_amount;type:decimal(18,2);not null" json:"individual_amount"`
	RemainingAmount         decimal.Decimal `gorm:"column:remaining_amount;type:decimal(18,2);not null" json:"remaining_amount"`
	ProjectDeliveryDeadline time.Time       `gorm:"column:project_delivery_deadline;not null;index" json:"project_delivery_deadline"`
	CreatedAt               time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt               time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Investor) TableName() string {
	return "investors"
}

// MaxPerProject is the largest amount the investor could commit to one more
// project: the smaller of its per-project limit and its uncommitted capital.
func (i *Investor) MaxPerProject() decimal.Decimal {
	return decimal.Min(i.RemainingAmount, i.IndividualAmount)
}

// BeforeCreate sets the id and seeds RemainingAmount from TotalAmount.
func (i *Investor) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	i.RemainingAmount = i.TotalAmount
	return nil
}

func (i *Investor) BeforeSave(tx *gorm.DB) error {
	i.ProjectDeliveryDeadline = NormalizeTime(i.ProjectDeliveryDeadline)
	return nil
}
