package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Project is a fundable project. Funded and FundedByID are written only by Invest.
type Project struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	Name         string          `gorm:"column:name;type:varchar(255);not null" json:"name"`
	Description  string          `gorm:"column:description;type:text" json:"description"`
	Amount       decimal.Decimal `gorm:"column:amount;type:decimal(18,2);not null" json:"amount"`
	DeliveryDate time.Time       `gorm:"column:delivery_date;not null;index" json:"delivery_date"`
	Funded       bool            `gorm:"column:funded;not null;default:false;index" json:"funded"`
	FundedByID   *uuid.UUID      `gorm:"column:funded_by_id;type:uuid;index" json:"funded_by"`
	CreatedAt    time.Time       `gorm:"column:created_at" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"column:updated_at" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}

// IsFunded reports whether an investment has already been committed.
// A funder reference without the flag still counts.
func (p *Project) IsFunded() bool {
	return p.Funded || p.FundedByID != nil
}

func (p *Project) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

func (p *Project) BeforeSave(tx *gorm.DB) error {
	p.DeliveryDate = NormalizeTime(p.DeliveryDate)
	return nil
}

// NormalizeTime drops the monotonic reading, converts to UTC and truncates to
// microseconds, the precision Postgres keeps.
func NormalizeTime(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
