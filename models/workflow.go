package models

import (
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Workflow struct {
	ID          string    `gorm:"type:char(36);primaryKey" json:"id"`
	UserID      string    `gorm:"type:char(36);not null;index" json:"userId"`
	Name        string    `gorm:"size:150;not null" json:"name"`
	Description string    `gorm:"type:text" json:"description"`
	Cost        float64   `gorm:"not null" json:"cost"`
	TaxRate     float64   `gorm:"not null" json:"taxRate"`
	IsPublic    bool      `gorm:"not null" json:"isPublic"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Loaded through the association table, in position order.
	Tasks []Task `gorm:"-" json:"tasks"`
}

func (w *Workflow) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

type WorkflowCalc struct {
	Subtotal  float64 `json:"subtotal"`
	TaxRate   float64 `json:"taxRate"`
	TaxAmount float64 `json:"taxAmount"`
	Total     float64 `json:"total"`
}

// round2 rounds half away from zero to two decimals, the usual currency
// convention.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// Calc computes the workflow's tax amount and total from its stored cost and
// tax rate. Pure function of the two fields.
func (w *Workflow) Calc() WorkflowCalc {
	tax := round2(w.Cost * w.TaxRate)
	return WorkflowCalc{
		Subtotal:  w.Cost,
		TaxRate:   w.TaxRate,
		TaxAmount: tax,
		Total:     round2(w.Cost + tax),
	}
}
