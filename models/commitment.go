package models

import (
	"time"

	"gorm.io/gorm"
)

// Commitment is a scheduled financial obligation: an amount a company owes a
// beneficiary by a due date. Classification (overdue, due today, etc.) is
// never stored here; it is recomputed from current data on every read.
type Commitment struct {
	gorm.Model
	Concept         string     `json:"concept"`
	CompanyName     string     `json:"companyName"`
	BeneficiaryName string     `json:"beneficiaryName"`
	Amount          float64    `json:"amount" gorm:"type:numeric(14,2);not null"`
	DueDate         *time.Time `json:"dueDate" gorm:"index"`
	// Status is advisory only ('pending', 'paid', 'completed', 'overdue').
	// The settled hints below win over it; see report.ResolveStatus.
	Status string `json:"status" gorm:"type:varchar(20);default:'pending'"`
	Paid   bool   `json:"paid"`
	// IsPaid duplicates Paid. Old mobile clients wrote one or the other, so
	// both are kept and either one marks the commitment settled.
	IsPaid        bool   `json:"isPaid"`
	Observations  string `json:"observations"`
	PaymentMethod string `json:"paymentMethod" gorm:"type:varchar(40)"`

	// RecurringID links back to the template that generated this commitment,
	// when it was not created by hand.
	RecurringID *uint `json:"recurringId,omitempty" gorm:"index"`
}
