package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is a recorded settlement, possibly partial, optionally linked to a
// commitment. Payments are immutable once created: correcting a mistake means
// recording a compensating entry, not editing history.
type Payment struct {
	gorm.Model
	CommitmentID *uint       `json:"commitmentId,omitempty" gorm:"index"`
	Commitment   *Commitment `json:"commitment,omitempty" gorm:"foreignKey:CommitmentID"`
	Amount       float64     `json:"amount" gorm:"type:numeric(14,2);not null"`
	Date         time.Time   `json:"date" gorm:"index;not null"`
	Concept      string      `json:"concept"`
	CompanyName  string      `json:"companyName"`
	Method       string      `json:"method" gorm:"type:varchar(40)"`
	// Is4x1000Tax marks the record as a bank-transaction tax deduction
	// (Colombian 4x1000). Tax entries live next to real payments in the same
	// table but are excluded from every aggregate and from the "commitment
	// has payments" check.
	Is4x1000Tax   bool   `json:"is4x1000Tax" gorm:"column:is_4x1000_tax"`
	ReceiptNumber string `json:"receiptNumber" gorm:"type:varchar(40)"`
}
