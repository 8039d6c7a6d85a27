package models

import (
	"gorm.io/gorm"
)

// RecurringCommitment is a template that materializes one commitment per
// month. AmountFormula is evaluated with govaluate against the variables
// "base" and "month" (1-12), which lets accounting express things like
// seasonal rent adjustments without code changes. An empty formula means the
// base amount is used as is.
type RecurringCommitment struct {
	gorm.Model
	Concept         string  `json:"concept"`
	CompanyName     string  `json:"companyName"`
	BeneficiaryName string  `json:"beneficiaryName"`
	BaseAmount      float64 `json:"baseAmount" gorm:"type:numeric(14,2);not null"`
	AmountFormula   string  `json:"amountFormula"`
	// DayOfMonth is the due day for each generated commitment, clamped to the
	// last day of short months.
	DayOfMonth    int    `json:"dayOfMonth" gorm:"not null"`
	PaymentMethod string `json:"paymentMethod" gorm:"type:varchar(40)"`
	Active        bool   `json:"active" gorm:"default:true"`
}
