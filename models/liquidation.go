package models

import (
	"gorm.io/gorm"
)

// Liquidation is a monthly settlement of gambling-machine revenue for one
// company: per-machine production plus the derived exploitation rights and
// administration expenses owed to the regulator.
type Liquidation struct {
	gorm.Model
	CompanyName string           `json:"companyName" gorm:"not null"`
	Month       int              `json:"month" gorm:"not null"`
	Year        int              `json:"year" gorm:"not null"`
	Rows        []LiquidationRow `json:"rows" gorm:"foreignKey:LiquidationID"`
}

// LiquidationRow is one machine's entry in a liquidation period.
type LiquidationRow struct {
	gorm.Model
	LiquidationID uint   `json:"liquidationId" gorm:"index;not null"`
	MachineSerial string `json:"machineSerial" gorm:"not null"`
	Establishment string `json:"establishment"`
	NUC           string `json:"nuc" gorm:"type:varchar(30)"`
	// Production is the machine's gross revenue for the period. The rights
	// and expense columns of the export are derived from it, not stored.
	Production float64 `json:"production" gorm:"type:numeric(14,2);not null"`
}
