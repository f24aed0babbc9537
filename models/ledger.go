package models

import (
	"fmt"
	"time"
)

// LedgerDirection is the canonical two-variant transaction taxonomy.
// The old app used drifting synonym sets per ledger ({advance, credit,
// payment_in} vs {advance} etc.); here every legacy label is mapped to
// credit or debit once, at the API boundary, and the label itself is kept
// only for display.
type LedgerDirection string

const (
	Credit LedgerDirection = "credit" // advance held grows
	Debit  LedgerDirection = "debit"  // udhar owed grows
)

// UnderpaidThreshold is the ₹1 fuzz below which an unpaid remainder is
// ignored. Amounts are floats end to end, so this doubles as the rounding
// tolerance; do not tighten it to an exact-zero check.
const UnderpaidThreshold = 1.0

var ledgerDirections = map[string]LedgerDirection{
	"advance":     Credit,
	"credit":      Credit,
	"payment_in":  Credit,
	"udhar":       Debit,
	"debit":       Debit,
	"payment_out": Debit,
	"withdraw":    Debit,
}

// NormalizeLedgerType maps a legacy transaction label to its canonical
// direction. Unknown labels are rejected, not guessed.
func NormalizeLedgerType(label string) (LedgerDirection, error) {
	dir, ok := ledgerDirections[label]
	if !ok {
		return "", fmt.Errorf("unknown transaction type %q", label)
	}
	return dir, nil
}

// CustomerTransaction is one khata ledger row for a store customer.
type CustomerTransaction struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`

	Direction LedgerDirection `gorm:"size:6;not null" json:"direction"`
	Type      string          `gorm:"size:20;not null" json:"type"` // legacy label, display only
	Amount    float64         `gorm:"not null" json:"amount"`

	Description     string    `gorm:"size:255" json:"description"`
	TransactionDate time.Time `gorm:"not null;index" json:"transaction_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExportCustomerTransaction mirrors CustomerTransaction for the export khata.
type ExportCustomerTransaction struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	CustomerID uint `gorm:"index;not null" json:"customer_id"`

	Direction LedgerDirection `gorm:"size:6;not null" json:"direction"`
	Type      string          `gorm:"size:20;not null" json:"type"`
	Amount    float64         `gorm:"not null" json:"amount"`

	Description     string    `gorm:"size:255" json:"description"`
	TransactionDate time.Time `gorm:"not null;index" json:"transaction_date"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CustomerBalance folds a customer's rows into Σcredit − Σdebit.
// Positive means advance held, negative means udhar owed. Order never
// matters; the balance is always recomputed fresh from current rows.
func CustomerBalance(txns []CustomerTransaction) float64 {
	var bal float64
	for _, t := range txns {
		if t.Direction == Credit {
			bal += t.Amount
		} else {
			bal -= t.Amount
		}
	}
	return bal
}

// ExportCustomerBalance is the same fold for the export ledger.
func ExportCustomerBalance(txns []ExportCustomerTransaction) float64 {
	var bal float64
	for _, t := range txns {
		if t.Direction == Credit {
			bal += t.Amount
		} else {
			bal -= t.Amount
		}
	}
	return bal
}

// BalanceLabel names a balance the way the khata UI shows it:
// non-negative is "Advance", negative is "Udhar" (shown as absolute value).
func BalanceLabel(balance float64) string {
	if balance >= 0 {
		return "Advance"
	}
	return "Udhar"
}
