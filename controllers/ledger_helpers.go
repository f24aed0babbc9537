package controllers

import (
	"fmt"
	"time"

	"github.com/abhishekkumar914/inventory-management/models"
	"github.com/abhishekkumar914/inventory-management/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// lockForUpdate adds SELECT ... FOR UPDATE on Postgres. SQLite has no row
// locks and serializes writers anyway, so the clause is skipped there.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// customerBalanceTx folds the customer's current ledger rows inside the
// caller's transaction.
func customerBalanceTx(tx *gorm.DB, customerID uint) (float64, error) {
	var txns []models.CustomerTransaction
	if err := tx.Where("customer_id = ?", customerID).Find(&txns).Error; err != nil {
		return 0, err
	}
	return models.CustomerBalance(txns), nil
}

func exportCustomerBalanceTx(tx *gorm.DB, customerID uint) (float64, error) {
	var txns []models.ExportCustomerTransaction
	if err := tx.Where("customer_id = ?", customerID).Find(&txns).Error; err != nil {
		return 0, err
	}
	return models.ExportCustomerBalance(txns), nil
}

func underpaidDescription(refKind, ref string, unpaid float64, fromAdvance bool) string {
	if fromAdvance {
		return fmt.Sprintf("Deducted from advance for %s #%s — ₹%.2f", refKind, ref, unpaid)
	}
	return fmt.Sprintf("Udhar for %s #%s — ₹%.2f unpaid", refKind, ref, unpaid)
}

// settleSaleUnderpayment records the single debit row for an under-paid
// sale. Must run in the same transaction as the sale insert so two tabs
// can't both draw from the same advance: the customer row is locked before
// the balance is read.
//
// Whether the unpaid amount comes out of an advance or becomes fresh udhar
// changes only the description; kind and amount are identical either way.
func settleSaleUnderpayment(tx *gorm.DB, customerID uint, saleID uint, unpaid float64) error {
	if unpaid <= models.UnderpaidThreshold {
		return nil
	}

	var cust models.Customer
	if err := lockForUpdate(tx).First(&cust, customerID).Error; err != nil {
		return err
	}

	bal, err := customerBalanceTx(tx, customerID)
	if err != nil {
		return err
	}

	txn := models.CustomerTransaction{
		CustomerID:      customerID,
		Direction:       models.Debit,
		Type:            "udhar",
		Amount:          unpaid,
		Description:     underpaidDescription("Sale", utils.ShortID(saleID), unpaid, bal >= unpaid),
		TransactionDate: time.Now().UTC(),
	}
	return tx.Create(&txn).Error
}

// settleExportUnderpayment is the same flow against the export khata.
func settleExportUnderpayment(tx *gorm.DB, customerID uint, entryID uint, unpaid float64) error {
	if unpaid <= models.UnderpaidThreshold {
		return nil
	}

	var cust models.ExportCustomer
	if err := lockForUpdate(tx).First(&cust, customerID).Error; err != nil {
		return err
	}

	bal, err := exportCustomerBalanceTx(tx, customerID)
	if err != nil {
		return err
	}

	txn := models.ExportCustomerTransaction{
		CustomerID:      customerID,
		Direction:       models.Debit,
		Type:            "udhar",
		Amount:          unpaid,
		Description:     underpaidDescription("Export", utils.ShortID(entryID), unpaid, bal >= unpaid),
		TransactionDate: time.Now().UTC(),
	}
	return tx.Create(&txn).Error
}
