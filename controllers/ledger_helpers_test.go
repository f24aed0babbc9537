package controllers

import (
	"strings"
	"testing"

	"github.com/abhishekkumar914/inventory-management/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := "file:" + strings.ReplaceAll(t.Name(), "/", "_") + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	err = db.AutoMigrate(
		&models.Product{},
		&models.InventoryMovement{},
		&models.Sale{},
		&models.SaleItem{},
		&models.SalePayment{},
		&models.Customer{},
		&models.CustomerTransaction{},
		&models.ExportEntry{},
		&models.ExportCustomer{},
		&models.ExportCustomerTransaction{},
	)
	if err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func TestSettleSkipsWithinThreshold(t *testing.T) {
	db := newTestDB(t)
	cust := models.Customer{Phone: "9876543210", Name: "Ravi", Rating: 5}
	if err := db.Create(&cust).Error; err != nil {
		t.Fatal(err)
	}

	for _, unpaid := range []float64{0, 0.5, 1.0} {
		if err := settleSaleUnderpayment(db, cust.ID, 1, unpaid); err != nil {
			t.Fatalf("settle with unpaid %v: %v", unpaid, err)
		}
	}

	var count int64
	db.Model(&models.CustomerTransaction{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no ledger rows for unpaid <= 1, got %d", count)
	}
}

func TestSettleCreatesFreshUdhar(t *testing.T) {
	db := newTestDB(t)
	cust := models.Customer{Phone: "9876543210", Name: "Ravi", Rating: 5}
	if err := db.Create(&cust).Error; err != nil {
		t.Fatal(err)
	}

	if err := settleSaleUnderpayment(db, cust.ID, 7, 200); err != nil {
		t.Fatal(err)
	}

	var txns []models.CustomerTransaction
	db.Where("customer_id = ?", cust.ID).Find(&txns)
	if len(txns) != 1 {
		t.Fatalf("expected exactly 1 ledger row, got %d", len(txns))
	}

	txn := txns[0]
	if txn.Direction != models.Debit || txn.Type != "udhar" || txn.Amount != 200 {
		t.Fatalf("unexpected row: direction=%s type=%s amount=%v", txn.Direction, txn.Type, txn.Amount)
	}
	if !strings.Contains(txn.Description, "Udhar for Sale #7") || !strings.Contains(txn.Description, "unpaid") {
		t.Fatalf("unexpected description: %q", txn.Description)
	}

	if bal := models.CustomerBalance(txns); bal != -200 {
		t.Fatalf("balance = %v, want -200", bal)
	}
}

func TestSettleDeductsFromAdvance(t *testing.T) {
	db := newTestDB(t)
	cust := models.Customer{Phone: "9876543210", Name: "Ravi", Rating: 5}
	if err := db.Create(&cust).Error; err != nil {
		t.Fatal(err)
	}
	advance := models.CustomerTransaction{
		CustomerID: cust.ID,
		Direction:  models.Credit,
		Type:       "advance",
		Amount:     250,
	}
	if err := db.Create(&advance).Error; err != nil {
		t.Fatal(err)
	}

	if err := settleSaleUnderpayment(db, cust.ID, 8, 200); err != nil {
		t.Fatal(err)
	}

	var txns []models.CustomerTransaction
	db.Where("customer_id = ?", cust.ID).Order("id ASC").Find(&txns)
	if len(txns) != 2 {
		t.Fatalf("expected 2 ledger rows, got %d", len(txns))
	}

	settled := txns[1]
	if settled.Direction != models.Debit || settled.Amount != 200 {
		t.Fatalf("unexpected row: direction=%s amount=%v", settled.Direction, settled.Amount)
	}
	if !strings.Contains(settled.Description, "Deducted from advance for Sale #8") {
		t.Fatalf("unexpected description: %q", settled.Description)
	}

	if bal := models.CustomerBalance(txns); bal != 50 {
		t.Fatalf("balance = %v, want 50", bal)
	}
}

func TestSettleExportUnderpayment(t *testing.T) {
	db := newTestDB(t)
	cust := models.ExportCustomer{Phone: "9123456789", Name: "Mandi Trader"}
	if err := db.Create(&cust).Error; err != nil {
		t.Fatal(err)
	}

	if err := settleExportUnderpayment(db, cust.ID, 3, 1500); err != nil {
		t.Fatal(err)
	}

	var txns []models.ExportCustomerTransaction
	db.Where("customer_id = ?", cust.ID).Find(&txns)
	if len(txns) != 1 {
		t.Fatalf("expected 1 ledger row, got %d", len(txns))
	}
	if !strings.Contains(txns[0].Description, "Udhar for Export #3") {
		t.Fatalf("unexpected description: %q", txns[0].Description)
	}
	if bal := models.ExportCustomerBalance(txns); bal != -1500 {
		t.Fatalf("balance = %v, want -1500", bal)
	}
}

func TestDeductStock(t *testing.T) {
	db := newTestDB(t)
	p := models.Product{Name: "Rice 25kg", SKU: "RICE25", UnitPrice: 1200, CurrentStock: 10, IsActive: true}
	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	got, err := deductStock(db, p.ID, 3)
	if err != nil {
		t.Fatal(err)
	}
	if got.UnitPrice != 1200 {
		t.Fatalf("unexpected price snapshot source: %v", got.UnitPrice)
	}

	var reloaded models.Product
	db.First(&reloaded, p.ID)
	if reloaded.CurrentStock != 7 {
		t.Fatalf("stock = %d, want 7", reloaded.CurrentStock)
	}

	var mv models.InventoryMovement
	if err := db.Where("product_id = ?", p.ID).First(&mv).Error; err != nil {
		t.Fatalf("expected movement row: %v", err)
	}
	if mv.Type != models.MovementSale || mv.QuantityChange != -3 {
		t.Fatalf("unexpected movement: type=%s change=%d", mv.Type, mv.QuantityChange)
	}
}

func TestDeductStockInsufficient(t *testing.T) {
	db := newTestDB(t)
	p := models.Product{Name: "Sugar 1kg", SKU: "SUGAR1", UnitPrice: 45, CurrentStock: 2, IsActive: true}
	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	_, err := deductStock(db, p.ID, 5)
	if err == nil || !strings.Contains(err.Error(), "Insufficient stock") {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	var reloaded models.Product
	db.First(&reloaded, p.ID)
	if reloaded.CurrentStock != 2 {
		t.Fatalf("stock changed on failed deduction: %d", reloaded.CurrentStock)
	}

	var count int64
	db.Model(&models.InventoryMovement{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no movement rows, got %d", count)
	}
}

func TestDeductStockInactiveProduct(t *testing.T) {
	db := newTestDB(t)
	p := models.Product{Name: "Old Stock", SKU: "OLD001", UnitPrice: 10, CurrentStock: 50, IsActive: false}
	if err := db.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	if _, err := deductStock(db, p.ID, 1); err == nil {
		t.Fatal("expected error for inactive product, got nil")
	}
}
