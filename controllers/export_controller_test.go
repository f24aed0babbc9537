package controllers

import (
	"net/http"
	"testing"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"

	"github.com/gin-gonic/gin"
)

func newExportRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.DB = newTestDB(t)

	r := gin.New()
	r.POST("/api/exports", CreateExportEntry)
	r.DELETE("/api/exports/:id", DeleteExportEntry)
	return r
}

func TestCreateExportEntrySplitPayments(t *testing.T) {
	r := newExportRouter(t)

	w := postJSON(t, r, "/api/exports", gin.H{
		"export_item_key": "wheat",
		"quantity":        100,
		"rate_per_unit":   25,
		"buyer_name":      "Mandi Trader",
		"buyer_phone":     "9123456789",
		"payments": []gin.H{
			{"mode": "cash", "amount": 1000},
			{"mode": "upi", "amount": 500},
		},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var entry models.ExportEntry
	if err := config.DB.First(&entry).Error; err != nil {
		t.Fatal(err)
	}
	// total is always derived, never trusted from the client
	if entry.TotalAmount != 2500 {
		t.Fatalf("total = %v, want 2500", entry.TotalAmount)
	}
	if entry.PaymentMode != "split" {
		t.Fatalf("payment mode = %q, want split", entry.PaymentMode)
	}
	if entry.Unit != "kg" {
		t.Fatalf("unit = %q, want kg default", entry.Unit)
	}

	var cust models.ExportCustomer
	if err := config.DB.Where("phone = ?", "9123456789").First(&cust).Error; err != nil {
		t.Fatalf("buyer profile not auto-created: %v", err)
	}

	var txns []models.ExportCustomerTransaction
	config.DB.Where("customer_id = ?", cust.ID).Find(&txns)
	if len(txns) != 1 {
		t.Fatalf("expected 1 settlement row, got %d", len(txns))
	}
	if txns[0].Amount != 1000 || txns[0].Direction != models.Debit {
		t.Fatalf("unexpected settlement: amount=%v direction=%s", txns[0].Amount, txns[0].Direction)
	}
}

func TestCreateExportEntrySingleModeKeepsMode(t *testing.T) {
	r := newExportRouter(t)

	w := postJSON(t, r, "/api/exports", gin.H{
		"export_item_key": "sarso",
		"quantity":        10,
		"rate_per_unit":   60,
		"payments":        []gin.H{{"mode": "upi", "amount": 600}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var entry models.ExportEntry
	if err := config.DB.First(&entry).Error; err != nil {
		t.Fatal(err)
	}
	if entry.PaymentMode != "upi" {
		t.Fatalf("payment mode = %q, want upi", entry.PaymentMode)
	}
}

func TestCreateExportEntryUnknownItem(t *testing.T) {
	r := newExportRouter(t)

	w := postJSON(t, r, "/api/exports", gin.H{
		"export_item_key": "maize",
		"quantity":        10,
		"rate_per_unit":   20,
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
