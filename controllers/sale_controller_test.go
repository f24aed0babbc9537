package controllers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/abhishekkumar914/inventory-management/config"
	"github.com/abhishekkumar914/inventory-management/models"

	"github.com/gin-gonic/gin"
)

func newSaleRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.DB = newTestDB(t)

	r := gin.New()
	r.POST("/api/sales", CreateSale)
	r.DELETE("/api/sales/:id", DeleteSale)
	return r
}

func postJSON(t *testing.T, r *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	b, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateSaleUnderpaidSettlesUdhar(t *testing.T) {
	r := newSaleRouter(t)

	p := models.Product{Name: "Rice 25kg", SKU: "RICE25", UnitPrice: 1200, CurrentStock: 10, IsActive: true}
	if err := config.DB.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	w := postJSON(t, r, "/api/sales", gin.H{
		"customer_name": "Ravi Kumar",
		"phone":         "9876543210",
		"payments":      []gin.H{{"mode": "cash", "amount": 1000}},
		"items":         []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var cust models.Customer
	if err := config.DB.Where("phone = ?", "9876543210").First(&cust).Error; err != nil {
		t.Fatalf("customer not auto-created: %v", err)
	}
	if cust.Name != "Ravi Kumar" {
		t.Fatalf("customer name = %q", cust.Name)
	}

	var txns []models.CustomerTransaction
	config.DB.Where("customer_id = ?", cust.ID).Find(&txns)
	if len(txns) != 1 {
		t.Fatalf("expected 1 settlement row, got %d", len(txns))
	}
	if txns[0].Direction != models.Debit || txns[0].Amount != 200 {
		t.Fatalf("unexpected settlement: direction=%s amount=%v", txns[0].Direction, txns[0].Amount)
	}

	var reloaded models.Product
	config.DB.First(&reloaded, p.ID)
	if reloaded.CurrentStock != 9 {
		t.Fatalf("stock = %d, want 9", reloaded.CurrentStock)
	}
}

func TestCreateSaleFullyPaidLeavesLedgerAlone(t *testing.T) {
	r := newSaleRouter(t)

	p := models.Product{Name: "Sugar 1kg", SKU: "SUGAR1", UnitPrice: 45, CurrentStock: 20, IsActive: true}
	if err := config.DB.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	w := postJSON(t, r, "/api/sales", gin.H{
		"customer_name": "Meena",
		"phone":         "9123456789",
		"payments":      []gin.H{{"mode": "upi", "amount": 90}},
		"items":         []gin.H{{"product_id": p.ID, "quantity": 2}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var count int64
	config.DB.Model(&models.CustomerTransaction{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no ledger rows for fully paid sale, got %d", count)
	}
}

func TestCreateSaleWithoutPhoneSkipsKhata(t *testing.T) {
	r := newSaleRouter(t)

	p := models.Product{Name: "Salt", SKU: "SALT01", UnitPrice: 20, CurrentStock: 5, IsActive: true}
	if err := config.DB.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	// no phone, nothing paid: stays a walk-in cash sale, no customer row
	w := postJSON(t, r, "/api/sales", gin.H{
		"items": []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var sale models.Sale
	if err := config.DB.First(&sale).Error; err != nil {
		t.Fatal(err)
	}
	if sale.CustomerName != walkInCustomer {
		t.Fatalf("customer name = %q, want %q", sale.CustomerName, walkInCustomer)
	}

	var customers int64
	config.DB.Model(&models.Customer{}).Count(&customers)
	if customers != 0 {
		t.Fatalf("expected no customer rows, got %d", customers)
	}
}

func TestCreateSaleInsufficientStockRollsBack(t *testing.T) {
	r := newSaleRouter(t)

	p := models.Product{Name: "Oil 1L", SKU: "OIL001", UnitPrice: 150, CurrentStock: 1, IsActive: true}
	if err := config.DB.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	w := postJSON(t, r, "/api/sales", gin.H{
		"phone": "9876543210",
		"items": []gin.H{{"product_id": p.ID, "quantity": 3}},
	})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var sales int64
	config.DB.Model(&models.Sale{}).Count(&sales)
	if sales != 0 {
		t.Fatalf("expected rollback, found %d sales", sales)
	}

	var reloaded models.Product
	config.DB.First(&reloaded, p.ID)
	if reloaded.CurrentStock != 1 {
		t.Fatalf("stock = %d, want 1 after rollback", reloaded.CurrentStock)
	}
}

func TestDeleteSaleKeepsLedgerAndStock(t *testing.T) {
	r := newSaleRouter(t)

	p := models.Product{Name: "Atta 10kg", SKU: "ATTA10", UnitPrice: 400, CurrentStock: 10, IsActive: true}
	if err := config.DB.Create(&p).Error; err != nil {
		t.Fatal(err)
	}

	w := postJSON(t, r, "/api/sales", gin.H{
		"customer_name": "Sanjay",
		"phone":         "9876543210",
		"payments":      []gin.H{{"mode": "cash", "amount": 100}},
		"items":         []gin.H{{"product_id": p.ID, "quantity": 1}},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	var sale models.Sale
	if err := config.DB.First(&sale).Error; err != nil {
		t.Fatal(err)
	}

	req := httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/api/sales/%d", sale.ID), nil)
	del := httptest.NewRecorder()
	r.ServeHTTP(del, req)
	if del.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body = %s", del.Code, del.Body.String())
	}

	var sales int64
	config.DB.Model(&models.Sale{}).Count(&sales)
	if sales != 0 {
		t.Fatalf("sale still present after delete")
	}

	// the udhar row from the under-payment stays on the khata
	var txns int64
	config.DB.Model(&models.CustomerTransaction{}).Count(&txns)
	if txns != 1 {
		t.Fatalf("expected settlement row to survive delete, got %d", txns)
	}

	// stock is not restored either
	var reloaded models.Product
	config.DB.First(&reloaded, p.ID)
	if reloaded.CurrentStock != 9 {
		t.Fatalf("stock = %d, want 9 (no restore on delete)", reloaded.CurrentStock)
	}
}
