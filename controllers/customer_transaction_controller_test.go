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

func newKhataRouter(t *testing.T) (*gin.Engine, models.Customer) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.DB = newTestDB(t)

	cust := models.Customer{Phone: "9876543210", Name: "Ravi", Rating: 5}
	if err := config.DB.Create(&cust).Error; err != nil {
		t.Fatal(err)
	}

	r := gin.New()
	r.GET("/api/customers/:id/balance", GetCustomerBalance)
	r.POST("/api/customers/:id/transactions", CreateCustomerTransaction)
	r.PUT("/api/customers/:id/transactions/:txnId", UpdateCustomerTransaction)
	r.DELETE("/api/customers/:id/transactions/:txnId", DeleteCustomerTransaction)
	return r, cust
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateTransactionNormalizesLabel(t *testing.T) {
	r, cust := newKhataRouter(t)
	base := fmt.Sprintf("/api/customers/%d/transactions", cust.ID)

	w := doJSON(t, r, http.MethodPost, base, gin.H{"type": "advance", "amount": 500})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	w = doJSON(t, r, http.MethodPost, base, gin.H{"type": "withdraw", "amount": 200, "description": "cash out"})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var txns []models.CustomerTransaction
	config.DB.Where("customer_id = ?", cust.ID).Order("id ASC").Find(&txns)
	if len(txns) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(txns))
	}
	if txns[0].Direction != models.Credit || txns[1].Direction != models.Debit {
		t.Fatalf("directions = %s/%s, want credit/debit", txns[0].Direction, txns[1].Direction)
	}
	// the legacy label is preserved for display
	if txns[1].Type != "withdraw" {
		t.Fatalf("label = %q, want withdraw", txns[1].Type)
	}

	if bal := models.CustomerBalance(txns); bal != 300 {
		t.Fatalf("balance = %v, want 300", bal)
	}
}

func TestCreateTransactionRejectsUnknownLabel(t *testing.T) {
	r, cust := newKhataRouter(t)

	w := doJSON(t, r, http.MethodPost,
		fmt.Sprintf("/api/customers/%d/transactions", cust.ID),
		gin.H{"type": "refund", "amount": 100})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}

	var count int64
	config.DB.Model(&models.CustomerTransaction{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no rows, got %d", count)
	}
}

func TestUpdateTransactionRefoldsBalance(t *testing.T) {
	r, cust := newKhataRouter(t)

	txn := models.CustomerTransaction{
		CustomerID: cust.ID, Direction: models.Debit, Type: "udhar", Amount: 200,
	}
	if err := config.DB.Create(&txn).Error; err != nil {
		t.Fatal(err)
	}
	originalDate := txn.TransactionDate

	w := doJSON(t, r, http.MethodPut,
		fmt.Sprintf("/api/customers/%d/transactions/%d", cust.ID, txn.ID),
		gin.H{"amount": 350})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var reloaded models.CustomerTransaction
	config.DB.First(&reloaded, txn.ID)
	if reloaded.Amount != 350 {
		t.Fatalf("amount = %v, want 350", reloaded.Amount)
	}
	if !reloaded.TransactionDate.Equal(originalDate) {
		t.Fatal("transaction date changed on edit")
	}

	bal, _ := customerBalanceTx(config.DB, cust.ID)
	if bal != -350 {
		t.Fatalf("balance = %v, want -350", bal)
	}
}

func TestDeleteTransactionRefoldsBalance(t *testing.T) {
	r, cust := newKhataRouter(t)

	keep := models.CustomerTransaction{CustomerID: cust.ID, Direction: models.Credit, Type: "advance", Amount: 500}
	drop := models.CustomerTransaction{CustomerID: cust.ID, Direction: models.Debit, Type: "udhar", Amount: 200}
	if err := config.DB.Create(&keep).Error; err != nil {
		t.Fatal(err)
	}
	if err := config.DB.Create(&drop).Error; err != nil {
		t.Fatal(err)
	}

	w := doJSON(t, r, http.MethodDelete,
		fmt.Sprintf("/api/customers/%d/transactions/%d", cust.ID, drop.ID), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	bal, _ := customerBalanceTx(config.DB, cust.ID)
	if bal != 500 {
		t.Fatalf("balance = %v, want 500", bal)
	}
}
