package models

import "testing"

func TestSaleTotal(t *testing.T) {
	sale := Sale{Items: []SaleItem{
		{Quantity: 3, PriceAtSale: 40},
		{Quantity: 1, PriceAtSale: 250},
	}}
	if got := sale.Total(); got != 370 {
		t.Fatalf("Total = %v, want 370", got)
	}
}

func TestSaleTotalPaidPrefersPayments(t *testing.T) {
	sale := Sale{
		AmountPaid: 999,
		Payments: []SalePayment{
			{PaymentMode: "cash", Amount: 100},
			{PaymentMode: "upi", Amount: 150},
		},
	}
	if got := sale.TotalPaid(); got != 250 {
		t.Fatalf("TotalPaid = %v, want 250", got)
	}
}

func TestSaleTotalPaidLegacyFallback(t *testing.T) {
	sale := Sale{AmountPaid: 420}
	if got := sale.TotalPaid(); got != 420 {
		t.Fatalf("TotalPaid = %v, want 420 (legacy amount_paid)", got)
	}
}
