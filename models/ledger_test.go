package models

import "testing"

func TestNormalizeLedgerType(t *testing.T) {
	cases := map[string]LedgerDirection{
		"advance":     Credit,
		"credit":      Credit,
		"payment_in":  Credit,
		"udhar":       Debit,
		"debit":       Debit,
		"payment_out": Debit,
		"withdraw":    Debit,
	}
	for label, want := range cases {
		got, err := NormalizeLedgerType(label)
		if err != nil {
			t.Errorf("NormalizeLedgerType(%q) returned error: %v", label, err)
			continue
		}
		if got != want {
			t.Errorf("NormalizeLedgerType(%q) = %q, want %q", label, got, want)
		}
	}

	if _, err := NormalizeLedgerType("refund"); err == nil {
		t.Error("expected error for unknown label, got nil")
	}
	if _, err := NormalizeLedgerType(""); err == nil {
		t.Error("expected error for empty label, got nil")
	}
}

func TestCustomerBalanceOrderIndependent(t *testing.T) {
	txns := []CustomerTransaction{
		{Direction: Credit, Amount: 500},
		{Direction: Debit, Amount: 200},
		{Direction: Credit, Amount: 50},
		{Direction: Debit, Amount: 75},
	}
	want := 275.0

	if got := CustomerBalance(txns); got != want {
		t.Fatalf("CustomerBalance = %v, want %v", got, want)
	}

	reversed := []CustomerTransaction{txns[3], txns[2], txns[1], txns[0]}
	if got := CustomerBalance(reversed); got != want {
		t.Fatalf("CustomerBalance (reversed) = %v, want %v", got, want)
	}
}

func TestCustomerBalanceReflectsEdit(t *testing.T) {
	txns := []CustomerTransaction{
		{ID: 1, Direction: Credit, Amount: 500},
		{ID: 2, Direction: Debit, Amount: 200},
	}
	before := CustomerBalance(txns)

	// editing a row is equivalent to refolding with the new amount
	txns[1].Amount = 350
	after := CustomerBalance(txns)

	if before != 300 || after != 150 {
		t.Fatalf("balance before/after edit = %v/%v, want 300/150", before, after)
	}
}

func TestCustomerBalanceEmpty(t *testing.T) {
	if got := CustomerBalance(nil); got != 0 {
		t.Fatalf("CustomerBalance(nil) = %v, want 0", got)
	}
}

func TestExportCustomerBalance(t *testing.T) {
	txns := []ExportCustomerTransaction{
		{Direction: Credit, Amount: 1000},
		{Direction: Debit, Amount: 1500},
	}
	if got := ExportCustomerBalance(txns); got != -500 {
		t.Fatalf("ExportCustomerBalance = %v, want -500", got)
	}
}

func TestBalanceLabel(t *testing.T) {
	if got := BalanceLabel(120); got != "Advance" {
		t.Errorf("BalanceLabel(120) = %q, want Advance", got)
	}
	if got := BalanceLabel(0); got != "Advance" {
		t.Errorf("BalanceLabel(0) = %q, want Advance", got)
	}
	if got := BalanceLabel(-50); got != "Udhar" {
		t.Errorf("BalanceLabel(-50) = %q, want Udhar", got)
	}
}
