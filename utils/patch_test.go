package utils

import (
	"testing"
)

type patchDTO struct {
	CustomerName *string  `json:"customer_name"`
	LoanAmount   *float64 `json:"loan_amount"`
	Skipped      *string  `json:"-"`
	Percentage   *float64 `json:"payout_percentage,omitempty"`
}

func strPtr(s string) *string       { return &s }
func floatPtr(f float64) *float64   { return &f }

func TestUpdatesFromPtrDTOSkipsNilFields(t *testing.T) {
	dto := patchDTO{
		CustomerName: strPtr("ACME"),
		Skipped:      strPtr("never"),
	}

	got := UpdatesFromPtrDTO(&dto, nil)
	if len(got) != 1 {
		t.Fatalf("expected 1 update, got %v", got)
	}
	if got["customer_name"] != "ACME" {
		t.Fatalf("customer_name = %v", got["customer_name"])
	}
}

func TestUpdatesFromPtrDTOUsesTagBeforeComma(t *testing.T) {
	dto := patchDTO{Percentage: floatPtr(2.5)}

	got := UpdatesFromPtrDTO(&dto, nil)
	if got["payout_percentage"] != 2.5 {
		t.Fatalf("expected payout_percentage=2.5, got %v", got)
	}
}

func TestUpdatesFromPtrDTORenames(t *testing.T) {
	dto := patchDTO{LoanAmount: floatPtr(100)}

	got := UpdatesFromPtrDTO(&dto, map[string]string{"loan_amount": "amount"})
	if _, ok := got["loan_amount"]; ok {
		t.Fatal("renamed key must not keep its json name")
	}
	if got["amount"] != float64(100) {
		t.Fatalf("amount = %v", got["amount"])
	}
}

func TestNormalizePtrDTO(t *testing.T) {
	dto := patchDTO{
		CustomerName: strPtr("  ACME  "),
		LoanAmount:   floatPtr(100.009),
	}

	NormalizePtrDTO(&dto)
	if *dto.CustomerName != "ACME" {
		t.Fatalf("name not trimmed: %q", *dto.CustomerName)
	}
	if *dto.LoanAmount != 100.01 {
		t.Fatalf("amount not rounded: %v", *dto.LoanAmount)
	}
	if dto.Percentage != nil {
		t.Fatal("nil fields must stay nil")
	}
}

func TestNormalizeDTO(t *testing.T) {
	dto := struct {
		Name   string
		Amount float64
	}{Name: " x ", Amount: 1.006}

	NormalizeDTO(&dto)
	if dto.Name != "x" || dto.Amount != 1.01 {
		t.Fatalf("got %+v", dto)
	}
}
