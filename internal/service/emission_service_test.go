package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/viacerta/boleto-cnab-go/internal/domain"
	"github.com/viacerta/boleto-cnab-go/internal/infra/cache"
	"github.com/viacerta/boleto-cnab-go/internal/infra/observability"
	"github.com/viacerta/boleto-cnab-go/internal/port"
	"github.com/viacerta/boleto-cnab-go/internal/service"
)

var fixedNow = time.Date(2026, 9, 1, 14, 30, 0, 0, time.UTC)

func newService(t *testing.T) *service.Emission {
	t.Helper()
	return service.NewEmission(
		zap.NewNop(),
		observability.NewMetrics(),
		cache.New[domain.BillPayload](time.Minute),
		port.ClockFunc(func() time.Time { return fixedNow }),
		4, 100,
	)
}

func testPayment(id int64) domain.Payment {
	return domain.Payment{
		Identifier: id,
		Value:      decimal.RequireFromString("123.45"),
		OpenDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		DueDate:    time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		Payer: domain.Person{
			Name:           "João da Silva",
			DocumentKind:   domain.DocumentIndividual,
			DocumentDigits: "12345678909",
			Address: domain.Address{
				StreetNumberDetail: "Rua das Flores 123",
				District:           "Centro",
				PostalCode:         "01310-100",
				City:               "São Paulo",
				State:              "SP",
			},
		},
	}
}

func testAccount() domain.BankAccount {
	return domain.BankAccount{
		BankNumber:        41,
		BankBranch:        "1102",
		BankAccountNumber: "9000150",
		Options: []domain.BankOption{
			{Name: "especie_documento", Value: "DM"},
		},
	}
}

func testBranch() domain.Branch {
	return domain.Branch{Name: "Viacerta Cobranças Ltda", CNPJ: "12.345.678/0001-95"}
}

func TestRenderBillCached(t *testing.T) {
	svc := newService(t)
	req := &domain.RenderRequest{
		Payment: testPayment(1234),
		Account: testAccount(),
		Branch:  testBranch(),
	}
	first, err := svc.RenderBill(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	second, err := svc.RenderBill(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if first.Barcode != second.Barcode || first.DigitableLine != second.DigitableLine {
		t.Error("cached render differs from first render")
	}
}

func TestRenderBillUnknownBank(t *testing.T) {
	svc := newService(t)
	acc := testAccount()
	acc.BankNumber = 999
	_, err := svc.RenderBill(context.Background(), &domain.RenderRequest{
		Payment: testPayment(1234),
		Account: acc,
		Branch:  testBranch(),
	})
	if err == nil {
		t.Fatal("expected error for unknown bank")
	}
}

func TestRenderBatchPreservesOrder(t *testing.T) {
	svc := newService(t)
	req := &domain.RenderBatchRequest{
		Account: testAccount(),
		Branch:  testBranch(),
	}
	for i := int64(0); i < 20; i++ {
		req.Payments = append(req.Payments, testPayment(1000+i))
	}
	resp, err := svc.RenderBatch(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp.Bills) != 20 {
		t.Fatalf("rendered %d bills", len(resp.Bills))
	}
	for i, bill := range resp.Bills {
		wantDoc := testPayment(1000 + int64(i)).Identifier
		if bill.NumeroDoc != decimal.NewFromInt(wantDoc).String() {
			t.Errorf("bill %d: numero documento %s", i, bill.NumeroDoc)
		}
	}
}

func TestRenderBatchLimit(t *testing.T) {
	svc := service.NewEmission(zap.NewNop(), observability.NewMetrics(), nil, nil, 4, 2)
	req := &domain.RenderBatchRequest{
		Payments: []domain.Payment{testPayment(1), testPayment(2), testPayment(3)},
		Account:  testAccount(),
		Branch:   testBranch(),
	}
	if _, err := svc.RenderBatch(context.Background(), req); err == nil {
		t.Fatal("expected batch size error")
	}
}

func TestGenerateRemessa(t *testing.T) {
	svc := newService(t)
	resp, err := svc.GenerateRemessa(context.Background(), &domain.RemessaRequest{
		Payments: []domain.Payment{testPayment(1234)},
		Account:  testAccount(),
		Branch:   testBranch(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.RemessaID == "" {
		t.Error("remessa id missing")
	}
	if resp.RecordCount != 7 || resp.RecordSize != 240 {
		t.Errorf("resp = %+v", resp)
	}
	if len(resp.Content) != 7*(240+2) {
		t.Errorf("content length = %d", len(resp.Content))
	}
}

func TestValidateBarcodeRoundTrip(t *testing.T) {
	svc := newService(t)
	payload, err := svc.RenderBill(context.Background(), &domain.RenderRequest{
		Payment: testPayment(1234),
		Account: testAccount(),
		Branch:  testBranch(),
	})
	if err != nil {
		t.Fatal(err)
	}

	// Raw 44-digit barcode.
	resp, err := svc.ValidateBarcode(context.Background(), &domain.BarcodeValidationRequest{
		Barcode: payload.Barcode,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.IsValid {
		t.Fatalf("own barcode rejected: %v", resp.ValidationErrors)
	}
	if resp.BankCode != "041" {
		t.Errorf("bank code = %s", resp.BankCode)
	}
	if !resp.Amount.Equal(decimal.RequireFromString("123.45")) {
		t.Errorf("amount = %s", resp.Amount)
	}

	// Punctuated digitable line folds back to the same barcode.
	resp, err = svc.ValidateBarcode(context.Background(), &domain.BarcodeValidationRequest{
		DigitableLine: payload.DigitableLine,
	})
	if err != nil {
		t.Fatal(err)
	}
	if !resp.IsValid {
		t.Fatalf("own digitable line rejected: %v", resp.ValidationErrors)
	}
	if resp.Barcode != payload.Barcode {
		t.Errorf("rebuilt barcode = %s, want %s", resp.Barcode, payload.Barcode)
	}
}

func TestValidateBarcodeTampered(t *testing.T) {
	svc := newService(t)
	payload, err := svc.RenderBill(context.Background(), &domain.RenderRequest{
		Payment: testPayment(1234),
		Account: testAccount(),
		Branch:  testBranch(),
	})
	if err != nil {
		t.Fatal(err)
	}

	tampered := []byte(payload.Barcode)
	if tampered[20] == '9' {
		tampered[20] = '0'
	} else {
		tampered[20]++
	}
	resp, err := svc.ValidateBarcode(context.Background(), &domain.BarcodeValidationRequest{
		Barcode: string(tampered),
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.IsValid {
		t.Error("tampered barcode accepted")
	}
}

func TestValidateBarcodeBadLength(t *testing.T) {
	svc := newService(t)
	resp, err := svc.ValidateBarcode(context.Background(), &domain.BarcodeValidationRequest{
		Barcode: "123456",
	})
	if err != nil {
		t.Fatal(err)
	}
	if resp.IsValid || len(resp.ValidationErrors) == 0 {
		t.Error("short input accepted")
	}
}

func TestValidateBarcodeEmptyInput(t *testing.T) {
	svc := newService(t)
	if _, err := svc.ValidateBarcode(context.Background(), &domain.BarcodeValidationRequest{}); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestListBanks(t *testing.T) {
	svc := newService(t)
	banks := svc.ListBanks(context.Background())
	if len(banks) != 7 {
		t.Fatalf("listed %d banks", len(banks))
	}
}
