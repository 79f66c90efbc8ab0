package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/viacerta/boleto-cnab-go/internal/domain"
	"github.com/viacerta/boleto-cnab-go/internal/handler"
	"github.com/viacerta/boleto-cnab-go/internal/infra/observability"
	"github.com/viacerta/boleto-cnab-go/internal/service"
)

func newRouter(t *testing.T) http.Handler {
	t.Helper()
	metrics := observability.NewMetrics()
	svc := service.NewEmission(zap.NewNop(), metrics, nil, nil, 4, 100)
	return handler.NewRouter(svc, metrics, zap.NewNop())
}

func renderRequest() domain.RenderRequest {
	return domain.RenderRequest{
		Payment: domain.Payment{
			Identifier: 1234,
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
		},
		Account: domain.BankAccount{
			BankNumber:        41,
			BankBranch:        "1102",
			BankAccountNumber: "9000150",
			Options: []domain.BankOption{
				{Name: "especie_documento", Value: "DM"},
			},
		},
		Branch: domain.Branch{Name: "Viacerta Cobranças Ltda", CNPJ: "12.345.678/0001-95"},
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
}

func TestRenderEndpoint(t *testing.T) {
	router := newRouter(t)
	rec := postJSON(t, router, "/v1/boletos/render", renderRequest())

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var payload domain.BillPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}
	if len(payload.Barcode) != 44 {
		t.Errorf("barcode = %q", payload.Barcode)
	}
	if payload.BankCodeDV != "041-8" {
		t.Errorf("bank code = %q", payload.BankCodeDV)
	}
}

func TestRenderEndpointUnknownBank(t *testing.T) {
	router := newRouter(t)
	req := renderRequest()
	req.Account.BankNumber = 999
	rec := postJSON(t, router, "/v1/boletos/render", req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestRenderEndpointMissingOption(t *testing.T) {
	router := newRouter(t)
	req := renderRequest()
	req.Account.BankNumber = 33 // requires codigo_transmissao
	rec := postJSON(t, router, "/v1/boletos/render", req)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Errorf("expected 422, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRenderEndpointBadBody(t *testing.T) {
	router := newRouter(t)
	req := httptest.NewRequest(http.MethodPost, "/v1/boletos/render", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestRemessaEndpoint(t *testing.T) {
	router := newRouter(t)
	base := renderRequest()
	rec := postJSON(t, router, "/v1/remessas", domain.RemessaRequest{
		Payments: []domain.Payment{base.Payment},
		Account:  base.Account,
		Branch:   base.Branch,
	})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.RemessaResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.RemessaID == "" || resp.RecordCount != 7 {
		t.Errorf("resp = %+v", resp)
	}
}

func TestBanksEndpoint(t *testing.T) {
	router := newRouter(t)
	req := httptest.NewRequest(http.MethodGet, "/v1/banks", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var resp struct {
		Banks []domain.RegisteredBank `json:"banks"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Banks) != 7 {
		t.Errorf("listed %d banks", len(resp.Banks))
	}
}

func TestValidateEndpoint(t *testing.T) {
	router := newRouter(t)

	rec := postJSON(t, router, "/v1/boletos/render", renderRequest())
	if rec.Code != http.StatusOK {
		t.Fatal(rec.Body.String())
	}
	var payload domain.BillPayload
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatal(err)
	}

	rec = postJSON(t, router, "/v1/barcodes/validate", domain.BarcodeValidationRequest{
		DigitableLine: payload.DigitableLine,
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var resp domain.BarcodeValidationResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if !resp.IsValid || resp.Barcode != payload.Barcode {
		t.Errorf("resp = %+v", resp)
	}
}
