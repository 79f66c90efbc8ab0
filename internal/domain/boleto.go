package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Printable bill payload
// ============================================================

// BillPayload is everything a renderer needs to print one boleto.
// It is fully computed; no field requires further bank logic.
type BillPayload struct {
	BankNumber    int    `json:"bank_number"`
	BankCodeDV    string `json:"bank_code_dv"` // "NNN-D"
	Barcode       string `json:"barcode"`      // 44 ASCII digits
	DigitableLine string `json:"digitable_line"`

	NossoNumero   string `json:"nosso_numero"`
	AgenciaConta  string `json:"agencia_conta"`
	Carteira      string `json:"carteira,omitempty"`
	EspecieDoc    string `json:"especie_documento,omitempty"`
	NumeroDoc     string `json:"numero_documento"`

	Value          decimal.Decimal `json:"value"`
	DueDate        time.Time       `json:"due_date"`
	OpenDate       time.Time       `json:"open_date"`
	ProcessingDate time.Time       `json:"processing_date"`

	Payer  Person `json:"payer"`
	Branch Branch `json:"branch"`

	Demonstrativo []string `json:"demonstrativo,omitempty"`
	Instrucoes    []string `json:"instrucoes,omitempty"` // at most 4 lines
}

// ============================================================
// API request/response types
// ============================================================

// RenderRequest is the body for POST /v1/boletos/render.
type RenderRequest struct {
	Payment Payment     `json:"payment"`
	Account BankAccount `json:"account"`
	Branch  Branch      `json:"branch"`
	// Instrucoes are optional instruction lines printed on the bill
	// (at most 4; extra lines are rejected).
	Instrucoes []string `json:"instrucoes,omitempty"`
}

// RenderBatchRequest is the body for POST /v1/boletos/render-batch.
// All payments share the account and branch.
type RenderBatchRequest struct {
	Payments   []Payment   `json:"payments"`
	Account    BankAccount `json:"account"`
	Branch     Branch      `json:"branch"`
	Instrucoes []string    `json:"instrucoes,omitempty"`
}

// RenderBatchResponse is returned by POST /v1/boletos/render-batch.
type RenderBatchResponse struct {
	Bills []BillPayload `json:"bills"`
}

// RemessaRequest is the body for POST /v1/remessas. The payments must
// share the bank account; the CNAB file covers the whole batch.
type RemessaRequest struct {
	Payments []Payment   `json:"payments"`
	Account  BankAccount `json:"account"`
	Branch   Branch      `json:"branch"`
}

// RemessaResponse is returned by POST /v1/remessas.
type RemessaResponse struct {
	RemessaID   string `json:"remessa_id"`
	BankNumber  int    `json:"bank_number"`
	RecordCount int    `json:"record_count"`
	RecordSize  int    `json:"record_size"`
	// Content is the full CNAB byte stream, CRLF separators included.
	Content string `json:"content"`
}

// RegisteredBank describes one entry of the bank registry for
// GET /v1/banks.
type RegisteredBank struct {
	Number      int    `json:"number"`
	Description string `json:"description"`
	CodeDV      string `json:"code_dv"`
	RecordSize  int    `json:"record_size"`
}

// EmissionMetrics is the aggregate snapshot returned by
// GET /v1/metrics/emission.
type EmissionMetrics struct {
	TotalRequests  int64   `json:"total_requests"`
	BillsRendered  int64   `json:"bills_rendered"`
	RemessaFiles   int64   `json:"remessa_files"`
	RemessaRecords int64   `json:"remessa_records"`
	ErrorRate      float64 `json:"error_rate"`
	CacheHitRate   float64 `json:"cache_hit_rate"`
	Period         string  `json:"period"`
}

// ============================================================
// Barcode validation (inbound bills)
// ============================================================

// BarcodeValidationRequest is sent to validate a barcode or digitable
// line of a received bill.
type BarcodeValidationRequest struct {
	Barcode       string `json:"barcode,omitempty"`        // 44 digits
	DigitableLine string `json:"digitable_line,omitempty"` // 47 digits
}

// BarcodeValidationResponse contains validated barcode data.
type BarcodeValidationResponse struct {
	IsValid          bool            `json:"is_valid"`
	Barcode          string          `json:"barcode,omitempty"`
	DigitableLine    string          `json:"digitable_line,omitempty"`
	BankCode         string          `json:"bank_code,omitempty"`
	Amount           decimal.Decimal `json:"amount,omitempty"`
	DueDate          string          `json:"due_date,omitempty"`
	ValidationErrors []string        `json:"validation_errors,omitempty"`
}
