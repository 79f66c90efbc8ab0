package service

import (
	"context"
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/bank"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

// ValidateBarcode validates a barcode or digitable line of a received
// bill, checking every embedded verifier digit and extracting the bank
// code, amount and due date.
func (s *Emission) ValidateBarcode(ctx context.Context, req *domain.BarcodeValidationRequest) (*domain.BarcodeValidationResponse, error) {
	_, span := tracer.Start(ctx, "Emission.ValidateBarcode")
	defer span.End()

	input := req.DigitableLine
	if input == "" {
		input = req.Barcode
	}
	if input == "" {
		return nil, &domain.ErrValidation{Field: "digitable_line|barcode", Message: "at least one is required"}
	}
	clean := domain.OnlyDigits(input)

	resp := &domain.BarcodeValidationResponse{}
	var barcode string
	switch len(clean) {
	case 47:
		bc, errs := barcodeFromLine(clean)
		if len(errs) > 0 {
			resp.ValidationErrors = errs
			return resp, nil
		}
		barcode = bc
	case 44:
		barcode = clean
	default:
		resp.ValidationErrors = []string{
			fmt.Sprintf("input has %d digits, expected 44 (barcode) or 47 (digitable line)", len(clean)),
		}
		return resp, nil
	}

	if errs := verifyBarcode(barcode); len(errs) > 0 {
		resp.ValidationErrors = errs
		return resp, nil
	}

	line, err := bank.DigitableLine(barcode)
	if err != nil {
		return nil, err
	}

	resp.IsValid = true
	resp.Barcode = barcode
	resp.DigitableLine = line
	resp.BankCode = barcode[:3]
	resp.Amount = decimal.RequireFromString(barcode[9:19]).Shift(-2)
	if fator, err := strconv.Atoi(barcode[5:9]); err == nil && fator >= 1000 {
		resp.DueDate = bank.BarcodeEpoch.AddDate(0, 0, fator-1000).Format("2006-01-02")
	}
	return resp, nil
}

// barcodeFromLine rebuilds the 44-digit barcode from a 47-digit
// digitable line, checking the modulo-10 verifier of each block.
func barcodeFromLine(line string) (string, []string) {
	var errs []string
	blocks := []string{line[0:10], line[10:21], line[21:32]}
	for i, block := range blocks {
		body, dv := block[:len(block)-1], block[len(block)-1:]
		want, err := checkdigit.Modulo10(body)
		if err != nil {
			return "", []string{err.Error()}
		}
		if dv != strconv.Itoa(want) {
			errs = append(errs, fmt.Sprintf("block %d verifier is %s, want %d", i+1, dv, want))
		}
	}
	if len(errs) > 0 {
		return "", errs
	}
	// Positions: block 1 carries the bank, currency and free-field
	// head; blocks 2 and 3 the free-field tail; then the barcode
	// verifier and the factor-plus-value run.
	barcode := line[0:4] + line[32:33] + line[33:47] +
		line[4:9] + line[10:20] + line[21:31]
	return barcode, nil
}

// verifyBarcode checks the overall modulo-11 verifier at position 5.
func verifyBarcode(barcode string) []string {
	body := barcode[:4] + barcode[5:]
	want, err := bank.BarcodeDV(body)
	if err != nil {
		return []string{err.Error()}
	}
	if barcode[4:5] != strconv.Itoa(want) {
		return []string{fmt.Sprintf("barcode verifier is %s, want %d", barcode[4:5], want)}
	}
	return nil
}
