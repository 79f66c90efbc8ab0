// Package bank implements the bill-info model of each supported bank:
// barcode and digitable-line computation, nosso-número formatting with
// verifier digits, option validation and the CNAB layout each bank
// pins. Banks register themselves in the process-wide registry at
// package initialization.
package bank

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

// BarcodeEpoch is the reference date of the "fator de vencimento".
var BarcodeEpoch = time.Date(2000, time.July, 3, 0, 0, 0, 0, time.UTC)

// BillInfo is the computed view of one payment under one bank's rules.
// Everything is derived at construction; instances are transient and
// share no mutable state.
type BillInfo interface {
	cnab.ValueSource

	BankNumber() int
	Description() string
	Payment() domain.Payment
	Account() domain.BankAccount

	// Barcode is the 44-digit ASCII barcode.
	Barcode() string
	// DigitableLine is the 47-digit typable line with its fixed
	// punctuation.
	DigitableLine() string
	// NossoNumero is the raw bank-assigned document identifier;
	// FormatNossoNumero is its display form with verifier digits.
	NossoNumero() string
	FormatNossoNumero() string
	AgenciaConta() string
	// BankCodeDV is "NNN-D".
	BankCodeDV() string
	Carteira() string
	EspecieDocumento() string

	// SetInstrucoes replaces the printed instruction lines (at most 4).
	SetInstrucoes(lines []string) error
	Instrucoes() []string
	Demonstrativo() []string

	// Layout is the CNAB layout the bank pins for remittance files.
	Layout() cnab.Layout
	// DetailValues supplies the per-payment values of the detail
	// records (segments P/Q/R, or the CNAB-400 transaction record).
	DetailValues() map[string]any
}

// FatorVencimento converts a due date into the 4-digit barcode factor:
// days since 2000-07-03 plus 1000. The factor hit 9999 on 2025-02-21
// and restarted at 1000, so the day count wraps modulo 9000. Due dates
// before the epoch are rejected.
func FatorVencimento(due time.Time) (int, error) {
	due = time.Date(due.Year(), due.Month(), due.Day(), 0, 0, 0, 0, time.UTC)
	days := int(due.Sub(BarcodeEpoch).Hours() / 24)
	if days < 0 {
		return 0, &domain.ErrBadDueDate{Due: due.Format("2006-01-02")}
	}
	return 1000 + days%9000, nil
}

// BarcodeDV computes the barcode verifier over the 43-digit body (the
// barcode with the verifier slot elided). Modulo-11 edge results 10
// and 11 (and the impossible 0) collapse to 1.
func BarcodeDV(body string) (int, error) {
	m, err := checkdigit.Modulo11(body, 9, true)
	if err != nil {
		return 0, err
	}
	if m == 0 || m >= 10 {
		return 1, nil
	}
	return m, nil
}

// BankCodeDV formats a bank number as "NNN-D".
func BankCodeDV(number int) string {
	code := fmt.Sprintf("%03d", number)
	dv, err := checkdigit.DV11(code)
	if err != nil {
		return code
	}
	return fmt.Sprintf("%s-%d", code, dv)
}

// ============================================================
// Option schema
// ============================================================

// optionKind tells where an option's value comes from.
type optionKind int

const (
	// optCustom is a free value stored with the account options.
	optCustom optionKind = iota
	// optBranchDerived is taken from the account's branch field.
	optBranchDerived
	// optAccountDerived is taken from the account's account field.
	optAccountDerived
)

type optionSchema map[string]optionKind

// ============================================================
// Shared bill-info base
// ============================================================

// info carries everything the banks share. Concrete banks embed it and
// fill the bank-specific parts (nosso número, campo livre, layout)
// before calling finish.
type info struct {
	number      int
	description string
	payment     domain.Payment
	account     domain.BankAccount
	opts        map[string]string

	agencia   string // digits only, verifier stripped
	dvAgencia string
	conta     string
	dvConta   string

	nossoNumero string
	formattedNN string
	cnabNN      string // text form for the 20-position CNAB slot
	carteira    string

	barcode       string
	digitableLine string

	layout     cnab.Layout
	fileValues map[string]any
	instrucoes []string
}

func newInfo(number int, description string, p domain.Payment, acc domain.BankAccount) *info {
	return &info{
		number:      number,
		description: description,
		payment:     p,
		account:     acc,
		opts:        acc.OptionMap(),
		fileValues:  map[string]any{},
	}
}

// splitDV splits "NNNN-D" into digits and optional verifier.
func splitDV(s string) (digits, dv string) {
	parts := strings.SplitN(s, "-", 2)
	digits = domain.OnlyDigits(parts[0])
	if len(parts) == 2 {
		dv = strings.TrimSpace(parts[1])
	}
	return digits, dv
}

// loadOptions checks the bank's option schema and fills the derived
// agência/conta parts. Custom options must be present in the account.
func (b *info) loadOptions(required optionSchema) error {
	for name, kind := range required {
		switch kind {
		case optBranchDerived:
			if strings.TrimSpace(b.account.BankBranch) == "" {
				return &domain.ErrMissingOption{Bank: b.description, Option: name}
			}
		case optAccountDerived:
			if strings.TrimSpace(b.account.BankAccountNumber) == "" {
				return &domain.ErrMissingOption{Bank: b.description, Option: name}
			}
		case optCustom:
			if _, ok := b.opts[name]; !ok {
				return &domain.ErrMissingOption{Bank: b.description, Option: name}
			}
		}
	}
	b.agencia, b.dvAgencia = splitDV(b.account.BankBranch)
	b.conta, b.dvConta = splitDV(b.account.BankAccountNumber)
	if b.agencia == "" {
		return &domain.ErrInvalidOption{Option: "agencia", Reason: "no digits in bank branch"}
	}
	if b.conta == "" {
		return &domain.ErrInvalidOption{Option: "conta", Reason: "no digits in bank account"}
	}
	return nil
}

// checkFieldDV verifies a user-supplied verifier digit against fn.
// Banks that publish an agência/conta verifier rule call this for each
// part that carries one.
func checkFieldDV(option, digits, dv string, fn func(string) (int, error)) error {
	if dv == "" {
		return nil
	}
	want, err := fn(digits)
	if err != nil {
		return &domain.ErrInvalidOption{Option: option, Reason: err.Error()}
	}
	if dv != strconv.Itoa(want) {
		return &domain.ErrInvalidOption{
			Option: option,
			Reason: fmt.Sprintf("verifier digit %s does not match computed %d", dv, want),
		}
	}
	return nil
}

// FEBRABAN "espécie do título" codes, keyed by mnemonic.
var especieCodes = map[string]int{
	"CH": 1, "DM": 2, "DMI": 3, "DS": 4, "DSI": 5, "DR": 6,
	"LC": 7, "NCC": 8, "NCE": 9, "NCI": 10, "NCR": 11, "NP": 12,
	"NPR": 13, "TM": 14, "TS": 15, "NS": 16, "RC": 17, "FAT": 18,
	"ND": 19, "AP": 20, "ME": 21, "PC": 22, "OU": 99,
}

// especieCode maps a document species mnemonic to its CNAB numeric
// code. Already-numeric values pass through untouched; unknown
// mnemonics fall back to 99 ("outros").
func especieCode(v string) any {
	if digits := domain.OnlyDigits(v); digits == v && v != "" {
		return v
	}
	if code, ok := especieCodes[strings.ToUpper(v)]; ok {
		return code
	}
	return 99
}

// padNum left-pads the digits of v to width, failing when it does not fit.
func padNum(name, v string, width int) (string, error) {
	digits := domain.OnlyDigits(v)
	if len(digits) > width {
		return "", &domain.ErrFieldTooLong{Field: name, Value: digits, Size: width}
	}
	return strings.Repeat("0", width-len(digits)) + digits, nil
}

// padID left-pads a payment identifier to width.
func padID(name string, id int64, width int) (string, error) {
	return padNum(name, strconv.FormatInt(id, 10), width)
}

// finish computes the barcode and digitable line from the bank's
// 25-character free field and fills the shared file values.
func (b *info) finish(campoLivre string) error {
	if len(campoLivre) != 25 {
		return &domain.ErrFieldTooLong{Field: "campo_livre", Value: campoLivre, Size: 25}
	}
	fator, err := FatorVencimento(b.payment.DueDate)
	if err != nil {
		return err
	}
	centavos := b.payment.Value.Shift(2).Floor()
	if centavos.IsNegative() {
		return &domain.ErrNegativeNotAllowed{Field: "valor", Value: b.payment.Value.String()}
	}
	valueDigits := centavos.BigInt().String()
	if len(valueDigits) > 10 {
		return &domain.ErrFieldTooLong{Field: "valor", Value: valueDigits, Size: 10}
	}
	valueDigits = strings.Repeat("0", 10-len(valueDigits)) + valueDigits

	body := fmt.Sprintf("%03d9%04d%s%s", b.number, fator, valueDigits, campoLivre)
	dv, err := BarcodeDV(body)
	if err != nil {
		return err
	}
	b.barcode = body[:4] + strconv.Itoa(dv) + body[4:]

	line, err := DigitableLine(b.barcode)
	if err != nil {
		return err
	}
	b.digitableLine = line

	if b.cnabNN == "" {
		b.cnabNN = b.nossoNumero
	}
	b.fileValues["codigo_banco"] = b.number
	b.fileValues["agencia"] = b.agencia
	b.fileValues["dv_agencia"] = b.dvAgencia
	b.fileValues["conta"] = b.conta
	b.fileValues["dv_conta"] = b.dvConta
	if b.carteira != "" {
		b.fileValues["carteira"] = b.carteira
	}
	if especie, ok := b.opts["especie_documento"]; ok {
		b.fileValues["especie_documento"] = especieCode(especie)
	}
	if convenio, ok := b.opts["convenio"]; ok {
		b.fileValues["convenio"] = convenio
	}
	return nil
}

// DigitableLine derives the typable line from a 44-digit barcode:
// three blocks with their own modulo-10 verifiers, the barcode
// verifier, and the factor-plus-value block.
func DigitableLine(barcode string) (string, error) {
	if len(barcode) != 44 {
		return "", &domain.ErrInvalidBarcode{Input: barcode, Reason: "must have 44 digits"}
	}
	format := func(block string, split int) (string, error) {
		dv, err := checkdigit.Modulo10(block)
		if err != nil {
			return "", err
		}
		full := block + strconv.Itoa(dv)
		return full[:split] + "." + full[split:], nil
	}
	campo1, err := format(barcode[0:4]+barcode[19:24], 5)
	if err != nil {
		return "", err
	}
	campo2, err := format(barcode[24:34], 5)
	if err != nil {
		return "", err
	}
	campo3, err := format(barcode[34:44], 5)
	if err != nil {
		return "", err
	}
	return strings.Join([]string{
		campo1, campo2, campo3, barcode[4:5], barcode[5:19],
	}, " "), nil
}

// ============================================================
// Shared accessors
// ============================================================

func (b *info) BankNumber() int { return b.number }
func (b *info) Description() string { return b.description }
func (b *info) Payment() domain.Payment { return b.payment }
func (b *info) Account() domain.BankAccount { return b.account }
func (b *info) Barcode() string { return b.barcode }
func (b *info) DigitableLine() string { return b.digitableLine }
func (b *info) NossoNumero() string { return b.nossoNumero }
func (b *info) FormatNossoNumero() string { return b.formattedNN }
func (b *info) Carteira() string { return b.carteira }
func (b *info) EspecieDocumento() string { return b.opts["especie_documento"] }
func (b *info) Layout() cnab.Layout { return b.layout }
func (b *info) BankCodeDV() string { return BankCodeDV(b.number) }

func (b *info) AgenciaConta() string {
	return fmt.Sprintf("%s / %s", b.account.BankBranch, b.account.BankAccountNumber)
}

// SetInstrucoes replaces the instruction lines (at most 4).
func (b *info) SetInstrucoes(lines []string) error {
	if len(lines) > 4 {
		return &domain.ErrValidation{Field: "instrucoes", Message: "at most 4 lines"}
	}
	b.instrucoes = lines
	return nil
}

func (b *info) Instrucoes() []string { return b.instrucoes }

// Demonstrativo is the free-text block of the printed bill.
func (b *info) Demonstrativo() []string {
	if strings.TrimSpace(b.payment.Description) == "" {
		return nil
	}
	return strings.Split(b.payment.Description, "\n")
}

// CnabValue implements cnab.ValueSource with the bank-wide fields.
func (b *info) CnabValue(name string) (any, bool) {
	v, ok := b.fileValues[name]
	return v, ok
}

// DetailValues returns the per-payment values for the detail segments.
func (b *info) DetailValues() map[string]any {
	p := b.payment
	return map[string]any{
		"nosso_numero":          b.cnabNN,
		"numero_documento":      strconv.FormatInt(p.Identifier, 10),
		"vencimento":            p.DueDate.Format("02012006"),
		"data_emissao":          p.OpenDate.Format("02012006"),
		"valor":                 p.Value,
		"sacado_inscricao_tipo": p.Payer.InscriptionType(),
		"sacado_inscricao":      p.Payer.DocumentDigits,
		"sacado_nome":           p.Payer.Name,
		"sacado_endereco":       p.Payer.Address.StreetNumberDetail,
		"sacado_bairro":         p.Payer.Address.District,
		"sacado_cep":            p.Payer.Address.PostalCodePrefix(),
		"sacado_cep_sufixo":     p.Payer.Address.PostalCodeSuffix(),
		"sacado_cidade":         p.Payer.Address.City,
		"sacado_uf":             p.Payer.Address.State,
	}
}
