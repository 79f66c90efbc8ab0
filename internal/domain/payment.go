package domain

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ============================================================
// Payment view
// ============================================================

// Payment is the read-only view of a receivable consumed by the
// boleto/CNAB core. The surrounding application owns the real payment
// record; the core never mutates it.
type Payment struct {
	// Identifier is monotonically increasing within a branch. It seeds
	// the "nosso número" and the CNAB document number, so it must fit
	// the width each bank reserves for it.
	Identifier int64           `json:"identifier"`
	Value      decimal.Decimal `json:"value"`
	OpenDate   time.Time       `json:"open_date"`
	DueDate    time.Time       `json:"due_date"`
	// Description feeds the "demonstrativo" lines of the printed bill.
	Description string `json:"description,omitempty"`
	Payer       Person `json:"payer"`
}

// Person is the payer (sacado) view: legal name, civil document and
// postal address.
type Person struct {
	Name string `json:"name"`
	// DocumentKind is "company" (CNPJ, 14 digits) or "individual"
	// (CPF, 11 digits).
	DocumentKind   string  `json:"document_kind"`
	DocumentDigits string  `json:"document_digits"`
	Address        Address `json:"address"`
}

// CNAB inscription type codes (tipo de inscrição).
const (
	DocumentIndividual = "individual"
	DocumentCompany    = "company"
)

// InscriptionType returns the CNAB "tipo de inscrição" code for the
// person's document: 1 for CPF, 2 for CNPJ.
func (p Person) InscriptionType() int {
	if p.DocumentKind == DocumentCompany {
		return 2
	}
	return 1
}

// Address is the payer postal address, already split the way CNAB
// segment Q wants it.
type Address struct {
	StreetNumberDetail string `json:"street_number_detail"`
	District           string `json:"district"`
	// PostalCode is "NNNNN-NNN"; the CNAB layout splits it into a
	// 5-digit prefix and a 3-digit suffix.
	PostalCode string `json:"postal_code"`
	City       string `json:"city"`
	State      string `json:"state"`
}

// PostalCodePrefix returns the first five digits of the postal code.
func (a Address) PostalCodePrefix() string {
	digits := OnlyDigits(a.PostalCode)
	if len(digits) >= 5 {
		return digits[:5]
	}
	return digits
}

// PostalCodeSuffix returns the last three digits of the postal code.
func (a Address) PostalCodeSuffix() string {
	digits := OnlyDigits(a.PostalCode)
	if len(digits) >= 8 {
		return digits[5:8]
	}
	return ""
}

// ============================================================
// Bank account and branch views
// ============================================================

// BankAccount identifies the destination account of a payment method
// together with the bank-specific emission options.
type BankAccount struct {
	// BankNumber is the 3-digit bank code (1..999) used to select the
	// bill-info implementation from the registry.
	BankNumber int `json:"bank_number"`
	// BankBranch and BankAccountNumber are "NNNN" or "NNNN-D"; the
	// verifier digit is optional.
	BankBranch        string `json:"bank_branch"`
	BankAccountNumber string `json:"bank_account"`
	// Options carries the per-bank option pairs (carteira, convênio,
	// código de transmissão...). Names are byte-exact keys used in the
	// CNAB and the printed bill.
	Options []BankOption `json:"options,omitempty"`
}

// BankOption is a single (name, value) pair persisted with the account.
type BankOption struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// OptionMap flattens the option list into a lookup map. Later entries
// win on duplicate names.
func (a BankAccount) OptionMap() map[string]string {
	m := make(map[string]string, len(a.Options))
	for _, opt := range a.Options {
		m[opt.Name] = opt.Value
	}
	return m
}

// Branch is the emitting company view: legal name and CNPJ.
type Branch struct {
	Name string `json:"name"`
	CNPJ string `json:"cnpj"`
}

// CNPJDigits returns the company document with punctuation stripped,
// the way CNAB fields want it.
func (b Branch) CNPJDigits() string {
	return OnlyDigits(b.CNPJ)
}

// OnlyDigits strips every non-decimal character from s.
func OnlyDigits(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
