// Package checkdigit implements the check-digit algorithms used by
// Brazilian bank bills: modulo 10, modulo 11 with configurable weight
// sequence, the Banrisul "duplo dígito" and the Luhn check used for
// civil documents.
package checkdigit

import (
	"strconv"

	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

func digitsOf(s string) ([]int, error) {
	if s == "" {
		return nil, &domain.ErrBadDigit{Input: s}
	}
	out := make([]int, len(s))
	for i, r := range s {
		if r < '0' || r > '9' {
			return nil, &domain.ErrBadDigit{Input: s}
		}
		out[i] = int(r - '0')
	}
	return out, nil
}

// Modulo10 computes the modulo-10 verifier of a digit string. Starting
// from the rightmost digit, digits are multiplied alternately by 2 and
// 1; products of two digits are reduced to their digit sum.
func Modulo10(num string) (int, error) {
	digits, err := digitsOf(num)
	if err != nil {
		return 0, err
	}
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		partial := digits[i] * weight
		if partial > 9 {
			partial = partial/10 + partial%10
		}
		sum += partial
		weight = 3 - weight
	}
	return (10 - sum%10) % 10, nil
}

// Modulo11 computes 11 - (weighted sum mod 11) over a digit string.
// Weights start at 2 on the rightmost digit and grow towards
// weightMax; past it they restart at 2 when reset is true, otherwise
// keep incrementing. The result is in 1..11 and edge values (10, 11)
// carry bank-specific meaning, so callers classify them themselves.
func Modulo11(num string, weightMax int, reset bool) (int, error) {
	digits, err := digitsOf(num)
	if err != nil {
		return 0, err
	}
	sum := 0
	weight := 2
	for i := len(digits) - 1; i >= 0; i-- {
		sum += digits[i] * weight
		if weight == weightMax && reset {
			weight = 1
		}
		weight++
	}
	return 11 - sum%11, nil
}

// DV11 maps a Modulo11 result to a plain verifier digit: edge values
// 10 and 11 collapse to 0. This is the common "resto" policy used for
// bank code verifiers and most nosso-número digits.
func DV11(num string) (int, error) {
	m, err := Modulo11(num, 9, true)
	if err != nil {
		return 0, err
	}
	m %= 11
	if m == 10 {
		m = 0
	}
	return m, nil
}

// DuploDigito computes Banrisul's two-character verifier over the free
// field body. The first digit comes from modulo 10; the second from
// modulo 11 with weights 2..7 over the body plus the first digit. A
// modulo-11 result of 10 is unrepresentable: the first digit is bumped
// by one (mod 10) and the second digit recomputed.
func DuploDigito(num string) (string, error) {
	d1, err := Modulo10(num)
	if err != nil {
		return "", err
	}
	for {
		m, err := Modulo11(num+strconv.Itoa(d1), 7, true)
		if err != nil {
			return "", err
		}
		if m == 10 {
			d1 = (d1 + 1) % 10
			continue
		}
		d2 := m
		if m == 11 {
			d2 = 0
		}
		return strconv.Itoa(d1) + strconv.Itoa(d2), nil
	}
}

// Luhn computes the standard Luhn check digit. It is used to validate
// civil documents, not anything in the barcode path.
func Luhn(num string) (int, error) {
	return Modulo10(num)
}

// LuhnValid reports whether the trailing digit of num is its own Luhn
// check digit.
func LuhnValid(num string) bool {
	if len(num) < 2 {
		return false
	}
	d, err := Luhn(num[:len(num)-1])
	if err != nil {
		return false
	}
	return num[len(num)-1] == byte('0'+d)
}
