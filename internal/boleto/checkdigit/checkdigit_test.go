package checkdigit_test

import (
	"errors"
	"testing"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

func TestModulo10(t *testing.T) {
	cases := []struct {
		num  string
		want int
	}{
		{"0", 0},
		{"1234", 4},
		{"81090748", 5},
		{"123456789", 7},
	}
	for _, c := range cases {
		got, err := checkdigit.Modulo10(c.num)
		if err != nil {
			t.Fatalf("Modulo10(%q): %v", c.num, err)
		}
		if got != c.want {
			t.Errorf("Modulo10(%q) = %d, want %d", c.num, got, c.want)
		}
	}
}

func TestModulo10RejectsNonDigits(t *testing.T) {
	_, err := checkdigit.Modulo10("12a4")
	var badDigit *domain.ErrBadDigit
	if !errors.As(err, &badDigit) {
		t.Fatalf("expected ErrBadDigit, got %v", err)
	}
}

func TestModulo11(t *testing.T) {
	got, err := checkdigit.Modulo11("0012345678", 9, true)
	if err != nil {
		t.Fatal(err)
	}
	if got != 9 {
		t.Errorf("Modulo11(0012345678) = %d, want 9", got)
	}
}

func TestModulo11EmptyInput(t *testing.T) {
	if _, err := checkdigit.Modulo11("", 9, true); err == nil {
		t.Fatal("expected error for empty input")
	}
}

// DV11 must reproduce the published bank-code verifiers.
func TestDV11BankCodes(t *testing.T) {
	cases := []struct {
		code string
		want int
	}{
		{"001", 9}, // Banco do Brasil
		{"033", 7}, // Santander
		{"041", 8}, // Banrisul
		{"104", 0}, // Caixa
		{"237", 2}, // Bradesco
		{"341", 7}, // Itaú
		{"356", 5}, // Real
	}
	for _, c := range cases {
		got, err := checkdigit.DV11(c.code)
		if err != nil {
			t.Fatalf("DV11(%q): %v", c.code, err)
		}
		if got != c.want {
			t.Errorf("DV11(%q) = %d, want %d", c.code, got, c.want)
		}
	}
}

func TestDuploDigito(t *testing.T) {
	got, err := checkdigit.DuploDigito("123456789")
	if err != nil {
		t.Fatal(err)
	}
	if got != "70" {
		t.Errorf("DuploDigito(123456789) = %q, want %q", got, "70")
	}
	if len(got) != 2 {
		t.Errorf("duplo dígito must always be two characters, got %q", got)
	}
}

// The canonical civil-document example: the check digit of 81090748 is 5.
func TestLuhn(t *testing.T) {
	got, err := checkdigit.Luhn("81090748")
	if err != nil {
		t.Fatal(err)
	}
	if got != 5 {
		t.Errorf("Luhn(81090748) = %d, want 5", got)
	}
	if !checkdigit.LuhnValid("810907485") {
		t.Error("LuhnValid(810907485) = false, want true")
	}
	if checkdigit.LuhnValid("810907484") {
		t.Error("LuhnValid(810907484) = true, want false")
	}
}
