package bank

import (
	"fmt"
	"strconv"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

type caixa struct {
	*info
	dv string
}

func newCaixa(p domain.Payment, acc domain.BankAccount) (BillInfo, error) {
	b := &caixa{info: newInfo(104, "Caixa Econômica Federal", p, acc)}
	err := b.loadOptions(optionSchema{
		"carteira":            optCustom,
		"especie_documento":   optCustom,
		"codigo_beneficiario": optCustom,
		"codigo_convenio":     optCustom,
		"agencia":             optBranchDerived,
		"conta":               optAccountDerived,
	})
	if err != nil {
		return nil, err
	}
	for _, name := range []string{"codigo_beneficiario", "codigo_convenio"} {
		if domain.OnlyDigits(b.opts[name]) != b.opts[name] || b.opts[name] == "" {
			return nil, &domain.ErrInvalidOption{Option: name, Reason: "must be numeric"}
		}
	}
	b.carteira = b.opts["carteira"]

	nn, err := padID("nosso_numero", p.Identifier, 10)
	if err != nil {
		return nil, err
	}
	b.nossoNumero = nn
	m, err := checkdigit.Modulo11(nn, 9, true)
	if err != nil {
		return nil, err
	}
	if m >= 10 {
		m = 0
	}
	b.dv = strconv.Itoa(m)
	b.formattedNN = fmt.Sprintf("%s-%s", b.nossoNumero, b.dv)
	b.cnabNN = b.nossoNumero + b.dv

	agencia, err := padNum("agencia", b.agencia, 4)
	if err != nil {
		return nil, err
	}
	conta, err := padNum("conta", b.conta, 11)
	if err != nil {
		return nil, err
	}
	campoLivre := b.nossoNumero + agencia + conta

	b.layout = caixaLayout(b.opts["codigo_beneficiario"], b.opts["codigo_convenio"])
	return b, b.finish(campoLivre)
}

// caixaLayout pins the bank's layout versions. Caixa files identify
// the beneficiary by its código, not by the checking account: the
// account slot of the header records carries the beneficiary code and
// the account verifier slot is zeroed.
func caixaLayout(beneficiario, convenio string) cnab.Layout {
	layout := cnab.Febraban240()
	layout.FileHeader = layout.FileHeader.With(nil, map[string]any{
		"versao_arquivo": 50,
		"conta":          beneficiario,
		"dv_conta":       "0",
		"convenio":       convenio,
	})
	layout.BatchHeader = layout.BatchHeader.With(nil, map[string]any{
		"versao_lote": 30,
		"conta":       beneficiario,
		"dv_conta":    "0",
		"convenio":    convenio,
	})
	return layout
}
