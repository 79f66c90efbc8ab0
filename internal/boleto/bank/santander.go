package bank

import (
	"fmt"
	"strconv"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

type santander struct {
	*info
	dv string
}

func newSantander(p domain.Payment, acc domain.BankAccount) (BillInfo, error) {
	b := &santander{info: newInfo(33, "Santander", p, acc)}
	err := b.loadOptions(optionSchema{
		"carteira":           optCustom,
		"especie_documento":  optCustom,
		"codigo_transmissao": optCustom,
		"agencia":            optBranchDerived,
		"conta":              optAccountDerived,
	})
	if err != nil {
		return nil, err
	}
	transmissao := domain.OnlyDigits(b.opts["codigo_transmissao"])
	if transmissao == "" {
		return nil, &domain.ErrInvalidOption{Option: "codigo_transmissao", Reason: "must be numeric"}
	}
	b.carteira = b.opts["carteira"]

	nn, err := padID("nosso_numero", p.Identifier, 7)
	if err != nil {
		return nil, err
	}
	b.nossoNumero = nn
	m, err := checkdigit.Modulo11(nn, 9, true)
	if err != nil {
		return nil, err
	}
	if m > 9 {
		m = 0
	}
	b.dv = strconv.Itoa(m)
	b.formattedNN = fmt.Sprintf("%s-%s", b.nossoNumero, b.dv)
	b.cnabNN = b.nossoNumero + b.dv

	// ios is the IOF flag of the free field; "0" for ordinary bills.
	ios := b.opts["ios"]
	if ios == "" {
		ios = "0"
	}
	conta, err := padNum("conta", b.conta, 7)
	if err != nil {
		return nil, err
	}
	carteira, err := padNum("carteira", b.carteira, 3)
	if err != nil {
		return nil, err
	}
	campoLivre := "9" + conta + "00000" + b.nossoNumero + b.dv + ios + carteira

	b.layout = santanderLayout(transmissao)
	return b, b.finish(campoLivre)
}

// santanderLayout carries the código de transmissão in the convênio
// slot of both header records.
func santanderLayout(transmissao string) cnab.Layout {
	layout := cnab.Febraban240()
	layout.FileHeader = layout.FileHeader.With(nil, map[string]any{
		"versao_arquivo": 40,
		"convenio":       transmissao,
	})
	layout.BatchHeader = layout.BatchHeader.With(nil, map[string]any{
		"versao_lote": 30,
		"convenio":    transmissao,
	})
	return layout
}
