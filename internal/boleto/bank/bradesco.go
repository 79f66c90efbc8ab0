package bank

import (
	"fmt"
	"strconv"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

type bradesco struct {
	*info
	dv string
}

func newBradesco(p domain.Payment, acc domain.BankAccount) (BillInfo, error) {
	b := &bradesco{info: newInfo(237, "Bradesco", p, acc)}
	err := b.loadOptions(optionSchema{
		"carteira":              optCustom,
		"especie_documento":     optCustom,
		"convenio":              optCustom,
		"identificacao_produto": optCustom,
		"agencia":               optBranchDerived,
		"conta":                 optAccountDerived,
	})
	if err != nil {
		return nil, err
	}

	carteira, err := strconv.Atoi(b.opts["carteira"])
	if err != nil || carteira < 0 || carteira > 99 {
		return nil, &domain.ErrInvalidOption{
			Option: "carteira",
			Reason: "must be an integer between 0 and 99",
		}
	}
	b.carteira = fmt.Sprintf("%02d", carteira)

	nn, err := padID("nosso_numero", p.Identifier, 11)
	if err != nil {
		return nil, err
	}
	b.nossoNumero = nn
	if err := b.setDV(); err != nil {
		return nil, err
	}
	b.formattedNN = fmt.Sprintf("%s/%s-%s", b.carteira, b.nossoNumero, b.dv)
	b.cnabNN = b.nossoNumero + b.dv

	agencia, err := padNum("agencia", b.agencia, 4)
	if err != nil {
		return nil, err
	}
	conta, err := padNum("conta", b.conta, 7)
	if err != nil {
		return nil, err
	}
	campoLivre := agencia + b.carteira + b.nossoNumero + conta + "0"

	b.layout = bradescoLayout()
	if err := b.finish(campoLivre); err != nil {
		return nil, err
	}
	b.fileValues["identificacao_produto"] = b.opts["identificacao_produto"]
	return b, nil
}

// setDV computes the nosso-número verifier with weights up to 7.
// Bradesco maps the modulo-11 edge results to the letter P and to 0.
func (b *bradesco) setDV() error {
	m, err := checkdigit.Modulo11(b.nossoNumero, 7, true)
	if err != nil {
		return err
	}
	switch m {
	case 10:
		b.dv = "P"
	case 11:
		b.dv = "0"
	default:
		b.dv = strconv.Itoa(m)
	}
	return nil
}

func bradescoLayout() cnab.Layout {
	layout := cnab.Febraban240()
	layout.FileHeader = layout.FileHeader.With(nil, map[string]any{
		"versao_arquivo": 84,
		"nome_banco":     "BRADESCO",
	})
	layout.BatchHeader = layout.BatchHeader.With(nil, map[string]any{
		"versao_lote": 42,
	})
	return layout
}
