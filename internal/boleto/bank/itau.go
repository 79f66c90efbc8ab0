package bank

import (
	"fmt"
	"strconv"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

type itau struct {
	*info
	dac string
}

func newItau(p domain.Payment, acc domain.BankAccount) (BillInfo, error) {
	b := &itau{info: newInfo(341, "Itaú", p, acc)}
	err := b.loadOptions(optionSchema{
		"carteira":          optCustom,
		"especie_documento": optCustom,
		"agencia":           optBranchDerived,
		"conta":             optAccountDerived,
	})
	if err != nil {
		return nil, err
	}
	carteira, err := padNum("carteira", b.opts["carteira"], 3)
	if err != nil {
		return nil, err
	}
	b.carteira = carteira

	agencia, err := padNum("agencia", b.agencia, 4)
	if err != nil {
		return nil, err
	}
	conta, err := padNum("conta", b.conta, 5)
	if err != nil {
		return nil, err
	}
	nn, err := padID("nosso_numero", p.Identifier, 8)
	if err != nil {
		return nil, err
	}
	b.nossoNumero = nn

	// The DAC covers agência, conta, carteira and nosso número together.
	dac, err := checkdigit.Modulo10(agencia + conta + b.carteira + nn)
	if err != nil {
		return nil, err
	}
	b.dac = strconv.Itoa(dac)
	dacAgConta, err := checkdigit.Modulo10(agencia + conta)
	if err != nil {
		return nil, err
	}
	if err := checkFieldDV("conta", agencia+conta, b.dvConta, checkdigit.Modulo10); err != nil {
		return nil, err
	}
	b.formattedNN = fmt.Sprintf("%s/%s-%s", b.carteira, nn, b.dac)
	b.cnabNN = nn

	campoLivre := b.carteira + nn + b.dac + agencia + conta + strconv.Itoa(dacAgConta) + "000"

	b.layout = cnab.Itau400()
	if err := b.finish(campoLivre); err != nil {
		return nil, err
	}
	b.fileValues["dac_ag_conta"] = dacAgConta
	b.fileValues["numero_carteira"] = b.carteira
	return b, nil
}

// DetailValues extends the shared detail map with the short date forms
// and the unsplit postal code the 400 transaction record wants.
func (b *itau) DetailValues() map[string]any {
	values := b.info.DetailValues()
	values["vencimento_curto"] = b.payment.DueDate.Format("020106")
	values["data_emissao_curta"] = b.payment.OpenDate.Format("020106")
	values["sacado_cep"] = domain.OnlyDigits(b.payment.Payer.Address.PostalCode)
	return values
}
