package bank

import (
	"fmt"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

type banrisul struct {
	*info
}

func newBanrisul(p domain.Payment, acc domain.BankAccount) (BillInfo, error) {
	b := &banrisul{info: newInfo(41, "Banrisul", p, acc)}
	err := b.loadOptions(optionSchema{
		"agencia":           optBranchDerived,
		"conta":             optAccountDerived,
		"especie_documento": optCustom,
	})
	if err != nil {
		return nil, err
	}

	nn, err := padID("nosso_numero", p.Identifier, 8)
	if err != nil {
		return nil, err
	}
	b.nossoNumero = nn

	agencia, err := padNum("agencia", b.agencia, 4)
	if err != nil {
		return nil, err
	}
	conta, err := padNum("conta", b.conta, 7)
	if err != nil {
		return nil, err
	}
	// Product constant 21 (cobrança normal), system constant 40, and
	// the bank's two-digit duplo dígito closing the free field.
	body := "21" + agencia + conta + nn + "40"
	duplo, err := checkdigit.DuploDigito(body)
	if err != nil {
		return nil, err
	}
	b.formattedNN = fmt.Sprintf("%s-%s", nn, duplo)
	b.cnabNN = nn + duplo

	b.layout = cnab.Febraban240()
	return b, b.finish(body + duplo)
}
