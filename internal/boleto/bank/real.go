package bank

import (
	"fmt"
	"strconv"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

type real struct {
	*info
}

func newReal(p domain.Payment, acc domain.BankAccount) (BillInfo, error) {
	b := &real{info: newInfo(356, "Banco Real", p, acc)}
	err := b.loadOptions(optionSchema{
		"carteira":          optCustom,
		"especie_documento": optCustom,
		"agencia":           optBranchDerived,
		"conta":             optAccountDerived,
	})
	if err != nil {
		return nil, err
	}
	b.carteira = b.opts["carteira"]

	nn, err := padID("nosso_numero", p.Identifier, 13)
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
	// The digitão closes nosso número, agência and conta together.
	digitao, err := checkdigit.Modulo10(nn + agencia + conta)
	if err != nil {
		return nil, err
	}
	b.formattedNN = fmt.Sprintf("%s-%d", nn, digitao)
	b.cnabNN = nn

	b.layout = cnab.Febraban240()
	return b, b.finish(agencia + conta + strconv.Itoa(digitao) + nn)
}
