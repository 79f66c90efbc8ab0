package bank

import (
	"fmt"
	"strconv"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/checkdigit"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

// BBConvenioFormat selects the free-field composition of Banco do
// Brasil bills. Convênios of length 7 and 8 have a single layout;
// length 6 has two published variants picked by the account's
// format_nnumero option.
type BBConvenioFormat int

const (
	BBConvenioV6Layout1 BBConvenioFormat = iota
	BBConvenioV6Layout2
	BBConvenioV7
	BBConvenioV8
)

type bancoDoBrasil struct {
	*info
	convenio string
	format   BBConvenioFormat
	dv       string
}

func newBancoDoBrasil(p domain.Payment, acc domain.BankAccount) (BillInfo, error) {
	b := &bancoDoBrasil{info: newInfo(1, "Banco do Brasil", p, acc)}
	err := b.loadOptions(optionSchema{
		"convenio":          optCustom,
		"agencia":           optBranchDerived,
		"conta":             optAccountDerived,
		"especie_documento": optCustom,
	})
	if err != nil {
		return nil, err
	}

	b.convenio = b.opts["convenio"]
	if domain.OnlyDigits(b.convenio) != b.convenio {
		return nil, &domain.ErrInvalidOption{Option: "convenio", Reason: "must be numeric"}
	}
	switch len(b.convenio) {
	case 6:
		b.format = BBConvenioV6Layout1
		if b.opts["format_nnumero"] == "2" {
			b.format = BBConvenioV6Layout2
		}
	case 7:
		b.format = BBConvenioV7
	case 8:
		b.format = BBConvenioV8
	default:
		return nil, &domain.ErrInvalidOption{Option: "convenio", Reason: "must be 6, 7 or 8 digits long"}
	}

	b.carteira = b.opts["carteira"]
	if b.carteira == "" {
		b.carteira = "18"
	}
	carteira, err := padNum("carteira", b.carteira, 2)
	if err != nil {
		return nil, err
	}
	b.carteira = carteira

	if err := b.buildNossoNumero(); err != nil {
		return nil, err
	}
	campoLivre, err := b.buildCampoLivre()
	if err != nil {
		return nil, err
	}
	b.cnabNN = b.nossoNumero + b.dv
	b.layout = bbLayout()
	if err := b.finish(campoLivre); err != nil {
		return nil, err
	}
	b.fileValues["convenio_banco"] = b.convenio
	b.fileValues["carteira_convenio"] = b.carteira
	return b, nil
}

// buildNossoNumero composes convênio plus the zero-padded identifier.
// Every variant yields a fixed total width.
func (b *bancoDoBrasil) buildNossoNumero() error {
	var seqWidth int
	switch b.format {
	case BBConvenioV7:
		seqWidth = 10
	case BBConvenioV8:
		seqWidth = 9
	case BBConvenioV6Layout1:
		seqWidth = 5
	case BBConvenioV6Layout2:
		// 17 free digits, no convênio prefix.
		nn, err := padID("nosso_numero", b.payment.Identifier, 17)
		if err != nil {
			return err
		}
		b.nossoNumero = nn
		return b.setDV()
	}
	seq, err := padID("nosso_numero", b.payment.Identifier, seqWidth)
	if err != nil {
		return err
	}
	b.nossoNumero = b.convenio + seq
	return b.setDV()
}

// setDV computes the nosso-número verifier. Banco do Brasil maps the
// modulo-11 edge value 10 to the letter X.
func (b *bancoDoBrasil) setDV() error {
	m, err := checkdigit.Modulo11(b.nossoNumero, 9, true)
	if err != nil {
		return err
	}
	m %= 11
	if m == 10 {
		b.dv = "X"
	} else {
		b.dv = strconv.Itoa(m)
	}
	b.formattedNN = fmt.Sprintf("%s-%s", b.nossoNumero, b.dv)
	return nil
}

func (b *bancoDoBrasil) buildCampoLivre() (string, error) {
	switch b.format {
	case BBConvenioV7, BBConvenioV8:
		return "000000" + b.nossoNumero + b.carteira, nil
	case BBConvenioV6Layout2:
		return "000000" + b.nossoNumero + "21", nil
	}
	agencia, err := padNum("agencia", b.agencia, 4)
	if err != nil {
		return "", err
	}
	conta, err := padNum("conta", b.conta, 8)
	if err != nil {
		return "", err
	}
	return b.nossoNumero + agencia + conta + b.carteira, nil
}

// bbLayout pins the bank's CNAB-240 versions and replaces the generic
// 20-position convênio slot with the bank's structured composition.
func bbLayout() cnab.Layout {
	convenioSlot := []cnab.Field{
		cnab.Num("convenio_banco", 9),
		cnab.Num("produto_cobranca", 4).Def(14),
		cnab.Num("carteira_convenio", 2),
		cnab.Num("variacao_carteira", 3).Def(19),
		cnab.Filler(2),
	}
	layout := cnab.Febraban240()
	layout.FileHeader = layout.FileHeader.With(
		map[string][]cnab.Field{"convenio": convenioSlot},
		map[string]any{"versao_arquivo": 83},
	)
	layout.BatchHeader = layout.BatchHeader.With(
		map[string][]cnab.Field{"convenio": convenioSlot},
		map[string]any{"versao_lote": 42},
	)
	return layout
}
