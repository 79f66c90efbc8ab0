// Package boleto assembles the printable bill payloads and the CNAB
// remittance files from payment batches. Per-bank rules live in the
// bank subpackage; the positional codec lives in cnab.
package boleto

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/bank"
	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
	"github.com/viacerta/boleto-cnab-go/internal/domain"
)

// RenderBill computes the full printable payload of one payment.
func RenderBill(p domain.Payment, acc domain.BankAccount, branch domain.Branch, instrucoes []string, now time.Time) (domain.BillPayload, error) {
	info, err := bank.New(p, acc)
	if err != nil {
		return domain.BillPayload{}, err
	}
	if err := info.SetInstrucoes(instrucoes); err != nil {
		return domain.BillPayload{}, err
	}
	return domain.BillPayload{
		BankNumber:     info.BankNumber(),
		BankCodeDV:     info.BankCodeDV(),
		Barcode:        info.Barcode(),
		DigitableLine:  info.DigitableLine(),
		NossoNumero:    info.FormatNossoNumero(),
		AgenciaConta:   info.AgenciaConta(),
		Carteira:       info.Carteira(),
		EspecieDoc:     info.EspecieDocumento(),
		NumeroDoc:      strconv.FormatInt(p.Identifier, 10),
		Value:          p.Value,
		DueDate:        p.DueDate,
		OpenDate:       p.OpenDate,
		ProcessingDate: now,
		Payer:          p.Payer,
		Branch:         branch,
		Demonstrativo:  info.Demonstrativo(),
		Instrucoes:     info.Instrucoes(),
	}, nil
}

// Remessa is one generated CNAB remittance file.
type Remessa struct {
	BankNumber  int
	RecordCount int
	RecordSize  int
	Content     []byte
}

// GenerateRemessa builds the CNAB file covering the whole batch. All
// payments must share the bank account; the branch is the emitting
// company. The bank registered for the account decides the layout
// (FEBRABAN 240 with segments P/Q/R, or the legacy 400).
func GenerateRemessa(payments []domain.Payment, acc domain.BankAccount, branch domain.Branch, now time.Time) (Remessa, error) {
	if len(payments) == 0 {
		return Remessa{}, &domain.ErrValidation{Field: "payments", Message: "at least one payment is required"}
	}

	infos := make([]bank.BillInfo, len(payments))
	total := decimal.Zero
	for i, p := range payments {
		info, err := bank.New(p, acc)
		if err != nil {
			return Remessa{}, err
		}
		infos[i] = info
		total = total.Add(p.Value)
	}

	inscricaoTipo := 2
	if len(branch.CNPJDigits()) == 11 {
		inscricaoTipo = 1
	}
	defaults := map[string]any{
		"tipo_inscricao":         inscricaoTipo,
		"numero_inscricao":       branch.CNPJDigits(),
		"nome_empresa":           branch.Name,
		"data_geracao":           now.Format("02012006"),
		"data_geracao_curta":     now.Format("020106"),
		"hora_geracao":           now.Format("150405"),
		"cobranca_simples_valor": total,
	}

	layout := infos[0].Layout()
	file := cnab.NewFile(defaults, infos[0])
	if _, err := file.Add(layout.FileHeader, nil); err != nil {
		return Remessa{}, err
	}

	var err error
	if layout.BatchKinds == 3 {
		err = addSegments(file, layout, infos)
	} else {
		err = addTransactions(file, layout, infos)
	}
	if err != nil {
		return Remessa{}, err
	}

	content, err := file.Serialize()
	if err != nil {
		return Remessa{}, err
	}
	return Remessa{
		BankNumber:  infos[0].BankNumber(),
		RecordCount: file.TotalRecords(),
		RecordSize:  layout.RecordSize,
		Content:     content,
	}, nil
}

// addSegments emits the FEBRABAN batch: header, segments P/Q/R per
// payment with a batch-wide running sequence, batch trailer, file
// trailer.
func addSegments(file *cnab.File, layout cnab.Layout, infos []bank.BillInfo) error {
	if _, err := file.Add(layout.BatchHeader, nil); err != nil {
		return err
	}
	for i, info := range infos {
		detail := info.DetailValues()
		for j, spec := range []cnab.Spec{layout.RecordP, layout.RecordQ, layout.RecordR} {
			values := make(map[string]any, len(detail)+1)
			for name, v := range detail {
				values[name] = v
			}
			values["sequencia_registro"] = 3*i + j + 1
			if _, err := file.Add(spec, values); err != nil {
				return err
			}
		}
	}
	if _, err := file.Add(layout.BatchTrailer, nil); err != nil {
		return err
	}
	_, err := file.Add(layout.FileTrailer, nil)
	return err
}

// addTransactions emits the CNAB-400 composition: one transaction
// record per payment, sequence numbers running over the whole file.
func addTransactions(file *cnab.File, layout cnab.Layout, infos []bank.BillInfo) error {
	for i, info := range infos {
		values := info.DetailValues()
		values["sequencia_registro"] = i + 2
		if _, err := file.Add(layout.Detail, values); err != nil {
			return err
		}
	}
	_, err := file.Add(layout.FileTrailer, map[string]any{
		"sequencia_registro": len(infos) + 2,
	})
	return err
}
