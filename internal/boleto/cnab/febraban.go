package cnab

// Base FEBRABAN CNAB-240 record layouts. Banks derive variants with
// Spec.With: replacing the beneficiary/convênio slots and pinning
// their layout version constants.

// Size240 is the record width of the FEBRABAN 240 format; Size400 is
// the width of the legacy 400 format still used by some banks.
const (
	Size240 = 240
	Size400 = 400
)

// FileHeader is registro 0: file-level identification.
var FileHeader = Spec{
	Name: "FileHeader",
	Size: Size240,
	Fields: []Field{
		Num("codigo_banco", 3),
		Num("lote", 4).Def(0),
		Num("registro", 1).Def(0),
		Filler(9),
		Num("tipo_inscricao", 1),
		Num("numero_inscricao", 14),
		Text("convenio", 20).Def(""),
		Num("agencia", 5),
		Text("dv_agencia", 1).Def(""),
		Num("conta", 12),
		Text("dv_conta", 1).Def(""),
		Text("dv_ag_conta", 1).Def(""),
		Text("nome_empresa", 30),
		Text("nome_banco", 30).Def(""),
		Filler(10),
		Num("codigo_remessa", 1).Def(1),
		Num("data_geracao", 8),
		Num("hora_geracao", 6),
		Num("sequencia_arquivo", 6).Def(1),
		Num("versao_arquivo", 3).Def(81),
		Num("densidade", 5).Def(0),
		Text("reservado_banco", 20).Def(""),
		Text("reservado_empresa", 20).Def(""),
		Filler(29),
	},
}

// BatchHeader is registro 1: opens the single collection batch.
var BatchHeader = Spec{
	Name: "BatchHeader",
	Size: Size240,
	Fields: []Field{
		Num("codigo_banco", 3),
		Num("lote", 4).Def(1),
		Num("registro", 1).Def(1),
		Text("operacao", 1).Def("R"),
		Num("servico", 2).Def(1),
		Filler(2),
		Num("versao_lote", 3).Def(40),
		Filler(1),
		Num("tipo_inscricao", 1),
		Num("numero_inscricao", 15),
		Text("convenio", 20).Def(""),
		Num("agencia", 5),
		Text("dv_agencia", 1).Def(""),
		Num("conta", 12),
		Text("dv_conta", 1).Def(""),
		Text("dv_ag_conta", 1).Def(""),
		Text("nome_empresa", 30),
		Text("mensagem1", 40).Def(""),
		Text("mensagem2", 40).Def(""),
		Num("numero_remessa", 8).Def(1),
		Num("data_geracao", 8),
		Num("data_credito", 8).Def(0),
		Filler(33),
	},
}

// RecordP is segment P: the bill itself (nosso número, due date, value).
var RecordP = Spec{
	Name: "RecordP",
	Size: Size240,
	Fields: []Field{
		Num("codigo_banco", 3),
		Num("lote", 4).Def(1),
		Num("registro", 1).Def(3),
		Num("sequencia_registro", 5),
		Text("segmento", 1).Def("P"),
		Filler(1),
		Num("codigo_movimento", 2).Def(1),
		Num("agencia", 5),
		Text("dv_agencia", 1).Def(""),
		Num("conta", 12),
		Text("dv_conta", 1).Def(""),
		Text("dv_ag_conta", 1).Def(""),
		Text("nosso_numero", 20),
		Num("carteira_codigo", 1).Def(1),
		Num("cadastramento", 1).Def(1),
		Text("tipo_documento", 1).Def("1"),
		Num("emissao_boleto", 1).Def(2),
		Num("distribuicao_boleto", 1).Def(2),
		Text("numero_documento", 15),
		Num("vencimento", 8),
		Money("valor", 13, 2),
		Num("agencia_cobradora", 5).Def(0),
		Text("dv_agencia_cobradora", 1).Def(""),
		Num("especie_documento", 2),
		Text("aceite", 1).Def("N"),
		Num("data_emissao", 8),
		Num("juros_codigo", 1).Def(3),
		Num("juros_data", 8).Def(0),
		Money("juros_valor", 13, 2).Def(0),
		Num("desconto1_codigo", 1).Def(0),
		Num("desconto1_data", 8).Def(0),
		Money("desconto1_valor", 13, 2).Def(0),
		Money("valor_iof", 13, 2).Def(0),
		Money("valor_abatimento", 13, 2).Def(0),
		Text("identificacao_titulo", 25).Def(""),
		Num("codigo_protesto", 1).Def(3),
		Num("prazo_protesto", 2).Def(0),
		Num("codigo_baixa", 1).Def(0),
		Num("prazo_baixa", 3).Def(0),
		Num("codigo_moeda", 2).Def(9),
		Num("numero_contrato", 10).Def(0),
		Filler(1),
	},
}

// RecordQ is segment Q: the payer (sacado).
var RecordQ = Spec{
	Name: "RecordQ",
	Size: Size240,
	Fields: []Field{
		Num("codigo_banco", 3),
		Num("lote", 4).Def(1),
		Num("registro", 1).Def(3),
		Num("sequencia_registro", 5),
		Text("segmento", 1).Def("Q"),
		Filler(1),
		Num("codigo_movimento", 2).Def(1),
		Num("sacado_inscricao_tipo", 1),
		Num("sacado_inscricao", 15),
		Text("sacado_nome", 40),
		Text("sacado_endereco", 40),
		Text("sacado_bairro", 15),
		Num("sacado_cep", 5),
		Num("sacado_cep_sufixo", 3),
		Text("sacado_cidade", 15),
		Text("sacado_uf", 2),
		Num("avalista_inscricao_tipo", 1).Def(0),
		Num("avalista_inscricao", 15).Def(0),
		Text("avalista_nome", 40).Def(""),
		Num("banco_correspondente", 3).Def(0),
		Text("nosso_numero_correspondente", 20).Def(""),
		Filler(8),
	},
}

// RecordR is segment R: extra discounts, fine and messages.
var RecordR = Spec{
	Name: "RecordR",
	Size: Size240,
	Fields: []Field{
		Num("codigo_banco", 3),
		Num("lote", 4).Def(1),
		Num("registro", 1).Def(3),
		Num("sequencia_registro", 5),
		Text("segmento", 1).Def("R"),
		Filler(1),
		Num("codigo_movimento", 2).Def(1),
		Num("desconto2_codigo", 1).Def(0),
		Num("desconto2_data", 8).Def(0),
		Money("desconto2_valor", 13, 2).Def(0),
		Num("desconto3_codigo", 1).Def(0),
		Num("desconto3_data", 8).Def(0),
		Money("desconto3_valor", 13, 2).Def(0),
		Num("multa_codigo", 1).Def(0),
		Num("multa_data", 8).Def(0),
		Money("multa_valor", 13, 2).Def(0),
		Text("informacao_sacado", 10).Def(""),
		Text("mensagem3", 40).Def(""),
		Text("mensagem4", 40).Def(""),
		Filler(20),
		Num("ocorrencia_sacado", 8).Def(0),
		Num("banco_debito", 3).Def(0),
		Num("agencia_debito", 5).Def(0),
		Text("dv_agencia_debito", 1).Def(""),
		Num("conta_debito", 12).Def(0),
		Text("dv_conta_debito", 1).Def(""),
		Text("dv_ag_conta_debito", 1).Def(""),
		Num("aviso_debito", 1).Def(0),
		Filler(9),
	},
}

// BatchTrailer is registro 5: batch totals. The registry counters are
// resolved by the owning File at serialization time.
var BatchTrailer = Spec{
	Name: "BatchTrailer",
	Size: Size240,
	Fields: []Field{
		Num("codigo_banco", 3),
		Num("lote", 4).Def(1),
		Num("registro", 1).Def(5),
		Filler(9),
		Num("registros_lote", 6),
		Num("cobranca_simples_qtd", 6),
		Money("cobranca_simples_valor", 15, 2),
		Num("cobranca_vinculada_qtd", 6).Def(0),
		Money("cobranca_vinculada_valor", 15, 2).Def(0),
		Num("cobranca_caucionada_qtd", 6).Def(0),
		Money("cobranca_caucionada_valor", 15, 2).Def(0),
		Num("cobranca_descontada_qtd", 6).Def(0),
		Money("cobranca_descontada_valor", 15, 2).Def(0),
		Text("aviso_lancamento", 8).Def(""),
		Filler(117),
	},
}

// FileTrailer is registro 9: file totals.
var FileTrailer = Spec{
	Name: "FileTrailer",
	Size: Size240,
	Fields: []Field{
		Num("codigo_banco", 3),
		Num("lote", 4).Def(9999),
		Num("registro", 1).Def(9),
		Filler(9),
		Num("total_batches", 6),
		Num("total_records", 6),
		Num("contas_conciliacao", 6).Def(0),
		Filler(205),
	},
}

// Layout bundles the record specs one bank uses for its remittance
// files. CNAB-240 banks use the seven-record FEBRABAN composition;
// CNAB-400 banks (Itaú) supply their own three record kinds and leave
// the segment specs empty.
type Layout struct {
	RecordSize int

	FileHeader   Spec
	BatchHeader  Spec
	RecordP      Spec
	RecordQ      Spec
	RecordR      Spec
	BatchKinds   int // records per payment; 3 for P/Q/R, 1 for CNAB-400
	Detail       Spec
	BatchTrailer Spec
	FileTrailer  Spec
}

// Febraban240 returns the plain FEBRABAN layout; banks customize the
// returned value with Spec.With before wiring it into their variant.
func Febraban240() Layout {
	return Layout{
		RecordSize:   Size240,
		FileHeader:   FileHeader,
		BatchHeader:  BatchHeader,
		RecordP:      RecordP,
		RecordQ:      RecordQ,
		RecordR:      RecordR,
		BatchKinds:   3,
		BatchTrailer: BatchTrailer,
		FileTrailer:  FileTrailer,
	}
}
