package cnab

// Legacy CNAB-400 record layouts as published by Itaú. The 400 format
// has no batch records: one header, one transaction record per bill,
// one trailer, with a file-wide running sequence number.

// FileHeader400 is registro 0 of the 400 layout.
var FileHeader400 = Spec{
	Name: "FileHeader400",
	Size: Size400,
	Fields: []Field{
		Num("registro", 1).Def(0),
		Num("operacao", 1).Def(1),
		Text("literal_remessa", 7).Def("REMESSA"),
		Num("codigo_servico", 2).Def(1),
		Text("literal_servico", 15).Def("COBRANCA"),
		Num("agencia", 4),
		Num("zeros", 2).Def(0),
		Num("conta", 5),
		Num("dac_ag_conta", 1),
		Filler(8),
		Text("nome_empresa", 30),
		Num("codigo_banco", 3),
		Text("nome_banco", 15).Def("BANCO ITAU SA"),
		Num("data_geracao_curta", 6),
		Filler(294),
		Num("sequencia_registro", 6).Def(1),
	},
}

// Transaction400 is registro 1: one bill per record.
var Transaction400 = Spec{
	Name: "Transaction400",
	Size: Size400,
	Fields: []Field{
		Num("registro", 1).Def(1),
		Num("tipo_inscricao", 2).Def(2),
		Num("numero_inscricao", 14),
		Num("agencia", 4),
		Num("zeros", 2).Def(0),
		Num("conta", 5),
		Num("dac_ag_conta", 1),
		Filler(4),
		Num("instrucao_alegacao", 4).Def(0),
		Text("uso_empresa", 25).Def(""),
		Num("nosso_numero", 8),
		Num("quantidade_moeda", 8).Def(0),
		Num("numero_carteira", 3),
		Text("uso_banco", 21).Def(""),
		Text("codigo_carteira", 1).Def("I"),
		Num("codigo_ocorrencia", 2).Def(1),
		Text("numero_documento", 10),
		Num("vencimento_curto", 6),
		Money("valor", 11, 2),
		Num("codigo_banco", 3),
		Num("agencia_cobradora", 5).Def(0),
		Num("especie_documento", 2),
		Text("aceite", 1).Def("N"),
		Num("data_emissao_curta", 6),
		Num("instrucao1", 2).Def(0),
		Num("instrucao2", 2).Def(0),
		Money("juros_dia", 11, 2).Def(0),
		Num("desconto_ate", 6).Def(0),
		Money("valor_desconto", 11, 2).Def(0),
		Money("valor_iof", 11, 2).Def(0),
		Money("valor_abatimento", 11, 2).Def(0),
		Num("sacado_inscricao_tipo", 2),
		Num("sacado_inscricao", 14),
		Text("sacado_nome", 30),
		Filler(10),
		Text("sacado_endereco", 40),
		Text("sacado_bairro", 12),
		Num("sacado_cep", 8),
		Text("sacado_cidade", 15),
		Text("sacado_uf", 2),
		Text("sacador_avalista", 30).Def(""),
		Filler(4),
		Num("data_mora", 6).Def(0),
		Num("prazo", 2).Def(0),
		Filler(6),
		Num("sequencia_registro", 6),
	},
}

// FileTrailer400 is registro 9.
var FileTrailer400 = Spec{
	Name: "FileTrailer400",
	Size: Size400,
	Fields: []Field{
		Num("registro", 1).Def(9),
		Filler(393),
		Num("sequencia_registro", 6),
	},
}

// Itau400 is the layout Itaú pins for remittance files.
func Itau400() Layout {
	return Layout{
		RecordSize:  Size400,
		FileHeader:  FileHeader400,
		BatchKinds:  1,
		Detail:      Transaction400,
		FileTrailer: FileTrailer400,
	}
}
