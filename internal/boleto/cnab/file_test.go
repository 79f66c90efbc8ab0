package cnab_test

import (
	"strings"
	"testing"

	"github.com/viacerta/boleto-cnab-go/internal/boleto/cnab"
)

// Every published record layout must sum to its declared width.
func TestSpecWidths(t *testing.T) {
	specs := []cnab.Spec{
		cnab.FileHeader,
		cnab.BatchHeader,
		cnab.RecordP,
		cnab.RecordQ,
		cnab.RecordR,
		cnab.BatchTrailer,
		cnab.FileTrailer,
		cnab.FileHeader400,
		cnab.Transaction400,
		cnab.FileTrailer400,
	}
	for _, spec := range specs {
		width := 0
		for _, f := range spec.Fields {
			width += f.Width()
		}
		if width != spec.Size {
			t.Errorf("%s: fields sum to %d, declared %d", spec.Name, width, spec.Size)
		}
	}
}

func TestWithReplacementPreservesWidth(t *testing.T) {
	variant := cnab.FileHeader.With(map[string][]cnab.Field{
		"convenio": {
			cnab.Num("convenio_banco", 9),
			cnab.Num("produto_cobranca", 4).Def(14),
			cnab.Num("carteira_convenio", 2),
			cnab.Num("variacao_carteira", 3).Def(19),
			cnab.Filler(2),
		},
	}, nil)

	file := cnab.NewFile(map[string]any{
		"codigo_banco":      1,
		"tipo_inscricao":    2,
		"numero_inscricao":  "12345678000195",
		"agencia":           "1172",
		"conta":             "403005",
		"nome_empresa":      "Empresa",
		"data_geracao":      "01092026",
		"hora_geracao":      "120000",
		"convenio_banco":    "1234567",
		"carteira_convenio": "18",
	}, nil)
	rec, err := file.Add(variant, nil)
	if err != nil {
		t.Fatal(err)
	}
	line, err := rec.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if len(line) != cnab.Size240 {
		t.Fatalf("serialized %d bytes, want %d", len(line), cnab.Size240)
	}
	if !strings.Contains(line, "001234567" + "0014" + "18" + "019") {
		t.Errorf("replaced slot not serialized as expected: %q", line[32:72])
	}
}

func TestWithBadReplacementWidthFails(t *testing.T) {
	variant := cnab.FileHeader.With(map[string][]cnab.Field{
		"convenio": {cnab.Num("convenio_banco", 9)},
	}, nil)
	file := cnab.NewFile(nil, nil)
	if _, err := file.Add(variant, nil); err == nil {
		t.Fatal("expected width mismatch error")
	}
}

func TestWithUnknownReplacementTargetFails(t *testing.T) {
	variant := cnab.FileHeader.With(map[string][]cnab.Field{
		"no_such_field": {cnab.Filler(20)},
	}, nil)
	file := cnab.NewFile(nil, nil)
	if _, err := file.Add(variant, nil); err == nil {
		t.Fatal("expected unknown target error")
	}
}

type staticSource map[string]any

func (s staticSource) CnabValue(name string) (any, bool) {
	v, ok := s[name]
	return v, ok
}

// Resolution order: record values beat variant defaults, which beat
// file defaults, which beat the bill-info source.
func TestValueResolutionOrder(t *testing.T) {
	spec := cnab.Spec{
		Name: "Mini",
		Size: 12,
		Fields: []cnab.Field{
			cnab.Num("a", 4),
			cnab.Num("b", 4),
			cnab.Num("c", 4),
		},
	}
	variant := spec.With(nil, map[string]any{"b": 22})
	file := cnab.NewFile(map[string]any{"b": 99, "c": 33}, staticSource{"a": 11, "c": 999})
	rec, err := file.Add(variant, map[string]any{"a": 1})
	if err != nil {
		t.Fatal(err)
	}
	line, err := rec.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	if line != "000100220033" {
		t.Errorf("got %q", line)
	}
}

func TestFileSerializeUsesCRLF(t *testing.T) {
	spec := cnab.Spec{
		Name:   "Mini",
		Size:   8,
		Fields: []cnab.Field{cnab.Num("seq", 8)},
	}
	file := cnab.NewFile(nil, nil)
	for i := 1; i <= 3; i++ {
		if _, err := file.Add(spec, map[string]any{"seq": i}); err != nil {
			t.Fatal(err)
		}
	}
	out, err := file.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	want := "00000001\r\n00000002\r\n00000003\r\n"
	if string(out) != want {
		t.Errorf("got %q", out)
	}
	if len(out) != 3*(8+2) {
		t.Errorf("length %d, want %d", len(out), 3*(8+2))
	}
}

// Trailer counters resolve lazily against the final record count.
func TestFileCounters(t *testing.T) {
	spec := cnab.Spec{
		Name: "Counters",
		Size: 18,
		Fields: []cnab.Field{
			cnab.Num("total_records", 6),
			cnab.Num("registros_lote", 6),
			cnab.Num("cobranca_simples_qtd", 6),
		},
	}
	filler := cnab.Spec{
		Name:   "Pad",
		Size:   18,
		Fields: []cnab.Field{cnab.Filler(18)},
	}
	file := cnab.NewFile(nil, nil)
	// header + batch header + 2 payments (P/Q/R) + batch trailer,
	// then the counter record standing in for the file trailer.
	for i := 0; i < 9; i++ {
		if _, err := file.Add(filler, nil); err != nil {
			t.Fatal(err)
		}
	}
	rec, err := file.Add(spec, nil)
	if err != nil {
		t.Fatal(err)
	}
	line, err := rec.Serialize()
	if err != nil {
		t.Fatal(err)
	}
	// 10 records total, 8 inside the batch, 2 payments.
	if line != "000010"+"000008"+"000002" {
		t.Errorf("got %q", line)
	}
}
