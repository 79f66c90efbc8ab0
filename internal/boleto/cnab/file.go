package cnab

import "strings"

// ValueSource supplies values by field name. The bill-info object of
// the batch implements this so records can read bank-wide fields
// (carteira, convênio, nosso número) without holding a reference to
// the bank code themselves.
type ValueSource interface {
	CnabValue(name string) (any, bool)
}

// File owns an ordered list of records plus the default values shared
// across them. Record order in the serialized file is exactly the
// append order.
type File struct {
	records  []*Record
	defaults map[string]any
	source   ValueSource
}

// NewFile creates an empty remittance file. defaults usually carries
// the branch document, company name, account parts and the creation
// timestamp; source is the bill-info of the batch (may be nil).
func NewFile(defaults map[string]any, source ValueSource) *File {
	if defaults == nil {
		defaults = map[string]any{}
	}
	return &File{defaults: defaults, source: source}
}

// Add builds a record from spec, attaches it to the file and appends
// it. values override any file-level resolution for that record.
func (f *File) Add(spec Spec, values map[string]any) (*Record, error) {
	rec, err := newRecord(spec, values)
	if err != nil {
		return nil, err
	}
	rec.file = f
	f.records = append(f.records, rec)
	return rec, nil
}

// TotalRecords is the number of records appended so far.
func (f *File) TotalRecords() int {
	return len(f.records)
}

// Resolve walks the file's value chain: assembler totals, the defaults
// map, then the bill-info source.
func (f *File) Resolve(name string) (any, bool) {
	switch name {
	case "total_records":
		return len(f.records), true
	case "total_batches":
		return 1, true
	case "registros_lote":
		// Every record except the file header and file trailer.
		return len(f.records) - 2, true
	case "cobranca_simples_qtd":
		// Each payment contributes segments P, Q and R.
		return (len(f.records) - 4) / 3, true
	}
	if v, ok := f.defaults[name]; ok {
		return v, true
	}
	if f.source != nil {
		if v, ok := f.source.CnabValue(name); ok {
			return v, true
		}
	}
	return nil, false
}

// Serialize emits the full file: records joined by CR LF with a final
// CR LF. Totals are resolved lazily, so trailers may be appended
// before Serialize is called without seeing stale counts.
func (f *File) Serialize() ([]byte, error) {
	var b strings.Builder
	for _, rec := range f.records {
		line, err := rec.Serialize()
		if err != nil {
			return nil, err
		}
		b.WriteString(line)
		b.WriteString("\r\n")
	}
	return []byte(b.String()), nil
}
