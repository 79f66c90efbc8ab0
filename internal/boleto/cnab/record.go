package cnab

import (
	"fmt"
	"strings"
)

// Spec is an immutable record layout: a declared total size, an
// ordered field list and optional named replacements. Replacements are
// resolved when a record is built, never by mutating the base layout.
type Spec struct {
	Name   string
	Size   int
	Fields []Field
	// Replacements maps a field name to the ordered fields that take
	// its place. The resulting layout must preserve the total size.
	Replacements map[string][]Field
	// Defaults carries per-variant pinned values (bank version
	// constants and the like), consulted before the owning File.
	Defaults map[string]any
}

// With derives a bank variant of the spec: extra replacements and
// pinned defaults layered on top of the base layout.
func (s Spec) With(replacements map[string][]Field, defaults map[string]any) Spec {
	v := s
	v.Replacements = make(map[string][]Field, len(s.Replacements)+len(replacements))
	for name, fields := range s.Replacements {
		v.Replacements[name] = fields
	}
	for name, fields := range replacements {
		v.Replacements[name] = fields
	}
	v.Defaults = make(map[string]any, len(s.Defaults)+len(defaults))
	for name, value := range s.Defaults {
		v.Defaults[name] = value
	}
	for name, value := range defaults {
		v.Defaults[name] = value
	}
	return v
}

// resolve applies the replacements and checks the declared width.
func (s Spec) resolve() ([]Field, error) {
	fields := make([]Field, 0, len(s.Fields))
	replaced := make(map[string]bool, len(s.Replacements))
	for _, f := range s.Fields {
		if sub, ok := s.Replacements[f.Name]; ok && f.Name != "" {
			fields = append(fields, sub...)
			replaced[f.Name] = true
			continue
		}
		fields = append(fields, f)
	}
	for name := range s.Replacements {
		if !replaced[name] {
			return nil, fmt.Errorf("cnab: %s: replacement target %q not in layout", s.Name, name)
		}
	}
	width := 0
	for _, f := range fields {
		width += f.Width()
	}
	if width != s.Size {
		return nil, fmt.Errorf("cnab: %s: field widths sum to %d, declared size is %d", s.Name, width, s.Size)
	}
	return fields, nil
}

// Record is one built record: the resolved field list plus the values
// set at construction. Unresolved field values are looked up through
// the owning File at serialization time.
type Record struct {
	spec   Spec
	fields []Field
	values map[string]any
	file   *File
}

func newRecord(spec Spec, values map[string]any) (*Record, error) {
	fields, err := spec.resolve()
	if err != nil {
		return nil, err
	}
	if values == nil {
		values = map[string]any{}
	}
	return &Record{spec: spec, fields: fields, values: values}, nil
}

// Set pins a value on the record, overriding any resolver.
func (r *Record) Set(name string, value any) {
	r.values[name] = value
}

// value resolves a field value: construction values first, then the
// variant defaults, then the owning file, then the field default
// (applied by Field.Format).
func (r *Record) value(name string) any {
	if name == "" {
		return nil
	}
	if v, ok := r.values[name]; ok {
		return v
	}
	if v, ok := r.spec.Defaults[name]; ok {
		return v
	}
	if r.file != nil {
		if v, ok := r.file.Resolve(name); ok {
			return v
		}
	}
	return nil
}

// Serialize renders the record into its exact declared width.
func (r *Record) Serialize() (string, error) {
	var b strings.Builder
	b.Grow(r.spec.Size)
	for _, f := range r.fields {
		slice, err := f.Format(r.value(f.Name))
		if err != nil {
			return "", fmt.Errorf("%s: %w", r.spec.Name, err)
		}
		b.WriteString(slice)
	}
	out := b.String()
	if len(out) != r.spec.Size {
		return "", fmt.Errorf("cnab: %s: serialized to %d bytes, want %d", r.spec.Name, len(out), r.spec.Size)
	}
	return out, nil
}

// Size returns the declared record width.
func (r *Record) Size() int {
	return r.spec.Size
}
