// Package marc models MARC records as read from and written to MARCXML.
//
// Field keys are the three-character tag followed by the two indicators,
// with a blank indicator written as '_' (100__, 7731_, 999C5). Control
// fields are keyed by their tag alone (001, 005).
package marc

import (
	"iter"
	"slices"
	"strings"
)

// Blank is the key character used for an absent or blank indicator.
const Blank = '_'

// Subfield is one coded value of a data field.
type Subfield struct {
	Code  string
	Value string
}

// Field is a control field (Value set) or a data field (Subfields set).
type Field struct {
	Tag       string
	Ind1      string
	Ind2      string
	Value     string
	Subfields []Subfield
}

// IsControl reports whether the field is a control field (tag 00X).
func (f Field) IsControl() bool {
	return strings.HasPrefix(f.Tag, "00")
}

// Key returns the dispatch key of the field.
func (f Field) Key() string {
	if f.IsControl() {
		return f.Tag
	}
	return f.Tag + indicatorKey(f.Ind1) + indicatorKey(f.Ind2)
}

func indicatorKey(ind string) string {
	ind = strings.TrimSpace(ind)
	if ind == "" || ind == string(Blank) {
		return string(Blank)
	}
	return ind[:1]
}

// Get returns the first value of a subfield, or "".
func (f Field) Get(code string) string {
	for _, sf := range f.Subfields {
		if sf.Code == code {
			return sf.Value
		}
	}
	return ""
}

// GetAll returns every value of a subfield in order.
func (f Field) GetAll(code string) []string {
	var out []string
	for _, sf := range f.Subfields {
		if sf.Code == code {
			out = append(out, sf.Value)
		}
	}
	return out
}

// Has reports whether the subfield occurs.
func (f Field) Has(code string) bool {
	return slices.ContainsFunc(f.Subfields, func(sf Subfield) bool { return sf.Code == code })
}

// Add appends a subfield, ignoring empty values.
func (f *Field) Add(code, value string) {
	if value == "" {
		return
	}
	f.Subfields = append(f.Subfields, Subfield{Code: code, Value: value})
}

// Record is an ordered list of fields.
type Record struct {
	Fields []Field
}

// Append adds a field at the end of the record.
func (r *Record) Append(f Field) {
	r.Fields = append(r.Fields, f)
}

// Get returns the fields with the given key in document order.
func (r *Record) Get(key string) []Field {
	var out []Field
	for _, f := range r.Fields {
		if f.Key() == key {
			out = append(out, f)
		}
	}
	return out
}

// Values returns every value of a subfield across fields with the given key.
func (r *Record) Values(key, code string) []string {
	var out []string
	for _, f := range r.Get(key) {
		out = append(out, f.GetAll(code)...)
	}
	return out
}

// Items yields (key, field) pairs. Keys appear in order of first occurrence
// and all occurrences of a key are yielded together, in document order.
func (r *Record) Items() iter.Seq2[string, Field] {
	return func(yield func(string, Field) bool) {
		var order []string
		groups := make(map[string][]Field)
		for _, f := range r.Fields {
			k := f.Key()
			if _, ok := groups[k]; !ok {
				order = append(order, k)
			}
			groups[k] = append(groups[k], f)
		}
		for _, k := range order {
			for _, f := range groups[k] {
				if !yield(k, f) {
					return
				}
			}
		}
	}
}

// Sort orders fields by key, blank indicators sorting first, and the
// subfields of each field by code. Both sorts are stable.
func (r *Record) Sort() {
	slices.SortStableFunc(r.Fields, func(a, b Field) int {
		return strings.Compare(sortKey(a), sortKey(b))
	})
	for i := range r.Fields {
		slices.SortStableFunc(r.Fields[i].Subfields, func(a, b Subfield) int {
			return strings.Compare(a.Code, b.Code)
		})
	}
}

func sortKey(f Field) string {
	return strings.ReplaceAll(f.Key(), string(Blank), " ")
}
