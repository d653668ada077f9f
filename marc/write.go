package marc

import (
	"bytes"
	"encoding/xml"
	"strings"
)

// MarshalOptions configures MARCXML output.
type MarshalOptions struct {
	Indent string // Indentation string (default: "  ")
}

// Marshal serialises a record as a standalone MARCXML document. Fields are
// sorted by key and subfields by code; text is filtered to the XML 1.0
// character range.
func Marshal(r *Record) []byte {
	opts := MarshalOptions{Indent: "  "}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	writeRecord(&buf, r, opts, 0)
	return buf.Bytes()
}

// MarshalCollection wraps several records in a <collection> element.
func MarshalCollection(records []*Record) []byte {
	opts := MarshalOptions{Indent: "  "}
	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	buf.WriteString("<collection>\n")
	for _, r := range records {
		writeRecord(&buf, r, opts, 1)
	}
	buf.WriteString("</collection>\n")
	return buf.Bytes()
}

func writeRecord(buf *bytes.Buffer, r *Record, opts MarshalOptions, depth int) {
	sorted := &Record{Fields: make([]Field, len(r.Fields))}
	for i, f := range r.Fields {
		f.Subfields = append([]Subfield(nil), f.Subfields...)
		sorted.Fields[i] = f
	}
	sorted.Sort()

	indent := strings.Repeat(opts.Indent, depth)
	buf.WriteString(indent + "<record>\n")
	for _, f := range sorted.Fields {
		writeField(buf, f, indent+opts.Indent, opts.Indent)
	}
	buf.WriteString(indent + "</record>\n")
}

func writeField(buf *bytes.Buffer, f Field, indent, step string) {
	if f.IsControl() {
		buf.WriteString(indent + `<controlfield tag="`)
		escape(buf, f.Tag)
		buf.WriteString(`">`)
		escape(buf, f.Value)
		buf.WriteString("</controlfield>\n")
		return
	}

	buf.WriteString(indent + `<datafield tag="`)
	escape(buf, f.Tag)
	buf.WriteString(`" ind1="` + indicatorXML(f.Ind1) + `" ind2="` + indicatorXML(f.Ind2) + `">` + "\n")
	for _, sf := range f.Subfields {
		buf.WriteString(indent + step + `<subfield code="`)
		escape(buf, sf.Code)
		buf.WriteString(`">`)
		escape(buf, sf.Value)
		buf.WriteString("</subfield>\n")
	}
	buf.WriteString(indent + "</datafield>\n")
}

func indicatorXML(ind string) string {
	k := indicatorKey(ind)
	if k == string(Blank) {
		return " "
	}
	return k
}

func escape(buf *bytes.Buffer, s string) {
	_ = xml.EscapeText(buf, []byte(StripInvalidXMLChars(s)))
}
