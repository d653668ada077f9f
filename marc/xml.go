package marc

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// SyntaxError reports malformed MARCXML.
type SyntaxError struct {
	Offset int64
	Err    error
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("marcxml: offset %d: %v", e.Offset, e.Err)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

// ParseRecords reads every <record> element from r. The records may be
// wrapped in a <collection> element and may carry a namespace prefix.
func ParseRecords(r io.Reader) ([]*Record, error) {
	d := xml.NewDecoder(r)
	d.Strict = true

	var records []*Record
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			return records, nil
		}
		if err != nil {
			return nil, &SyntaxError{Offset: d.InputOffset(), Err: err}
		}
		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "record" {
			continue
		}
		rec, err := parseRecord(d)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
}

// ParseRecord returns the first record of a MARCXML document. A document
// without any record element yields an empty record.
func ParseRecord(data []byte) (*Record, error) {
	records, err := ParseRecords(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return &Record{}, nil
	}
	return records[0], nil
}

func parseRecord(d *xml.Decoder) (*Record, error) {
	rec := &Record{}
	for {
		tok, err := d.Token()
		if err != nil {
			return nil, &SyntaxError{Offset: d.InputOffset(), Err: err}
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "record" {
				return rec, nil
			}
		case xml.StartElement:
			switch t.Name.Local {
			case "controlfield":
				text, err := readText(d)
				if err != nil {
					return nil, err
				}
				rec.Append(Field{Tag: attr(t, "tag"), Value: strings.TrimSpace(text)})
			case "datafield":
				f, err := parseDatafield(d, t)
				if err != nil {
					return nil, err
				}
				rec.Append(f)
			default:
				if err := d.Skip(); err != nil {
					return nil, &SyntaxError{Offset: d.InputOffset(), Err: err}
				}
			}
		}
	}
}

func parseDatafield(d *xml.Decoder, start xml.StartElement) (Field, error) {
	f := Field{
		Tag:  attr(start, "tag"),
		Ind1: indicatorKey(attr(start, "ind1")),
		Ind2: indicatorKey(attr(start, "ind2")),
	}
	for {
		tok, err := d.Token()
		if err != nil {
			return f, &SyntaxError{Offset: d.InputOffset(), Err: err}
		}
		switch t := tok.(type) {
		case xml.EndElement:
			if t.Name.Local == "datafield" {
				return f, nil
			}
		case xml.StartElement:
			if t.Name.Local != "subfield" {
				if err := d.Skip(); err != nil {
					return f, &SyntaxError{Offset: d.InputOffset(), Err: err}
				}
				continue
			}
			text, err := readText(d)
			if err != nil {
				return f, err
			}
			f.Subfields = append(f.Subfields, Subfield{Code: attr(t, "code"), Value: strings.TrimSpace(text)})
		}
	}
}

// readText collects character data up to the end of the current element.
func readText(d *xml.Decoder) (string, error) {
	var b strings.Builder
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			return "", &SyntaxError{Offset: d.InputOffset(), Err: err}
		}
		switch t := tok.(type) {
		case xml.CharData:
			b.Write(t)
		case xml.StartElement:
			depth++
		case xml.EndElement:
			depth--
		}
	}
	return b.String(), nil
}

func attr(e xml.StartElement, name string) string {
	for _, a := range e.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}
