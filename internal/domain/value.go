package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Kind discriminates the variants of Value.
type Kind int

const (
	// KindMissing marks a column the source record did not carry.
	KindMissing Kind = iota
	KindNull
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindNull:
		return "null"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "unknown"
	}
}

// Field is one key/value pair of an ordered object.
type Field struct {
	Name  string
	Value Value
}

// Value is a decoded JSON value. The zero Value is Missing.
type Value struct {
	kind   Kind
	str    string
	num    json.Number
	b      bool
	object []Field
	array  []Value
}

func Missing() Value                { return Value{kind: KindMissing} }
func Null() Value                   { return Value{kind: KindNull} }
func String(s string) Value         { return Value{kind: KindString, str: s} }
func Number(n json.Number) Value    { return Value{kind: KindNumber, num: n} }
func Bool(b bool) Value             { return Value{kind: KindBool, b: b} }
func Object(fields []Field) Value   { return Value{kind: KindObject, object: fields} }
func Array(items []Value) Value     { return Value{kind: KindArray, array: items} }
func (v Value) Kind() Kind          { return v.kind }
func (v Value) IsMissing() bool     { return v.kind == KindMissing }
func (v Value) Str() (string, bool) { return v.str, v.kind == KindString }
func (v Value) Bool() (bool, bool)  { return v.b, v.kind == KindBool }
func (v Value) Fields() []Field     { return v.object }
func (v Value) Items() []Value      { return v.array }

// Num returns the number literal exactly as the source wrote it.
func (v Value) Num() (json.Number, bool) {
	return v.num, v.kind == KindNumber
}

// Get returns the named field of an object value, or Missing.
func (v Value) Get(name string) Value {
	for _, f := range v.object {
		if f.Name == name {
			return f.Value
		}
	}
	return Missing()
}

// Text renders the value for a single table cell. Strings are returned as-is,
// nested values as compact JSON, null and missing as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindNumber:
		return v.num.String()
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindObject, KindArray:
		b, _ := v.MarshalJSON()
		return string(b)
	default:
		return ""
	}
}

// MarshalJSON encodes the value preserving object key order. Missing encodes as null.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := v.encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (v Value) encode(buf *bytes.Buffer) error {
	switch v.kind {
	case KindString:
		b, err := marshalNoEscape(v.str)
		if err != nil {
			return err
		}
		buf.Write(b)
	case KindNumber:
		buf.WriteString(v.num.String())
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.b))
	case KindObject:
		buf.WriteByte('{')
		for i, f := range v.object {
			if i > 0 {
				buf.WriteByte(',')
			}
			k, err := marshalNoEscape(f.Name)
			if err != nil {
				return err
			}
			buf.Write(k)
			buf.WriteByte(':')
			if err := f.Value.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
	case KindArray:
		buf.WriteByte('[')
		for i, item := range v.array {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := item.encode(buf); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
	default:
		buf.WriteString("null")
	}
	return nil
}

// marshalNoEscape encodes a string without HTML escaping so that text such as
// "<" or "&" round-trips byte for byte.
func marshalNoEscape(s string) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Record is one row of a decoded JSON array. Every column of the owning
// Table is present; absent source keys hold Missing.
type Record map[string]Value

// Table is an ordered set of records with the union of their keys as columns.
type Table struct {
	Columns []string
	Records []Record
}

// Len returns the number of records.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// Cell returns the value at row i for column, or Missing when out of range.
func (t *Table) Cell(i int, column string) Value {
	if t == nil || i < 0 || i >= len(t.Records) {
		return Missing()
	}
	return t.Records[i][column]
}

// Row returns the values of record i in column order.
func (t *Table) Row(i int) []Value {
	row := make([]Value, len(t.Columns))
	for j, col := range t.Columns {
		row[j] = t.Cell(i, col)
	}
	return row
}

// SourceObject returns record i as an ordered object, omitting missing fields.
func (t *Table) SourceObject(i int) Value {
	fields := make([]Field, 0, len(t.Columns))
	for _, col := range t.Columns {
		v := t.Cell(i, col)
		if v.IsMissing() {
			continue
		}
		fields = append(fields, Field{Name: col, Value: v})
	}
	return Object(fields)
}

// MarshalJSON encodes the table as {"columns": [...], "records": [...]}.
// Records list their fields in column order and leave out missing fields;
// the columns array carries the full union.
func (t Table) MarshalJSON() ([]byte, error) {
	records := make([]Value, len(t.Records))
	for i := range t.Records {
		records[i] = t.SourceObject(i)
	}
	columns := t.Columns
	if columns == nil {
		columns = []string{}
	}
	cols, err := json.Marshal(columns)
	if err != nil {
		return nil, err
	}
	rows, err := Array(records).MarshalJSON()
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	buf.WriteString(`{"columns":`)
	buf.Write(cols)
	buf.WriteString(`,"records":`)
	buf.Write(rows)
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a table written by MarshalJSON.
func (t *Table) UnmarshalJSON(data []byte) error {
	var wire struct {
		Columns []string          `json:"columns"`
		Records []json.RawMessage `json:"records"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	t.Columns = wire.Columns
	t.Records = make([]Record, len(wire.Records))
	for i, raw := range wire.Records {
		v, err := DecodeValue(newDecoder(raw))
		if err != nil {
			return err
		}
		if v.Kind() != KindObject {
			return fmt.Errorf("record %d: expected object, got %s", i, v.Kind())
		}
		rec := make(Record, len(t.Columns))
		for _, col := range t.Columns {
			rec[col] = Missing()
		}
		for _, f := range v.Fields() {
			rec[f.Name] = f.Value
		}
		t.Records[i] = rec
	}
	return nil
}
