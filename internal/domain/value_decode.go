package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

func newDecoder(data []byte) *json.Decoder {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	return dec
}

// DecodeValue reads the next JSON value from dec, keeping object keys in
// source order. dec must have UseNumber enabled so numbers keep their literal.
func DecodeValue(dec *json.Decoder) (Value, error) {
	tok, err := dec.Token()
	if err != nil {
		return Value{}, err
	}
	return decodeToken(dec, tok)
}

func decodeToken(dec *json.Decoder, tok json.Token) (Value, error) {
	switch t := tok.(type) {
	case nil:
		return Null(), nil
	case bool:
		return Bool(t), nil
	case json.Number:
		return Number(t), nil
	case float64:
		return Number(json.Number(fmt.Sprint(t))), nil
	case string:
		return String(t), nil
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(dec)
		case '[':
			return decodeArray(dec)
		}
		return Value{}, fmt.Errorf("unexpected delimiter %q", t)
	default:
		return Value{}, fmt.Errorf("unexpected token %v", tok)
	}
}

func decodeObject(dec *json.Decoder) (Value, error) {
	fields := []Field{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Value{}, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return Value{}, fmt.Errorf("object key is not a string: %v", keyTok)
		}
		val, err := DecodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		fields = setField(fields, key, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Object(fields), nil
}

// setField keeps the first position of a duplicated key and the last value,
// matching encoding/json's last-wins behaviour.
func setField(fields []Field, key string, val Value) []Field {
	for i := range fields {
		if fields[i].Name == key {
			fields[i].Value = val
			return fields
		}
	}
	return append(fields, Field{Name: key, Value: val})
}

func decodeArray(dec *json.Decoder) (Value, error) {
	items := []Value{}
	for dec.More() {
		val, err := DecodeValue(dec)
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
	}
	if _, err := dec.Token(); err != nil {
		return Value{}, err
	}
	return Array(items), nil
}
