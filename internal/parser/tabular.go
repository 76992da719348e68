package parser

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"copilot/internal/domain"
)

// ParseTabular decodes text as a JSON array of objects. Columns are the union
// of keys in first-seen order and every record carries every column, holding
// domain.Missing where the source object lacked the key. Any decode failure,
// a top-level value that is not an array, an element that is not an object or
// trailing data yields a *domain.MalformedResponseError.
func ParseTabular(text string) (*domain.Table, error) {
	dec := json.NewDecoder(bytes.NewReader([]byte(text)))
	dec.UseNumber()

	top, err := domain.DecodeValue(dec)
	if err != nil {
		return nil, malformed(text, decodeError(err))
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		if err == nil {
			err = errors.New("invalid character after top-level value")
		}
		return nil, malformed(text, err)
	}
	if top.Kind() != domain.KindArray {
		return nil, malformed(text, fmt.Errorf("expected a JSON array of objects, got %s", top.Kind()))
	}

	items := top.Items()
	table := &domain.Table{Columns: []string{}, Records: make([]domain.Record, 0, len(items))}
	seen := map[string]bool{}
	for i, item := range items {
		if item.Kind() != domain.KindObject {
			return nil, malformed(text, fmt.Errorf("element %d is %s, expected object", i, item.Kind()))
		}
		rec := make(domain.Record, len(item.Fields()))
		for _, f := range item.Fields() {
			if !seen[f.Name] {
				seen[f.Name] = true
				table.Columns = append(table.Columns, f.Name)
			}
			rec[f.Name] = f.Value
		}
		table.Records = append(table.Records, rec)
	}

	for _, rec := range table.Records {
		for _, col := range table.Columns {
			if _, ok := rec[col]; !ok {
				rec[col] = domain.Missing()
			}
		}
	}
	return table, nil
}

// decodeError normalises the decoder's io.EOF variants, which carry no text.
func decodeError(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return errors.New("unexpected end of JSON input")
	}
	return err
}

func malformed(text string, err error) *domain.MalformedResponseError {
	return &domain.MalformedResponseError{Err: err, Text: text}
}
