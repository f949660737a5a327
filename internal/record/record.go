// Package record reads a match log into its ordered tagged records.
package record

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

// Record is one tagged entry of a match log.
type Record struct {
	Tag   string
	Attrs map[string]string
}

func New(tag string, attrs map[string]string) Record {
	if attrs == nil {
		attrs = map[string]string{}
	}
	return Record{Tag: tag, Attrs: attrs}
}

func (r Record) Get(key string) (string, bool) {
	v, ok := r.Attrs[key]
	return v, ok
}

func (r Record) Has(key string) bool {
	_, ok := r.Attrs[key]
	return ok
}

// Read collects the direct children of the log's root element in document
// order.
func Read(src io.Reader) ([]Record, error) {
	dec := xml.NewDecoder(src)
	dec.Strict = false

	var records []Record
	depth := 0
	sawRoot := false
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read record %d: %w", len(records), err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if depth == 1 {
				sawRoot = true
				continue
			}
			if depth != 2 {
				continue
			}
			attrs := make(map[string]string, len(el.Attr))
			for _, a := range el.Attr {
				attrs[a.Name.Local] = a.Value
			}
			records = append(records, Record{Tag: el.Name.Local, Attrs: attrs})
		case xml.EndElement:
			depth--
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("read records: %w", io.ErrUnexpectedEOF)
	}
	return records, nil
}
