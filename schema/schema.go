package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// ErrInvalidJSON is returned when the input document cannot be parsed.
var ErrInvalidJSON = errors.New("schema: invalid JSON document")

// Field maps one wire attribute to one domain attribute. When Schema is set
// the attribute's value (object or array) is translated recursively.
type Field struct {
	Wire   string
	Domain string
	Schema *Schema
}

// Schema is a bidirectional attribute mapping for one entity. Attributes
// absent from Fields pass through under their original name.
type Schema struct {
	Fields []Field
}

// Normalize translates a wire document into its domain shape.
func (s *Schema) Normalize(raw json.RawMessage) (json.RawMessage, error) {
	return s.translate(raw, false)
}

// Denormalize translates a domain document into its wire shape.
func (s *Schema) Denormalize(raw json.RawMessage) (json.RawMessage, error) {
	return s.translate(raw, true)
}

func (s *Schema) lookup(name string, toWire bool) *Field {
	for i := range s.Fields {
		f := &s.Fields[i]
		if toWire && f.Domain == name {
			return f
		}
		if !toWire && f.Wire == name {
			return f
		}
	}
	return nil
}

func (s *Schema) translate(raw json.RawMessage, toWire bool) (json.RawMessage, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	if !gjson.ValidBytes(raw) {
		return nil, ErrInvalidJSON
	}
	doc := gjson.ParseBytes(raw)
	return s.translateResult(doc, toWire)
}

func (s *Schema) translateResult(doc gjson.Result, toWire bool) (json.RawMessage, error) {
	switch {
	case doc.IsArray():
		out := []byte(`[]`)
		for _, el := range doc.Array() {
			translated, err := s.translateResult(el, toWire)
			if err != nil {
				return nil, err
			}
			var serr error
			out, serr = sjson.SetRawBytes(out, "-1", translated)
			if serr != nil {
				return nil, fmt.Errorf("schema: assemble array: %w", serr)
			}
		}
		return out, nil
	case doc.IsObject():
		out := []byte(`{}`)
		var ferr error
		doc.ForEach(func(k, v gjson.Result) bool {
			name := k.String()
			target := name
			var sub *Schema
			if f := s.lookup(name, toWire); f != nil {
				if toWire {
					target = f.Wire
				} else {
					target = f.Domain
				}
				sub = f.Schema
			}
			val := json.RawMessage(v.Raw)
			if sub != nil {
				val, ferr = sub.translateResult(v, toWire)
				if ferr != nil {
					return false
				}
			}
			out, ferr = sjson.SetRawBytes(out, escapePath(target), val)
			return ferr == nil
		})
		if ferr != nil {
			return nil, fmt.Errorf("schema: translate object: %w", ferr)
		}
		return out, nil
	default:
		// Scalars carry no attribute names to translate.
		return json.RawMessage(doc.Raw), nil
	}
}

// escapePath protects sjson path metacharacters in a literal attribute name.
func escapePath(name string) string {
	if !strings.ContainsAny(name, ".*?|#@\\") {
		return name
	}
	var b strings.Builder
	for _, r := range name {
		switch r {
		case '.', '*', '?', '|', '#', '@', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
