package wardrobe

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Price holds a price exactly as the model wrote it. The model may answer
// with a numeric string ("19.99") or a JSON number (19.99); both are kept.
type Price struct {
	// Value is the literal text of the price.
	Value string

	// Numeric is true when the model wrote a JSON number.
	Numeric bool
}

// MarshalJSON writes the price back in the form it was received.
func (p Price) MarshalJSON() ([]byte, error) {
	if p.Numeric {
		return []byte(p.Value), nil
	}
	return json.Marshal(p.Value)
}

// Float64 parses the price as a number.
func (p Price) Float64() (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(p.Value), 64)
	if err != nil {
		return 0, Errorf(EINVALID, "price %q is not numeric", p.Value)
	}
	return f, nil
}

// Record is the normalized clothing metadata produced by one extraction.
// A Record is built fresh per extraction and not modified afterwards;
// WithSourceURL returns a modified copy.
//
// Nil pointer fields serialize as JSON null. Values of enumerated fields are
// carried as the model wrote them and are not checked here.
type Record struct {
	Variant    Variant
	IsClothing bool

	Name     *string
	Brand    *string
	Type     *string
	Price    *Price
	Occasion *string
	Style    *string
	Fit      *string
	Color    *string
	Material *string
	Season   *string

	// SourceURL is only part of the page variant.
	SourceURL *string

	// Extra holds keys the model returned that are not part of the variant.
	Extra map[string]any

	// keys records which canonical keys were present in the model reply.
	// A nil set means every key of the variant.
	keys map[string]bool
}

// NewFallbackRecord returns the record substituted when a page extraction
// fails: isClothing false and explicit nulls for every other field.
func NewFallbackRecord() *Record {
	keys := make(map[string]bool, len(pageKeys))
	for _, key := range pageKeys {
		if key == KeyPrice {
			continue
		}
		keys[key] = true
	}
	return &Record{Variant: VariantPage, keys: keys}
}

// Has reports whether key is present on the record, either because the
// model returned it or because it is part of a fully populated variant.
func (r *Record) Has(key string) bool {
	if key == KeyIsClothing {
		return true
	}
	if _, ok := r.Extra[key]; ok {
		return true
	}
	if r.keys == nil {
		return slices.Contains(r.variant().Keys(), key)
	}
	return r.keys[key]
}

// WithSourceURL returns a copy of the record with sourceUrl set.
func (r *Record) WithSourceURL(url string) *Record {
	other := *r
	other.SourceURL = &url
	other.Extra = maps.Clone(r.Extra)
	if r.keys != nil {
		other.keys = maps.Clone(r.keys)
		other.keys[KeySourceURL] = true
	}
	return &other
}

func (r *Record) variant() Variant {
	if r.Variant == "" {
		return VariantPage
	}
	return r.Variant
}

// stringField returns the address of the string field stored under key.
func (r *Record) stringField(key string) **string {
	switch key {
	case KeyName:
		return &r.Name
	case KeyBrand:
		return &r.Brand
	case KeyType:
		return &r.Type
	case KeyOccasion:
		return &r.Occasion
	case KeyStyle:
		return &r.Style
	case KeyFit:
		return &r.Fit
	case KeyColor:
		return &r.Color
	case KeyMaterial:
		return &r.Material
	case KeySeason:
		return &r.Season
	case KeySourceURL:
		return &r.SourceURL
	}
	return nil
}

func (r *Record) value(key string) any {
	switch key {
	case KeyIsClothing:
		return r.IsClothing
	case KeyPrice:
		if r.Price == nil {
			return nil
		}
		return *r.Price
	}
	if f := r.stringField(key); f != nil && *f != nil {
		return **f
	}
	return nil
}

// MarshalJSON writes the present keys in canonical order followed by any
// extra keys in lexical order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	n := 0
	write := func(key string, v any) error {
		b, err := json.Marshal(v)
		if err != nil {
			return err
		}
		if n > 0 {
			buf.WriteByte(',')
		}
		n++
		k, _ := json.Marshal(key)
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(b)
		return nil
	}

	for _, key := range r.variant().Keys() {
		if _, extra := r.Extra[key]; extra || !r.Has(key) {
			continue
		}
		if err := write(key, r.value(key)); err != nil {
			return nil, err
		}
	}
	for _, key := range slices.Sorted(maps.Keys(r.Extra)) {
		if err := write(key, r.Extra[key]); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// DecodeRecord builds a Record of the given variant from a JSON object
// recovered from a model reply. It returns ESCHEMA if isClothing is missing
// or not a boolean, or if a field has a JSON type the record cannot hold.
//
// When isClothing is false every other field is cleared, so a non-clothing
// record never carries partial guesses.
func DecodeRecord(obj map[string]any, v Variant) (*Record, error) {
	if err := v.Validate(); err != nil {
		return nil, err
	}

	raw, ok := obj[KeyIsClothing]
	if !ok {
		return nil, Errorf(ESCHEMA, "missing %q", KeyIsClothing)
	}
	isClothing, ok := raw.(bool)
	if !ok {
		return nil, Errorf(ESCHEMA, "%q must be a boolean, got %s", KeyIsClothing, jsonType(raw))
	}

	r := &Record{
		Variant:    v,
		IsClothing: isClothing,
		keys:       map[string]bool{KeyIsClothing: true},
	}

	for _, key := range slices.Sorted(maps.Keys(obj)) {
		val := obj[key]
		if key == KeyIsClothing {
			continue
		}
		if !slices.Contains(v.Keys(), key) {
			if r.Extra == nil {
				r.Extra = make(map[string]any)
			}
			r.Extra[key] = val
			continue
		}

		r.keys[key] = true
		if key == KeyPrice {
			p, err := decodePrice(val)
			if err != nil {
				return nil, err
			}
			r.Price = p
			continue
		}

		s, err := decodeString(key, val)
		if err != nil {
			return nil, err
		}
		*r.stringField(key) = s
	}

	if !isClothing {
		r.clear()
	}
	return r, nil
}

// DecodeRecordJSON decodes serialized record JSON into a Record of the given variant.
func DecodeRecordJSON(data []byte, v Variant) (*Record, error) {
	obj, err := DecodeObject(data)
	if err != nil {
		return nil, err
	}
	return DecodeRecord(obj, v)
}

// DecodeObject strictly decodes a single JSON object. Numbers are kept as
// json.Number so their literal text survives; trailing data is an error.
func DecodeObject(data []byte) (map[string]any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("JSON value is not an object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return obj, nil
}

func (r *Record) clear() {
	for _, key := range pageKeys {
		if f := r.stringField(key); f != nil {
			*f = nil
		}
	}
	r.Price = nil
	r.Extra = nil
}

func decodeString(key string, val any) (*string, error) {
	switch t := val.(type) {
	case nil:
		return nil, nil
	case string:
		return &t, nil
	}
	return nil, Errorf(ESCHEMA, "%q must be a string or null, got %s", key, jsonType(val))
}

func decodePrice(val any) (*Price, error) {
	switch t := val.(type) {
	case nil:
		return nil, nil
	case string:
		return &Price{Value: t}, nil
	case json.Number:
		return &Price{Value: t.String(), Numeric: true}, nil
	case float64:
		return &Price{Value: strconv.FormatFloat(t, 'f', -1, 64), Numeric: true}, nil
	}
	return nil, Errorf(ESCHEMA, "%q must be a string, number or null, got %s", KeyPrice, jsonType(val))
}

func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case json.Number, float64:
		return "number"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	}
	return "unknown"
}
