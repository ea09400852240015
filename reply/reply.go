// Package reply recovers a JSON object from free-form model output.
//
// Models often wrap their answer in prose or markdown fences. The object is
// located by taking the span from the first "{" to the last "}" inclusive.
// Replies containing more than one top-level object therefore produce a span
// that does not decode, which is reported as a parse failure.
package reply

import (
	"strings"

	"github.com/fwojciec/wardrobe"
)

// Extract returns the span of raw from the first "{" to the last "}".
// It returns EPARSE if no such span exists.
func Extract(raw string) (string, error) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", wardrobe.Errorf(wardrobe.EPARSE, "no JSON object found in model reply")
	}
	end := strings.LastIndexByte(raw, '}')
	if end < start {
		return "", wardrobe.Errorf(wardrobe.EPARSE, "no JSON object found in model reply")
	}
	return raw[start : end+1], nil
}

// Parse extracts and decodes the JSON object embedded in raw. Numbers are
// returned as json.Number. Any failure is reported as EPARSE.
func Parse(raw string) (map[string]any, error) {
	span, err := Extract(raw)
	if err != nil {
		return nil, err
	}
	obj, err := wardrobe.DecodeObject([]byte(span))
	if err != nil {
		return nil, wardrobe.WrapError(wardrobe.EPARSE, err, "malformed JSON in model reply")
	}
	return obj, nil
}
