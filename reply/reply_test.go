package reply_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/wardrobe"
	"github.com/fwojciec/wardrobe/reply"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "bare object",
			raw:  `{"isClothing": true}`,
			want: `{"isClothing": true}`,
		},
		{
			name: "markdown fence",
			raw:  "```json\n{\"isClothing\": false}\n```",
			want: `{"isClothing": false}`,
		},
		{
			name: "surrounding prose",
			raw:  `Sure! Here is the JSON: {"a": {"b": 1}} Hope that helps.`,
			want: `{"a": {"b": 1}}`,
		},
		{
			name: "two objects span both",
			raw:  `{"a":1} and {"b":2}`,
			want: `{"a":1} and {"b":2}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := reply.Extract(tt.raw)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_NoObject(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{
		"",
		"I'm sorry, I can't help with that.",
		"} reversed {",
		"{ unterminated",
	} {
		_, err := reply.Extract(raw)

		require.Error(t, err, raw)
		assert.Equal(t, wardrobe.EPARSE, wardrobe.ErrorCode(err), raw)
	}
}

func TestExtract_Idempotent(t *testing.T) {
	t.Parallel()

	raw := "noise ```json\n{\"name\": \"Tee\", \"nested\": {\"x\": [1, 2]}}\n``` trailing"

	once, err := reply.Extract(raw)
	require.NoError(t, err)
	twice, err := reply.Extract(once)
	require.NoError(t, err)

	assert.Equal(t, once, twice)
}

func TestParse(t *testing.T) {
	t.Parallel()

	t.Run("decodes the embedded object", func(t *testing.T) {
		t.Parallel()

		obj, err := reply.Parse("```json\n{\"isClothing\": true, \"name\": \"Cool Tee\", \"price\": 19.99}\n```")

		require.NoError(t, err)
		assert.Equal(t, true, obj["isClothing"])
		assert.Equal(t, "Cool Tee", obj["name"])
		assert.Equal(t, json.Number("19.99"), obj["price"])
	})

	t.Run("round trips a serialized object", func(t *testing.T) {
		t.Parallel()

		in := map[string]any{
			"isClothing": true,
			"name":       "Hoodie",
			"brand":      nil,
			"tags":       []any{"a", "b"},
		}
		data, err := json.Marshal(in)
		require.NoError(t, err)

		obj, err := reply.Parse(string(data))

		require.NoError(t, err)
		assert.Equal(t, in, obj)
	})

	t.Run("tolerates braces inside string values", func(t *testing.T) {
		t.Parallel()

		obj, err := reply.Parse(`Result: {"isClothing": true, "name": "Tee {limited}"} done`)

		require.NoError(t, err)
		assert.Equal(t, "Tee {limited}", obj["name"])
	})

	t.Run("multiple objects fail to decode", func(t *testing.T) {
		t.Parallel()

		_, err := reply.Parse(`{"isClothing": true} {"isClothing": false}`)

		require.Error(t, err)
		assert.Equal(t, wardrobe.EPARSE, wardrobe.ErrorCode(err))
	})

	t.Run("malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := reply.Parse(`{"isClothing": true,}`)

		require.Error(t, err)
		assert.Equal(t, wardrobe.EPARSE, wardrobe.ErrorCode(err))
	})

	t.Run("no object", func(t *testing.T) {
		t.Parallel()

		_, err := reply.Parse("no json here")

		require.Error(t, err)
		assert.Equal(t, wardrobe.EPARSE, wardrobe.ErrorCode(err))
	})
}
