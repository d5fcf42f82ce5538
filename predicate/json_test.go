package predicate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "equal",
			input: `{"field": {"key": "population", "type": "number"}, "operator": "equal", "value": 5}`,
			want:  "(population = 5)",
		}, {
			name:  "large integers stay exact",
			input: `{"field": {"key": "OBJECTID", "type": "oid"}, "operator": "==", "value": 9007199254740993}`,
			want:  "(OBJECTID = 9007199254740993)",
		}, {
			name:  "negated ilike",
			input: `{"field": {"key": "name", "type": "string"}, "operator": "ilike", "not": true, "value": "%berg%"}`,
			want:  "(name NOT ILIKE '%berg%')",
		}, {
			name:  "in",
			input: `{"field": {"key": "kind"}, "operator": "in", "value": ["a", 2]}`,
			want:  "(kind IN ('a',2))",
		}, {
			name:  "null",
			input: `{"field": {"key": "deleted", "type": "date"}, "operator": "null"}`,
			want:  "(deleted IS NULL)",
		}, {
			name:  "date value",
			input: `{"field": {"key": "day", "type": "date"}, "operator": "gte", "value": "2021-04-17T13:55:21Z"}`,
			want:  "(day >= '2021-04-17T13:55:21Z')",
		}, {
			name:  "and of three folds left",
			input: `{"and": [{"field": {"key": "a", "type": "number"}, "operator": "<", "value": 1}, {"field": {"key": "b", "type": "number"}, "operator": ">", "value": 2}, {"or": [{"field": {"key": "c"}, "operator": "like", "value": "x%"}, {"field": {"key": "d"}, "operator": "null", "not": true}]}]}`,
			want:  "(((a < 1) AND (b > 2)) AND ((c LIKE 'x%') OR (d IS NOT NULL)))",
		}, {
			name:    "unknown operator",
			input:   `{"field": {"key": "a"}, "operator": "~", "value": 1}`,
			wantErr: true,
		}, {
			name:    "in without array",
			input:   `{"field": {"key": "a"}, "operator": "in", "value": 1}`,
			wantErr: true,
		}, {
			name:    "single predicate and",
			input:   `{"and": [{"field": {"key": "a"}, "operator": "null"}]}`,
			wantErr: true,
		}, {
			name:    "no field",
			input:   `{"operator": "equal", "value": 1}`,
			wantErr: true,
		}, {
			name:    "invalid json",
			input:   `{"field": `,
			wantErr: true,
		}, {
			name:  "quotes in value are doubled",
			input: `{"field": {"key": "name", "type": "string"}, "operator": "equal", "value": "O'Brien') OR ('1'='1"}`,
			want:  "(name = 'O''Brien'') OR (''1''=''1')",
		}, {
			name:    "expression as key",
			input:   `{"field": {"key": "1=1) OR (1", "type": "number"}, "operator": "equal", "value": 1}`,
			wantErr: true,
		}, {
			name:    "quoted key",
			input:   `{"field": {"key": "name\" --", "type": "string"}, "operator": "null"}`,
			wantErr: true,
		}, {
			name:    "empty key",
			input:   `{"field": {"key": ""}, "operator": "null"}`,
			wantErr: true,
		}, {
			name:    "object value",
			input:   `{"field": {"key": "a"}, "operator": "equal", "value": {"b": "1) OR (1=1"}}`,
			wantErr: true,
		}, {
			name:    "array value outside in",
			input:   `{"field": {"key": "a"}, "operator": "like", "value": ["x"]}`,
			wantErr: true,
		}, {
			name:    "nested array in in",
			input:   `{"field": {"key": "a"}, "operator": "in", "value": [["x"]]}`,
			wantErr: true,
		}, {
			name:    "invalid key inside and",
			input:   `{"and": [{"field": {"key": "a"}, "operator": "null"}, {"field": {"key": "a;b"}, "operator": "null"}]}`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseJSON([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseJSONList(t *testing.T) {
	predicates, err := ParseJSONList([]byte(`[
		{"field": {"key": "a", "type": "number"}, "operator": "equal", "value": 1},
		{"field": {"key": "b", "type": "string"}, "operator": "equal", "value": "x"}
	]`))
	require.NoError(t, err)

	s, err := NewFilterBuilder(predicates, DialectCQL).Build()
	require.NoError(t, err)
	assert.Equal(t, "(a = 1) && (Concatenate(b) = 'x')", s)

	_, err = ParseJSONList([]byte(`[{"operator": "equal"}]`))
	require.Error(t, err)
}
