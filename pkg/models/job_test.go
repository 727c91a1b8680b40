package models

import (
	"testing"

	"github.com/segmentio/encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEquityUnmarshalJSON(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		input string
		want  Equity
		err   bool
	}{
		{"number", `0.5`, "0.5", false},
		{"zero", `0`, "0", false},
		{"string", `"0.045"`, "0.045", false},
		{"padded string", `" 0.1 "`, "0.1", false},
		{"negative number", `-1`, "-1", false},
		{"bool", `true`, "", true},
		{"object", `{}`, "", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(tt *testing.T) {
			var payload struct {
				Equity *Equity `json:"equity"`
			}
			err := json.Unmarshal([]byte(`{"equity":`+tc.input+`}`), &payload)
			if tc.err {
				require.Error(tt, err)
				return
			}
			require.NoError(tt, err)
			require.NotNil(tt, payload.Equity)
			assert.Equal(tt, tc.want, *payload.Equity)
		})
	}
}

func TestEquityMarshalJSON(t *testing.T) {
	t.Parallel()

	e := Equity("0.25")
	data, err := json.Marshal(&Job{Title: "Engineer", Equity: &e, CompanyHandle: "acme"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"equity":"0.25"`)
	assert.NotContains(t, string(data), `"company"`)
	assert.NotContains(t, string(data), `"companyName"`)
}


func TestEquityDriverValue(t *testing.T) {
	t.Parallel()

	v, err := Equity("0.5").Value()
	require.NoError(t, err)
	assert.Equal(t, "0.5", v)

	cases := []struct {
		name string
		src  interface{}
		want Equity
	}{
		{"text", "0.25", "0.25"},
		{"bytes", []byte("0.1"), "0.1"},
		{"real", 0.75, "0.75"},
		{"integer", int64(0), "0"},
		{"null", nil, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(tt *testing.T) {
			var e Equity
			require.NoError(tt, e.Scan(tc.src))
			assert.Equal(tt, tc.want, e)
		})
	}

	var e Equity
	assert.Error(t, e.Scan(true))
}
