package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreviewRowKeepsKeyOrder(t *testing.T) {
	raw := []byte(`{"zeta": 1, "alpha": "x", "mid": null, "flag": true}`)

	var row PreviewRow
	require.NoError(t, json.Unmarshal(raw, &row))

	names := make([]string, 0, len(row.Fields))
	for _, f := range row.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"zeta", "alpha", "mid", "flag"}, names)

	v, ok := row.Get("alpha")
	require.True(t, ok)
	assert.Equal(t, "x", v)

	_, ok = row.Get("missing")
	assert.False(t, ok)
}

func TestPreviewRowMarshalRoundTrip(t *testing.T) {
	raw := []byte(`{"b":2,"a":1,"c":"three"}`)

	var row PreviewRow
	require.NoError(t, json.Unmarshal(raw, &row))

	out, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))

	// order survives, not just content
	var again PreviewRow
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, row.Fields[0].Name, again.Fields[0].Name)
	assert.Equal(t, "b", again.Fields[0].Name)
}

func TestPreviewRowRejectsNonObject(t *testing.T) {
	var row PreviewRow
	assert.Error(t, json.Unmarshal([]byte(`[1,2,3]`), &row))
}
