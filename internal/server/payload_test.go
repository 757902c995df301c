package server

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/MyelinBots/knightrun-go/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexString(t *testing.T) {
	var req registerRequest
	require.NoError(t, json.Unmarshal([]byte(`{"height":170,"weight":"65.5"}`), &req))
	assert.Equal(t, flexString("170"), req.Height)
	assert.Equal(t, flexString("65.5"), req.Weight)

	require.NoError(t, json.Unmarshal([]byte(`{"height":null}`), &req))
	assert.Equal(t, flexString(""), req.Height)

	assert.Error(t, json.Unmarshal([]byte(`{"height":true}`), &req))
}

func TestParseUserID(t *testing.T) {
	id, err := parseUserID(json.RawMessage(`"000042"`))
	require.NoError(t, err)
	assert.Equal(t, "000042", id)

	id, err = parseUserID(json.RawMessage(`42`))
	require.NoError(t, err)
	assert.Equal(t, "000042", id)

	id, err = parseUserID(nil)
	require.NoError(t, err)
	assert.Empty(t, id)

	_, err = parseUserID(json.RawMessage(`-1`))
	assert.Error(t, err)
	_, err = parseUserID(json.RawMessage(`{}`))
	assert.Error(t, err)
}

func TestParseAmount(t *testing.T) {
	for raw, want := range map[string]int64{`5`: 5, `-50`: -50, `"12"`: 12, `5.0`: 5, `1e3`: 1000} {
		got, err := parseAmount(json.RawMessage(raw))
		require.NoError(t, err, raw)
		assert.Equal(t, want, got, raw)
	}
	for _, raw := range []string{``, `null`, `1.5`, `"abc"`, `true`, `[1]`} {
		_, err := parseAmount(json.RawMessage(raw))
		assert.Error(t, err, raw)
	}
}

func TestParseAmount_IntegerColumnRange(t *testing.T) {
	got, err := parseAmount(json.RawMessage(`2147483647`))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt32), got)

	got, err = parseAmount(json.RawMessage(`-2147483648`))
	require.NoError(t, err)
	assert.Equal(t, int64(math.MinInt32), got)

	for _, raw := range []string{`3000000000`, `"3000000000"`, `-2147483649`, `1e12`} {
		_, err := parseAmount(json.RawMessage(raw))
		require.Error(t, err, raw)
		assert.Equal(t, apperr.KindValidation, apperr.KindOf(err), raw)
	}
}
