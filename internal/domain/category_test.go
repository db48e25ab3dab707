package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroup_KeysAndDuration(t *testing.T) {
	g := Group{NewCategoryTotal('A', 1.5), NewCategoryTotal('B', 2.5), NewCategoryTotal('0', 1)}

	assert.Equal(t, "AB0", g.Keys())
	assert.InDelta(t, 5.0, g.Duration(), 1e-9)
	assert.Equal(t, "", Group{}.Keys())
	assert.Zero(t, Group{}.Duration())
}

func TestCategoryTotal_JSON(t *testing.T) {
	data, err := json.Marshal(NewCategoryTotal('M', 100))
	require.NoError(t, err)
	assert.JSONEq(t, `{"key":"M","duration":100}`, string(data))

	var got CategoryTotal
	require.NoError(t, json.Unmarshal([]byte(`{"key":"é","duration":2.5}`), &got))
	assert.Equal(t, NewCategoryTotal('é', 2.5), got)

	t.Run("rejects multi character key", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"key":"AB","duration":1}`), &got)
		assert.Error(t, err)
	})

	t.Run("rejects empty key", func(t *testing.T) {
		err := json.Unmarshal([]byte(`{"key":"","duration":1}`), &got)
		assert.Error(t, err)
	})
}
