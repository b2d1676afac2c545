package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundtrip(t *testing.T) {
	type item struct {
		Name  string
		Count int
	}

	in := []item{{Name: "a", Count: 1}, {Name: "b", Count: 2}}
	data, err := JSON{}.Marshal(in)
	require.NoError(t, err)

	var out []item
	require.NoError(t, JSON{}.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}

func TestByName(t *testing.T) {
	c, ok := ByName("json")
	require.True(t, ok)
	assert.Equal(t, "json", c.Name())

	_, ok = ByName("msgpack")
	assert.False(t, ok)
}

func TestMustMarshal(t *testing.T) {
	b := MustMarshal(nil, map[string]int{"a": 1})
	assert.JSONEq(t, `{"a":1}`, string(b))

	assert.Panics(t, func() {
		MustMarshal(JSON{}, make(chan int))
	})
}
