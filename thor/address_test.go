// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAddress(t *testing.T) {
	want := BytesToAddress([]byte("acc"))

	addr, err := ParseAddress(want.String())
	require.NoError(t, err)
	assert.Equal(t, want, *addr)

	addr, err = ParseAddress(want.String()[2:])
	require.NoError(t, err)
	assert.Equal(t, want, *addr)

	_, err = ParseAddress("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("1x" + want.String()[2:])
	assert.EqualError(t, err, "invalid prefix")

	assert.Panics(t, func() { MustParseAddress("0xgg") })
}

func TestAddressText(t *testing.T) {
	addr := BytesToAddress([]byte("acc"))

	data, err := json.Marshal(addr)
	require.NoError(t, err)
	assert.Equal(t, `"`+addr.String()+`"`, string(data))

	var decoded Address
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, addr, decoded)

	// map keys go through MarshalText
	m := map[Address]int{addr: 1}
	data, err = json.Marshal(m)
	require.NoError(t, err)
	assert.Equal(t, `{"`+addr.String()+`":1}`, string(data))

	var decodedMap map[Address]int
	require.NoError(t, json.Unmarshal(data, &decodedMap))
	assert.Equal(t, m, decodedMap)

	assert.Error(t, decoded.UnmarshalText([]byte("0x01")))
}

func TestAddressCompare(t *testing.T) {
	a := BytesToAddress([]byte{1})
	b := BytesToAddress([]byte{2})

	assert.Equal(t, -1, a.Compare(b))
	assert.Equal(t, 1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, Address{}.IsZero())
	assert.False(t, a.IsZero())
}
