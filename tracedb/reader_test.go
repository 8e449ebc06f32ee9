// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracedb

import (
	"math/big"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/exectrace/accesstrace"
	"github.com/vechain/exectrace/thor"
)

// countingReader counts calls reaching the backing reader.
type countingReader struct {
	Reader
	codeCalls int
}

func (c *countingReader) Code(hash thor.Bytes32) ([]byte, error) {
	c.codeCalls++
	return c.Reader.Code(hash)
}

var (
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

func newTestState() (*MemReader, thor.Bytes32) {
	mem := NewMemReader()
	codeHash := mem.SetCode([]byte{0x60, 0x00, 0x60, 0x00, 0xf3})
	mem.SetAccount(alice, &Account{Balance: big.NewInt(100), CodeHash: codeHash})
	mem.SetStorage(alice, thor.BytesToBytes32([]byte{1}), thor.BytesToBytes32([]byte("one")))
	mem.SetBlockHash(100, thor.Keccak256([]byte("block 100")))
	return mem, codeHash
}

func TestDBRecordsAccesses(t *testing.T) {
	mem, codeHash := newTestState()
	db := New(mem)

	acc, err := db.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(100), acc.Balance)

	v, err := db.Storage(alice, thor.BytesToBytes32([]byte{1}))
	require.NoError(t, err)
	assert.Equal(t, thor.BytesToBytes32([]byte("one")), v)

	v, err = db.Storage(alice, thor.BytesToBytes32([]byte{2}))
	require.NoError(t, err)
	assert.True(t, v.IsZero())

	code, err := db.Code(acc.CodeHash)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x60, 0x00, 0x60, 0x00, 0xf3}, code)

	h, err := db.BlockHash(100)
	require.NoError(t, err)
	assert.Equal(t, thor.Keccak256([]byte("block 100")), h)

	// a missing account is still an access
	acc, err = db.Account(bob)
	require.NoError(t, err)
	assert.Nil(t, acc)

	tr := db.Trace()
	// accounts come back in address order, not in access order
	assert.Equal(t, []thor.Address{bob, alice}, tr.Accounts())
	assert.Equal(t, []thor.Bytes32{thor.BytesToBytes32([]byte{1}), thor.BytesToBytes32([]byte{2})}, tr.Storage(alice))
	assert.Equal(t, []thor.Bytes32{codeHash}, tr.Codes())
	assert.Equal(t, []uint64{100}, tr.BlockNumbers())
}

func TestDBStorageBeforeAccount(t *testing.T) {
	mem, _ := newTestState()
	db := New(mem)

	assert.PanicsWithError(t,
		(&accesstrace.InvariantError{Account: alice, Key: thor.BytesToBytes32([]byte{1})}).Error(),
		func() { db.Storage(alice, thor.BytesToBytes32([]byte{1})) })
	assert.True(t, db.Trace().IsEmpty())
}

func TestDBHarvest(t *testing.T) {
	mem, _ := newTestState()
	db := New(mem)

	_, err := db.Account(alice)
	require.NoError(t, err)
	_, err = db.BlockHash(100)
	require.NoError(t, err)

	harvested := db.Harvest()
	assert.Equal(t, accesstrace.Stats{Accounts: 1, BlockHashes: 1}, harvested.Stats())
	assert.True(t, db.Trace().IsEmpty())

	// account warmth does not carry over into the next unit
	assert.Panics(t, func() { db.Storage(alice, thor.Bytes32{}) })
}

func TestDBErrors(t *testing.T) {
	mem, _ := newTestState()
	db := New(mem)

	_, err := db.BlockHash(7)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "read hash of block 7")

	missing := thor.Keccak256([]byte("missing"))
	_, err = db.Code(missing)
	assert.True(t, errors.Is(err, ErrNotFound))

	// failed reads are accesses too
	assert.True(t, db.Trace().HasBlockNumber(7))
	assert.True(t, db.Trace().HasCode(missing))
}

func TestDBCodeCache(t *testing.T) {
	mem, codeHash := newTestState()
	backing := &countingReader{Reader: mem}
	db := New(backing, WithCodeCache(4))

	for i := 0; i < 3; i++ {
		code, err := db.Code(codeHash)
		require.NoError(t, err)
		assert.Len(t, code, 5)
	}
	assert.Equal(t, 1, backing.codeCalls)

	// the cache survives harvesting
	db.Harvest()
	_, err := db.Code(codeHash)
	require.NoError(t, err)
	assert.Equal(t, 1, backing.codeCalls)
	assert.True(t, db.Trace().HasCode(codeHash))

	// failures are not cached
	missing := thor.Keccak256([]byte("missing"))
	_, err = db.Code(missing)
	assert.Error(t, err)
	_, err = db.Code(missing)
	assert.Error(t, err)
	assert.Equal(t, 3, backing.codeCalls)
}

func TestDBCodeCacheDisabled(t *testing.T) {
	mem, codeHash := newTestState()
	backing := &countingReader{Reader: mem}
	db := New(backing, WithCodeCache(0))

	for i := 0; i < 3; i++ {
		_, err := db.Code(codeHash)
		require.NoError(t, err)
	}
	assert.Equal(t, 3, backing.codeCalls)
}
