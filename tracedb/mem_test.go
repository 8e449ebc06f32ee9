// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracedb

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/exectrace/thor"
)

func TestMemReader(t *testing.T) {
	mem := NewMemReader()

	acc, err := mem.Account(alice)
	require.NoError(t, err)
	assert.Nil(t, acc)

	balance := big.NewInt(10)
	mem.SetAccount(alice, &Account{Balance: balance})
	balance.SetInt64(20)

	acc, err = mem.Account(alice)
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(10), acc.Balance, "stored account is a copy")
	assert.Equal(t, new(big.Int), acc.Energy)
	assert.False(t, acc.IsEmpty())

	acc.Balance.SetInt64(0)
	acc, _ = mem.Account(alice)
	assert.Equal(t, big.NewInt(10), acc.Balance, "returned account is a copy")

	code, err := mem.Code(thor.EmptyCodeHash)
	require.NoError(t, err)
	assert.Nil(t, code)

	hash := mem.SetCode([]byte("code"))
	assert.Equal(t, thor.Keccak256([]byte("code")), hash)
	code, err = mem.Code(hash)
	require.NoError(t, err)
	assert.Equal(t, []byte("code"), code)

	_, err = mem.BlockHash(1)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAccountIsEmpty(t *testing.T) {
	assert.True(t, (&Account{}).IsEmpty())
	assert.True(t, (&Account{Balance: new(big.Int), CodeHash: thor.EmptyCodeHash}).IsEmpty())
	assert.False(t, (&Account{Energy: big.NewInt(1)}).IsEmpty())
	assert.False(t, (&Account{CodeHash: thor.Keccak256([]byte("code"))}).IsEmpty())
}
