// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"math/rand"
	"testing"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
)

func BenchmarkKeccak256(b *testing.B) {
	data := make([]byte, 100)

	rng := rand.New(rand.NewSource(1)) //#nosec G404
	for i := range data {
		data[i] = byte(rng.Uint64())
	}
	for i := 0; i < b.N; i++ {
		Keccak256(data)
	}
}

func TestKeccak256(t *testing.T) {
	singleData := []byte("data")
	multipleData := [][]byte{[]byte("multi"), []byte("ple"), []byte("data")}

	singleHash := Keccak256(singleData)
	assert.Equal(t, Bytes32(crypto.Keccak256Hash(singleData)), singleHash)

	multiHash := Keccak256(multipleData...)
	assert.Equal(t, Bytes32(crypto.Keccak256Hash([]byte("multipledata"))), multiHash)

	assert.NotEqual(t, singleHash, multiHash)
}

func TestEmptyCodeHash(t *testing.T) {
	assert.Equal(t,
		MustParseBytes32("0xc5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470"),
		EmptyCodeHash)
}
