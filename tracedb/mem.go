// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tracedb

import (
	"math/big"

	"github.com/pkg/errors"

	"github.com/vechain/exectrace/thor"
)

// ErrNotFound is returned by MemReader for unknown code and block hashes.
var ErrNotFound = errors.New("not found")

// MemReader is an in-memory Reader.
type MemReader struct {
	accounts    map[thor.Address]Account
	storage     map[thor.Address]map[thor.Bytes32]thor.Bytes32
	codes       map[thor.Bytes32][]byte
	blockHashes map[uint64]thor.Bytes32
}

var _ Reader = (*MemReader)(nil)

// NewMemReader creates an empty MemReader.
func NewMemReader() *MemReader {
	return &MemReader{
		accounts:    make(map[thor.Address]Account),
		storage:     make(map[thor.Address]map[thor.Bytes32]thor.Bytes32),
		codes:       make(map[thor.Bytes32][]byte),
		blockHashes: make(map[uint64]thor.Bytes32),
	}
}

func copyBig(v *big.Int) *big.Int {
	if v == nil {
		return new(big.Int)
	}
	return new(big.Int).Set(v)
}

// SetAccount stores a copy of acc.
func (m *MemReader) SetAccount(addr thor.Address, acc *Account) {
	m.accounts[addr] = Account{
		Balance:  copyBig(acc.Balance),
		Energy:   copyBig(acc.Energy),
		CodeHash: acc.CodeHash,
	}
}

// SetStorage sets a storage value.
func (m *MemReader) SetStorage(addr thor.Address, key, value thor.Bytes32) {
	slots, ok := m.storage[addr]
	if !ok {
		slots = make(map[thor.Bytes32]thor.Bytes32)
		m.storage[addr] = slots
	}
	slots[key] = value
}

// SetCode stores code and returns its hash.
func (m *MemReader) SetCode(code []byte) thor.Bytes32 {
	hash := thor.Keccak256(code)
	m.codes[hash] = append([]byte(nil), code...)
	return hash
}

// SetBlockHash sets the hash of block num.
func (m *MemReader) SetBlockHash(num uint64, hash thor.Bytes32) {
	m.blockHashes[num] = hash
}

// Account implements Reader.
func (m *MemReader) Account(addr thor.Address) (*Account, error) {
	acc, ok := m.accounts[addr]
	if !ok {
		return nil, nil
	}
	return &Account{
		Balance:  copyBig(acc.Balance),
		Energy:   copyBig(acc.Energy),
		CodeHash: acc.CodeHash,
	}, nil
}

// Storage implements Reader. Unset slots read as zero.
func (m *MemReader) Storage(addr thor.Address, key thor.Bytes32) (thor.Bytes32, error) {
	return m.storage[addr][key], nil
}

// Code implements Reader.
func (m *MemReader) Code(hash thor.Bytes32) ([]byte, error) {
	if hash == thor.EmptyCodeHash {
		return nil, nil
	}
	code, ok := m.codes[hash]
	if !ok {
		return nil, errors.Wrapf(ErrNotFound, "code %v", hash)
	}
	return code, nil
}

// BlockHash implements Reader.
func (m *MemReader) BlockHash(num uint64) (thor.Bytes32, error) {
	h, ok := m.blockHashes[num]
	if !ok {
		return thor.Bytes32{}, errors.Wrapf(ErrNotFound, "block %v", num)
	}
	return h, nil
}
