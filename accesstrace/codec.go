// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accesstrace

import (
	"cmp"
	"io"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/exectrace/thor"
)

var (
	_ rlp.Encoder = (*Trace)(nil)
	_ rlp.Decoder = (*Trace)(nil)
)

// rlpAccount is an account with the slots accessed under it.
type rlpAccount struct {
	Address thor.Address
	Slots   []thor.Bytes32
}

// rlpTrace is the wire form of a trace. All lists are strictly ascending.
type rlpTrace struct {
	Accounts     []rlpAccount
	Codes        []thor.Bytes32
	BlockNumbers []uint64
}

// EncodeRLP implements rlp.Encoder.
func (t *Trace) EncodeRLP(w io.Writer) error {
	addrs := t.Accounts()
	raw := rlpTrace{
		Accounts:     make([]rlpAccount, 0, len(addrs)),
		Codes:        t.Codes(),
		BlockNumbers: t.BlockNumbers(),
	}
	for _, addr := range addrs {
		raw.Accounts = append(raw.Accounts, rlpAccount{
			Address: addr,
			Slots:   t.Storage(addr),
		})
	}
	return rlp.Encode(w, &raw)
}

// DecodeRLP implements rlp.Decoder.
// Unsorted or repeated entries are rejected with ErrNonCanonical.
func (t *Trace) DecodeRLP(s *rlp.Stream) error {
	var raw rlpTrace
	if err := s.Decode(&raw); err != nil {
		return err
	}

	if !strictlyAscending(raw.Accounts, func(a, b rlpAccount) int { return a.Address.Compare(b.Address) }) {
		return errors.Wrap(ErrNonCanonical, "accounts")
	}
	for _, acc := range raw.Accounts {
		if !strictlyAscending(acc.Slots, thor.Bytes32.Compare) {
			return errors.Wrapf(ErrNonCanonical, "slots of %v", acc.Address)
		}
	}
	if !strictlyAscending(raw.Codes, thor.Bytes32.Compare) {
		return errors.Wrap(ErrNonCanonical, "codes")
	}
	if !strictlyAscending(raw.BlockNumbers, cmp.Compare[uint64]) {
		return errors.Wrap(ErrNonCanonical, "block numbers")
	}

	var decoded Trace
	decoded.init(len(raw.Accounts), len(raw.Codes), len(raw.BlockNumbers))
	for _, acc := range raw.Accounts {
		decoded.RecordAccount(acc.Address)
		for _, key := range acc.Slots {
			decoded.RecordStorage(acc.Address, key)
		}
	}
	for _, hash := range raw.Codes {
		decoded.RecordCode(hash)
	}
	for _, num := range raw.BlockNumbers {
		decoded.RecordBlockNumber(num)
	}
	*t = decoded
	return nil
}

func strictlyAscending[T any](items []T, compare func(a, b T) int) bool {
	for i := 1; i < len(items); i++ {
		if compare(items[i-1], items[i]) >= 0 {
			return false
		}
	}
	return true
}
