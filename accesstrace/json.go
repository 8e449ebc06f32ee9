// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accesstrace

import (
	"encoding/json"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/pkg/errors"

	"github.com/vechain/exectrace/thor"
)

var (
	_ json.Marshaler   = (*Trace)(nil)
	_ json.Unmarshaler = (*Trace)(nil)
)

// JSONTrace is the JSON form of a trace.
// Lists are emitted in ascending order; object keys are sorted by encoding/json.
type JSONTrace struct {
	Accounts    map[thor.Address][]thor.Bytes32 `json:"accounts"`
	Codes       []thor.Bytes32                  `json:"codes"`
	BlockHashes []hexutil.Uint64                `json:"blockHashes"`
}

// ToJSON converts t into its JSON form.
func (t *Trace) ToJSON() *JSONTrace {
	nums := t.BlockNumbers()
	jt := &JSONTrace{
		Accounts:    make(map[thor.Address][]thor.Bytes32, len(t.accounts)),
		Codes:       t.Codes(),
		BlockHashes: make([]hexutil.Uint64, 0, len(nums)),
	}
	for addr := range t.accounts {
		jt.Accounts[addr] = t.Storage(addr)
	}
	for _, num := range nums {
		jt.BlockHashes = append(jt.BlockHashes, hexutil.Uint64(num))
	}
	return jt
}

// MarshalJSON implements json.Marshaler.
func (t *Trace) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.ToJSON())
}

// UnmarshalJSON implements json.Unmarshaler.
// Entries may come in any order; repeated entries collapse, including account
// keys that differ only in hex case.
func (t *Trace) UnmarshalJSON(data []byte) error {
	// account keys stay strings until parsed so differently cased spellings
	// of one address are merged instead of overwriting each other
	var jt struct {
		Accounts    map[string][]thor.Bytes32 `json:"accounts"`
		Codes       []thor.Bytes32            `json:"codes"`
		BlockHashes []hexutil.Uint64          `json:"blockHashes"`
	}
	if err := json.Unmarshal(data, &jt); err != nil {
		return err
	}

	var decoded Trace
	decoded.init(len(jt.Accounts), len(jt.Codes), len(jt.BlockHashes))
	for key, slots := range jt.Accounts {
		addr, err := thor.ParseAddress(key)
		if err != nil {
			return errors.Wrapf(err, "account %q", key)
		}
		decoded.RecordAccount(*addr)
		for _, slot := range slots {
			decoded.RecordStorage(*addr, slot)
		}
	}
	for _, hash := range jt.Codes {
		decoded.RecordCode(hash)
	}
	for _, num := range jt.BlockHashes {
		decoded.RecordBlockNumber(uint64(num))
	}
	*t = decoded
	return nil
}
