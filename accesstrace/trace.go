// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accesstrace

import (
	"cmp"
	"slices"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/vechain/exectrace/log"
	"github.com/vechain/exectrace/thor"
)

var logger = log.WithContext("pkg", "accesstrace")

type slotSet = mapset.Set[thor.Bytes32]

// Trace is the set of state elements accessed by one execution unit.
// The zero value is an empty trace ready for use.
type Trace struct {
	// accounts maps each touched account to the slots touched under it.
	// A nil set means the account was touched without any storage access.
	accounts    map[thor.Address]slotSet
	codes       mapset.Set[thor.Bytes32]
	blockHashes mapset.Set[uint64]
}

// Stats counts the elements of a trace.
type Stats struct {
	Accounts    int
	Slots       int
	Codes       int
	BlockHashes int
}

// New creates an empty trace.
func New() *Trace {
	t := &Trace{}
	t.init(0, 0, 0)
	return t
}

func (t *Trace) init(accounts, codes, blockHashes int) {
	if t.accounts != nil {
		return
	}
	t.accounts = make(map[thor.Address]slotSet, accounts)
	t.codes = mapset.NewThreadUnsafeSetWithSize[thor.Bytes32](codes)
	t.blockHashes = mapset.NewThreadUnsafeSetWithSize[uint64](blockHashes)
}

// RecordAccount marks addr as accessed.
// It returns true if this is the first access in the current unit.
func (t *Trace) RecordAccount(addr thor.Address) bool {
	t.init(0, 0, 0)
	if _, ok := t.accounts[addr]; ok {
		return false
	}
	t.accounts[addr] = nil
	return true
}

// RecordStorage marks the storage slot key of addr as accessed.
// It returns true if this is the first access in the current unit.
//
// addr must have been recorded by RecordAccount before, otherwise it panics
// with *InvariantError and leaves the trace unchanged.
func (t *Trace) RecordStorage(addr thor.Address, key thor.Bytes32) bool {
	slots, ok := t.accounts[addr]
	if !ok {
		panic(&InvariantError{Account: addr, Key: key})
	}
	if slots == nil {
		slots = mapset.NewThreadUnsafeSet[thor.Bytes32]()
		t.accounts[addr] = slots
	}
	return slots.Add(key)
}

// RecordCode marks the code identified by hash as accessed.
// It returns true if this is the first access in the current unit.
func (t *Trace) RecordCode(hash thor.Bytes32) bool {
	t.init(0, 0, 0)
	return t.codes.Add(hash)
}

// RecordBlockNumber marks the hash of block num as accessed.
// It returns true if this is the first access in the current unit.
func (t *Trace) RecordBlockNumber(num uint64) bool {
	t.init(0, 0, 0)
	return t.blockHashes.Add(num)
}

// HasAccount reports whether addr was accessed.
func (t *Trace) HasAccount(addr thor.Address) bool {
	_, ok := t.accounts[addr]
	return ok
}

// HasStorage reports whether the slot key of addr was accessed.
func (t *Trace) HasStorage(addr thor.Address, key thor.Bytes32) bool {
	slots := t.accounts[addr]
	return slots != nil && slots.Contains(key)
}

// HasCode reports whether the code identified by hash was accessed.
func (t *Trace) HasCode(hash thor.Bytes32) bool {
	return t.codes != nil && t.codes.Contains(hash)
}

// HasBlockNumber reports whether the hash of block num was accessed.
func (t *Trace) HasBlockNumber(num uint64) bool {
	return t.blockHashes != nil && t.blockHashes.Contains(num)
}

// Stats returns the number of recorded elements.
func (t *Trace) Stats() Stats {
	s := Stats{Accounts: len(t.accounts)}
	for _, slots := range t.accounts {
		if slots != nil {
			s.Slots += slots.Cardinality()
		}
	}
	if t.codes != nil {
		s.Codes = t.codes.Cardinality()
		s.BlockHashes = t.blockHashes.Cardinality()
	}
	return s
}

// IsEmpty reports whether nothing was recorded.
func (t *Trace) IsEmpty() bool {
	return t.Stats() == Stats{}
}

// Harvest returns everything recorded so far and resets t to empty.
// The returned trace shares nothing with t.
func (t *Trace) Harvest() *Trace {
	t.init(0, 0, 0)

	harvested := &Trace{
		accounts:    t.accounts,
		codes:       t.codes,
		blockHashes: t.blockHashes,
	}
	// the next unit likely touches about as much as this one
	t.accounts = nil
	t.init(len(harvested.accounts), harvested.codes.Cardinality(), harvested.blockHashes.Cardinality())

	s := harvested.Stats()
	metricHarvestCount().Add(1)
	metricHarvestSize().ObserveWithLabels(int64(s.Accounts), map[string]string{"kind": "account"})
	metricHarvestSize().ObserveWithLabels(int64(s.Slots), map[string]string{"kind": "slot"})
	metricHarvestSize().ObserveWithLabels(int64(s.Codes), map[string]string{"kind": "code"})
	metricHarvestSize().ObserveWithLabels(int64(s.BlockHashes), map[string]string{"kind": "blockhash"})
	logger.Trace("trace harvested", "accounts", s.Accounts, "slots", s.Slots, "codes", s.Codes, "blockHashes", s.BlockHashes)

	return harvested
}

// Accounts returns the accessed accounts in ascending order.
func (t *Trace) Accounts() []thor.Address {
	addrs := make([]thor.Address, 0, len(t.accounts))
	for addr := range t.accounts {
		addrs = append(addrs, addr)
	}
	slices.SortFunc(addrs, thor.Address.Compare)
	return addrs
}

// Storage returns the accessed slots of addr in ascending order.
func (t *Trace) Storage(addr thor.Address) []thor.Bytes32 {
	return sortedSet(t.accounts[addr], thor.Bytes32.Compare)
}

// Codes returns the accessed code hashes in ascending order.
func (t *Trace) Codes() []thor.Bytes32 {
	return sortedSet(t.codes, thor.Bytes32.Compare)
}

// BlockNumbers returns the numbers of blocks whose hash was accessed, in ascending order.
func (t *Trace) BlockNumbers() []uint64 {
	return sortedSet(t.blockHashes, cmp.Compare[uint64])
}

// Clone returns a deep copy of t.
func (t *Trace) Clone() *Trace {
	c := &Trace{}
	c.init(len(t.accounts), 0, 0)
	for addr, slots := range t.accounts {
		if slots != nil {
			slots = slots.Clone()
		}
		c.accounts[addr] = slots
	}
	if t.codes != nil {
		c.codes = t.codes.Clone()
		c.blockHashes = t.blockHashes.Clone()
	}
	return c
}

// Equal reports whether t and other hold the same elements.
func (t *Trace) Equal(other *Trace) bool {
	if len(t.accounts) != len(other.accounts) {
		return false
	}
	for addr, slots := range t.accounts {
		otherSlots, ok := other.accounts[addr]
		if !ok || !setEqual(slots, otherSlots) {
			return false
		}
	}
	return setEqual(t.codes, other.codes) && setEqual(t.blockHashes, other.blockHashes)
}

// setEqual compares sets treating nil as empty.
func setEqual[T comparable](a, b mapset.Set[T]) bool {
	switch {
	case a == nil && b == nil:
		return true
	case a == nil:
		return b.Cardinality() == 0
	case b == nil:
		return a.Cardinality() == 0
	}
	return a.Equal(b)
}

func sortedSet[T comparable](s mapset.Set[T], compare func(a, b T) int) []T {
	if s == nil {
		return []T{}
	}
	items := s.ToSlice()
	slices.SortFunc(items, compare)
	return items
}
