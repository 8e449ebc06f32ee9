// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package accesstrace_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vechain/exectrace/accesstrace"
	"github.com/vechain/exectrace/thor"
)

func TestDiff(t *testing.T) {
	a := accesstrace.New()
	a.RecordAccount(addrA)
	a.RecordStorage(addrA, slot(1))
	a.RecordStorage(addrA, slot(2))
	a.RecordAccount(addrB)
	a.RecordStorage(addrB, slot(3))
	a.RecordCode(hashH)
	a.RecordBlockNumber(1)
	a.RecordBlockNumber(2)

	b := accesstrace.New()
	b.RecordAccount(addrA)
	b.RecordStorage(addrA, slot(1))
	b.RecordBlockNumber(2)

	d := a.Diff(b)
	assert.Equal(t, []thor.Address{addrA, addrB}, d.Accounts())
	assert.Equal(t, []thor.Bytes32{slot(2)}, d.Storage(addrA))
	assert.Equal(t, []thor.Bytes32{slot(3)}, d.Storage(addrB))
	assert.Equal(t, []thor.Bytes32{hashH}, d.Codes())
	assert.Equal(t, []uint64{1}, d.BlockNumbers())

	// b is covered by a
	assert.True(t, b.Diff(a).IsEmpty())
	assert.True(t, a.Diff(a).IsEmpty())

	// the diff is detached from its inputs
	d.RecordStorage(addrB, slot(4))
	assert.False(t, a.HasStorage(addrB, slot(4)))
}

func TestDiffAccountOnly(t *testing.T) {
	a := accesstrace.New()
	a.RecordAccount(addrA)

	b := accesstrace.New()
	b.RecordAccount(addrA)
	b.RecordStorage(addrA, slot(1))

	assert.True(t, a.Diff(b).IsEmpty())

	d := b.Diff(a)
	assert.Equal(t, []thor.Address{addrA}, d.Accounts())
	assert.Equal(t, []thor.Bytes32{slot(1)}, d.Storage(addrA))
}

func TestDiffZeroValue(t *testing.T) {
	var zero accesstrace.Trace
	tr := sampleTrace()

	assert.True(t, tr.Diff(&zero).Equal(tr))
	assert.True(t, zero.Diff(tr).IsEmpty())
}
